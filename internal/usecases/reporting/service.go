package reporting

import (
	"time"

	"github.com/padocalabs/bakery-pos-api/infrastructure/repository"
	"github.com/padocalabs/bakery-pos-api/internal/config"
	"github.com/padocalabs/bakery-pos-api/internal/domain"
	"github.com/padocalabs/bakery-pos-api/pkg/log"
	"github.com/padocalabs/bakery-pos-api/pkg/utils"
)

const genericReportError = "Erro ao gerar relatório"

type Reporter interface {
	GenerateReport(filters *domain.ReportFilters) *domain.ReportResult
}

type Service struct {
	cfg        *config.Config
	reportRepo repository.ReportRepository
}

func NewService(cfg *config.Config, reportRepo repository.ReportRepository) Reporter {
	return &Service{
		cfg:        cfg,
		reportRepo: reportRepo,
	}
}

// GenerateReport materializa o relatório pedido. Falhas de consulta nunca
// derrubam a requisição: o resultado degrada para dados vazios com mensagem
// genérica e o erro real fica apenas no log.
func (s *Service) GenerateReport(filters *domain.ReportFilters) *domain.ReportResult {
	switch filters.Report {
	case domain.ReportSales:
		return s.salesReport(filters)
	case domain.ReportProducts:
		return s.productsReport(filters)
	case domain.ReportCategories:
		return s.categoriesReport(filters)
	case domain.ReportCashiers:
		return s.cashiersReport(filters)
	case domain.ReportInventory:
		return s.inventoryReport()
	case domain.ReportLowStock:
		return s.lowStockReport()
	}

	// O normalizador garante um tipo válido; isto só ocorre em chamada direta
	return s.salesReport(filters)
}

func (s *Service) salesReport(filters *domain.ReportFilters) *domain.ReportResult {
	rows, err := s.reportRepo.DailySales(filters.StartDate, filters.EndDate)
	if err != nil {
		return s.failedResult(filters, err)
	}

	metrics := s.collectMetrics(filters, true)

	return &domain.ReportResult{
		Status:  "success",
		Data:    rows,
		Metrics: metrics,
	}
}

func (s *Service) productsReport(filters *domain.ReportFilters) *domain.ReportResult {
	rows, err := s.reportRepo.ProductSales(filters.StartDate, filters.EndDate)
	if err != nil {
		return s.failedResult(filters, err)
	}

	total := 0.0
	for _, row := range rows {
		total += row.TotalSales
	}
	for _, row := range rows {
		row.Percentage = sharePercent(row.TotalSales, total)
	}

	metrics := s.collectMetrics(filters, false)

	return &domain.ReportResult{
		Status:  "success",
		Data:    rows,
		Metrics: metrics,
	}
}

func (s *Service) categoriesReport(filters *domain.ReportFilters) *domain.ReportResult {
	rows, err := s.reportRepo.CategorySales(filters.StartDate, filters.EndDate)
	if err != nil {
		return s.failedResult(filters, err)
	}

	total := 0.0
	for _, row := range rows {
		total += row.TotalSales
	}
	for _, row := range rows {
		row.Percentage = sharePercent(row.TotalSales, total)
	}

	metrics := s.collectMetrics(filters, false)

	return &domain.ReportResult{
		Status:  "success",
		Data:    rows,
		Metrics: metrics,
	}
}

func (s *Service) cashiersReport(filters *domain.ReportFilters) *domain.ReportResult {
	rows, err := s.reportRepo.CashierPerformance(filters.StartDate, filters.EndDate)
	if err != nil {
		return s.failedResult(filters, err)
	}

	metrics := s.collectMetrics(filters, false)

	return &domain.ReportResult{
		Status:  "success",
		Data:    rows,
		Metrics: metrics,
	}
}

func (s *Service) inventoryReport() *domain.ReportResult {
	rows, err := s.reportRepo.Inventory(s.cfg.Report.DynamicReorderLevel)
	if err != nil {
		log.L.WithError(err).Error("Erro ao consultar relatório de inventário")
		return &domain.ReportResult{
			Status:   "error",
			Data:     []*domain.InventoryRow{},
			Messages: []string{genericReportError},
		}
	}

	return &domain.ReportResult{
		Status: "success",
		Data:   rows,
	}
}

func (s *Service) lowStockReport() *domain.ReportResult {
	rows, err := s.reportRepo.LowStock(s.cfg.Report.DynamicReorderLevel)
	if err != nil {
		log.L.WithError(err).Error("Erro ao consultar relatório de estoque baixo")
		return &domain.ReportResult{
			Status:   "error",
			Data:     []*domain.LowStockRow{},
			Messages: []string{genericReportError},
		}
	}

	return &domain.ReportResult{
		Status: "success",
		Data:   rows,
	}
}

// collectMetrics calcula os agregados do período e o crescimento sobre o
// período imediatamente anterior de mesma duração. Falha nas métricas não
// invalida o relatório: o bloco simplesmente não é devolvido.
func (s *Service) collectMetrics(filters *domain.ReportFilters, withDailyGrowth bool) *domain.ReportMetrics {
	current, err := s.reportRepo.PeriodTotals(filters.StartDate, filters.EndDate)
	if err != nil {
		log.L.WithError(err).Error("Erro ao consultar totais do período")
		return nil
	}

	previousStart, previousEnd := previousPeriod(filters.StartDate, filters.EndDate)
	previous, err := s.reportRepo.PeriodTotals(previousStart, previousEnd)
	if err != nil {
		log.L.WithError(err).Error("Erro ao consultar totais do período anterior")
		return nil
	}

	averageSale := 0.0
	if current.Transactions > 0 {
		averageSale = utils.RoundWithTwoDecimalPlace(current.TotalSales / float64(current.Transactions))
	}

	metrics := &domain.ReportMetrics{
		TotalSales:     current.TotalSales,
		TotalInvoices:  current.Transactions,
		AverageSale:    averageSale,
		TotalItemsSold: current.ItemsSold,
		TotalProfit:    current.Profit,
		SalesGrowth:    growthPercent(current.TotalSales, previous.TotalSales),
	}

	if withDailyGrowth {
		if dailyGrowth, ok := s.dailyGrowth(); ok {
			metrics.DailyGrowth = &dailyGrowth
		}
	}

	return metrics
}

// dailyGrowth compara o total de hoje com o de ontem
func (s *Service) dailyGrowth() (float64, bool) {
	today := utils.Truncate(time.Now())
	yesterday := today.AddDate(0, 0, -1)

	todayTotals, err := s.reportRepo.PeriodTotals(today, today)
	if err != nil {
		log.L.WithError(err).Error("Erro ao consultar totais de hoje")
		return 0, false
	}

	yesterdayTotals, err := s.reportRepo.PeriodTotals(yesterday, yesterday)
	if err != nil {
		log.L.WithError(err).Error("Erro ao consultar totais de ontem")
		return 0, false
	}

	return growthPercent(todayTotals.TotalSales, yesterdayTotals.TotalSales), true
}

func (s *Service) failedResult(filters *domain.ReportFilters, err error) *domain.ReportResult {
	log.L.WithError(err).WithField("report", filters.Report).Error("Erro ao gerar relatório")

	return &domain.ReportResult{
		Status:   "error",
		Data:     []struct{}{},
		Messages: []string{genericReportError},
	}
}

// previousPeriod devolve a janela de mesma duração imediatamente anterior ao
// período informado, sem sobreposição: para Δ = dias entre início e fim, a
// janela anterior é [início-(Δ+1), início-1].
func previousPeriod(startDate, endDate time.Time) (time.Time, time.Time) {
	delta := calendarDays(startDate, endDate)
	return startDate.AddDate(0, 0, -(delta + 1)), startDate.AddDate(0, 0, -1)
}

// calendarDays conta os dias de calendário entre duas datas. As extremidades
// são reancoradas em meia-noite UTC antes da subtração: a data inicial pode
// vir do fuso do servidor (padrão aplicado pelo normalizador) e a final do
// parse em UTC, e a diferença de fuso encurtaria a contagem por truncamento.
func calendarDays(from, to time.Time) int {
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(toDay.Sub(fromDay).Hours() / 24)
}

// growthPercent devolve a variação percentual entre períodos. Período anterior
// zerado devolve 0, o que evita divisão por zero mas não distingue "sem dados"
// de "sem crescimento".
func growthPercent(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return utils.RoundWithTwoDecimalPlace((current - previous) / previous * 100)
}

func sharePercent(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return utils.RoundWithTwoDecimalPlace(value / total * 100)
}
