package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/padocalabs/bakery-pos-api/infrastructure/repository/mocks"
	"github.com/padocalabs/bakery-pos-api/internal/config"
	"github.com/padocalabs/bakery-pos-api/internal/domain"
)

func newTestService(t *testing.T, cfg *config.Config) (*Service, *mocks.MockReportRepository) {
	ctrl := gomock.NewController(t)
	mockRepo := mocks.NewMockReportRepository(ctrl)

	if cfg == nil {
		cfg = &config.Config{}
	}

	return &Service{cfg: cfg, reportRepo: mockRepo}, mockRepo
}

func TestGenerateReportSales(t *testing.T) {
	service, mockRepo := newTestService(t, nil)

	filters := &domain.ReportFilters{
		Report:    domain.ReportSales,
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}

	rows := []*domain.DailySalesRow{
		{Date: "2024-03-01", Transactions: 12, TotalSales: 480},
		{Date: "2024-03-02", Transactions: 8, TotalSales: 320},
	}

	mockRepo.EXPECT().
		DailySales(filters.StartDate, filters.EndDate).
		Return(rows, nil)

	// Totais do período atual e do anterior
	mockRepo.EXPECT().
		PeriodTotals(filters.StartDate, filters.EndDate).
		Return(&domain.PeriodTotals{TotalSales: 800, Transactions: 20, ItemsSold: 64, Profit: 240}, nil)

	mockRepo.EXPECT().
		PeriodTotals(
			time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		).
		Return(&domain.PeriodTotals{TotalSales: 400, Transactions: 11, ItemsSold: 30, Profit: 100}, nil)

	// Hoje e ontem, para o crescimento diário
	mockRepo.EXPECT().
		PeriodTotals(gomock.Any(), gomock.Any()).
		Return(&domain.PeriodTotals{TotalSales: 150}, nil)

	mockRepo.EXPECT().
		PeriodTotals(gomock.Any(), gomock.Any()).
		Return(&domain.PeriodTotals{TotalSales: 100}, nil)

	result := service.GenerateReport(filters)

	assert.Equal(t, "success", result.Status)
	assert.Equal(t, rows, result.Data)
	assert.Empty(t, result.Messages)

	if assert.NotNil(t, result.Metrics) {
		assert.Equal(t, 800.0, result.Metrics.TotalSales)
		assert.Equal(t, 20, result.Metrics.TotalInvoices)
		assert.Equal(t, 40.0, result.Metrics.AverageSale)
		assert.Equal(t, 64, result.Metrics.TotalItemsSold)
		assert.Equal(t, 240.0, result.Metrics.TotalProfit)
		assert.Equal(t, 100.0, result.Metrics.SalesGrowth)

		if assert.NotNil(t, result.Metrics.DailyGrowth) {
			assert.Equal(t, 50.0, *result.Metrics.DailyGrowth)
		}
	}
}

func TestGenerateReportProductsPercentages(t *testing.T) {
	service, mockRepo := newTestService(t, nil)

	filters := &domain.ReportFilters{
		Report:    domain.ReportProducts,
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}

	rows := []*domain.ProductSalesRow{
		{ProductID: 1, Name: "Pão francês", QuantitySold: 300, TotalSales: 300},
		{ProductID: 2, Name: "Bolo de fubá", QuantitySold: 20, TotalSales: 100},
	}

	mockRepo.EXPECT().
		ProductSales(filters.StartDate, filters.EndDate).
		Return(rows, nil)

	mockRepo.EXPECT().
		PeriodTotals(gomock.Any(), gomock.Any()).
		Return(&domain.PeriodTotals{TotalSales: 400, Transactions: 10}, nil).
		Times(2)

	result := service.GenerateReport(filters)

	assert.Equal(t, "success", result.Status)

	got, ok := result.Data.([]*domain.ProductSalesRow)
	if assert.True(t, ok) {
		assert.Equal(t, 75.0, got[0].Percentage)
		assert.Equal(t, 25.0, got[1].Percentage)
	}

	// Relatório de produtos não carrega crescimento diário
	if assert.NotNil(t, result.Metrics) {
		assert.Nil(t, result.Metrics.DailyGrowth)
		assert.Equal(t, 0.0, result.Metrics.SalesGrowth) // Período anterior idêntico
	}
}

func TestGenerateReportCategoriesEmptyTotal(t *testing.T) {
	service, mockRepo := newTestService(t, nil)

	filters := &domain.ReportFilters{
		Report:    domain.ReportCategories,
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}

	rows := []*domain.CategorySalesRow{
		{Name: "Sem categoria", QuantitySold: 0, TotalSales: 0},
	}

	mockRepo.EXPECT().
		CategorySales(filters.StartDate, filters.EndDate).
		Return(rows, nil)

	mockRepo.EXPECT().
		PeriodTotals(gomock.Any(), gomock.Any()).
		Return(&domain.PeriodTotals{}, nil).
		Times(2)

	result := service.GenerateReport(filters)

	assert.Equal(t, "success", result.Status)

	got, ok := result.Data.([]*domain.CategorySalesRow)
	if assert.True(t, ok) {
		// Total zerado não divide por zero
		assert.Equal(t, 0.0, got[0].Percentage)
	}

	if assert.NotNil(t, result.Metrics) {
		assert.Equal(t, 0.0, result.Metrics.AverageSale)
		assert.Equal(t, 0.0, result.Metrics.SalesGrowth)
	}
}

func TestGenerateReportCategoriesSplitsPercentages(t *testing.T) {
	service, mockRepo := newTestService(t, nil)

	filters := &domain.ReportFilters{
		Report:    domain.ReportCategories,
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}

	// Duas vendas pagas de 40 e 60 em Pães, uma de 100 em Bolos
	rows := []*domain.CategorySalesRow{
		{Name: "Pães", QuantitySold: 8, TotalSales: 100},
		{Name: "Bolos", QuantitySold: 1, TotalSales: 100},
	}

	mockRepo.EXPECT().
		CategorySales(filters.StartDate, filters.EndDate).
		Return(rows, nil)

	mockRepo.EXPECT().
		PeriodTotals(gomock.Any(), gomock.Any()).
		Return(&domain.PeriodTotals{TotalSales: 200, Transactions: 3}, nil).
		Times(2)

	result := service.GenerateReport(filters)

	assert.Equal(t, "success", result.Status)

	got, ok := result.Data.([]*domain.CategorySalesRow)
	if assert.True(t, ok) {
		assert.Equal(t, 50.0, got[0].Percentage)
		assert.Equal(t, 50.0, got[1].Percentage)
		// As participações fecham em 100%
		assert.Equal(t, 100.0, got[0].Percentage+got[1].Percentage)
	}
}

func TestGenerateReportQueryFailureDegradesToEmpty(t *testing.T) {
	service, mockRepo := newTestService(t, nil)

	filters := &domain.ReportFilters{
		Report:    domain.ReportSales,
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}

	mockRepo.EXPECT().
		DailySales(filters.StartDate, filters.EndDate).
		Return(nil, assert.AnError)

	result := service.GenerateReport(filters)

	assert.Equal(t, "error", result.Status)
	assert.Empty(t, result.Data)
	assert.Nil(t, result.Metrics)
	assert.Equal(t, []string{"Erro ao gerar relatório"}, result.Messages)
}

func TestGenerateReportMetricsFailureKeepsData(t *testing.T) {
	service, mockRepo := newTestService(t, nil)

	filters := &domain.ReportFilters{
		Report:    domain.ReportCashiers,
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	}

	rows := []*domain.CashierPerformanceRow{
		{UserID: 1, Name: "Maria Silva", Transactions: 40, TotalSales: 1600, AverageSale: 40},
	}

	mockRepo.EXPECT().
		CashierPerformance(filters.StartDate, filters.EndDate).
		Return(rows, nil)

	mockRepo.EXPECT().
		PeriodTotals(gomock.Any(), gomock.Any()).
		Return(nil, assert.AnError)

	result := service.GenerateReport(filters)

	// Falha nas métricas não derruba o relatório
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, rows, result.Data)
	assert.Nil(t, result.Metrics)
}

func TestGenerateReportInventoryUsesConfiguredReorderLevel(t *testing.T) {
	tests := []struct {
		name           string
		dynamicReorder bool
	}{
		{
			name:           "Nível de reposição dinâmico habilitado",
			dynamicReorder: true,
		},
		{
			name:           "Nível de reposição cadastrado",
			dynamicReorder: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Report.DynamicReorderLevel = tt.dynamicReorder

			service, mockRepo := newTestService(t, cfg)

			rows := []*domain.InventoryRow{
				{ProductID: 1, Name: "Pão francês", StockQuantity: 100, ReorderLevel: 20},
			}

			mockRepo.EXPECT().
				Inventory(tt.dynamicReorder).
				Return(rows, nil)

			result := service.GenerateReport(&domain.ReportFilters{Report: domain.ReportInventory})

			assert.Equal(t, "success", result.Status)
			assert.Equal(t, rows, result.Data)
			assert.Nil(t, result.Metrics)
		})
	}
}

func TestGenerateReportLowStock(t *testing.T) {
	cfg := &config.Config{}
	cfg.Report.DynamicReorderLevel = true

	service, mockRepo := newTestService(t, cfg)

	rows := []*domain.LowStockRow{
		{ProductID: 3, Name: "Sonho", StockQuantity: 4, ReorderLevel: 5, Demand30Days: 120},
	}

	mockRepo.EXPECT().
		LowStock(true).
		Return(rows, nil)

	result := service.GenerateReport(&domain.ReportFilters{Report: domain.ReportLowStock})

	assert.Equal(t, "success", result.Status)
	assert.Equal(t, rows, result.Data)
}
