package reporting

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/padocalabs/bakery-pos-api/internal/domain"
	"github.com/padocalabs/bakery-pos-api/pkg/utils"
)

const (
	// Período padrão dos relatórios quando as datas não são informadas
	defaultRangeDays = 30

	defaultSortColumn = "s.created_at"
	defaultSortDir    = "DESC"

	defaultPageSize = 10
	maxPageSize     = 200
)

var dateFormatPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Colunas permitidas no ORDER BY da listagem de vendas. Qualquer valor fora
// da lista cai na coluna padrão, o que impede injeção via sort_by.
var sortableColumns = []string{
	"s.created_at",
	"s.invoice_number",
	"s.customer_name",
	"s.total_amount",
	"s.payment_status",
	"s.payment_method",
}

// RawReportQuery carrega os parâmetros de relatório como chegam na query string
type RawReportQuery struct {
	Report    string
	StartDate string
	EndDate   string
}

// RawSaleListQuery carrega os parâmetros da listagem de vendas sem validação
type RawSaleListQuery struct {
	Page     string
	Limit    string
	SortBy   string
	SortDir  string
	Search   string
	DateFrom string
	DateTo   string
}

// NormalizeReportQuery valida os parâmetros de relatório aplicando os padrões
// documentados: tipo desconhecido vira "sales" silenciosamente, data inválida é
// substituída pelo padrão (últimos 30 dias) com mensagem, e data final anterior
// à inicial é corrigida para hoje sem tocar na data inicial.
func NormalizeReportQuery(raw RawReportQuery, now time.Time) (*domain.ReportFilters, []string) {
	messages := make([]string, 0)

	today := utils.Truncate(now)
	defaultStart := today.AddDate(0, 0, -defaultRangeDays)

	report := domain.ReportType(raw.Report)
	if raw.Report == "" || !domain.ValidReportType(report) {
		report = domain.ReportSales
	}

	startDate, ok := parseReportDate(raw.StartDate)
	if !ok {
		startDate = defaultStart
		if raw.StartDate != "" {
			messages = append(messages, "Data inicial inválida, período padrão aplicado")
		}
	}

	endDate, ok := parseReportDate(raw.EndDate)
	if !ok {
		endDate = today
		if raw.EndDate != "" {
			messages = append(messages, "Data final inválida, período padrão aplicado")
		}
	}

	// Correção assimétrica: apenas a data final é ajustada
	if endDate.Before(startDate) {
		endDate = today
		messages = append(messages, "Data final anterior à inicial, data final ajustada para hoje")
	}

	return &domain.ReportFilters{
		Report:    report,
		StartDate: startDate,
		EndDate:   endDate,
	}, messages
}

// NormalizeSaleListQuery valida paginação, ordenação e filtros da listagem de
// vendas. Valores fora da allow-list de colunas caem no padrão sem erro.
func NormalizeSaleListQuery(raw RawSaleListQuery) *domain.SaleListFilters {
	filters := &domain.SaleListFilters{
		Page:    1,
		Limit:   defaultPageSize,
		SortBy:  defaultSortColumn,
		SortDir: defaultSortDir,
		Search:  strings.TrimSpace(raw.Search),
	}

	if page, err := strconv.Atoi(raw.Page); err == nil && page >= 1 {
		filters.Page = page
	}

	if limit, err := strconv.Atoi(raw.Limit); err == nil && limit >= 1 {
		if limit > maxPageSize {
			limit = maxPageSize
		}
		filters.Limit = limit
	}

	for _, column := range sortableColumns {
		if raw.SortBy == column {
			filters.SortBy = column
			break
		}
	}

	switch strings.ToUpper(raw.SortDir) {
	case "ASC":
		filters.SortDir = "ASC"
	case "DESC":
		filters.SortDir = "DESC"
	}

	if date, ok := parseReportDate(raw.DateFrom); ok {
		filters.DateFrom = &date
	}

	if date, ok := parseReportDate(raw.DateTo); ok {
		filters.DateTo = &date
	}

	return filters
}

func parseReportDate(value string) (time.Time, bool) {
	if !dateFormatPattern.MatchString(value) {
		return time.Time{}, false
	}

	date, err := utils.ParseDate(value)
	if err != nil || date == nil {
		return time.Time{}, false
	}

	return *date, true
}
