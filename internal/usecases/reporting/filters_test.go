package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/padocalabs/bakery-pos-api/internal/domain"
)

func TestNormalizeReportQuery(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)
	today := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	defaultStart := time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		raw          RawReportQuery
		wantReport   domain.ReportType
		wantStart    time.Time
		wantEnd      time.Time
		wantMessages int
	}{
		{
			name:         "Sem parâmetros deve aplicar padrões sem mensagens",
			raw:          RawReportQuery{},
			wantReport:   domain.ReportSales,
			wantStart:    defaultStart,
			wantEnd:      today,
			wantMessages: 0,
		},
		{
			name: "Tipo desconhecido deve cair em sales silenciosamente",
			raw: RawReportQuery{
				Report:    "fraude",
				StartDate: "2024-03-01",
				EndDate:   "2024-03-10",
			},
			wantReport:   domain.ReportSales,
			wantStart:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:      time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			wantMessages: 0,
		},
		{
			name: "Período válido deve ser mantido",
			raw: RawReportQuery{
				Report:    "products",
				StartDate: "2024-03-01",
				EndDate:   "2024-03-10",
			},
			wantReport:   domain.ReportProducts,
			wantStart:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:      time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			wantMessages: 0,
		},
		{
			name: "Data inicial fora do formato deve ser substituída com mensagem",
			raw: RawReportQuery{
				Report:    "sales",
				StartDate: "01/03/2024",
				EndDate:   "2024-03-10",
			},
			wantReport:   domain.ReportSales,
			wantStart:    defaultStart,
			wantEnd:      time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			wantMessages: 1,
		},
		{
			name: "Data final inválida deve ser substituída com mensagem",
			raw: RawReportQuery{
				Report:    "sales",
				StartDate: "2024-03-01",
				EndDate:   "amanhã",
			},
			wantReport:   domain.ReportSales,
			wantStart:    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:      today,
			wantMessages: 1,
		},
		{
			name: "Data final anterior à inicial corrige apenas a final",
			raw: RawReportQuery{
				Report:    "cashiers",
				StartDate: "2024-03-10",
				EndDate:   "2024-03-01",
			},
			wantReport:   domain.ReportCashiers,
			wantStart:    time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			wantEnd:      today,
			wantMessages: 1,
		},
		{
			name: "Tentativa de injeção na data deve cair no padrão",
			raw: RawReportQuery{
				Report:    "sales",
				StartDate: "2024-03-01'; DROP TABLE sales; --",
				EndDate:   "2024-03-10",
			},
			wantReport:   domain.ReportSales,
			wantStart:    defaultStart,
			wantEnd:      time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			wantMessages: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filters, messages := NormalizeReportQuery(tt.raw, now)

			assert.Equal(t, tt.wantReport, filters.Report)
			assert.Equal(t, tt.wantStart, filters.StartDate)
			assert.Equal(t, tt.wantEnd, filters.EndDate)
			assert.Len(t, messages, tt.wantMessages)
		})
	}
}

func TestNormalizeSaleListQuery(t *testing.T) {
	tests := []struct {
		name string
		raw  RawSaleListQuery
		want *domain.SaleListFilters
	}{
		{
			name: "Sem parâmetros deve aplicar padrões",
			raw:  RawSaleListQuery{},
			want: &domain.SaleListFilters{
				Page:    1,
				Limit:   10,
				SortBy:  "s.created_at",
				SortDir: "DESC",
			},
		},
		{
			name: "Parâmetros válidos devem ser mantidos",
			raw: RawSaleListQuery{
				Page:    "3",
				Limit:   "50",
				SortBy:  "s.total_amount",
				SortDir: "asc",
				Search:  "  VND-20240301  ",
			},
			want: &domain.SaleListFilters{
				Page:    3,
				Limit:   50,
				SortBy:  "s.total_amount",
				SortDir: "ASC",
				Search:  "VND-20240301",
			},
		},
		{
			name: "Coluna fora da allow-list deve cair na padrão",
			raw: RawSaleListQuery{
				SortBy:  "1;DROP TABLE users",
				SortDir: "DESC",
			},
			want: &domain.SaleListFilters{
				Page:    1,
				Limit:   10,
				SortBy:  "s.created_at",
				SortDir: "DESC",
			},
		},
		{
			name: "Limite acima do teto deve ser limitado a 200",
			raw: RawSaleListQuery{
				Limit: "99999",
			},
			want: &domain.SaleListFilters{
				Page:    1,
				Limit:   200,
				SortBy:  "s.created_at",
				SortDir: "DESC",
			},
		},
		{
			name: "Página e limite inválidos devem cair nos padrões",
			raw: RawSaleListQuery{
				Page:  "-2",
				Limit: "abc",
			},
			want: &domain.SaleListFilters{
				Page:    1,
				Limit:   10,
				SortBy:  "s.created_at",
				SortDir: "DESC",
			},
		},
		{
			name: "Direção desconhecida deve cair em DESC",
			raw: RawSaleListQuery{
				SortDir: "sideways",
			},
			want: &domain.SaleListFilters{
				Page:    1,
				Limit:   10,
				SortBy:  "s.created_at",
				SortDir: "DESC",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filters := NormalizeSaleListQuery(tt.raw)

			assert.Equal(t, tt.want.Page, filters.Page)
			assert.Equal(t, tt.want.Limit, filters.Limit)
			assert.Equal(t, tt.want.SortBy, filters.SortBy)
			assert.Equal(t, tt.want.SortDir, filters.SortDir)
			assert.Equal(t, tt.want.Search, filters.Search)
		})
	}
}

func TestNormalizeSaleListQueryDates(t *testing.T) {
	raw := RawSaleListQuery{
		DateFrom: "2024-03-01",
		DateTo:   "não-é-data",
	}

	filters := NormalizeSaleListQuery(raw)

	if assert.NotNil(t, filters.DateFrom) {
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *filters.DateFrom)
	}
	assert.Nil(t, filters.DateTo)
}

func TestPreviousPeriod(t *testing.T) {
	tests := []struct {
		name      string
		start     time.Time
		end       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "Período de um dia volta um dia",
			start:     time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			end:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "Período de 30 dias volta 31 dias",
			start:     time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC),
			end:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 2, 13, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "Semana fechada não sobrepõe o período atual",
			start:     time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC),
			end:       time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			// Data inicial no fuso do servidor (padrão do normalizador) e
			// final em UTC (parse): a contagem usa dias de calendário, então
			// a diferença de fuso não encurta a janela anterior
			name:      "Fusos diferentes nas extremidades mantêm a duração",
			start:     time.Date(2024, 2, 14, 0, 0, 0, 0, time.FixedZone("BRT", -3*60*60)),
			end:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2024, 1, 14, 0, 0, 0, 0, time.FixedZone("BRT", -3*60*60)),
			wantEnd:   time.Date(2024, 2, 13, 0, 0, 0, 0, time.FixedZone("BRT", -3*60*60)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotStart, gotEnd := previousPeriod(tt.start, tt.end)

			assert.True(t, tt.wantStart.Equal(gotStart))
			assert.True(t, tt.wantEnd.Equal(gotEnd))

			// Janela anterior cobre os mesmos dias de calendário e termina
			// na véspera do início
			assert.Equal(t, calendarDays(tt.start, tt.end), calendarDays(gotStart, gotEnd))
			assert.True(t, tt.start.AddDate(0, 0, -1).Equal(gotEnd))
		})
	}
}

func TestGrowthPercent(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		expected float64
	}{
		{
			name:     "Crescimento positivo",
			current:  150,
			previous: 100,
			expected: 50,
		},
		{
			name:     "Queda",
			current:  80,
			previous: 100,
			expected: -20,
		},
		{
			name:     "Período anterior zerado devolve zero",
			current:  500,
			previous: 0,
			expected: 0,
		},
		{
			name:     "Ambos zerados devolve zero",
			current:  0,
			previous: 0,
			expected: 0,
		},
		{
			name:     "Arredondamento em duas casas",
			current:  100,
			previous: 300,
			expected: -66.67,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, growthPercent(tt.current, tt.previous))
		})
	}
}
