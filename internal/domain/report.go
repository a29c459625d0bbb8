package domain

import "time"

type ReportType string

const (
	ReportSales      ReportType = "sales"
	ReportProducts   ReportType = "products"
	ReportCategories ReportType = "categories"
	ReportCashiers   ReportType = "cashiers"
	ReportInventory  ReportType = "inventory"
	ReportLowStock   ReportType = "low_stock"
)

// ValidReportType informa se o tipo de relatório é reconhecido
func ValidReportType(t ReportType) bool {
	switch t {
	case ReportSales, ReportProducts, ReportCategories, ReportCashiers, ReportInventory, ReportLowStock:
		return true
	}
	return false
}

// ReportFilters carrega o período já validado de um relatório.
// As datas são inclusivas nas duas pontas.
type ReportFilters struct {
	Report    ReportType `json:"report"`
	StartDate time.Time  `json:"start_date"`
	EndDate   time.Time  `json:"end_date"`
}

type DailySalesRow struct {
	Date         string  `json:"date"`
	Transactions int     `json:"transactions"`
	TotalSales   float64 `json:"total_sales"`
}

type ProductSalesRow struct {
	ProductID    int     `json:"product_id"`
	Name         string  `json:"name"`
	QuantitySold int     `json:"quantity_sold"`
	TotalSales   float64 `json:"total_sales"`
	Percentage   float64 `json:"percentage"`
}

type CategorySalesRow struct {
	Name         string  `json:"name"`
	QuantitySold int     `json:"quantity_sold"`
	TotalSales   float64 `json:"total_sales"`
	Percentage   float64 `json:"percentage"`
}

type CashierPerformanceRow struct {
	UserID       int     `json:"user_id"`
	Name         string  `json:"name"`
	Transactions int     `json:"transactions"`
	TotalSales   float64 `json:"total_sales"`
	AverageSale  float64 `json:"average_sale"`
}

type InventoryRow struct {
	ProductID       int     `json:"product_id"`
	Name            string  `json:"name"`
	Category        *string `json:"category"`
	StockQuantity   int     `json:"stock_quantity"`
	ReorderLevel    int     `json:"reorder_level"`
	Price           float64 `json:"price"`
	CostPrice       float64 `json:"cost_price"`
	Margin          float64 `json:"margin"`
	PotentialProfit float64 `json:"potential_profit"`
}

type LowStockRow struct {
	ProductID     int     `json:"product_id"`
	Name          string  `json:"name"`
	Category      *string `json:"category"`
	StockQuantity int     `json:"stock_quantity"`
	ReorderLevel  int     `json:"reorder_level"`
	Demand30Days  int     `json:"demand_30_days"`
}

// PeriodTotals agrega os totais de vendas pagas em um período
type PeriodTotals struct {
	TotalSales   float64 `json:"total_sales"`
	Transactions int     `json:"transactions"`
	ItemsSold    int     `json:"items_sold"`
	Profit       float64 `json:"profit"`
}

type ReportMetrics struct {
	TotalSales     float64  `json:"total_sales"`
	TotalInvoices  int      `json:"total_invoices"`
	AverageSale    float64  `json:"average_sale"`
	TotalItemsSold int      `json:"total_items_sold"`
	TotalProfit    float64  `json:"total_profit"`
	SalesGrowth    float64  `json:"sales_growth"`
	DailyGrowth    *float64 `json:"daily_growth,omitempty"`
}

// ReportResult é o envelope devolvido para o cliente.
// Qualquer falha de consulta degrada para Data vazio com mensagem genérica.
type ReportResult struct {
	Status   string         `json:"status"`
	Data     any            `json:"data"`
	Metrics  *ReportMetrics `json:"metrics,omitempty"`
	Messages []string       `json:"messages,omitempty"`
}
