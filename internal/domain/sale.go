package domain

import "time"

const (
	PaymentStatusPaid      = "paid"
	PaymentStatusUnpaid    = "unpaid"
	PaymentStatusCancelled = "cancelled"
)

const (
	PaymentMethodCash = "cash"
	PaymentMethodCard = "card"
	PaymentMethodPix  = "pix"
)

type Sale struct {
	ID             int         `json:"id"`
	InvoiceNumber  string      `json:"invoice_number"`
	UserID         int         `json:"user_id"`
	CashierName    string      `json:"cashier_name,omitempty"`
	CustomerName   *string     `json:"customer_name"`
	Subtotal       float64     `json:"subtotal"`
	TaxAmount      float64     `json:"tax_amount"`
	DiscountAmount float64     `json:"discount_amount"`
	TotalAmount    float64     `json:"total_amount"`
	PaymentStatus  string      `json:"payment_status"`
	PaymentMethod  string      `json:"payment_method"`
	CreatedAt      time.Time   `json:"created_at"`
	Items          []*SaleItem `json:"items,omitempty"`
}

// SaleItem pertence exclusivamente a uma venda e é removido junto com ela
type SaleItem struct {
	ID          int     `json:"id"`
	SaleID      int     `json:"sale_id"`
	ProductID   int     `json:"product_id"`
	ProductName string  `json:"product_name,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
}

type CheckoutItem struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

type CheckoutRequest struct {
	CustomerName   *string        `json:"customer_name"`
	PaymentMethod  string         `json:"payment_method"`
	PaymentStatus  string         `json:"payment_status"`
	DiscountAmount float64        `json:"discount_amount"`
	Items          []CheckoutItem `json:"items"`
}

// SaleListFilters carrega os parâmetros já normalizados da listagem de vendas
type SaleListFilters struct {
	Page     int
	Limit    int
	SortBy   string
	SortDir  string
	Search   string
	DateFrom *time.Time
	DateTo   *time.Time
}

type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}
