package domain

import "time"

const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

type Product struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	CategoryID    *int      `json:"category_id"`
	CategoryName  *string   `json:"category_name,omitempty"`
	Price         float64   `json:"price"`
	CostPrice     float64   `json:"cost_price"`
	StockQuantity int       `json:"stock_quantity"`
	ReorderLevel  int       `json:"reorder_level"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Margin retorna o lucro unitário do produto
func (p *Product) Margin() float64 {
	return p.Price - p.CostPrice
}

type UpdateProductRequest struct {
	ID            int      `json:"id"`
	Name          *string  `json:"name"`
	CategoryID    *int     `json:"category_id"`
	Price         *float64 `json:"price"`
	CostPrice     *float64 `json:"cost_price"`
	StockQuantity *int     `json:"stock_quantity"`
	ReorderLevel  *int     `json:"reorder_level"`
	Status        *string  `json:"status"`
}
