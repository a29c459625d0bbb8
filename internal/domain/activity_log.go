package domain

import "time"

// Ações registradas no log de atividades
const (
	ActivityLogin          = "login"
	ActivityCheckout       = "checkout"
	ActivitySaleStatus     = "sale_status_change"
	ActivityProductChange  = "product_change"
	ActivityCategoryChange = "category_change"
	ActivityUserChange     = "user_change"
)

type ActivityLog struct {
	ID        int       `json:"id"`
	UserID    *int      `json:"user_id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}
