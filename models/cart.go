package models

// CartItem represents a single line item in the visitor's cart.
type CartItem struct {
	ProductID int64   `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"` // unit price
	Quantity  int     `json:"quantity"`
}

// Cart is what the cart endpoints return: the line items plus derived totals.
type Cart struct {
	Items      []CartItem `json:"items"`
	TotalItems int        `json:"totalItems"`
	TotalPrice float64    `json:"totalPrice"`
}
