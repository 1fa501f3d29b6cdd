package models

import "time"

// Roles as reported by the commerce API.
const (
	RoleGuest     = "GUEST"
	RoleUser      = "USER"
	RoleAdmin     = "ADMIN"
	RoleRootAdmin = "ROOT_ADMIN"
)

// Order item statuses, in ladder order. Status moves forward only.
var OrderStatuses = []string{
	"PENDING",
	"CONFIRMED",
	"DELIVERING",
	"DELIVERED",
	"CANCELLED",
	"REFUNDED",
}

// Category as served by the commerce API.
type Category struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}

// Product is read-only from this service's point of view; the commerce API
// owns stock and pricing. Admin handlers only compose create/update requests.
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Mrp         float64   `json:"mrp"`
	Qty         int       `json:"qty"`
	ProductSize string    `json:"productSize,omitempty"`
	WsCode      string    `json:"wsCode,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Category    *Category `json:"category,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
}

// ProductImage is one extra image attached to a product.
type ProductImage struct {
	ID       int64  `json:"id"`
	ImageURL string `json:"imageUrl"`
}

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type User struct {
	ID            int64       `json:"id,omitempty"`
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	PhoneNumber   string      `json:"phoneNumber"`
	Role          string      `json:"role"`
	Address       *Address    `json:"address,omitempty"`
	OrderItemList []OrderItem `json:"orderItemList,omitempty"`
}

type OrderItem struct {
	ID        int64     `json:"id"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	Status    string    `json:"status"`
	Product   *Product  `json:"product,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// OrderLine is one {productId, quantity} entry of a placed order.
type OrderLine struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// OrderRequest is the body submitted to the commerce API when placing an order.
type OrderRequest struct {
	TotalPrice float64     `json:"totalPrice"`
	Items      []OrderLine `json:"items"`
}

// RegistrationRequest covers both user signup and root-admin-gated admin creation.
type RegistrationRequest struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
