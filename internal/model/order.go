package model

// Order groups line items under one user, date and total. Orders are not
// created through the API; only read and delete are exposed.
type Order struct {
	OrderID   int64   `json:"orderId"`
	UserID    int64   `json:"userId"`
	OrderDate string  `json:"orderDate"`
	Total     float64 `json:"total"`
}

// OrderItem is a single product/quantity line of an order.
type OrderItem struct {
	ID        int64 `json:"id"`
	OrderID   int64 `json:"orderId"`
	ProductID int64 `json:"productId"`
	Quantity  int64 `json:"quantity"`
}
