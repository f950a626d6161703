// Package queue defines message payloads exchanged over the message broker.
package queue

// Event kinds carried on the catalog.events queue.
const (
	KindProductCreated = "product.created"
	KindOrderDeleted   = "order.deleted"
)

// CatalogEvent is published after a successful catalog write so downstream
// consumers can log or trigger analytics without querying the primary
// database. Product fields are only set for product.created events, OrderID
// only for order.deleted.
type CatalogEvent struct {
	Kind       string  `json:"kind"`
	ProductID  int64   `json:"product_id,omitempty"`
	Name       string  `json:"name,omitempty"`
	Price      float64 `json:"price,omitempty"`
	CategoryID int64   `json:"category_id,omitempty"`
	Maker      int64   `json:"maker,omitempty"`
	OrderID    int64   `json:"order_id,omitempty"`
	OccurredAt string  `json:"occurred_at"`
}
