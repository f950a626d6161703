package repository

import (
	"context"
	"database/sql"

	"boutique/internal/model"
)

type OrderRepo struct{ DB *sql.DB }

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{DB: db} }

// List returns every order row. Orders are created outside this API; only
// read and delete are exposed here.
func (r *OrderRepo) List(ctx context.Context) ([]model.Order, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT orderId, COALESCE(userId,0), COALESCE(orderDate,''), COALESCE(total,0) FROM orders")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []model.Order{}
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.OrderID, &o.UserID, &o.OrderDate, &o.Total); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// ListItems returns the line items of one order.
func (r *OrderRepo) ListItems(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, orderId, productId, quantity FROM order_items WHERE orderId = ?", orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.OrderItem{}
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// Delete removes an order by id and reports how many rows went away. Absent
// ids are a no-op with zero affected rows. An order that still has line
// items fails the foreign key constraint.
func (r *OrderRepo) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM orders WHERE orderId = ?", id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
