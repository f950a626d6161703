package repository

import (
	"context"
	"database/sql"
	"strings"

	"boutique/internal/model"
)

type ProductRepo struct{ DB *sql.DB }

func NewProductRepo(db *sql.DB) *ProductRepo { return &ProductRepo{DB: db} }

const productColumns = `productId, COALESCE(name,''), COALESCE(price,0), COALESCE(description,''),
    COALESCE(image,''), COALESCE(stock,0), COALESCE(categoryId,0), COALESCE(maker,0)`

func scanProduct(row interface{ Scan(...any) error }) (model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ProductID, &p.Name, &p.Price, &p.Description,
		&p.Image, &p.Stock, &p.CategoryID, &p.Maker)
	return p, err
}

// List returns every product row. There is no pagination on this surface.
func (r *ProductRepo) List(ctx context.Context) ([]model.Product, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+productColumns+" FROM products")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepo) GetByID(ctx context.Context, id int64) (model.Product, error) {
	p, err := scanProduct(r.DB.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE productId = ? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return p, ErrNotFound
	}
	return p, err
}

// Create inserts a product and returns its id.
func (r *ProductRepo) Create(ctx context.Context, p model.Product) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
        INSERT INTO products (name, price, description, image, stock, categoryId, maker)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Price, p.Description, p.Image, p.Stock, p.CategoryID, p.Maker)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateFields applies a partial update. The caller must allow-list and
// validate the column names; this method only assembles "col = ?" pairs from
// names that already passed that gate.
func (r *ProductRepo) UpdateFields(ctx context.Context, id int64, fields []string, values []any) error {
	if len(fields) == 0 || len(fields) != len(values) {
		return sql.ErrNoRows
	}
	set := make([]string, len(fields))
	for i, f := range fields {
		set[i] = f + " = ?"
	}
	args := append(values, id)
	_, err := r.DB.ExecContext(ctx,
		"UPDATE products SET "+strings.Join(set, ", ")+" WHERE productId = ?", args...)
	return err
}

// UpdateImage stores the image path for a product.
func (r *ProductRepo) UpdateImage(ctx context.Context, id int64, imagePath string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE products SET image = ? WHERE productId = ?", imagePath, id)
	return err
}

// Delete performs the read-then-delete pair: it reports ErrNotFound when the
// id is absent and removes the row otherwise. Deletes do not cascade into
// order items or reviews.
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	var existing int64
	err := r.DB.QueryRowContext(ctx,
		"SELECT productId FROM products WHERE productId = ?", id).Scan(&existing)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, "DELETE FROM products WHERE productId = ?", id)
	return err
}

// ListWithImagePrefix returns products whose stored image path starts with
// the given prefix. Used by the legacy image-path repair pass.
func (r *ProductRepo) ListWithImagePrefix(ctx context.Context, prefix string) ([]model.Product, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+productColumns+" FROM products WHERE image LIKE ?", prefix+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
