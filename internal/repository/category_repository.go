package repository

import (
	"context"
	"database/sql"

	"boutique/internal/model"
)

type CategoryRepo struct{ DB *sql.DB }

func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{DB: db} }

// List returns every category. Categories are seeded at bootstrap and
// read-only from the API surface.
func (r *CategoryRepo) List(ctx context.Context) ([]model.Category, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT categoryId, name FROM categories")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.CategoryID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// NameToID returns a name -> id map, used by the seeder to resolve the
// catalog keyword mapping against the actual table.
func (r *CategoryRepo) NameToID(ctx context.Context) (map[string]int64, error) {
	categories, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[string]int64, len(categories))
	for _, c := range categories {
		m[c.Name] = c.CategoryID
	}
	return m, nil
}
