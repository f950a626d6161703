package repository

import (
	"context"
	"database/sql"

	"boutique/internal/model"
)

type ReviewRepo struct{ DB *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{DB: db} }

// ListByProduct returns the reviews left on one product, newest first.
func (r *ReviewRepo) ListByProduct(ctx context.Context, productID int64) ([]model.Review, error) {
	rows, err := r.DB.QueryContext(ctx, `
        SELECT avisId, COALESCE(userId,0), COALESCE(productId,0),
               COALESCE(commentaire,''), COALESCE(note,0), COALESCE(date,'')
          FROM avis WHERE productId = ? ORDER BY date DESC`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reviews := []model.Review{}
	for rows.Next() {
		var v model.Review
		if err := rows.Scan(&v.AvisID, &v.UserID, &v.ProductID, &v.Commentaire, &v.Note, &v.Date); err != nil {
			return nil, err
		}
		reviews = append(reviews, v)
	}
	return reviews, rows.Err()
}

// Create inserts a review and returns its id. The note range is also
// enforced by a CHECK constraint in the schema.
func (r *ReviewRepo) Create(ctx context.Context, v model.Review) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO avis (userId, productId, commentaire, note) VALUES (?, ?, ?, ?)",
		v.UserID, v.ProductID, v.Commentaire, v.Note)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}
