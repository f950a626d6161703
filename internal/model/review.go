package model

// Review represents a row of the `avis` table: a 1..5 star note with an
// optional comment, left by a user on a product.
type Review struct {
	AvisID      int64  `json:"avisId"`
	UserID      int64  `json:"userId"`
	ProductID   int64  `json:"productId"`
	Commentaire string `json:"commentaire"`
	Note        int    `json:"note"`
	Date        string `json:"date"`
}
