package model

// Product represents a row of the `products` table. Image holds a relative
// path or bare filename inside the uploads directory; Maker references the
// user that owns the listing.
type Product struct {
	ProductID   int64   `json:"productId"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Stock       int64   `json:"stock"`
	CategoryID  int64   `json:"categoryId"`
	Maker       int64   `json:"maker"`
}

// Category represents a row of the `categories` table. Categories are seeded
// at bootstrap and read-only from the API surface.
type Category struct {
	CategoryID int64  `json:"categoryId"`
	Name       string `json:"name"`
}
