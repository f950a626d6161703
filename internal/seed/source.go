// Package seed populates the products table from public catalog APIs. It
// talks to the store directly through the repositories, bypassing the HTTP
// and auth layers entirely.
package seed

// Source describes one remote catalog: its endpoint and the mapping from
// local (French) category names to the keyword the remote API files its
// items under. Only mapped categories are imported.
type Source struct {
	Name       string
	URL        string
	Categories map[string]string
}

// Sources lists the supported catalogs. Each mapping picks the closest
// remote bucket for a local category; several local categories share a
// remote one.
var Sources = []Source{
	{
		Name: "fakestore",
		URL:  "https://fakestoreapi.com/products",
		Categories: map[string]string{
			"Électronique": "electronics",
			"Vêtements":    "women's clothing",
			"Chaussures":   "men's clothing",
			"Accessoires":  "jewelery",
			"Cosmétiques":  "women's clothing",
			"Sport":        "men's clothing",
			"Informatique": "electronics",
		},
	},
	{
		Name: "dummyjson",
		URL:  "https://dummyjson.com/products",
		Categories: map[string]string{
			"Électronique": "smartphones",
			"Informatique": "laptops",
			"Cosmétiques":  "skincare",
			"Meubles":      "furniture",
			"Alimentation": "groceries",
			"Automobile":   "automotive",
			"Vêtements":    "womens-dresses",
			"Chaussures":   "womens-shoes",
			"Accessoires":  "womens-bags",
			"Sport":        "sports-accessories",
		},
	},
	{
		Name: "platzi",
		URL:  "https://api.escuelajs.co/api/v1/products",
		Categories: map[string]string{
			"Électronique": "Electronics",
			"Vêtements":    "Clothes",
			"Chaussures":   "Shoes",
			"Meubles":      "Furniture",
			"Jouets":       "Miscellaneous",
		},
	},
}

// SourceByName returns the source with the given name, or false.
func SourceByName(name string) (Source, bool) {
	for _, s := range Sources {
		if s.Name == name {
			return s, true
		}
	}
	return Source{}, false
}

// item is the normalized form of one remote catalog entry.
type item struct {
	Title       string
	Price       float64
	Description string
	Category    string
	ImageURL    string
}

// fakestoreProduct mirrors one element of the FakeStore /products response.
type fakestoreProduct struct {
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
}

// dummyJSONResponse mirrors the DummyJSON /products envelope.
type dummyJSONResponse struct {
	Products []struct {
		Title       string   `json:"title"`
		Price       float64  `json:"price"`
		Description string   `json:"description"`
		Category    string   `json:"category"`
		Thumbnail   string   `json:"thumbnail"`
		Images      []string `json:"images"`
	} `json:"products"`
}

// platziProduct mirrors one element of the Platzi fake store response, where
// the category is an object and images come as a list.
type platziProduct struct {
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    struct {
		Name string `json:"name"`
	} `json:"category"`
	Images []string `json:"images"`
}
