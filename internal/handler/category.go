package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"boutique/internal/repository"
)

// CategoryHandler exposes the read-only category listing.
type CategoryHandler struct {
	Categories *repository.CategoryRepo
}

func NewCategoryHandler(r *repository.CategoryRepo) *CategoryHandler {
	return &CategoryHandler{Categories: r}
}

// List handles GET /api/categories.
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.Categories.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, categories)
}
