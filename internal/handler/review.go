package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"boutique/internal/model"
	"boutique/internal/repository"
	"boutique/internal/utils"
)

// ReviewHandler exposes product reviews: the note/comment rows of the avis
// table.
type ReviewHandler struct {
	Reviews  *repository.ReviewRepo
	Products *repository.ProductRepo
}

func NewReviewHandler(r *repository.ReviewRepo, p *repository.ProductRepo) *ReviewHandler {
	return &ReviewHandler{Reviews: r, Products: p}
}

// ListByProduct handles GET /api/products/:id/reviews.
func (h *ReviewHandler) ListByProduct(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	reviews, err := h.Reviews.ListByProduct(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, reviews)
}

type addReviewReq struct {
	ProductID   int64  `json:"productId"`
	Note        any    `json:"note"`
	Commentaire string `json:"commentaire"`
}

// Add handles POST /api/addReview. The reviewer is the authenticated caller;
// the note must be an integer between 1 and 5, matching the CHECK constraint
// on the table.
func (h *ReviewHandler) Add(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req addReviewReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Request must be JSON"})
	}
	if req.ProductID < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid productId value"})
	}
	if !utils.ValidateNumeric(req.Note, utils.Float(1), utils.Float(5)) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid note value"})
	}
	note, _ := utils.NumericValue(req.Note)

	ctx := c.Request().Context()
	if _, err := h.Products.GetByID(ctx, req.ProductID); err != nil {
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Product not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	id, err := h.Reviews.Create(ctx, model.Review{
		UserID:      userID,
		ProductID:   req.ProductID,
		Commentaire: utils.Sanitize(req.Commentaire),
		Note:        int(note),
	})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "avisId": id})
}
