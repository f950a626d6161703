package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"boutique/internal/queue"
	"boutique/internal/repository"
	"boutique/internal/service/queuepublisher"
)

// OrderHandler exposes the read and delete operations over orders. Order
// creation happens outside this API. Invalidate, when set, is called after
// a successful delete to drop the cached listings.
type OrderHandler struct {
	Orders     *repository.OrderRepo
	Log        zerolog.Logger
	Invalidate func(context.Context)
}

func NewOrderHandler(o *repository.OrderRepo, log zerolog.Logger) *OrderHandler {
	return &OrderHandler{Orders: o, Log: log}
}

// List handles GET /api/orders.
func (h *OrderHandler) List(c echo.Context) error {
	orders, err := h.Orders.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, orders)
}

// ListItems handles GET /api/orders/:id/items: the line items of one order.
func (h *OrderHandler) ListItems(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	items, err := h.Orders.ListItems(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// Delete handles DELETE /api/deleteOrder/:id. Removing an id that is already
// gone still reports success; the operation is idempotent.
func (h *OrderHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	affected, err := h.Orders.Delete(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "delete failed"})
	}

	// The event records an actual removal; a delete that matched no row
	// still answers success but publishes nothing.
	if affected > 0 {
		_ = queuepublisher.PublishCatalogEvent(context.Background(), h.Log, queue.CatalogEvent{
			Kind:       queue.KindOrderDeleted,
			OrderID:    id,
			OccurredAt: time.Now().UTC().Format(time.RFC3339),
		})
		if h.Invalidate != nil {
			h.Invalidate(c.Request().Context())
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "deleted_id": id})
}
