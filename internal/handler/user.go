package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"boutique/internal/repository"
)

// UserHandler exposes the guarded user listing and delete operations.
type UserHandler struct {
	Users *repository.UserRepo
}

func NewUserHandler(u *repository.UserRepo) *UserHandler { return &UserHandler{Users: u} }

// List handles GET /api/users. Full rows, password hash included; this
// surface serves the internal admin tooling, not a public client.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.Users.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, users)
}

// Delete handles DELETE /api/deleteUser/:id. Idempotent like order deletion:
// an absent id still reports success.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Users.Delete(c.Request().Context(), id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "deleted_id": id})
}
