package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"boutique/internal/config"
	"boutique/internal/model"
	"boutique/internal/repository"
	"boutique/internal/utils"
)

// AuthHandler bundles dependencies for the unauthenticated credential
// endpoints. Login and signup are the two operations that produce the token
// every guarded endpoint later consumes.
type AuthHandler struct {
	Cfg   config.Config
	Users *repository.UserRepo
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupReq struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2"`
	Zipcode   string `json:"zipcode"`
	City      string `json:"city"`
	State     string `json:"state"`
	Country   string `json:"country"`
	Phone     string `json:"phone"`
}

// Login verifies credentials and returns a fresh access token along with the
// user's identity fields.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "Email and password required"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "Email and password required"})
	}
	if !utils.ValidateEmail(req.Email) {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "Invalid email format"})
	}
	email := utils.Sanitize(req.Email)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "Invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "query failed"})
	}
	if !utils.VerifyPassword(u.Password, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "error": "Invalid credentials"})
	}

	token, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.UserID, u.Email, u.Type, h.Cfg.AccessTTLSec)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "issue token failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success":      true,
		"userId":       u.UserID,
		"email":        u.Email,
		"type":         u.Type,
		"access_token": token,
	})
}

// Signup creates an account and echoes back the stored identity. The
// password is hashed before it ever reaches the repository.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid body"})
	}
	for _, f := range []struct{ name, val string }{
		{"email", req.Email},
		{"password", req.Password},
		{"firstName", req.FirstName},
		{"lastName", req.LastName},
	} {
		if f.val == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "Missing field: " + f.name})
		}
	}
	if !utils.ValidateEmail(req.Email) {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "Invalid email format"})
	}

	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "hash failed"})
	}

	// TODO: decide the real default role; every signup currently lands as an
	// approved admin even though the schema distinguishes acheteur/vendeur
	// with seller approval. Changing it needs a product decision because
	// existing clients rely on the returned type.
	userType := "admin"

	u := model.User{
		Type:        userType,
		Password:    hash,
		Email:       utils.Sanitize(req.Email),
		FirstName:   utils.Sanitize(req.FirstName),
		LastName:    utils.Sanitize(req.LastName),
		Address1:    utils.Sanitize(req.Address1),
		Address2:    utils.Sanitize(req.Address2),
		Zipcode:     utils.Sanitize(req.Zipcode),
		City:        utils.Sanitize(req.City),
		State:       utils.Sanitize(req.State),
		Country:     utils.Sanitize(req.Country),
		Phone:       utils.Sanitize(req.Phone),
		Acceptation: 1,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Pre-check covers the common case; the unique constraint mapped inside
	// Create covers two signups racing on the same email.
	exists, err := h.Users.EmailExists(ctx, u.Email)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "query failed"})
	}
	if exists {
		return c.JSON(http.StatusConflict, echo.Map{"success": false, "error": "Email already registered"})
	}

	id, err := h.Users.Create(ctx, u)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "error": "Email already registered"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "create user failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"userId":  id,
		"email":   u.Email,
		"type":    userType,
	})
}
