package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boutique/internal/config"
	"boutique/internal/database"
	"boutique/internal/handler"
	"boutique/internal/middleware"
	"boutique/internal/repository"
	"boutique/internal/router"
)

// newServer wires the whole HTTP surface against an in-memory database.
// Redis-backed middleware gets a nil client and degrades to pass-through.
func newServer(t *testing.T) *echo.Echo {
	t.Helper()

	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.NewMigrator(db, zerolog.Nop()).Run())

	cfg := config.Config{
		Env:          "test",
		JWTSecret:    "test-secret",
		AccessTTLSec: 1800,
		BcryptCost:   4,
		DefaultMaker: 1,
		DefaultImage: "default_product.png",
		UploadDir:    t.TempDir(),
	}

	users := repository.NewUserRepo(db)
	products := repository.NewProductRepo(db)

	e := echo.New()
	router.Register(e, router.Handlers{
		Auth:     handler.NewAuthHandler(cfg, users),
		Products: handler.NewProductHandler(cfg, products, zerolog.Nop()),
		Orders:   handler.NewOrderHandler(repository.NewOrderRepo(db), zerolog.Nop()),
		Users:    handler.NewUserHandler(users),
		Category: handler.NewCategoryHandler(repository.NewCategoryRepo(db)),
		Reviews:  handler.NewReviewHandler(repository.NewReviewRepo(db), products),
		Messages: handler.NewMessageHandler(repository.NewMessageRepo(db)),
	}, cfg.JWTSecret,
		middleware.NewTokenBucket(config.RateLimitConfig{}, nil),
		middleware.NewRedisCache(config.CacheConfig{}, nil))
	return e
}

func do(t *testing.T, e *echo.Echo, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

// signupAndLogin registers a fresh account and returns its access token.
func signupAndLogin(t *testing.T, e *echo.Echo, email string) string {
	t.Helper()
	rec := do(t, e, http.MethodPost, "/api/signup", "", map[string]any{
		"email": email, "password": "pass1234", "firstName": "Test", "lastName": "User",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, e, http.MethodPost, "/api/login", "", map[string]any{
		"email": email, "password": "pass1234",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token, _ := decode(t, rec)["access_token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestGuardRejectsMissingAndInvalidTokens(t *testing.T) {
	e := newServer(t)

	rec := do(t, e, http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token is missing", decode(t, rec)["error"])

	rec = do(t, e, http.MethodGet, "/api/products", "not.a.token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token", decode(t, rec)["error"])
}

func TestSignupAndLoginFlow(t *testing.T) {
	e := newServer(t)

	rec := do(t, e, http.MethodPost, "/api/signup", "", map[string]any{
		"email": "new@example.com", "password": "pw", "firstName": "N", "lastName": "U",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "admin", body["type"])
	assert.Equal(t, "new@example.com", body["email"])

	// Same email again is a conflict.
	rec = do(t, e, http.MethodPost, "/api/signup", "", map[string]any{
		"email": "new@example.com", "password": "pw", "firstName": "N", "lastName": "U",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Email already registered", decode(t, rec)["error"])

	rec = do(t, e, http.MethodPost, "/api/login", "", map[string]any{
		"email": "new@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid credentials", decode(t, rec)["error"])

	rec = do(t, e, http.MethodPost, "/api/login", "", map[string]any{
		"email": "new@example.com", "password": "pw",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	token, _ := decode(t, rec)["access_token"].(string)
	require.NotEmpty(t, token)

	rec = do(t, e, http.MethodGet, "/api/products", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSignupValidation(t *testing.T) {
	e := newServer(t)

	rec := do(t, e, http.MethodPost, "/api/signup", "", map[string]any{
		"email": "a@b.co", "password": "pw", "lastName": "U",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing field: firstName", decode(t, rec)["error"])

	rec = do(t, e, http.MethodPost, "/api/signup", "", map[string]any{
		"email": "not-an-email", "password": "pw", "firstName": "F", "lastName": "U",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid email format", decode(t, rec)["error"])
}

func TestAddProductValidationAndSanitization(t *testing.T) {
	e := newServer(t)
	token := signupAndLogin(t, e, "seller@example.com")

	rec := do(t, e, http.MethodPost, "/api/addProduct", token, map[string]any{
		"name": "Chaise", "price": 10, "stock": 1,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required field: description", decode(t, rec)["error"])

	rec = do(t, e, http.MethodPost, "/api/addProduct", token, map[string]any{
		"name": "Chaise", "price": -5, "description": "d", "stock": 1, "categoryId": 1,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid price value", decode(t, rec)["error"])

	rec = do(t, e, http.MethodPost, "/api/addProduct", token, map[string]any{
		"name": "Chaise", "price": 5, "description": "d", "stock": 1, "categoryId": 0,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid category ID", decode(t, rec)["error"])

	rec = do(t, e, http.MethodPost, "/api/addProduct", token, map[string]any{
		"name":        "Chaise'; DROP TABLE products; --",
		"price":       49.90,
		"description": "bois massif",
		"stock":       4,
		"categoryId":  4,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "Product added successfully", body["message"])
	require.NotNil(t, body["productId"])

	rec = do(t, e, http.MethodGet, "/api/products", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var products []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Chaise  TABLE products", products[0]["name"])
}

func TestEditProduct(t *testing.T) {
	e := newServer(t)
	token := signupAndLogin(t, e, "editor@example.com")

	rec := do(t, e, http.MethodPost, "/api/addProduct", token, map[string]any{
		"name": "Lampe", "price": 15, "description": "laiton", "stock": 2, "categoryId": 20,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	id := int64(decode(t, rec)["productId"].(float64))

	rec = do(t, e, http.MethodPut, "/api/editProduct/999", token, map[string]any{"price": 20})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", decode(t, rec)["error"])

	rec = do(t, e, http.MethodPut, "/api/editProduct/1", token, map[string]any{"price": -1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid price value", decode(t, rec)["error"])

	rec = do(t, e, http.MethodPut, "/api/editProduct/1", token, map[string]any{"owner": 42})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No valid fields to update", decode(t, rec)["error"])

	rec = do(t, e, http.MethodPut, "/api/editProduct/1", token, map[string]any{
		"price": 12.5, "name": "Lampe 'vintage'",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "Product updated successfully", body["message"])
	product := body["product"].(map[string]any)
	assert.Equal(t, float64(id), product["productId"])
	assert.InDelta(t, 12.5, product["price"].(float64), 1e-9)
	assert.Equal(t, "Lampe vintage", product["name"])
	assert.Equal(t, "laiton", product["description"], "untouched fields keep their value")
}

func TestDeleteProduct(t *testing.T) {
	e := newServer(t)
	token := signupAndLogin(t, e, "remover@example.com")

	rec := do(t, e, http.MethodPost, "/api/addProduct", token, map[string]any{
		"name": "Ballon", "price": 9, "description": "d", "stock": 1, "categoryId": 9,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, e, http.MethodDelete, "/api/deleteProduct/1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, float64(1), body["deleted_id"])

	rec = do(t, e, http.MethodDelete, "/api/deleteProduct/1", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", decode(t, rec)["error"])
}

func TestOrderAndUserDeletes(t *testing.T) {
	e := newServer(t)
	token := signupAndLogin(t, e, "ops@example.com")

	rec := do(t, e, http.MethodGet, "/api/orders", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())

	rec = do(t, e, http.MethodGet, "/api/orders/5/items", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())

	// Absent ids still delete cleanly.
	rec = do(t, e, http.MethodDelete, "/api/deleteOrder/123", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["success"])

	rec = do(t, e, http.MethodGet, "/api/users", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var users []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "ops@example.com", users[0]["email"])

	rec = do(t, e, http.MethodDelete, "/api/deleteUser/1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["success"])
}

func TestCategoriesList(t *testing.T) {
	e := newServer(t)
	token := signupAndLogin(t, e, "cat@example.com")

	rec := do(t, e, http.MethodGet, "/api/categories", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var cats []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cats))
	assert.Len(t, cats, 20)
}

func TestReviews(t *testing.T) {
	e := newServer(t)
	token := signupAndLogin(t, e, "critic@example.com")

	rec := do(t, e, http.MethodPost, "/api/addProduct", token, map[string]any{
		"name": "Roman", "price": 8, "description": "poche", "stock": 3, "categoryId": 5,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, e, http.MethodPost, "/api/addReview", token, map[string]any{
		"productId": 1, "note": 6, "commentaire": "trop",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid note value", decode(t, rec)["error"])

	rec = do(t, e, http.MethodPost, "/api/addReview", token, map[string]any{
		"productId": 999, "note": 4,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found", decode(t, rec)["error"])

	rec = do(t, e, http.MethodPost, "/api/addReview", token, map[string]any{
		"productId": 1, "note": 4, "commentaire": "bonne lecture",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, true, decode(t, rec)["success"])

	rec = do(t, e, http.MethodGet, "/api/products/1/reviews", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var reviews []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reviews))
	require.Len(t, reviews, 1)
	assert.Equal(t, "bonne lecture", reviews[0]["commentaire"])
	assert.Equal(t, float64(4), reviews[0]["note"])
}

func TestMessages(t *testing.T) {
	e := newServer(t)
	token := signupAndLogin(t, e, "chat@example.com")

	rec := do(t, e, http.MethodPost, "/api/sendMessage", token, map[string]any{
		"receiver": "bob",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing field: sender", decode(t, rec)["error"])

	rec = do(t, e, http.MethodPost, "/api/sendMessage", token, map[string]any{
		"sender": "alice", "receiver": "bob", "file_path": "x.bin", "file_type": "video",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid file_type value", decode(t, rec)["error"])

	rec = do(t, e, http.MethodPost, "/api/sendMessage", token, map[string]any{
		"sender": "alice", "receiver": "bob", "content": "salut",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, true, decode(t, rec)["success"])

	rec = do(t, e, http.MethodGet, "/api/messages", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var msgs []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msgs))
	require.Len(t, msgs, 1)
	assert.Equal(t, "salut", msgs[0]["content"])
}

func TestProductWritesDropCachedListings(t *testing.T) {
	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.NewMigrator(db, zerolog.Nop()).Run())

	cfg := config.Config{
		JWTSecret:    "test-secret",
		AccessTTLSec: 1800,
		BcryptCost:   4,
		DefaultMaker: 1,
		DefaultImage: "default_product.png",
		UploadDir:    t.TempDir(),
	}
	users := repository.NewUserRepo(db)
	products := repository.NewProductRepo(db)

	invalidations := 0
	ph := handler.NewProductHandler(cfg, products, zerolog.Nop())
	ph.Invalidate = func(context.Context) { invalidations++ }

	e := echo.New()
	router.Register(e, router.Handlers{
		Auth:     handler.NewAuthHandler(cfg, users),
		Products: ph,
		Orders:   handler.NewOrderHandler(repository.NewOrderRepo(db), zerolog.Nop()),
		Users:    handler.NewUserHandler(users),
		Category: handler.NewCategoryHandler(repository.NewCategoryRepo(db)),
		Reviews:  handler.NewReviewHandler(repository.NewReviewRepo(db), products),
		Messages: handler.NewMessageHandler(repository.NewMessageRepo(db)),
	}, cfg.JWTSecret,
		middleware.NewTokenBucket(config.RateLimitConfig{}, nil),
		middleware.NewRedisCache(config.CacheConfig{}, nil))

	token := signupAndLogin(t, e, "cacher@example.com")

	// A rejected write leaves the cache alone.
	rec := do(t, e, http.MethodPost, "/api/addProduct", token, map[string]any{
		"name": "X", "price": -1, "description": "d", "stock": 1, "categoryId": 1,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, invalidations)

	rec = do(t, e, http.MethodPost, "/api/addProduct", token, map[string]any{
		"name": "X", "price": 1, "description": "d", "stock": 1, "categoryId": 1,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, 1, invalidations)

	rec = do(t, e, http.MethodPut, "/api/editProduct/1", token, map[string]any{"price": 2})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 2, invalidations)

	rec = do(t, e, http.MethodDelete, "/api/deleteProduct/1", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, invalidations)
}

func TestHealth(t *testing.T) {
	e := newServer(t)
	rec := do(t, e, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
