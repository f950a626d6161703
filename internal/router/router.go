package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"boutique/internal/handler"
	"boutique/internal/middleware"
)

// Handlers groups everything the router wires up. All fields must be
// non-nil.
type Handlers struct {
	Auth     *handler.AuthHandler
	Products *handler.ProductHandler
	Orders   *handler.OrderHandler
	Users    *handler.UserHandler
	Category *handler.CategoryHandler
	Reviews  *handler.ReviewHandler
	Messages *handler.MessageHandler
}

// Register wires every route. Login and signup are unauthenticated by
// construction (they produce the credential later requests present) and
// sit behind the rate limiter; everything else under /api requires a valid
// token. The cache middleware wraps only the listing reads.
func Register(e *echo.Echo, h Handlers, jwtSecret string, rateLimit echo.MiddlewareFunc, cache echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)

	// Credential endpoints: no token, but rate limited.
	e.POST("/api/login", h.Auth.Login, rateLimit)
	e.POST("/api/signup", h.Auth.Signup, rateLimit)

	// Everything below requires a valid access token. Any validly signed
	// token may call any of these; there is no role-based authorization.
	api := e.Group("/api", middleware.TokenRequired(jwtSecret))

	api.GET("/products", h.Products.List, cache)
	api.GET("/orders", h.Orders.List, cache)
	api.GET("/users", h.Users.List, cache)
	api.GET("/categories", h.Category.List, cache)

	api.GET("/orders/:id/items", h.Orders.ListItems)
	api.DELETE("/deleteOrder/:id", h.Orders.Delete)
	api.DELETE("/deleteUser/:id", h.Users.Delete)
	api.DELETE("/deleteProduct/:id", h.Products.Delete)

	api.POST("/addProduct", h.Products.Add)
	api.PUT("/editProduct/:id", h.Products.Edit)
	api.POST("/uploadProductImage/:id", h.Products.UploadImage)

	api.GET("/products/:id/reviews", h.Reviews.ListByProduct)
	api.POST("/addReview", h.Reviews.Add)

	api.GET("/messages", h.Messages.List)
	api.POST("/sendMessage", h.Messages.Send)
}
