package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"boutique/internal/utils"
)

// TokenRequired returns an Echo middleware that validates an access token
// and injects the verified claims into the request context. The provided
// secret must match the one used when issuing tokens. The Authorization
// header may carry either "Bearer <token>" or the raw token string; existing
// clients use both forms.
//
// The guard performs authentication only. Any validly signed token may call
// any guarded endpoint regardless of its role claim.
func TokenRequired(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			token := strings.TrimSpace(auth)
			if strings.HasPrefix(auth, "Bearer ") {
				token = strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			}
			if token == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "Token is missing"})
			}

			claims, err := utils.ParseAccessToken(secret, token)
			if err != nil {
				// err is one of the sentinel token errors; its text is the
				// client-facing message ("Token expired" / "Invalid token").
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
			}

			// Handlers read the caller identity through c.Get().
			c.Set("user_id", claims.UserID)
			c.Set("email", claims.Email)
			c.Set("type", claims.Type)
			return next(c)
		}
	}
}
