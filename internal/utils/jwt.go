package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// Sentinel errors returned by ParseAccessToken. Their text doubles as the
// client-facing message, which is why they are capitalized.
var (
	ErrTokenExpired = errors.New("Token expired")
	ErrTokenInvalid = errors.New("Invalid token")
)

// Claims is the verified content of an access token. Tokens are stateless:
// the claim set is the whole session, signed with the process secret, and
// there is no revocation before natural expiry.
type Claims struct {
	UserID int64     // subject user id
	Email  string    // email at issue time
	Type   string    // account role (acheteur/vendeur/admin); informational only, the guard does no role checks
	Exp    time.Time // absolute UTC expiry
}

// NewAccessToken builds and signs an HS256 JWT for a user. The expiry is
// issue time plus ttlSec seconds. The claim names (user_id, email, type,
// exp) are part of the wire contract with existing clients.
func NewAccessToken(secret string, userID int64, email, userType string, ttlSec int) (string, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlSec) * time.Second)
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"type":    userType,
		"exp":     exp.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseAccessToken verifies signature and expiry of a raw token string and
// returns the embedded claims. Expired tokens and every other failure mode
// map to the two sentinel errors above so callers can surface the specific
// message without inspecting library internals.
func ParseAccessToken(secret, raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		// Reject any signing method other than HMAC.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if !tok.Valid {
		return Claims{}, ErrTokenInvalid
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrTokenInvalid
	}

	var c Claims
	switch v := mc["user_id"].(type) {
	case float64:
		c.UserID = int64(v)
	default:
		return Claims{}, ErrTokenInvalid
	}
	if s, ok := mc["email"].(string); ok {
		c.Email = s
	}
	if s, ok := mc["type"].(string); ok {
		c.Type = s
	}
	if e, ok := mc["exp"].(float64); ok {
		c.Exp = time.Unix(int64(e), 0).UTC()
	}
	return c, nil
}
