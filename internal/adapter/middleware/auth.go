package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"loanhub-backend/internal/infrastructure/security"
)

const claimsKey = "auth.claims"

type TokenValidator interface {
	Validate(token string) (*security.Claims, error)
}

// JWTAuth requires a valid "Authorization: Bearer <token>" header.
func JWTAuth(v TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := strings.TrimSpace(c.Request().Header.Get(echo.HeaderAuthorization))
			scheme, tok, found := strings.Cut(h, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tok) == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing or malformed bearer token"})
			}
			claims, err := v.Validate(strings.TrimSpace(tok))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			}
			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// RequireRole must run after JWTAuth.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := Claims(c)
			if claims == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
			}
			if !claims.HasRole(role) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": role + " access required"})
			}
			return next(c)
		}
	}
}

func Claims(c echo.Context) *security.Claims {
	claims, _ := c.Get(claimsKey).(*security.Claims)
	return claims
}

// ApplicantID is empty for unauthenticated requests.
func ApplicantID(c echo.Context) string {
	if claims := Claims(c); claims != nil {
		return claims.ApplicantID
	}
	return ""
}

// WithClaims stores claims the way JWTAuth does.
func WithClaims(c echo.Context, claims *security.Claims) { c.Set(claimsKey, claims) }
