package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bloglist/blog-api/internal/api/metrics"
	"github.com/bloglist/blog-api/internal/core/domain"
)

// Context keys set by the middlewares in this package.
const (
	ContextKeyToken = "token"
	ContextKeyUser  = "user"
)

const bearerPrefix = "Bearer "

// Authenticator resolves the acting user from a raw bearer token.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// ExtractToken returns the token of an "Authorization: Bearer <token>"
// header, or "" when the header is absent or uses another scheme.
func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get(echo.HeaderAuthorization)
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return ""
	}
	return strings.TrimPrefix(authHeader, bearerPrefix)
}

// TokenExtractor stores the bearer token (possibly empty) in the context.
// It never rejects a request; protected routes add UserExtractor.
func TokenExtractor() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ContextKeyToken, ExtractToken(c.Request()))
			return next(c)
		}
	}
}

// UserExtractor authenticates the bearer token and injects the acting user
// into the context. Missing or invalid tokens are rejected with 401.
func UserExtractor(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get(ContextKeyToken).(string)
			if !ok {
				token = ExtractToken(c.Request())
			}

			user, err := auth.Authenticate(c.Request().Context(), token)
			switch {
			case errors.Is(err, domain.ErrMissingToken):
				metrics.AuthRejectionsTotal.WithLabelValues("missing_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing")
			case errors.Is(err, domain.ErrInvalidToken):
				metrics.AuthRejectionsTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "token invalid")
			case err != nil:
				return err
			}

			c.Set(ContextKeyUser, user)
			return next(c)
		}
	}
}
