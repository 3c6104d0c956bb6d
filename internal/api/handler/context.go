package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bloglist/blog-api/internal/api/middleware"
	"github.com/bloglist/blog-api/internal/core/domain"
)

// ctxUser returns the acting user injected by middleware.UserExtractor.
// A missing user means the route was wired without the extractor.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.ContextKeyUser).(*domain.User)
	if user == nil || user.ID == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "token missing")
	}
	return user, nil
}
