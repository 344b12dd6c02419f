package handlers

import (
	"github.com/anonto42/book-hearts/backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// getUserIDFromContext returns the authenticated user's ID, or 0 when the
// request carries no resolved user.
func getUserIDFromContext(c echo.Context) uint {
	id, ok := c.Get(middleware.UserIDKey).(uint)
	if !ok {
		return 0
	}
	return id
}
