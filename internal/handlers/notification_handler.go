package handlers

import (
	"context"
	"net/http"

	"github.com/anonto42/book-hearts/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// NotificationAggregator derives notifications for a user
type NotificationAggregator interface {
	ListNotifications(ctx context.Context, userID uint) ([]models.HeartEvent, error)
	Counts(ctx context.Context, userID uint) (*models.NotificationCount, error)
}

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationService NotificationAggregator
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService NotificationAggregator) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/count", h.GetNotificationCount)
}

// GetNotifications returns the hearts addressed to the current user, newest first
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	events, err := h.notificationService.ListNotifications(c.Request().Context(), currentUserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, events)
}

// GetNotificationCount returns the heart and unread message counters
func (h *NotificationHandler) GetNotificationCount(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	count, err := h.notificationService.Counts(c.Request().Context(), currentUserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"count": count})
}
