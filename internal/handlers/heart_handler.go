package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/anonto42/book-hearts/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// HeartEngine is the heart lifecycle used by HeartHandler
type HeartEngine interface {
	CreateHeart(ctx context.Context, requesterID, targetUserID, bookID uint) (*models.Heart, error)
	UpdateHeartStatus(ctx context.Context, actorID, otherUserID uint, status models.HeartStatus) (*models.HeartView, error)
	DeleteHeart(ctx context.Context, actorID, otherUserID uint) (*models.HeartView, error)
}

// HeartHandler handles HTTP requests related to hearts
type HeartHandler struct {
	heartService HeartEngine
}

// NewHeartHandler creates a new HeartHandler
func NewHeartHandler(heartService HeartEngine) *HeartHandler {
	return &HeartHandler{heartService: heartService}
}

// RegisterHeartRoutes registers heart-related routes
func (h *HeartHandler) RegisterHeartRoutes(g *echo.Group) {
	g.POST("/hearts", h.CreateHeart)
	g.PUT("/hearts/:userId", h.UpdateHeartStatus) // Answer the heart :userId sent me
	g.DELETE("/hearts/:userId", h.DeleteHeart)    // Withdraw the heart :userId sent me
}

// CreateHeart handles sending a heart to another reader about a shared book
func (h *HeartHandler) CreateHeart(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateHeartRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	heart, err := h.heartService.CreateHeart(c.Request().Context(), currentUserID, req.UserID, req.BookID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, heart)
}

// UpdateHeartStatus approves or denies an incoming heart
func (h *HeartHandler) UpdateHeartStatus(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	otherUserID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	var req models.UpdateHeartRequest
	if err := bindRequest(c, &req); err != nil {
		return err
	}

	view, err := h.heartService.UpdateHeartStatus(c.Request().Context(), currentUserID, uint(otherUserID), req.Status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, view)
}

// DeleteHeart withdraws an incoming heart
func (h *HeartHandler) DeleteHeart(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	otherUserID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	view, err := h.heartService.DeleteHeart(c.Request().Context(), currentUserID, uint(otherUserID))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, view)
}
