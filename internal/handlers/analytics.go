package handlers

import (
	"errors"
	"net/http"

	apierrors "github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/errors"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/middleware"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/services"
	"github.com/gin-gonic/gin"
)

// AnalyticsHandler serves the dashboard rollups.
type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetAnalytics returns the house dashboard for the caller.
func (h *AnalyticsHandler) GetAnalytics(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	analytics, err := h.analyticsService.Overview(userID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			apierrors.NotFound(c, "User not found")
		case errors.Is(err, services.ErrAnalyticsRequiresHouse):
			apierrors.Forbidden(c, "User must be in a house to view analytics")
		default:
			apierrors.InternalError(c, "Internal server error")
		}
		return
	}

	respondData(c, http.StatusOK, gin.H{"analytics": analytics})
}
