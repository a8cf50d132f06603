package handlers

import (
	"errors"
	"net/http"

	apierrors "github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/errors"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/middleware"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/services"
	"github.com/gin-gonic/gin"
)

// SearchHandler serves house-scoped search.
type SearchHandler struct {
	searchService *services.SearchService
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(searchService *services.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search looks up ?q= within the caller's house; ?type= narrows to
// bills, payments or members.
func (h *SearchHandler) Search(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	results, err := h.searchService.Search(userID, c.Query("q"), c.Query("type"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			apierrors.NotFound(c, "User not found")
		case errors.Is(err, services.ErrSearchRequiresHouse):
			apierrors.Forbidden(c, "User must be in a house to search")
		default:
			apierrors.InternalError(c, "Internal server error")
		}
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"bills":    results.Bills,
		"payments": results.Payments,
		"members":  results.Members,
		"total":    results.Total,
	})
}
