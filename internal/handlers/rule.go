package handlers

import (
	"errors"
	"net/http"

	apierrors "github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/errors"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/middleware"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/services"
	"github.com/gin-gonic/gin"
)

// RuleHandler coordinates the house rules board endpoints.
type RuleHandler struct {
	ruleService *services.RuleService
}

// NewRuleHandler creates a new RuleHandler.
func NewRuleHandler(ruleService *services.RuleService) *RuleHandler {
	return &RuleHandler{ruleService: ruleService}
}

// ListRules returns the caller's house rules.
func (h *RuleHandler) ListRules(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	rules, err := h.ruleService.ListRules(userID)
	if err != nil {
		h.respondRuleError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"rules": rules})
}

// CreateRule adds a rule to the caller's house. Host only.
func (h *RuleHandler) CreateRule(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	type CreateRuleRequest struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	}

	var req CreateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Rule title is required")
		return
	}

	rule, err := h.ruleService.CreateRule(userID, req.Title, req.Description)
	if err != nil {
		h.respondRuleError(c, err)
		return
	}

	respondData(c, http.StatusCreated, gin.H{"rule": rule})
}

// UpdateRule edits a rule. Host of the rule's house only.
func (h *RuleHandler) UpdateRule(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	ruleID, ok := paramID(c, "id", "rule")
	if !ok {
		return
	}

	type UpdateRuleRequest struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	}

	var req UpdateRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Rule title is required")
		return
	}

	rule, err := h.ruleService.UpdateRule(ruleID, userID, req.Title, req.Description)
	if err != nil {
		h.respondRuleError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"rule": rule})
}

// DeleteRule removes a rule. Host of the rule's house only.
func (h *RuleHandler) DeleteRule(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	ruleID, ok := paramID(c, "id", "rule")
	if !ok {
		return
	}

	if err := h.ruleService.DeleteRule(ruleID, userID); err != nil {
		h.respondRuleError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"message": "Rule deleted successfully"})
}

func (h *RuleHandler) respondRuleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrRuleNotFound):
		apierrors.NotFound(c, "House rule not found")
	case errors.Is(err, services.ErrNotInHouse):
		apierrors.Forbidden(c, "User must be in a house to view rules")
	case errors.Is(err, services.ErrOnlyHostsRules):
		apierrors.Forbidden(c, "Only house hosts can manage rules")
	case errors.Is(err, services.ErrRuleTitleRequired):
		apierrors.BadRequest(c, "Rule title is required")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
