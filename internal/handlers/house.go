package handlers

import (
	"errors"
	"net/http"

	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/dto"
	apierrors "github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/errors"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/middleware"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/services"
	"github.com/gin-gonic/gin"
)

// HouseHandler coordinates house registry endpoints.
type HouseHandler struct {
	houseService *services.HouseService
}

// NewHouseHandler creates a new HouseHandler.
func NewHouseHandler(houseService *services.HouseService) *HouseHandler {
	return &HouseHandler{houseService: houseService}
}

// GetHouse returns the caller's house, or null if they have none.
func (h *HouseHandler) GetHouse(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	house, err := h.houseService.GetHouseForUser(userID)
	if err != nil {
		h.respondHouseError(c, err)
		return
	}

	if house == nil {
		respondData(c, http.StatusOK, gin.H{"house": nil})
		return
	}
	respondData(c, http.StatusOK, gin.H{"house": house})
}

// CreateHouse creates a house for a host.
func (h *HouseHandler) CreateHouse(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	type CreateHouseRequest struct {
		Name        string `json:"name" binding:"required"`
		BankAccount string `json:"bank_account" binding:"required"`
	}

	var req CreateHouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "House name and bank account are required")
		return
	}

	house, err := h.houseService.CreateHouse(services.CreateHouseInput{
		Name:        req.Name,
		BankAccount: req.BankAccount,
		HostID:      userID,
	})
	if err != nil {
		if errors.Is(err, services.ErrAlreadyInHouse) {
			apierrors.BadRequest(c, "You have already created a house")
			return
		}
		h.respondHouseError(c, err)
		return
	}

	respondData(c, http.StatusCreated, gin.H{"house": house})
}

// JoinHouse attaches a roommate to a house by its join code.
func (h *HouseHandler) JoinHouse(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	type JoinRequest struct {
		HouseCode string `json:"house_code" binding:"required"`
	}

	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "House code is required")
		return
	}

	house, err := h.houseService.JoinHouse(userID, req.HouseCode)
	if err != nil {
		if errors.Is(err, services.ErrAlreadyInHouse) {
			apierrors.BadRequest(c, "You have already joined a house")
			return
		}
		h.respondHouseError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"house": house})
}

// ListMembers returns a house's roster, passwords stripped.
func (h *HouseHandler) ListMembers(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	houseID, ok := paramID(c, "id", "house")
	if !ok {
		return
	}

	members, err := h.houseService.ListMembers(houseID, userID)
	if err != nil {
		h.respondHouseError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"members": dto.ToUserDTOs(members)})
}

// UpdateHouse renames a house. Owning host only.
func (h *HouseHandler) UpdateHouse(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	houseID, ok := paramID(c, "id", "house")
	if !ok {
		return
	}

	type UpdateHouseRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req UpdateHouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "House name is required")
		return
	}

	house, err := h.houseService.RenameHouse(houseID, userID, req.Name)
	if err != nil {
		h.respondHouseError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"house": house})
}

// DeleteHouse tears down a house and everything it owns. Owning host only.
func (h *HouseHandler) DeleteHouse(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	houseID, ok := paramID(c, "id", "house")
	if !ok {
		return
	}

	if err := h.houseService.DeleteHouse(houseID, userID); err != nil {
		h.respondHouseError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"message": "House deleted successfully"})
}

func (h *HouseHandler) respondHouseError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrHouseNotFound):
		apierrors.NotFound(c, "House not found")
	case errors.Is(err, services.ErrInvalidHouseCode):
		apierrors.NotFound(c, "Invalid house code")
	case errors.Is(err, services.ErrOnlyHostsCreateHouses):
		apierrors.Forbidden(c, "Only hosts can create houses")
	case errors.Is(err, services.ErrOnlyRoommatesJoin):
		apierrors.Forbidden(c, "Only roommates can join houses")
	case errors.Is(err, services.ErrNotHouseHost):
		apierrors.Forbidden(c, "Only the house host can perform this action")
	case errors.Is(err, services.ErrHouseAccessDenied):
		apierrors.Forbidden(c, "Access denied")
	case errors.Is(err, services.ErrAlreadyInHouse):
		apierrors.BadRequest(c, "You are already part of a house")
	case errors.Is(err, services.ErrBankAccountRequired):
		apierrors.BadRequest(c, "House name and bank account are required")
	case errors.Is(err, services.ErrInvalidHouseName):
		apierrors.BadRequest(c, "House name is required")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
