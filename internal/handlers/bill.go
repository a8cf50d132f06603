package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/dto"
	apierrors "github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/errors"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/middleware"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/services"
	"github.com/gin-gonic/gin"
)

const dueDateLayout = "2006-01-02"

// BillHandler coordinates the bill ledger endpoints.
type BillHandler struct {
	billService *services.BillService
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(billService *services.BillService) *BillHandler {
	return &BillHandler{billService: billService}
}

// CreateBill creates a bill; housing bills are auto-split into per-member
// payment obligations.
func (h *BillHandler) CreateBill(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	type CreateBillRequest struct {
		Title       string  `json:"title" binding:"required"`
		Description string  `json:"description"`
		Amount      float64 `json:"amount" binding:"required"`
		Type        string  `json:"type" binding:"required"`
		DueDate     *string `json:"due_date"`
	}

	var req CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Title, amount, and type are required")
		return
	}

	dueDate, ok := parseDueDate(c, req.DueDate)
	if !ok {
		return
	}

	bill, err := h.billService.CreateBill(services.CreateBillInput{
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		Type:        req.Type,
		DueDate:     dueDate,
		CreatorID:   userID,
	})
	if err != nil {
		h.respondBillError(c, err)
		return
	}

	respondData(c, http.StatusCreated, gin.H{"bill": bill})
}

// ListBills returns the caller's house bills, newest first.
func (h *BillHandler) ListBills(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	bills, err := h.billService.ListBills(userID)
	if err != nil {
		h.respondBillError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"bills": bills})
}

// GetBill returns a bill with its obligations and the house roster.
func (h *BillHandler) GetBill(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	billID, ok := paramID(c, "id", "bill")
	if !ok {
		return
	}

	detail, err := h.billService.GetBillDetail(billID, userID)
	if err != nil {
		h.respondBillError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"bill":     detail.Bill,
		"payments": detail.Payments,
		"members":  dto.ToUserDTOs(detail.Members),
	})
}

// UpdateBill applies a partial update. Creator only; obligations are not
// re-split.
func (h *BillHandler) UpdateBill(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	billID, ok := paramID(c, "id", "bill")
	if !ok {
		return
	}

	type UpdateBillRequest struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		Amount      *float64 `json:"amount"`
		DueDate     *string  `json:"due_date"`
		Status      *string  `json:"status"`
	}

	var req UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	dueDate, okDate := parseDueDate(c, req.DueDate)
	if !okDate {
		return
	}

	bill, err := h.billService.UpdateBill(billID, userID, services.UpdateBillInput{
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		DueDate:     dueDate,
		Status:      req.Status,
	})
	if err != nil {
		if errors.Is(err, services.ErrNotBillCreator) {
			apierrors.Forbidden(c, "Only the bill creator can update this bill")
			return
		}
		h.respondBillError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"bill": bill})
}

// DeleteBill removes a bill and its obligations. Creator only.
func (h *BillHandler) DeleteBill(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	billID, ok := paramID(c, "id", "bill")
	if !ok {
		return
	}

	if err := h.billService.DeleteBill(billID, userID); err != nil {
		if errors.Is(err, services.ErrNotBillCreator) {
			apierrors.Forbidden(c, "Only the bill creator can delete this bill")
			return
		}
		h.respondBillError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"message": "Bill deleted successfully"})
}

func parseDueDate(c *gin.Context, raw *string) (*time.Time, bool) {
	if raw == nil || *raw == "" {
		return nil, true
	}
	t, err := time.Parse(dueDateLayout, *raw)
	if err != nil {
		apierrors.BadRequest(c, "Due date must be in YYYY-MM-DD format")
		return nil, false
	}
	return &t, true
}

func (h *BillHandler) respondBillError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, services.ErrBillNotFound):
		apierrors.NotFound(c, "Bill not found")
	case errors.Is(err, services.ErrNotInHouse):
		apierrors.BadRequest(c, "User is not part of any house")
	case errors.Is(err, services.ErrBillTitleRequired):
		apierrors.BadRequest(c, "Title, amount, and type are required")
	case errors.Is(err, services.ErrInvalidBillType):
		apierrors.BadRequest(c, "Invalid bill type")
	case errors.Is(err, services.ErrInvalidBillStatus):
		apierrors.BadRequest(c, "Invalid bill status")
	case errors.Is(err, services.ErrInvalidAmount):
		apierrors.BadRequest(c, "Amount must be greater than 0")
	case errors.Is(err, services.ErrNoHouseMembers):
		apierrors.BadRequest(c, "No members found in house")
	case errors.Is(err, services.ErrOnlyHostsHousing):
		apierrors.Forbidden(c, "Only hosts can create housing bills")
	case errors.Is(err, services.ErrBillAccessDenied):
		apierrors.Forbidden(c, "Access denied")
	case errors.Is(err, services.ErrNotBillCreator):
		apierrors.Forbidden(c, "Only the bill creator can perform this action")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
