package handlers

import (
	"errors"
	"net/http"
	"strconv"

	apierrors "github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/errors"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/middleware"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/services"
	"github.com/gin-gonic/gin"
)

// PaymentHandler coordinates payment obligation endpoints.
type PaymentHandler struct {
	paymentService *services.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// ListPayments returns the caller's obligations with pending/paid/total sums
// over the filtered set. Supports ?status= and ?limit=.
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			apierrors.BadRequest(c, "Limit must be a non-negative number")
			return
		}
		limit = n
	}

	payments, totals, err := h.paymentService.ListPayments(userID, c.Query("status"), limit)
	if err != nil {
		h.respondPaymentError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{
		"payments": payments,
		"totals":   totals,
	})
}

// GetPayment returns a single obligation.
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	paymentID, ok := paramID(c, "id", "payment")
	if !ok {
		return
	}

	payment, err := h.paymentService.GetPayment(paymentID)
	if err != nil {
		h.respondPaymentError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"payment": payment})
}

// SettlePayment marks an obligation paid via a receipt image upload from the
// owing user. Multipart form, field name "receipt".
func (h *PaymentHandler) SettlePayment(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	paymentID, ok := paramID(c, "id", "payment")
	if !ok {
		return
	}

	receipt, err := c.FormFile("receipt")
	if err != nil {
		apierrors.BadRequest(c, "Receipt file is required")
		return
	}

	payment, err := h.paymentService.Settle(paymentID, userID, receipt)
	if err != nil {
		h.respondPaymentError(c, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{"payment": payment})
}

func (h *PaymentHandler) respondPaymentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPaymentNotFound):
		apierrors.NotFound(c, "Payment not found")
	case errors.Is(err, services.ErrNotOwingUser):
		apierrors.Forbidden(c, "You can only mark your own payments as paid")
	case errors.Is(err, services.ErrAlreadyPaid):
		apierrors.Conflict(c, "Payment has already been marked as paid")
	case errors.Is(err, services.ErrReceiptRequired):
		apierrors.BadRequest(c, "Receipt file is required")
	case errors.Is(err, services.ErrInvalidReceiptType):
		apierrors.BadRequest(c, "Only image files (JPEG, PNG, WebP) are allowed")
	case errors.Is(err, services.ErrReceiptTooLarge):
		apierrors.BadRequest(c, "File size must be less than 5MB")
	case errors.Is(err, services.ErrInvalidStatusFilter):
		apierrors.BadRequest(c, "Status must be pending or paid")
	case errors.Is(err, services.ErrReceiptUploadFailed):
		apierrors.InternalError(c, "Failed to upload receipt")
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
