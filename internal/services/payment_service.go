package services

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"time"

	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/constants"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/models"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/repository"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/storage"
	"gorm.io/gorm"
)

var (
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrNotOwingUser        = errors.New("you can only mark your own payments as paid")
	ErrAlreadyPaid         = errors.New("payment has already been marked as paid")
	ErrReceiptRequired     = errors.New("receipt file is required")
	ErrInvalidReceiptType  = errors.New("only image files (JPEG, PNG, WebP) are allowed")
	ErrReceiptTooLarge     = errors.New("file size must be less than 5MB")
	ErrInvalidStatusFilter = errors.New("status must be pending or paid")
	ErrReceiptUploadFailed = errors.New("failed to upload receipt")
)

var allowedReceiptTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

// PaymentService handles settlement of payment obligations.
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	receipts    *storage.ReceiptStore
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(paymentRepo repository.PaymentRepository, receipts *storage.ReceiptStore) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		receipts:    receipts,
	}
}

// GetPayment retrieves a single obligation by ID.
func (s *PaymentService) GetPayment(id uint64) (*models.BillPayment, error) {
	payment, err := s.paymentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to find payment: %w", err)
	}
	return payment, nil
}

// PaymentTotals are sums over the filtered obligation list.
type PaymentTotals struct {
	Pending float64 `json:"pending"`
	Paid    float64 `json:"paid"`
	Total   float64 `json:"total"`
}

// ListPayments returns the caller's obligations, newest first, with totals
// computed over the filtered result set.
func (s *PaymentService) ListPayments(userID uint64, status string, limit int) ([]models.BillPayment, PaymentTotals, error) {
	filter := repository.PaymentFilter{Limit: limit}
	switch status {
	case "":
	case string(models.PaymentStatusPending):
		st := models.PaymentStatusPending
		filter.Status = &st
	case string(models.PaymentStatusPaid):
		st := models.PaymentStatusPaid
		filter.Status = &st
	default:
		return nil, PaymentTotals{}, ErrInvalidStatusFilter
	}

	payments, err := s.paymentRepo.ListByUser(userID, filter)
	if err != nil {
		return nil, PaymentTotals{}, fmt.Errorf("failed to list payments: %w", err)
	}

	var totals PaymentTotals
	for _, p := range payments {
		totals.Total += p.AmountOwed
		switch p.Status {
		case models.PaymentStatusPending:
			totals.Pending += p.AmountOwed
		case models.PaymentStatusPaid:
			totals.Paid += p.AmountOwed
		}
	}

	return payments, totals, nil
}

// Settle marks an obligation paid after a successful receipt upload by the
// owing user. The transition is one-way: an already-paid obligation is
// rejected rather than overwritten. The receipt lands on disk before the row
// update; if the update fails the stored file is removed again.
func (s *PaymentService) Settle(paymentID, callerID uint64, receipt *multipart.FileHeader) (*models.BillPayment, error) {
	if receipt == nil {
		return nil, ErrReceiptRequired
	}

	payment, err := s.paymentRepo.FindByID(paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to find payment: %w", err)
	}

	if payment.UserID != callerID {
		return nil, ErrNotOwingUser
	}
	if payment.Status == models.PaymentStatusPaid {
		return nil, ErrAlreadyPaid
	}

	if !allowedReceiptTypes[receipt.Header.Get("Content-Type")] {
		return nil, ErrInvalidReceiptType
	}
	if receipt.Size > constants.MaxReceiptSize {
		return nil, ErrReceiptTooLarge
	}

	receiptURL, err := s.receipts.Save(receipt)
	if err != nil {
		slog.Error("receipt upload failed", "payment_id", paymentID, "error", err)
		return nil, ErrReceiptUploadFailed
	}

	if err := s.paymentRepo.MarkPaid(paymentID, receiptURL, time.Now()); err != nil {
		if removeErr := s.receipts.Remove(receiptURL); removeErr != nil {
			slog.Warn("failed to clean up orphaned receipt", "url", receiptURL, "error", removeErr)
		}
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}

	updated, err := s.paymentRepo.FindByID(paymentID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload payment: %w", err)
	}
	return updated, nil
}
