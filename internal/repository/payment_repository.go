package repository

import (
	"time"

	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/models"
	"gorm.io/gorm"
)

// GormPaymentRepository is a GORM implementation of PaymentRepository
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment obligation by ID
func (r *GormPaymentRepository) FindByID(id uint64) (*models.BillPayment, error) {
	var payment models.BillPayment
	if err := r.db.First(&payment, id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListByBill lists all obligations for a bill
func (r *GormPaymentRepository) ListByBill(billID uint64) ([]models.BillPayment, error) {
	var payments []models.BillPayment
	if err := r.db.Where("bill_id = ?", billID).Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// ListByUser lists a user's obligations, newest first
func (r *GormPaymentRepository) ListByUser(userID uint64, filter PaymentFilter) ([]models.BillPayment, error) {
	query := r.db.Where("user_id = ?", userID).Order("created_at DESC")

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var payments []models.BillPayment
	if err := query.Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// MarkPaid records the receipt and flips the obligation to paid
func (r *GormPaymentRepository) MarkPaid(id uint64, receiptURL string, paidAt time.Time) error {
	return r.db.Model(&models.BillPayment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"receipt_url": receiptURL,
			"status":      models.PaymentStatusPaid,
			"paid_at":     paidAt,
		}).Error
}
