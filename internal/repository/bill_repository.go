package repository

import (
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/models"
	"gorm.io/gorm"
)

// GormBillRepository is a GORM implementation of BillRepository
type GormBillRepository struct {
	db *gorm.DB
}

// NewBillRepository creates a new BillRepository
func NewBillRepository(db *gorm.DB) BillRepository {
	return &GormBillRepository{db: db}
}

// CreateWithPayments creates the bill and its obligations in one transaction.
// payments may be empty for bill types that do not generate obligations.
func (r *GormBillRepository) CreateWithPayments(bill *models.Bill, payments []models.BillPayment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(bill).Error; err != nil {
			return err
		}

		if len(payments) == 0 {
			return nil
		}

		for i := range payments {
			payments[i].BillID = bill.ID
		}
		return tx.Create(&payments).Error
	})
}

// FindByID finds a bill by ID
func (r *GormBillRepository) FindByID(id uint64) (*models.Bill, error) {
	var bill models.Bill
	if err := r.db.First(&bill, id).Error; err != nil {
		return nil, err
	}
	return &bill, nil
}

// ListByHouse lists a house's bills, newest first
func (r *GormBillRepository) ListByHouse(houseID uint64) ([]models.Bill, error) {
	var bills []models.Bill
	if err := r.db.Where("house_id = ?", houseID).
		Order("created_at DESC").
		Find(&bills).Error; err != nil {
		return nil, err
	}
	return bills, nil
}

// Update updates a bill
func (r *GormBillRepository) Update(bill *models.Bill) error {
	return r.db.Save(bill).Error
}

// Delete removes a bill and its payment obligations atomically
func (r *GormBillRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("bill_id = ?", id).Delete(&models.BillPayment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Bill{}, id).Error
	})
}
