package repository

import (
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/models"
	"gorm.io/gorm"
)

// GormHouseRepository is a GORM implementation of HouseRepository
type GormHouseRepository struct {
	db *gorm.DB
}

// NewHouseRepository creates a new HouseRepository
func NewHouseRepository(db *gorm.DB) HouseRepository {
	return &GormHouseRepository{db: db}
}

// CreateWithHost creates the house and moves the host into it atomically.
func (r *GormHouseRepository) CreateWithHost(house *models.House, host *models.User, bankAccount string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(house).Error; err != nil {
			return err
		}

		return tx.Model(&models.User{}).
			Where("id = ?", host.ID).
			Updates(map[string]interface{}{
				"house_id":     house.ID,
				"bank_account": bankAccount,
			}).Error
	})
}

// FindByID finds a house by ID
func (r *GormHouseRepository) FindByID(id uint64) (*models.House, error) {
	var house models.House
	if err := r.db.First(&house, id).Error; err != nil {
		return nil, err
	}
	return &house, nil
}

// FindByCode finds a house by its join code
func (r *GormHouseRepository) FindByCode(code string) (*models.House, error) {
	var house models.House
	if err := r.db.Where("house_code = ?", code).First(&house).Error; err != nil {
		return nil, err
	}
	return &house, nil
}

// Update updates a house
func (r *GormHouseRepository) Update(house *models.House) error {
	return r.db.Save(house).Error
}

// Delete removes a house and all data it owns in a single transaction.
// Members are detached, not deleted; a failure at any step rolls back
// every prior step.
func (r *GormHouseRepository) Delete(id uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		// Detach all members
		if err := tx.Model(&models.User{}).
			Where("house_id = ?", id).
			Update("house_id", nil).Error; err != nil {
			return err
		}

		// Delete payment obligations of the house's bills
		billIDs := tx.Model(&models.Bill{}).Select("id").Where("house_id = ?", id)
		if err := tx.Where("bill_id IN (?)", billIDs).
			Delete(&models.BillPayment{}).Error; err != nil {
			return err
		}

		// Delete the bills
		if err := tx.Where("house_id = ?", id).Delete(&models.Bill{}).Error; err != nil {
			return err
		}

		// Delete the house rules
		if err := tx.Where("house_id = ?", id).Delete(&models.HouseRule{}).Error; err != nil {
			return err
		}

		// Delete the house itself
		return tx.Delete(&models.House{}, id).Error
	})
}

// ListMembers lists all users whose house_id points at the house
func (r *GormHouseRepository) ListMembers(houseID uint64) ([]models.User, error) {
	var members []models.User
	if err := r.db.Where("house_id = ?", houseID).Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}
