package repository

import (
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/models"
	"gorm.io/gorm"
)

// GormRuleRepository is a GORM implementation of RuleRepository
type GormRuleRepository struct {
	db *gorm.DB
}

// NewRuleRepository creates a new RuleRepository
func NewRuleRepository(db *gorm.DB) RuleRepository {
	return &GormRuleRepository{db: db}
}

func (r *GormRuleRepository) Create(rule *models.HouseRule) error {
	return r.db.Create(rule).Error
}

func (r *GormRuleRepository) FindByID(id uint64) (*models.HouseRule, error) {
	var rule models.HouseRule
	if err := r.db.First(&rule, id).Error; err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *GormRuleRepository) ListByHouse(houseID uint64) ([]models.HouseRule, error) {
	var rules []models.HouseRule
	if err := r.db.Where("house_id = ?", houseID).
		Order("created_at DESC").
		Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

func (r *GormRuleRepository) Update(rule *models.HouseRule) error {
	return r.db.Save(rule).Error
}

func (r *GormRuleRepository) Delete(id uint64) error {
	return r.db.Delete(&models.HouseRule{}, id).Error
}
