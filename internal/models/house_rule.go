package models

import "time"

type HouseRule struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	HouseID     uint64    `gorm:"not null;index" json:"house_id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedBy   uint64    `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	House   House `gorm:"foreignKey:HouseID" json:"-"`
	Creator User  `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}
