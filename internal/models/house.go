package models

import "time"

type House struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	HouseCode string    `gorm:"type:varchar(10);uniqueIndex;not null" json:"house_code"`
	HostID    uint64    `gorm:"not null" json:"host_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Host  User        `gorm:"foreignKey:HostID" json:"host,omitempty"`
	Bills []Bill      `gorm:"foreignKey:HouseID" json:"bills,omitempty"`
	Rules []HouseRule `gorm:"foreignKey:HouseID" json:"rules,omitempty"`
}
