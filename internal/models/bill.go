package models

import "time"

type BillType string

const (
	BillTypeHousing BillType = "housing"
	BillTypeGrocery BillType = "grocery"
	BillTypeEatOut  BillType = "eat-out"
	BillTypeOther   BillType = "other"
)

type BillStatus string

const (
	BillStatusActive BillStatus = "active"
	BillStatusClosed BillStatus = "closed"
)

type Bill struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Amount      float64    `gorm:"type:decimal(10,2);not null" json:"amount"`
	Type        BillType   `gorm:"type:varchar(20);not null" json:"type"`
	HouseID     uint64     `gorm:"not null;index" json:"house_id"`
	CreatedBy   uint64     `gorm:"not null;index" json:"created_by"`
	SplitAmount *float64   `gorm:"type:decimal(10,2)" json:"split_amount"`
	DueDate     *time.Time `json:"due_date"`
	Status      BillStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	CreatedAt   time.Time  `json:"created_at"`

	// Relations
	Creator  User          `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	House    House         `gorm:"foreignKey:HouseID" json:"-"`
	Payments []BillPayment `gorm:"foreignKey:BillID" json:"payments,omitempty"`
}
