package models

import "time"

type UserRole string

const (
	RoleHost     UserRole = "host"
	RoleRoommate UserRole = "roommate"
)

type User struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Email       string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"type:varchar(255);not null" json:"-"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Phone       *string   `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Role        UserRole  `gorm:"type:varchar(20);not null;default:'roommate'" json:"role"`
	HouseID     *uint64   `gorm:"index" json:"house_id"`
	BankAccount *string   `gorm:"type:varchar(50)" json:"bank_account,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	// Relations
	CreatedBills []Bill        `gorm:"foreignKey:CreatedBy" json:"-"`
	Payments     []BillPayment `gorm:"foreignKey:UserID" json:"-"`
}
