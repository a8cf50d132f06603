package models

import "time"

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// BillPayment is one member's obligation toward a bill. Rows are created when
// a bill is split; amount_owed never changes afterwards, even if the bill or
// the house membership does.
type BillPayment struct {
	ID         uint64        `gorm:"primarykey" json:"id"`
	BillID     uint64        `gorm:"not null;index" json:"bill_id"`
	UserID     uint64        `gorm:"not null;index" json:"user_id"`
	AmountOwed float64       `gorm:"type:decimal(10,2);not null" json:"amount_owed"`
	ReceiptURL *string       `gorm:"type:varchar(500)" json:"receipt_url"`
	Status     PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaidAt     *time.Time    `json:"paid_at"`
	CreatedAt  time.Time     `json:"created_at"`

	// Relations
	Bill Bill `gorm:"foreignKey:BillID" json:"bill,omitempty"`
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
