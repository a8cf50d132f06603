package repository

import (
	"time"

	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// SetHouse points a user at a house (nil detaches them)
	SetHouse(userID uint64, houseID *uint64) error
}

// HouseRepository defines the interface for house data access
type HouseRepository interface {
	// CreateWithHost creates a house and attaches the host to it
	// (house_id and bank_account on the host row) in one transaction.
	CreateWithHost(house *models.House, host *models.User, bankAccount string) error

	// FindByID finds a house by ID
	FindByID(id uint64) (*models.House, error)

	// FindByCode finds a house by its join code
	FindByCode(code string) (*models.House, error)

	// Update updates a house
	Update(house *models.House) error

	// Delete removes a house and everything it owns in one transaction:
	// members are detached, payments, bills and rules are deleted.
	Delete(id uint64) error

	// ListMembers lists all users whose house_id points at the house
	ListMembers(houseID uint64) ([]models.User, error)
}

// BillRepository defines the interface for bill data access
type BillRepository interface {
	// CreateWithPayments creates a bill and its payment obligations atomically
	CreateWithPayments(bill *models.Bill, payments []models.BillPayment) error

	// FindByID finds a bill by ID
	FindByID(id uint64) (*models.Bill, error)

	// ListByHouse lists a house's bills, newest first
	ListByHouse(houseID uint64) ([]models.Bill, error)

	// Update updates a bill
	Update(bill *models.Bill) error

	// Delete removes a bill and its payment obligations atomically
	Delete(id uint64) error
}

// PaymentFilter holds filtering options for listing a user's obligations
type PaymentFilter struct {
	Status *models.PaymentStatus
	Limit  int
}

// PaymentRepository defines the interface for payment obligation data access
type PaymentRepository interface {
	// FindByID finds a payment obligation by ID
	FindByID(id uint64) (*models.BillPayment, error)

	// ListByBill lists all obligations for a bill
	ListByBill(billID uint64) ([]models.BillPayment, error)

	// ListByUser lists a user's obligations, newest first
	ListByUser(userID uint64, filter PaymentFilter) ([]models.BillPayment, error)

	// MarkPaid records the receipt and flips the obligation to paid
	MarkPaid(id uint64, receiptURL string, paidAt time.Time) error
}

// RuleRepository defines the interface for house rule data access
type RuleRepository interface {
	// Create creates a new house rule
	Create(rule *models.HouseRule) error

	// FindByID finds a rule by ID
	FindByID(id uint64) (*models.HouseRule, error)

	// ListByHouse lists a house's rules
	ListByHouse(houseID uint64) ([]models.HouseRule, error)

	// Update updates a rule
	Update(rule *models.HouseRule) error

	// Delete deletes a rule
	Delete(id uint64) error
}
