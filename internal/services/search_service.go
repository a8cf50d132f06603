package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/models"
	"gorm.io/gorm"
)

var ErrSearchRequiresHouse = errors.New("user must be in a house to search")

const searchResultLimit = 20

// SearchService runs house-scoped text lookups over bills, the caller's
// payments, and the member roster. Read-only, no caching.
type SearchService struct {
	db *gorm.DB
}

// NewSearchService creates a new SearchService.
func NewSearchService(db *gorm.DB) *SearchService {
	return &SearchService{db: db}
}

// BillResult is a bill search hit.
type BillResult struct {
	ID            uint64            `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Amount        float64           `json:"amount"`
	Type          models.BillType   `json:"type"`
	Status        models.BillStatus `json:"status"`
	CreatedAt     time.Time         `json:"created_at"`
	CreatedByName string            `json:"created_by_name"`
}

// PaymentResult is a payment search hit for the caller's own obligations.
type PaymentResult struct {
	ID         uint64               `json:"id"`
	AmountOwed float64              `json:"amount_owed"`
	Status     models.PaymentStatus `json:"status"`
	PaidAt     *time.Time           `json:"paid_at"`
	CreatedAt  time.Time            `json:"created_at"`
	BillTitle  string               `json:"bill_title"`
	BillAmount float64              `json:"bill_amount"`
	BillType   models.BillType      `json:"bill_type"`
}

// MemberResult is a roster search hit; never includes credentials.
type MemberResult struct {
	ID    uint64          `json:"id"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
}

// SearchResults groups hits per category.
type SearchResults struct {
	Bills    []BillResult    `json:"bills"`
	Payments []PaymentResult `json:"payments"`
	Members  []MemberResult  `json:"members"`
	Total    int             `json:"total"`
}

// Search looks up the query within the caller's house. typ narrows the search
// to "bills", "payments" or "members"; empty searches all three. An empty
// query returns empty result sets.
func (s *SearchService) Search(callerID uint64, query, typ string) (*SearchResults, error) {
	var caller models.User
	if err := s.db.First(&caller, callerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if caller.HouseID == nil {
		return nil, ErrSearchRequiresHouse
	}
	houseID := *caller.HouseID

	results := &SearchResults{
		Bills:    []BillResult{},
		Payments: []PaymentResult{},
		Members:  []MemberResult{},
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return results, nil
	}
	pattern := "%" + strings.ToLower(query) + "%"

	if typ == "" || typ == "bills" {
		err := s.db.Model(&models.Bill{}).
			Select("bills.id, bills.title, bills.description, bills.amount, bills.type, bills.status, bills.created_at, users.name as created_by_name").
			Joins("LEFT JOIN users ON users.id = bills.created_by").
			Where("bills.house_id = ?", houseID).
			Where("LOWER(bills.title) LIKE ? OR LOWER(bills.description) LIKE ? OR LOWER(bills.type) LIKE ?",
				pattern, pattern, pattern).
			Order("bills.created_at DESC").
			Limit(searchResultLimit).
			Scan(&results.Bills).Error
		if err != nil {
			return nil, fmt.Errorf("failed to search bills: %w", err)
		}
	}

	if typ == "" || typ == "payments" {
		err := s.db.Model(&models.BillPayment{}).
			Select(`bill_payments.id, bill_payments.amount_owed, bill_payments.status,
				bill_payments.paid_at, bill_payments.created_at,
				bills.title as bill_title, bills.amount as bill_amount, bills.type as bill_type`).
			Joins("JOIN bills ON bills.id = bill_payments.bill_id").
			Where("bills.house_id = ? AND bill_payments.user_id = ?", houseID, callerID).
			Where("LOWER(bills.title) LIKE ? OR LOWER(bills.type) LIKE ? OR LOWER(bill_payments.status) LIKE ?",
				pattern, pattern, pattern).
			Order("bill_payments.created_at DESC").
			Limit(searchResultLimit).
			Scan(&results.Payments).Error
		if err != nil {
			return nil, fmt.Errorf("failed to search payments: %w", err)
		}
	}

	if typ == "" || typ == "members" {
		err := s.db.Model(&models.User{}).
			Select("id, name, email, role").
			Where("house_id = ?", houseID).
			Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern).
			Limit(searchResultLimit).
			Scan(&results.Members).Error
		if err != nil {
			return nil, fmt.Errorf("failed to search members: %w", err)
		}
	}

	results.Total = len(results.Bills) + len(results.Payments) + len(results.Members)
	return results, nil
}
