package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/calculator"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/models"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrBillNotFound        = errors.New("bill not found")
	ErrBillTitleRequired   = errors.New("title, amount, and type are required")
	ErrInvalidBillType     = errors.New("invalid bill type")
	ErrInvalidBillStatus   = errors.New("invalid bill status")
	ErrInvalidAmount       = errors.New("amount must be greater than 0")
	ErrOnlyHostsHousing    = errors.New("only hosts can create housing bills")
	ErrNotInHouse          = errors.New("user is not part of any house")
	ErrNoHouseMembers      = errors.New("no members found in house")
	ErrBillAccessDenied    = errors.New("access denied")
	ErrNotBillCreator      = errors.New("only the bill creator can perform this action")
)

// obligationPolicy decides which bill types generate per-member payment
// obligations at creation time. Only housing does today; the other types
// are informal bills with no tracked settlement.
var obligationPolicy = map[models.BillType]bool{
	models.BillTypeHousing: true,
	models.BillTypeGrocery: false,
	models.BillTypeEatOut:  false,
	models.BillTypeOther:   false,
}

// hostOnlyTypes restricts who may create a bill of the given type.
var hostOnlyTypes = map[models.BillType]bool{
	models.BillTypeHousing: true,
}

// BillService handles the bill ledger: creation with auto-split, reads,
// creator-only mutation and deletion.
type BillService struct {
	billRepo    repository.BillRepository
	paymentRepo repository.PaymentRepository
	houseRepo   repository.HouseRepository
	userRepo    repository.UserRepository
}

// NewBillService creates a new BillService.
func NewBillService(
	billRepo repository.BillRepository,
	paymentRepo repository.PaymentRepository,
	houseRepo repository.HouseRepository,
	userRepo repository.UserRepository,
) *BillService {
	return &BillService{
		billRepo:    billRepo,
		paymentRepo: paymentRepo,
		houseRepo:   houseRepo,
		userRepo:    userRepo,
	}
}

// CreateBillInput represents a bill creation request.
type CreateBillInput struct {
	Title       string
	Description string
	Amount      float64
	Type        string
	DueDate     *time.Time
	CreatorID   uint64
}

// CreateBill persists a bill. For obligation-generating types the amount is
// split evenly across the current house members; each member gets one pending
// obligation, the split never changes afterwards, and remainder cents land on
// the creator so the obligations sum exactly to the amount.
func (s *BillService) CreateBill(input CreateBillInput) (*models.Bill, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrBillTitleRequired
	}

	billType := models.BillType(input.Type)
	if _, known := obligationPolicy[billType]; !known {
		return nil, ErrInvalidBillType
	}
	if input.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	creator, err := s.userRepo.FindByID(input.CreatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if creator.HouseID == nil {
		return nil, ErrNotInHouse
	}
	if hostOnlyTypes[billType] && creator.Role != models.RoleHost {
		return nil, ErrOnlyHostsHousing
	}

	bill := &models.Bill{
		Title:       input.Title,
		Description: input.Description,
		Amount:      input.Amount,
		Type:        billType,
		HouseID:     *creator.HouseID,
		CreatedBy:   creator.ID,
		DueDate:     input.DueDate,
		Status:      models.BillStatusActive,
	}

	var payments []models.BillPayment
	if obligationPolicy[billType] {
		members, err := s.houseRepo.ListMembers(*creator.HouseID)
		if err != nil {
			return nil, fmt.Errorf("failed to list house members: %w", err)
		}
		if len(members) == 0 {
			return nil, ErrNoHouseMembers
		}

		memberIDs := make([]uint64, len(members))
		for i, m := range members {
			memberIDs[i] = m.ID
		}

		shares, splitAmount, err := calculator.SplitEven(input.Amount, memberIDs, creator.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to split bill: %w", err)
		}

		bill.SplitAmount = &splitAmount
		payments = make([]models.BillPayment, len(shares))
		for i, share := range shares {
			payments[i] = models.BillPayment{
				UserID:     share.UserID,
				AmountOwed: share.Amount,
				Status:     models.PaymentStatusPending,
			}
		}
	}

	if err := s.billRepo.CreateWithPayments(bill, payments); err != nil {
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}

	return bill, nil
}

// ListBills returns the caller's house bills, newest first.
func (s *BillService) ListBills(callerID uint64) ([]models.Bill, error) {
	caller, err := s.userRepo.FindByID(callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if caller.HouseID == nil {
		return nil, ErrNotInHouse
	}

	bills, err := s.billRepo.ListByHouse(*caller.HouseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	return bills, nil
}

// BillDetail bundles a bill with its obligations and the house roster.
type BillDetail struct {
	Bill     *models.Bill
	Payments []models.BillPayment
	Members  []models.User
}

// GetBillDetail returns a bill with its obligations and the house roster.
// The caller must live in the bill's house.
func (s *BillService) GetBillDetail(billID, callerID uint64) (*BillDetail, error) {
	caller, err := s.userRepo.FindByID(callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	bill, err := s.billRepo.FindByID(billID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBillNotFound
		}
		return nil, fmt.Errorf("failed to find bill: %w", err)
	}

	if caller.HouseID == nil || *caller.HouseID != bill.HouseID {
		return nil, ErrBillAccessDenied
	}

	payments, err := s.paymentRepo.ListByBill(billID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bill payments: %w", err)
	}

	members, err := s.houseRepo.ListMembers(bill.HouseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list house members: %w", err)
	}

	return &BillDetail{Bill: bill, Payments: payments, Members: members}, nil
}

// UpdateBillInput holds the mutable bill fields; nil fields are left alone.
// Obligations are never re-split by an update.
type UpdateBillInput struct {
	Title       *string
	Description *string
	Amount      *float64
	DueDate     *time.Time
	Status      *string
}

// UpdateBill applies a partial update. Only the creator may update.
func (s *BillService) UpdateBill(billID, callerID uint64, input UpdateBillInput) (*models.Bill, error) {
	bill, err := s.billRepo.FindByID(billID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBillNotFound
		}
		return nil, fmt.Errorf("failed to find bill: %w", err)
	}

	if bill.CreatedBy != callerID {
		return nil, ErrNotBillCreator
	}

	if input.Title != nil && strings.TrimSpace(*input.Title) != "" {
		bill.Title = *input.Title
	}
	if input.Description != nil {
		bill.Description = *input.Description
	}
	if input.Amount != nil {
		if *input.Amount <= 0 {
			return nil, ErrInvalidAmount
		}
		bill.Amount = *input.Amount
	}
	if input.DueDate != nil {
		bill.DueDate = input.DueDate
	}
	if input.Status != nil {
		status := models.BillStatus(*input.Status)
		if status != models.BillStatusActive && status != models.BillStatusClosed {
			return nil, ErrInvalidBillStatus
		}
		bill.Status = status
	}

	if err := s.billRepo.Update(bill); err != nil {
		return nil, fmt.Errorf("failed to update bill: %w", err)
	}

	return bill, nil
}

// DeleteBill removes a bill and its obligations. Only the creator may delete.
func (s *BillService) DeleteBill(billID, callerID uint64) error {
	bill, err := s.billRepo.FindByID(billID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBillNotFound
		}
		return fmt.Errorf("failed to find bill: %w", err)
	}

	if bill.CreatedBy != callerID {
		return ErrNotBillCreator
	}

	if err := s.billRepo.Delete(billID); err != nil {
		return fmt.Errorf("failed to delete bill: %w", err)
	}

	return nil
}
