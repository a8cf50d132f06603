package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/constants"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/models"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/repository"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrHouseNotFound         = errors.New("house not found")
	ErrOnlyHostsCreateHouses = errors.New("only hosts can create houses")
	ErrOnlyRoommatesJoin     = errors.New("only roommates can join houses")
	ErrAlreadyInHouse        = errors.New("you are already part of a house")
	ErrInvalidHouseCode      = errors.New("invalid house code")
	ErrInvalidHouseName      = errors.New("house name cannot be empty")
	ErrBankAccountRequired   = errors.New("house name and bank account are required")
	ErrCodeGenerationFailed  = errors.New("could not generate unique house code")
	ErrNotHouseHost          = errors.New("only the house host can perform this action")
	ErrHouseAccessDenied     = errors.New("access denied")
)

// HouseService provides business logic for house operations.
type HouseService struct {
	houseRepo repository.HouseRepository
	userRepo  repository.UserRepository
}

// NewHouseService creates a new HouseService.
func NewHouseService(houseRepo repository.HouseRepository, userRepo repository.UserRepository) *HouseService {
	return &HouseService{
		houseRepo: houseRepo,
		userRepo:  userRepo,
	}
}

// CreateHouseInput represents parameters to create a new house.
type CreateHouseInput struct {
	Name        string
	BankAccount string
	HostID      uint64
}

// CreateHouse creates a house for a host who does not have one yet. The join
// code is generated randomly and retried on collision; the code space is
// treated as effectively unique, not proven unique.
func (s *HouseService) CreateHouse(input CreateHouseInput) (*models.House, error) {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.BankAccount) == "" {
		return nil, ErrBankAccountRequired
	}

	user, err := s.userRepo.FindByID(input.HostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.Role != models.RoleHost {
		return nil, ErrOnlyHostsCreateHouses
	}
	if user.HouseID != nil {
		return nil, ErrAlreadyInHouse
	}

	code, err := s.uniqueCode()
	if err != nil {
		return nil, err
	}

	house := &models.House{
		Name:      input.Name,
		HouseCode: code,
		HostID:    user.ID,
	}

	if err := s.houseRepo.CreateWithHost(house, user, input.BankAccount); err != nil {
		return nil, fmt.Errorf("failed to create house: %w", err)
	}

	return house, nil
}

func (s *HouseService) uniqueCode() (string, error) {
	for attempt := 0; attempt < constants.MaxHouseCodeAttempts; attempt++ {
		code, err := utils.GenerateHouseCode()
		if err != nil {
			return "", ErrCodeGenerationFailed
		}

		_, err = s.houseRepo.FindByCode(code)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check house code: %w", err)
		}
	}
	return "", ErrCodeGenerationFailed
}

// JoinHouse attaches a roommate to the house matching the code.
func (s *HouseService) JoinHouse(userID uint64, code string) (*models.House, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.Role != models.RoleRoommate {
		return nil, ErrOnlyRoommatesJoin
	}
	if user.HouseID != nil {
		return nil, ErrAlreadyInHouse
	}

	house, err := s.houseRepo.FindByCode(strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidHouseCode
		}
		return nil, fmt.Errorf("failed to find house by code: %w", err)
	}

	if err := s.userRepo.SetHouse(user.ID, &house.ID); err != nil {
		return nil, fmt.Errorf("failed to join house: %w", err)
	}

	return house, nil
}

// GetHouseForUser returns the caller's house, or nil if they have none.
func (s *HouseService) GetHouseForUser(userID uint64) (*models.House, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.HouseID == nil {
		return nil, nil
	}

	house, err := s.houseRepo.FindByID(*user.HouseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHouseNotFound
		}
		return nil, fmt.Errorf("failed to find house: %w", err)
	}

	return house, nil
}

// ListMembers returns a house's roster. The caller must belong to the house.
func (s *HouseService) ListMembers(houseID, callerID uint64) ([]models.User, error) {
	caller, err := s.userRepo.FindByID(callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if caller.HouseID == nil || *caller.HouseID != houseID {
		return nil, ErrHouseAccessDenied
	}

	members, err := s.houseRepo.ListMembers(houseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list house members: %w", err)
	}
	return members, nil
}

// RenameHouse updates a house's name. Only the owning host may rename.
func (s *HouseService) RenameHouse(houseID, callerID uint64, name string) (*models.House, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidHouseName
	}

	house, err := s.houseRepo.FindByID(houseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrHouseNotFound
		}
		return nil, fmt.Errorf("failed to find house: %w", err)
	}

	if house.HostID != callerID {
		return nil, ErrNotHouseHost
	}

	house.Name = name
	if err := s.houseRepo.Update(house); err != nil {
		return nil, fmt.Errorf("failed to update house: %w", err)
	}

	return house, nil
}

// DeleteHouse tears a house down atomically: members detached, bills,
// obligations and rules removed with it.
func (s *HouseService) DeleteHouse(houseID, callerID uint64) error {
	house, err := s.houseRepo.FindByID(houseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrHouseNotFound
		}
		return fmt.Errorf("failed to find house: %w", err)
	}

	if house.HostID != callerID {
		return ErrNotHouseHost
	}

	if err := s.houseRepo.Delete(houseID); err != nil {
		return fmt.Errorf("failed to delete house: %w", err)
	}

	return nil
}
