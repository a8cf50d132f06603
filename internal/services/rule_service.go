package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/models"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrRuleNotFound      = errors.New("house rule not found")
	ErrRuleTitleRequired = errors.New("rule title is required")
	ErrOnlyHostsRules    = errors.New("only house hosts can manage rules")
)

// RuleService manages the house rules board. Rules carry no state machine;
// hosts create, update and delete, members read.
type RuleService struct {
	ruleRepo repository.RuleRepository
	userRepo repository.UserRepository
}

// NewRuleService creates a new RuleService.
func NewRuleService(ruleRepo repository.RuleRepository, userRepo repository.UserRepository) *RuleService {
	return &RuleService{
		ruleRepo: ruleRepo,
		userRepo: userRepo,
	}
}

// ListRules returns the caller's house rules.
func (s *RuleService) ListRules(callerID uint64) ([]models.HouseRule, error) {
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

	rules, err := s.ruleRepo.ListByHouse(*caller.HouseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list house rules: %w", err)
	}
	return rules, nil
}

// CreateRule adds a rule to the caller's house. Host only.
func (s *RuleService) CreateRule(callerID uint64, title, description string) (*models.HouseRule, error) {
	caller, err := s.userRepo.FindByID(callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if caller.Role != models.RoleHost || caller.HouseID == nil {
		return nil, ErrOnlyHostsRules
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrRuleTitleRequired
	}

	rule := &models.HouseRule{
		HouseID:     *caller.HouseID,
		Title:       title,
		Description: strings.TrimSpace(description),
		CreatedBy:   caller.ID,
	}

	if err := s.ruleRepo.Create(rule); err != nil {
		return nil, fmt.Errorf("failed to create house rule: %w", err)
	}
	return rule, nil
}

// UpdateRule edits a rule. Only the host of the rule's house may edit.
func (s *RuleService) UpdateRule(ruleID, callerID uint64, title, description string) (*models.HouseRule, error) {
	rule, err := s.hostRule(ruleID, callerID)
	if err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrRuleTitleRequired
	}

	rule.Title = title
	rule.Description = strings.TrimSpace(description)
	if err := s.ruleRepo.Update(rule); err != nil {
		return nil, fmt.Errorf("failed to update house rule: %w", err)
	}
	return rule, nil
}

// DeleteRule removes a rule. Only the host of the rule's house may delete.
func (s *RuleService) DeleteRule(ruleID, callerID uint64) error {
	if _, err := s.hostRule(ruleID, callerID); err != nil {
		return err
	}

	if err := s.ruleRepo.Delete(ruleID); err != nil {
		return fmt.Errorf("failed to delete house rule: %w", err)
	}
	return nil
}

func (s *RuleService) hostRule(ruleID, callerID uint64) (*models.HouseRule, error) {
	rule, err := s.ruleRepo.FindByID(ruleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRuleNotFound
		}
		return nil, fmt.Errorf("failed to find house rule: %w", err)
	}

	caller, err := s.userRepo.FindByID(callerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if caller.Role != models.RoleHost || caller.HouseID == nil || *caller.HouseID != rule.HouseID {
		return nil, ErrOnlyHostsRules
	}

	return rule, nil
}
