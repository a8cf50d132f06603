package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/models"
	"gorm.io/gorm"
)

var ErrAnalyticsRequiresHouse = errors.New("user must be in a house to view analytics")

// AnalyticsService computes read-only dashboard rollups over the ledger.
// Everything here is a plain aggregation query; no state is mutated and no
// results are cached, so it talks to the store directly instead of going
// through the mutation-oriented repositories.
type AnalyticsService struct {
	db *gorm.DB
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// BillsSummary aggregates a house's bills.
type BillsSummary struct {
	Total        int64   `json:"total"`
	Active       int64   `json:"active"`
	TotalAmount  float64 `json:"totalAmount"`
	ActiveAmount float64 `json:"activeAmount"`
}

// TypeBreakdown is a per-type bill count and sum for one month.
type TypeBreakdown struct {
	Type  models.BillType `json:"type"`
	Count int64           `json:"count"`
	Total float64         `json:"total"`
}

// MonthSummary is the totals for one month window.
type MonthSummary struct {
	Bills []TypeBreakdown `json:"bills,omitempty"`
	Total float64         `json:"total"`
	Count int64           `json:"count"`
}

// UserPaymentSummary aggregates the caller's obligations within the house.
type UserPaymentSummary struct {
	Total        int64   `json:"total"`
	TotalOwed    float64 `json:"totalOwed"`
	TotalPaid    float64 `json:"totalPaid"`
	TotalPending float64 `json:"totalPending"`
}

// RecentBill is one entry of the recent-activity feed.
type RecentBill struct {
	ID                uint64          `json:"id"`
	Title             string          `json:"title"`
	Amount            float64         `json:"amount"`
	Type              models.BillType `json:"type"`
	CreatedAt         time.Time       `json:"created_at"`
	CreatedByName     string          `json:"created_by_name"`
	UserPaymentStatus *string         `json:"user_payment_status"`
}

// TrendPoint is one month of the expense trend.
type TrendPoint struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
	Count  int64   `json:"count"`
}

// Analytics is the full dashboard payload.
type Analytics struct {
	Bills        BillsSummary       `json:"bills"`
	CurrentMonth MonthSummary       `json:"currentMonth"`
	LastMonth    MonthSummary       `json:"lastMonth"`
	UserPayments UserPaymentSummary `json:"userPayments"`
	Recent       []RecentBill       `json:"recentActivity"`
	MonthlyTrend []TrendPoint       `json:"monthlyTrend"`
	HouseInfo    struct {
		MemberCount int64 `json:"memberCount"`
	} `json:"houseInfo"`
}

// Overview builds the dashboard for the caller's house.
func (s *AnalyticsService) Overview(callerID uint64) (*Analytics, error) {
	var caller models.User
	if err := s.db.First(&caller, callerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if caller.HouseID == nil {
		return nil, ErrAnalyticsRequiresHouse
	}
	houseID := *caller.HouseID

	out := &Analytics{}

	err := s.db.Model(&models.Bill{}).
		Select(`COUNT(*) as total,
			COALESCE(SUM(CASE WHEN status = 'active' THEN 1 ELSE 0 END), 0) as active,
			COALESCE(SUM(amount), 0) as total_amount,
			COALESCE(SUM(CASE WHEN status = 'active' THEN amount ELSE 0 END), 0) as active_amount`).
		Where("house_id = ?", houseID).
		Scan(&out.Bills).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate bills: %w", err)
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	current, err := s.monthSummary(houseID, monthStart, monthStart.AddDate(0, 1, 0), true)
	if err != nil {
		return nil, err
	}
	out.CurrentMonth = current

	last, err := s.monthSummary(houseID, monthStart.AddDate(0, -1, 0), monthStart, false)
	if err != nil {
		return nil, err
	}
	out.LastMonth = last

	err = s.db.Model(&models.BillPayment{}).
		Select(`COUNT(*) as total,
			COALESCE(SUM(amount_owed), 0) as total_owed,
			COALESCE(SUM(CASE WHEN bill_payments.status = 'paid' THEN amount_owed ELSE 0 END), 0) as total_paid,
			COALESCE(SUM(CASE WHEN bill_payments.status = 'pending' THEN amount_owed ELSE 0 END), 0) as total_pending`).
		Joins("JOIN bills ON bills.id = bill_payments.bill_id").
		Where("bill_payments.user_id = ? AND bills.house_id = ?", callerID, houseID).
		Scan(&out.UserPayments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate payments: %w", err)
	}

	err = s.db.Model(&models.Bill{}).
		Select(`bills.id, bills.title, bills.amount, bills.type, bills.created_at,
			users.name as created_by_name,
			bill_payments.status as user_payment_status`).
		Joins("LEFT JOIN users ON users.id = bills.created_by").
		Joins("LEFT JOIN bill_payments ON bill_payments.bill_id = bills.id AND bill_payments.user_id = ?", callerID).
		Where("bills.house_id = ?", houseID).
		Order("bills.created_at DESC").
		Limit(5).
		Scan(&out.Recent).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recent activity: %w", err)
	}

	// Last six months, oldest first
	for i := 5; i >= 0; i-- {
		start := monthStart.AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)

		var point struct {
			Amount float64
			Count  int64
		}
		err := s.db.Model(&models.Bill{}).
			Select("COALESCE(SUM(amount), 0) as amount, COUNT(*) as count").
			Where("house_id = ? AND created_at >= ? AND created_at < ?", houseID, start, end).
			Scan(&point).Error
		if err != nil {
			return nil, fmt.Errorf("failed to build monthly trend: %w", err)
		}

		out.MonthlyTrend = append(out.MonthlyTrend, TrendPoint{
			Month:  start.Format("Jan 2006"),
			Amount: point.Amount,
			Count:  point.Count,
		})
	}

	err = s.db.Model(&models.User{}).
		Where("house_id = ?", houseID).
		Count(&out.HouseInfo.MemberCount).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}

	return out, nil
}

func (s *AnalyticsService) monthSummary(houseID uint64, start, end time.Time, byType bool) (MonthSummary, error) {
	var summary MonthSummary

	if byType {
		err := s.db.Model(&models.Bill{}).
			Select("type, COUNT(*) as count, COALESCE(SUM(amount), 0) as total").
			Where("house_id = ? AND created_at >= ? AND created_at < ?", houseID, start, end).
			Group("type").
			Scan(&summary.Bills).Error
		if err != nil {
			return summary, fmt.Errorf("failed to aggregate month by type: %w", err)
		}
		for _, b := range summary.Bills {
			summary.Total += b.Total
			summary.Count += b.Count
		}
		return summary, nil
	}

	var point struct {
		Total float64
		Count int64
	}
	err := s.db.Model(&models.Bill{}).
		Select("COALESCE(SUM(amount), 0) as total, COUNT(*) as count").
		Where("house_id = ? AND created_at >= ? AND created_at < ?", houseID, start, end).
		Scan(&point).Error
	if err != nil {
		return summary, fmt.Errorf("failed to aggregate month: %w", err)
	}
	summary.Total = point.Total
	summary.Count = point.Count
	return summary, nil
}
