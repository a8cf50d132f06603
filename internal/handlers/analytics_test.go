package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/models"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/repository"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/services"
)

type analyticsTestEnv struct {
	db          *gorm.DB
	handler     *AnalyticsHandler
	billService *services.BillService
	host        *models.User
	mate        *models.User
}

func setupAnalyticsTestEnv(t *testing.T) analyticsTestEnv {
	t.Helper()

	db := openTestDB(t)
	userRepo := repository.NewUserRepository(db)
	houseRepo := repository.NewHouseRepository(db)
	billRepo := repository.NewBillRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	houseService := services.NewHouseService(houseRepo, userRepo)
	billService := services.NewBillService(billRepo, paymentRepo, houseRepo, userRepo)
	handler := NewAnalyticsHandler(services.NewAnalyticsService(db))

	host := createTestUser(t, db, "host@example.com", models.RoleHost)
	mate := createTestUser(t, db, "mate@example.com", models.RoleRoommate)

	house, err := houseService.CreateHouse(services.CreateHouseInput{
		Name:        "Test House",
		BankAccount: "111",
		HostID:      host.ID,
	})
	require.NoError(t, err)
	attachToHouse(t, db, mate.ID, house.ID)

	return analyticsTestEnv{
		db:          db,
		handler:     handler,
		billService: billService,
		host:        host,
		mate:        mate,
	}
}

func TestAnalyticsHandler_GetAnalytics(t *testing.T) {
	env := setupAnalyticsTestEnv(t)

	_, err := env.billService.CreateBill(services.CreateBillInput{
		Title:     "Rent",
		Amount:    800,
		Type:      "housing",
		CreatorID: env.host.ID,
	})
	require.NoError(t, err)
	_, err = env.billService.CreateBill(services.CreateBillInput{
		Title:     "Snacks",
		Amount:    40,
		Type:      "grocery",
		CreatorID: env.mate.ID,
	})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/api/analytics", withUser(env.mate.ID), env.handler.GetAnalytics)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)

	var analytics services.Analytics
	require.NoError(t, json.Unmarshal(resp.Data["analytics"], &analytics))

	require.Equal(t, int64(2), analytics.Bills.Total)
	require.Equal(t, int64(2), analytics.Bills.Active)
	require.Equal(t, 840.0, analytics.Bills.TotalAmount)

	// Both bills were just created, so the current month covers them.
	require.Equal(t, int64(2), analytics.CurrentMonth.Count)
	require.Equal(t, 840.0, analytics.CurrentMonth.Total)
	require.Zero(t, analytics.LastMonth.Count)

	// The roommate owes half the rent; the grocery bill has no obligations.
	require.Equal(t, int64(1), analytics.UserPayments.Total)
	require.Equal(t, 400.0, analytics.UserPayments.TotalOwed)
	require.Equal(t, 400.0, analytics.UserPayments.TotalPending)
	require.Zero(t, analytics.UserPayments.TotalPaid)

	require.Len(t, analytics.Recent, 2)
	require.Len(t, analytics.MonthlyTrend, 6)
	require.Equal(t, int64(2), analytics.HouseInfo.MemberCount)
}

func TestAnalyticsHandler_RequiresHouse(t *testing.T) {
	env := setupAnalyticsTestEnv(t)
	loner := createTestUser(t, env.db, "loner@example.com", models.RoleRoommate)

	r := gin.New()
	r.GET("/api/analytics", withUser(loner.ID), env.handler.GetAnalytics)

	req := httptest.NewRequest(http.MethodGet, "/api/analytics", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
	resp := decodeEnvelope(t, w)
	require.Equal(t, "User must be in a house to view analytics", resp.Error)
}
