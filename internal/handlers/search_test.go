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

type searchTestEnv struct {
	db          *gorm.DB
	handler     *SearchHandler
	billService *services.BillService
	host        *models.User
	mate        *models.User
}

func setupSearchTestEnv(t *testing.T) searchTestEnv {
	t.Helper()

	db := openTestDB(t)
	userRepo := repository.NewUserRepository(db)
	houseRepo := repository.NewHouseRepository(db)
	billRepo := repository.NewBillRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	houseService := services.NewHouseService(houseRepo, userRepo)
	billService := services.NewBillService(billRepo, paymentRepo, houseRepo, userRepo)
	handler := NewSearchHandler(services.NewSearchService(db))

	host := createTestUser(t, db, "host@example.com", models.RoleHost)
	mate := createTestUser(t, db, "mate@example.com", models.RoleRoommate)

	house, err := houseService.CreateHouse(services.CreateHouseInput{
		Name:        "Test House",
		BankAccount: "111",
		HostID:      host.ID,
	})
	require.NoError(t, err)
	attachToHouse(t, db, mate.ID, house.ID)

	return searchTestEnv{
		db:          db,
		handler:     handler,
		billService: billService,
		host:        host,
		mate:        mate,
	}
}

func TestSearchHandler_Search(t *testing.T) {
	env := setupSearchTestEnv(t)

	_, err := env.billService.CreateBill(services.CreateBillInput{
		Title:     "September Rent",
		Amount:    800,
		Type:      "housing",
		CreatorID: env.host.ID,
	})
	require.NoError(t, err)
	_, err = env.billService.CreateBill(services.CreateBillInput{
		Title:     "Internet",
		Amount:    30,
		Type:      "other",
		CreatorID: env.host.ID,
	})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/api/search", withUser(env.mate.ID), env.handler.Search)

	// Case-insensitive match on the bill title.
	req := httptest.NewRequest(http.MethodGet, "/api/search?q=rent", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)

	var results services.SearchResults
	require.NoError(t, json.Unmarshal(resp.Data["bills"], &results.Bills))
	require.NoError(t, json.Unmarshal(resp.Data["payments"], &results.Payments))

	require.Len(t, results.Bills, 1)
	require.Equal(t, "September Rent", results.Bills[0].Title)

	// The roommate's own rent obligation surfaces as a payment hit.
	require.Len(t, results.Payments, 1)
	require.Equal(t, 400.0, results.Payments[0].AmountOwed)
}

func TestSearchHandler_Search_TypeNarrowing(t *testing.T) {
	env := setupSearchTestEnv(t)

	_, err := env.billService.CreateBill(services.CreateBillInput{
		Title:     "September Rent",
		Amount:    800,
		Type:      "housing",
		CreatorID: env.host.ID,
	})
	require.NoError(t, err)

	r := gin.New()
	r.GET("/api/search", withUser(env.mate.ID), env.handler.Search)

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=rent&type=bills", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)

	var payments []services.PaymentResult
	require.NoError(t, json.Unmarshal(resp.Data["payments"], &payments))
	require.Empty(t, payments)
}

func TestSearchHandler_Search_MembersByEmail(t *testing.T) {
	env := setupSearchTestEnv(t)

	r := gin.New()
	r.GET("/api/search", withUser(env.host.ID), env.handler.Search)

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=mate@example", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)

	var members []services.MemberResult
	require.NoError(t, json.Unmarshal(resp.Data["members"], &members))
	require.Len(t, members, 1)
	require.Equal(t, "mate@example.com", members[0].Email)
}

func TestSearchHandler_Search_EmptyQuery(t *testing.T) {
	env := setupSearchTestEnv(t)

	r := gin.New()
	r.GET("/api/search", withUser(env.host.ID), env.handler.Search)

	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)

	var total int
	require.NoError(t, json.Unmarshal(resp.Data["total"], &total))
	require.Zero(t, total)
}

func TestSearchHandler_Search_RequiresHouse(t *testing.T) {
	env := setupSearchTestEnv(t)
	loner := createTestUser(t, env.db, "loner@example.com", models.RoleRoommate)

	r := gin.New()
	r.GET("/api/search", withUser(loner.ID), env.handler.Search)

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=rent", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
	resp := decodeEnvelope(t, w)
	require.Equal(t, "User must be in a house to search", resp.Error)
}
