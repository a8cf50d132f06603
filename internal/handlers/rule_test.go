package handlers

import (
	"fmt"
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

type ruleTestEnv struct {
	db      *gorm.DB
	handler *RuleHandler
	host    *models.User
	mate    *models.User
	house   *models.House
}

func setupRuleTestEnv(t *testing.T) ruleTestEnv {
	t.Helper()

	db := openTestDB(t)
	userRepo := repository.NewUserRepository(db)
	houseRepo := repository.NewHouseRepository(db)
	ruleRepo := repository.NewRuleRepository(db)

	houseService := services.NewHouseService(houseRepo, userRepo)
	ruleService := services.NewRuleService(ruleRepo, userRepo)
	handler := NewRuleHandler(ruleService)

	host := createTestUser(t, db, "host@example.com", models.RoleHost)
	mate := createTestUser(t, db, "mate@example.com", models.RoleRoommate)

	house, err := houseService.CreateHouse(services.CreateHouseInput{
		Name:        "Test House",
		BankAccount: "111",
		HostID:      host.ID,
	})
	require.NoError(t, err)
	attachToHouse(t, db, mate.ID, house.ID)

	return ruleTestEnv{
		db:      db,
		handler: handler,
		host:    host,
		mate:    mate,
		house:   house,
	}
}

func TestRuleHandler_CreateRule(t *testing.T) {
	env := setupRuleTestEnv(t)

	r := gin.New()
	r.POST("/api/house-rules", withUser(env.host.ID), env.handler.CreateRule)

	req := jsonRequest(t, http.MethodPost, "/api/house-rules", map[string]string{
		"title":       "Quiet hours",
		"description": "No loud music after 22:00",
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var rule models.HouseRule
	require.NoError(t, env.db.First(&rule).Error)
	require.Equal(t, "Quiet hours", rule.Title)
	require.Equal(t, env.house.ID, rule.HouseID)
	require.Equal(t, env.host.ID, rule.CreatedBy)
}

func TestRuleHandler_CreateRule_RoommateForbidden(t *testing.T) {
	env := setupRuleTestEnv(t)

	r := gin.New()
	r.POST("/api/house-rules", withUser(env.mate.ID), env.handler.CreateRule)

	req := jsonRequest(t, http.MethodPost, "/api/house-rules", map[string]string{
		"title": "My own rule",
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
	resp := decodeEnvelope(t, w)
	require.Equal(t, "Only house hosts can manage rules", resp.Error)
}

func TestRuleHandler_ListRules_MembersCanRead(t *testing.T) {
	env := setupRuleTestEnv(t)

	require.NoError(t, env.db.Create(&models.HouseRule{
		HouseID:   env.house.ID,
		Title:     "Take out the trash",
		CreatedBy: env.host.ID,
	}).Error)

	r := gin.New()
	r.GET("/api/house-rules", withUser(env.mate.ID), env.handler.ListRules)

	req := httptest.NewRequest(http.MethodGet, "/api/house-rules", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeEnvelope(t, w)
	require.Contains(t, string(resp.Data["rules"]), "Take out the trash")
}

func TestRuleHandler_UpdateAndDeleteRule(t *testing.T) {
	env := setupRuleTestEnv(t)

	rule := &models.HouseRule{
		HouseID:   env.house.ID,
		Title:     "Old title",
		CreatedBy: env.host.ID,
	}
	require.NoError(t, env.db.Create(rule).Error)

	target := fmt.Sprintf("/api/house-rules/%d", rule.ID)

	// A roommate cannot edit.
	r := gin.New()
	r.PUT("/api/house-rules/:id", withUser(env.mate.ID), env.handler.UpdateRule)

	req := jsonRequest(t, http.MethodPut, target, map[string]string{"title": "Hijacked"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)

	// The host can edit and delete.
	r2 := gin.New()
	r2.PUT("/api/house-rules/:id", withUser(env.host.ID), env.handler.UpdateRule)
	r2.DELETE("/api/house-rules/:id", withUser(env.host.ID), env.handler.DeleteRule)

	req2 := jsonRequest(t, http.MethodPut, target, map[string]string{"title": "New title"})
	w2 := httptest.NewRecorder()
	r2.ServeHTTP(w2, req2)
	require.Equal(t, http.StatusOK, w2.Code)

	var updated models.HouseRule
	require.NoError(t, env.db.First(&updated, rule.ID).Error)
	require.Equal(t, "New title", updated.Title)

	req3 := httptest.NewRequest(http.MethodDelete, target, nil)
	w3 := httptest.NewRecorder()
	r2.ServeHTTP(w3, req3)
	require.Equal(t, http.StatusOK, w3.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.HouseRule{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestRuleHandler_UpdateRule_NotFound(t *testing.T) {
	env := setupRuleTestEnv(t)

	r := gin.New()
	r.PUT("/api/house-rules/:id", withUser(env.host.ID), env.handler.UpdateRule)

	req := jsonRequest(t, http.MethodPut, "/api/house-rules/9999", map[string]string{"title": "Ghost"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeEnvelope(t, w)
	require.Equal(t, "House rule not found", resp.Error)
}
