package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/models"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/repository"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/services"
	"github.com/6631503004KanyanatSawatdiwong/RoomieRules/internal/storage"
)

type paymentTestEnv struct {
	db          *gorm.DB
	handler     *PaymentHandler
	billService *services.BillService
	uploadDir   string
	host        *models.User
	mate        *models.User
}

func setupPaymentTestEnv(t *testing.T) paymentTestEnv {
	t.Helper()

	db := openTestDB(t)
	userRepo := repository.NewUserRepository(db)
	houseRepo := repository.NewHouseRepository(db)
	billRepo := repository.NewBillRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	uploadDir := t.TempDir()
	receipts, err := storage.NewReceiptStore(uploadDir, "/uploads/receipts")
	require.NoError(t, err)

	houseService := services.NewHouseService(houseRepo, userRepo)
	billService := services.NewBillService(billRepo, paymentRepo, houseRepo, userRepo)
	paymentService := services.NewPaymentService(paymentRepo, receipts)
	handler := NewPaymentHandler(paymentService)

	host := createTestUser(t, db, "host@example.com", models.RoleHost)
	mate := createTestUser(t, db, "mate@example.com", models.RoleRoommate)

	house, err := houseService.CreateHouse(services.CreateHouseInput{
		Name:        "Test House",
		BankAccount: "111",
		HostID:      host.ID,
	})
	require.NoError(t, err)
	attachToHouse(t, db, mate.ID, house.ID)

	return paymentTestEnv{
		db:          db,
		handler:     handler,
		billService: billService,
		uploadDir:   uploadDir,
		host:        host,
		mate:        mate,
	}
}

// createHousingBill splits a bill across the two-member house and returns the
// roommate's pending obligation.
func (env *paymentTestEnv) createHousingBill(t *testing.T, amount float64) models.BillPayment {
	t.Helper()

	bill, err := env.billService.CreateBill(services.CreateBillInput{
		Title:     "Rent",
		Amount:    amount,
		Type:      "housing",
		CreatorID: env.host.ID,
	})
	require.NoError(t, err)

	var payment models.BillPayment
	err = env.db.Where("bill_id = ? AND user_id = ?", bill.ID, env.mate.ID).First(&payment).Error
	require.NoError(t, err)
	return payment
}

func receiptRequest(t *testing.T, target, contentType string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="receipt"; filename="slip.jpg"`)
	header.Set("Content-Type", contentType)
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPut, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestPaymentHandler_Settle(t *testing.T) {
	env := setupPaymentTestEnv(t)
	payment := env.createHousingBill(t, 600)

	r := gin.New()
	r.PUT("/api/payments/:id", withUser(env.mate.ID), env.handler.SettlePayment)

	target := fmt.Sprintf("/api/payments/%d", payment.ID)
	req := receiptRequest(t, target, "image/jpeg", []byte("receipt image"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var settled models.BillPayment
	require.NoError(t, env.db.First(&settled, payment.ID).Error)
	require.Equal(t, models.PaymentStatusPaid, settled.Status)
	require.NotNil(t, settled.PaidAt)
	require.NotNil(t, settled.ReceiptURL)

	stored := filepath.Join(env.uploadDir, filepath.Base(*settled.ReceiptURL))
	data, err := os.ReadFile(stored)
	require.NoError(t, err)
	require.Equal(t, []byte("receipt image"), data)
}

func TestPaymentHandler_Settle_OnlyOwingUser(t *testing.T) {
	env := setupPaymentTestEnv(t)
	payment := env.createHousingBill(t, 600)

	r := gin.New()
	r.PUT("/api/payments/:id", withUser(env.host.ID), env.handler.SettlePayment)

	target := fmt.Sprintf("/api/payments/%d", payment.ID)
	req := receiptRequest(t, target, "image/jpeg", []byte("receipt image"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
	resp := decodeEnvelope(t, w)
	require.Equal(t, "You can only mark your own payments as paid", resp.Error)

	var untouched models.BillPayment
	require.NoError(t, env.db.First(&untouched, payment.ID).Error)
	require.Equal(t, models.PaymentStatusPending, untouched.Status)
}

func TestPaymentHandler_Settle_AlreadyPaidConflict(t *testing.T) {
	env := setupPaymentTestEnv(t)
	payment := env.createHousingBill(t, 600)

	r := gin.New()
	r.PUT("/api/payments/:id", withUser(env.mate.ID), env.handler.SettlePayment)

	target := fmt.Sprintf("/api/payments/%d", payment.ID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, receiptRequest(t, target, "image/jpeg", []byte("first")))
	require.Equal(t, http.StatusOK, w.Code)

	var settled models.BillPayment
	require.NoError(t, env.db.First(&settled, payment.ID).Error)
	firstReceipt := *settled.ReceiptURL

	// A second upload must not overwrite the recorded settlement.
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, receiptRequest(t, target, "image/jpeg", []byte("second")))

	require.Equal(t, http.StatusConflict, w2.Code)
	resp := decodeEnvelope(t, w2)
	require.Equal(t, "Payment has already been marked as paid", resp.Error)

	require.NoError(t, env.db.First(&settled, payment.ID).Error)
	require.Equal(t, firstReceipt, *settled.ReceiptURL)
}

func TestPaymentHandler_Settle_MissingFile(t *testing.T) {
	env := setupPaymentTestEnv(t)
	payment := env.createHousingBill(t, 600)

	r := gin.New()
	r.PUT("/api/payments/:id", withUser(env.mate.ID), env.handler.SettlePayment)

	req := httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/payments/%d", payment.ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w)
	require.Equal(t, "Receipt file is required", resp.Error)
}

func TestPaymentHandler_Settle_RejectsNonImage(t *testing.T) {
	env := setupPaymentTestEnv(t)
	payment := env.createHousingBill(t, 600)

	r := gin.New()
	r.PUT("/api/payments/:id", withUser(env.mate.ID), env.handler.SettlePayment)

	target := fmt.Sprintf("/api/payments/%d", payment.ID)
	req := receiptRequest(t, target, "application/pdf", []byte("%PDF-1.4"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeEnvelope(t, w)
	require.Equal(t, "Only image files (JPEG, PNG, WebP) are allowed", resp.Error)

	// Nothing lands on disk for a rejected upload.
	entries, err := os.ReadDir(env.uploadDir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestPaymentHandler_ListPayments_Totals(t *testing.T) {
	env := setupPaymentTestEnv(t)
	first := env.createHousingBill(t, 600)
	env.createHousingBill(t, 100)

	r := gin.New()
	r.PUT("/api/payments/:id", withUser(env.mate.ID), env.handler.SettlePayment)
	r.GET("/api/payments", withUser(env.mate.ID), env.handler.ListPayments)

	// Settle one of the two obligations.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, receiptRequest(t, fmt.Sprintf("/api/payments/%d", first.ID), "image/jpeg", []byte("img")))
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/payments", nil)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)

	require.Equal(t, http.StatusOK, w2.Code)
	resp := decodeEnvelope(t, w2)

	var totals services.PaymentTotals
	require.NoError(t, json.Unmarshal(resp.Data["totals"], &totals))
	require.Equal(t, 300.0, totals.Paid)
	require.Equal(t, 50.0, totals.Pending)
	require.Equal(t, 350.0, totals.Total)
}

func TestPaymentHandler_ListPayments_StatusFilter(t *testing.T) {
	env := setupPaymentTestEnv(t)
	first := env.createHousingBill(t, 600)
	env.createHousingBill(t, 100)

	r := gin.New()
	r.PUT("/api/payments/:id", withUser(env.mate.ID), env.handler.SettlePayment)
	r.GET("/api/payments", withUser(env.mate.ID), env.handler.ListPayments)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, receiptRequest(t, fmt.Sprintf("/api/payments/%d", first.ID), "image/jpeg", []byte("img")))
	require.Equal(t, http.StatusOK, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/payments?status=pending", nil)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)

	require.Equal(t, http.StatusOK, w2.Code)
	resp := decodeEnvelope(t, w2)

	var payments []models.BillPayment
	require.NoError(t, json.Unmarshal(resp.Data["payments"], &payments))
	require.Len(t, payments, 1)
	require.Equal(t, models.PaymentStatusPending, payments[0].Status)

	// Totals cover only the filtered set.
	var totals services.PaymentTotals
	require.NoError(t, json.Unmarshal(resp.Data["totals"], &totals))
	require.Equal(t, 50.0, totals.Total)
	require.Zero(t, totals.Paid)

	// Unknown filter values are rejected.
	req3 := httptest.NewRequest(http.MethodGet, "/api/payments?status=overdue", nil)
	w3 := httptest.NewRecorder()
	r.ServeHTTP(w3, req3)

	require.Equal(t, http.StatusBadRequest, w3.Code)
}

func TestPaymentHandler_GetPayment_NotFound(t *testing.T) {
	env := setupPaymentTestEnv(t)

	r := gin.New()
	r.GET("/api/payments/:id", withUser(env.mate.ID), env.handler.GetPayment)

	req := httptest.NewRequest(http.MethodGet, "/api/payments/9999", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeEnvelope(t, w)
	require.Equal(t, "Payment not found", resp.Error)
}
