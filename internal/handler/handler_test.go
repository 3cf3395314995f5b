package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkopodev/schedule-service/internal/config"
	"github.com/mkopodev/schedule-service/internal/integrations/camt"
	"github.com/mkopodev/schedule-service/internal/ledger"
	"github.com/mkopodev/schedule-service/internal/middleware"
	"github.com/mkopodev/schedule-service/internal/service"
)

type noopMailer struct{}

func (noopMailer) SendInstallmentReminder(to, borrower, dueDate string, amount, outstanding float64, currency string, isOverdue bool) error {
	return nil
}
func (noopMailer) SendSettlementNotice(to, borrower string, totalPaid float64, currency string) error {
	return nil
}

func newTestHandler() *Handler {
	log := logrus.New()
	cfg := &config.Config{DefaultCurrency: "KES", JWTSecret: "test-secret"}
	svc := service.NewService(ledger.NewStore(), camt.NewParser(log), noopMailer{}, log, cfg)
	return NewHandler(svc)
}

func TestReconcileEndpoint(t *testing.T) {
	h := newTestHandler()
	body := `{
		"schedule": [
			{"installment": 1, "dueDate": "2024-01-01", "principal": 1000, "interest": 100},
			{"installment": 2, "dueDate": "2024-02-01", "principal": 1000, "interest": 100}
		],
		"payments": [{"amount": 1100}],
		"currency": "UGX"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule/reconcile", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Reconcile(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var res service.ReconcileResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "UGX", res.Currency)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, "2024-01-01", res.Rows[0].DueDate)
	require.NotNil(t, res.Summary)
	assert.Equal(t, 2200.0, res.Summary.ScheduledTotal)
	assert.Equal(t, 1100.0, res.Summary.Outstanding)
	require.NotNil(t, res.Summary.NextDue)
	assert.Equal(t, 2, res.Summary.NextDue.Idx)
}

func TestReconcileEndpointNoSchedule(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule/reconcile", strings.NewReader(`{"foo": 1}`))
	rec := httptest.NewRecorder()
	h.Reconcile(rec, req)

	// Recognized no-data outcome: HTTP 200 with null rows, not an error.
	require.Equal(t, http.StatusOK, rec.Code)
	var res map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Nil(t, res["rows"])
	assert.Nil(t, res["summary"])
}

func TestReconcileEndpointBadJSON(t *testing.T) {
	h := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule/reconcile", strings.NewReader("{nope"))
	rec := httptest.NewRecorder()
	h.Reconcile(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSummaryEndpoint(t *testing.T) {
	h := newTestHandler()
	body := `[{"principal": 500, "paid": true}, {"principal": 300}]`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule/summary", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Summary(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var res struct {
		Currency string `json:"currency"`
		Summary  struct {
			ScheduledTotal float64 `json:"scheduledTotal"`
			NextDue        *struct {
				Idx int `json:"idx"`
			} `json:"nextDue"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "KES", res.Currency)
	assert.Equal(t, 800.0, res.Summary.ScheduledTotal)
	require.NotNil(t, res.Summary.NextDue)
	assert.Equal(t, 2, res.Summary.NextDue.Idx)
}

func TestImportStatementEndpoint(t *testing.T) {
	h := newTestHandler()
	body := `<?xml version="1.0"?><Document><BkToCstmrStmt><Stmt>
		<Ntry><Amt>450.00</Amt><CdtDbtInd>CRDT</CdtDbtInd>
		<BookgDt><Dt>2024-02-10</Dt></BookgDt>
		<NtryDtls><TxDtls><Refs><EndToEndId>LN-5</EndToEndId></Refs></TxDtls></NtryDtls>
		</Ntry></Stmt></BkToCstmrStmt></Document>`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/statements/import?store=true", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ImportStatement(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var res struct {
		Stored  bool `json:"stored"`
		Entries []struct {
			Reference string `json:"reference"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.Stored)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, "LN-5", res.Entries[0].Reference)
}

func TestRemindEndpoint(t *testing.T) {
	h := newTestHandler()
	body := `{
		"to": "borrower@example.com",
		"borrower": "Asha",
		"schedule": [{"principal": 1000, "dueDate": "2030-01-01"}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/schedule/remind", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Remind(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Missing recipient is a client error.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/schedule/remind", strings.NewReader(`{"schedule": []}`))
	rec = httptest.NewRecorder()
	h.Remind(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: "test-secret"}
	r := mux.NewRouter()
	r.Use(middleware.AuthMiddleware(cfg))
	r.HandleFunc("/protected", func(w http.ResponseWriter, r *http.Request) {
		userID, _ := r.Context().Value("userID").(string)
		w.Write([]byte(userID))
	}).Methods("GET")

	// No token.
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Wrong secret.
	bad := signToken(t, "other-secret", "42")
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+bad)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Valid token reaches the handler with the caller id in context.
	good := signToken(t, "test-secret", "42")
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+good)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "42", rec.Body.String())
}

func signToken(t *testing.T, secret, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}
