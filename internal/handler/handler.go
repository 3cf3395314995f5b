package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/mkopodev/schedule-service/internal/service"
)

// Handler exposes the reconciliation service over HTTP
type Handler struct {
	svc *service.Service
}

// NewHandler initializes a new handler
func NewHandler(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// Reconcile handles schedule reconciliation requests. The body may be a bare
// installment array or an object wrapping one, optionally carrying an inline
// payment ledger, a loanRef and a currency label.
func (h *Handler) Reconcile(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodePayload(w, r)
	if !ok {
		return
	}
	res := h.svc.Reconcile(payload, stringField(payload, "loanRef"), stringField(payload, "currency"))
	writeJSON(w, http.StatusOK, res)
}

// Summary handles aggregate-only reconciliation requests.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodePayload(w, r)
	if !ok {
		return
	}
	res := h.svc.Reconcile(payload, stringField(payload, "loanRef"), stringField(payload, "currency"))
	writeJSON(w, http.StatusOK, map[string]any{
		"loanRef":  res.LoanRef,
		"currency": res.Currency,
		"summary":  res.Summary,
	})
}

// ImportStatement handles CAMT.053 statement uploads. With ?store=true the
// parsed entries are folded into the payment ledger.
func (h *Handler) ImportStatement(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	store := r.URL.Query().Get("store") == "true"
	entries, err := h.svc.ImportStatement(raw, store)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"entries": entries,
		"stored":  store,
	})
}

type remindRequest struct {
	To       string          `json:"to"`
	Borrower string          `json:"borrower"`
	LoanRef  string          `json:"loanRef"`
	Currency string          `json:"currency"`
	Schedule json.RawMessage `json:"schedule"`
	Payments json.RawMessage `json:"payments"`
}

// Remind handles borrower reminder requests.
func (h *Handler) Remind(w http.ResponseWriter, r *http.Request) {
	var req remindRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}

	// Re-assemble the loose payload the reconciler expects.
	payload := map[string]any{}
	if len(req.Schedule) > 0 {
		var sched any
		if err := json.Unmarshal(req.Schedule, &sched); err == nil {
			payload["schedule"] = sched
		}
	}
	if len(req.Payments) > 0 {
		var payments any
		if err := json.Unmarshal(req.Payments, &payments); err == nil {
			payload["payments"] = payments
		}
	}

	if err := h.svc.Remind(req.To, req.Borrower, payload, req.LoanRef, req.Currency); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

// Health reports service liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodePayload(w http.ResponseWriter, r *http.Request) (any, bool) {
	var payload any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON body", http.StatusBadRequest)
		return nil, false
	}
	return payload, true
}

func stringField(payload any, key string) string {
	obj, ok := payload.(map[string]any)
	if !ok {
		return ""
	}
	s, _ := obj[key].(string)
	return s
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
