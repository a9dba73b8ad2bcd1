package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avelar/finflow/internal/forecast"
	"github.com/avelar/finflow/internal/models"
)

type createTransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Date        string          `json:"date"` // YYYY-MM-DD, defaults to today
}

// CreateTransaction handles POST /api/transactions
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	occurredOn := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		occurredOn = parsed
	}

	tx, err := h.svc.CreateTransaction(r.Context(), userID, req.Amount, req.Type, req.Description, occurredOn)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, tx)
}

// ListTransactions handles GET /api/transactions?start=&end=
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	// default window: the forecasting history window up to and including today
	now := time.Now()
	from := now.AddDate(0, 0, -forecast.HistoryDays)
	to := now.AddDate(0, 0, 1)

	var err error
	if raw := r.URL.Query().Get("start"); raw != "" {
		if from, err = time.Parse("2006-01-02", raw); err != nil {
			h.respondError(w, http.StatusBadRequest, "invalid start date, expected YYYY-MM-DD")
			return
		}
	}
	if raw := r.URL.Query().Get("end"); raw != "" {
		if to, err = time.Parse("2006-01-02", raw); err != nil {
			h.respondError(w, http.StatusBadRequest, "invalid end date, expected YYYY-MM-DD")
			return
		}
	}

	transactions, err := h.svc.ListTransactions(r.Context(), userID, from, to)
	if err != nil {
		h.log.WithError(err).Error("Failed to list transactions")
		h.respondError(w, http.StatusInternalServerError, "failed to list transactions")
		return
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	respondJSON(w, http.StatusOK, transactions)
}
