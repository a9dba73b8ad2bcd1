package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avelar/finflow/internal/models"
)

type createRuleRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Interval    string          `json:"interval"`
	NextDate    string          `json:"next_date"` // YYYY-MM-DD
	Description string          `json:"description"`
}

// CreateRule handles POST /api/recurring
func (h *Handler) CreateRule(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	var req createRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	nextDate, err := time.Parse("2006-01-02", req.NextDate)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid next_date, expected YYYY-MM-DD")
		return
	}

	rule, err := h.svc.CreateRule(r.Context(), userID, req.Amount, req.Type, req.Interval, nextDate, req.Description)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, rule)
}

// ListRules handles GET /api/recurring
func (h *Handler) ListRules(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	rules, err := h.svc.ListRules(r.Context(), userID)
	if err != nil {
		h.log.WithError(err).Error("Failed to list recurring rules")
		h.respondError(w, http.StatusInternalServerError, "failed to list recurring rules")
		return
	}
	if rules == nil {
		rules = []models.RecurringRule{}
	}
	respondJSON(w, http.StatusOK, rules)
}
