package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/avelar/finflow/internal/middleware"
	"github.com/avelar/finflow/internal/models"
)

// Service is the business-logic surface the handlers depend on
type Service interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	Forecast(ctx context.Context, userID int64, months int, now time.Time) (*models.ForecastResponse, error)
	CreateTransaction(ctx context.Context, userID int64, amount decimal.Decimal, txType, description string, occurredOn time.Time) (*models.Transaction, error)
	ListTransactions(ctx context.Context, userID int64, from, to time.Time) ([]models.Transaction, error)
	CreateRule(ctx context.Context, userID int64, amount decimal.Decimal, ruleType, interval string, nextDate time.Time, description string) (*models.RecurringRule, error)
	ListRules(ctx context.Context, userID int64) ([]models.RecurringRule, error)
}

type Handler struct {
	svc Service
	log *logrus.Logger
}

func NewHandler(svc Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Health handles the liveness probe
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// userID extracts the authenticated user id set by the auth middleware,
// writing a 401 response when it is absent
func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "unauthorized")
	}
	return id, ok
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
