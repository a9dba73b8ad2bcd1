package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelar/finflow/internal/middleware"
	"github.com/avelar/finflow/internal/models"
)

type stubService struct {
	forecastFn func(ctx context.Context, userID int64, months int, now time.Time) (*models.ForecastResponse, error)
}

func (s *stubService) Forecast(ctx context.Context, userID int64, months int, now time.Time) (*models.ForecastResponse, error) {
	return s.forecastFn(ctx, userID, months, now)
}

func (s *stubService) Register(context.Context, string, string, string) (*models.User, error) {
	return nil, errors.New("not implemented")
}

func (s *stubService) Login(context.Context, string, string) (string, error) {
	return "", errors.New("not implemented")
}

func (s *stubService) CreateTransaction(context.Context, int64, decimal.Decimal, string, string, time.Time) (*models.Transaction, error) {
	return nil, errors.New("not implemented")
}

func (s *stubService) ListTransactions(context.Context, int64, time.Time, time.Time) ([]models.Transaction, error) {
	return nil, errors.New("not implemented")
}

func (s *stubService) CreateRule(context.Context, int64, decimal.Decimal, string, string, time.Time, string) (*models.RecurringRule, error) {
	return nil, errors.New("not implemented")
}

func (s *stubService) ListRules(context.Context, int64) ([]models.RecurringRule, error) {
	return nil, errors.New("not implemented")
}

func newTestLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func authedRequest(target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return req.WithContext(middleware.ContextWithUserID(req.Context(), 7))
}

func TestParseMonths(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 6},
		{"abc", 6},
		{"0", 6},
		{"-5", 6},
		{"1", 1},
		{"12", 12},
		{"36", 36},
		{"999", 36},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseMonths(tt.raw), "months=%q", tt.raw)
	}
}

func TestForecastSufficientData(t *testing.T) {
	svc := &stubService{
		forecastFn: func(ctx context.Context, userID int64, months int, now time.Time) (*models.ForecastResponse, error) {
			assert.Equal(t, int64(7), userID)
			assert.Equal(t, 12, months)
			return &models.ForecastResponse{
				Projection: []models.ProjectionPoint{
					{Date: "2026-09-01", Balance: 4000, Low: 3990, High: 4010, Band: 20},
				},
				CurrentBalance: 5000,
				Stats: models.ForecastStats{
					RecurringCount: 2,
					HistoryDays:    180,
					AvailableDays:  91,
					MinDaysReq:     60,
					MedianDailyNet: -12.5,
					MADDailyNet:    8,
					P95DailyNet:    140,
					DailyBand:      12,
					Summary:        "method description",
				},
			}, nil
		},
	}
	h := NewHandler(svc, newTestLogger())

	rec := httptest.NewRecorder()
	h.Forecast(rec, authedRequest("/api/forecasting?months=12"))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Projection     []models.ProjectionPoint `json:"projection"`
		CurrentBalance float64                  `json:"currentBalance"`
		Stats          map[string]interface{}   `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 5000.0, body.CurrentBalance)
	require.Len(t, body.Projection, 1)
	assert.Equal(t, "2026-09-01", body.Projection[0].Date)

	assert.Equal(t, float64(180), body.Stats["historyDays"])
	assert.Equal(t, float64(60), body.Stats["minDaysRequired"])
	assert.Equal(t, -12.5, body.Stats["medianDailyNet"])
	assert.Equal(t, "method description", body.Stats["summary"])
	assert.NotContains(t, body.Stats, "insufficientData")
}

func TestForecastInsufficientData(t *testing.T) {
	svc := &stubService{
		forecastFn: func(ctx context.Context, userID int64, months int, now time.Time) (*models.ForecastResponse, error) {
			return &models.ForecastResponse{
				Projection:     []models.ProjectionPoint{},
				CurrentBalance: 250,
				Stats: models.InsufficientStats{
					InsufficientData: true,
					MinDaysReq:       60,
					AvailableDays:    14,
					HistoryDays:      180,
				},
			}, nil
		},
	}
	h := NewHandler(svc, newTestLogger())

	rec := httptest.NewRecorder()
	h.Forecast(rec, authedRequest("/api/forecasting"))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Projection []models.ProjectionPoint `json:"projection"`
		Stats      map[string]interface{}   `json:"stats"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Projection)
	assert.Equal(t, true, body.Stats["insufficientData"])
	assert.Equal(t, float64(14), body.Stats["availableDays"])
	assert.NotContains(t, body.Stats, "summary")
}

func TestForecastServiceError(t *testing.T) {
	svc := &stubService{
		forecastFn: func(ctx context.Context, userID int64, months int, now time.Time) (*models.ForecastResponse, error) {
			return nil, errors.New("store unavailable")
		},
	}
	h := NewHandler(svc, newTestLogger())

	rec := httptest.NewRecorder()
	h.Forecast(rec, authedRequest("/api/forecasting"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "failed to compute forecast", body["error"])
}

func TestForecastWithoutUser(t *testing.T) {
	h := NewHandler(&stubService{}, newTestLogger())

	rec := httptest.NewRecorder()
	h.Forecast(rec, httptest.NewRequest(http.MethodGet, "/api/forecasting", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
