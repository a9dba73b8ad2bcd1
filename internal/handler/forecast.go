package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/avelar/finflow/internal/forecast"
)

// Forecast handles GET /api/forecasting
func (h *Handler) Forecast(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	months := parseMonths(r.URL.Query().Get("months"))
	resp, err := h.svc.Forecast(r.Context(), userID, months, time.Now())
	if err != nil {
		h.log.WithError(err).Error("Failed to compute forecast")
		h.respondError(w, http.StatusInternalServerError, "failed to compute forecast")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// parseMonths leniently normalizes the months query parameter: anything that
// is not a positive integer falls back to the default horizon and values
// above the maximum are clamped. Bad input is never rejected.
func parseMonths(raw string) int {
	months := forecast.DefaultHorizonMonths
	if n, err := strconv.Atoi(raw); err == nil {
		months = n
	}
	return forecast.ClampMonths(months)
}
