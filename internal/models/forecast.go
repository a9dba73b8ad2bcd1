package models

// ProjectionPoint represents the projected balance for a single day
type ProjectionPoint struct {
	Date    string  `json:"date"` // Format: YYYY-MM-DD
	Balance float64 `json:"balance"`
	Low     float64 `json:"low"`
	High    float64 `json:"high"`
	Band    float64 `json:"band"`
}

// ForecastStats describes the statistics behind a successful projection
type ForecastStats struct {
	RecurringCount int     `json:"recurringCount"`
	HistoryDays    int     `json:"historyDays"`
	AvailableDays  int     `json:"availableDays"`
	MinDaysReq     int     `json:"minDaysRequired"`
	MedianDailyNet float64 `json:"medianDailyNet"`
	MADDailyNet    float64 `json:"madDailyNet"`
	P95DailyNet    float64 `json:"p95DailyNet"`
	DailyBand      float64 `json:"dailyBand"`
	Summary        string  `json:"summary"`
}

// InsufficientStats is returned instead of ForecastStats when the history
// window does not contain enough active days to project from
type InsufficientStats struct {
	InsufficientData bool `json:"insufficientData"`
	MinDaysReq       int  `json:"minDaysRequired"`
	AvailableDays    int  `json:"availableDays"`
	HistoryDays      int  `json:"historyDays"`
}

// ForecastResponse is the body of GET /api/forecasting. Stats carries either
// a ForecastStats or an InsufficientStats depending on the data gate.
type ForecastResponse struct {
	Projection     []ProjectionPoint `json:"projection"`
	CurrentBalance float64           `json:"currentBalance"`
	Stats          interface{}       `json:"stats"`
}
