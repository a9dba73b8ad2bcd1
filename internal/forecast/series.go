package forecast

import "time"

// Tuning constants for the projection pipeline. HistoryDays and
// MinDaysRequired are fixed; they are reported back to callers in the
// response stats.
const (
	HistoryDays          = 180
	MinDaysRequired      = 60
	DefaultHorizonMonths = 6
	MaxHorizonMonths     = 36

	bandMultiplier = 1.5
)

// Entry is a single dated cashflow as seen by the engine. Amount is signed:
// income positive, expense negative. Time of day is ignored.
type Entry struct {
	Date   time.Time
	Amount float64
}

// DailyNet is the signed net cashflow of one calendar day.
type DailyNet struct {
	Date time.Time
	Net  float64
}

// BuildDailySeries reduces entries to one net value per calendar day over the
// half-open window [now-HistoryDays, now), zero-filling days without
// activity. activeDays counts days that had at least one entry; a day whose
// entries cancel to net zero is still active.
func BuildDailySeries(entries []Entry, now time.Time) (series []DailyNet, activeDays int) {
	end := midnight(now)
	start := end.AddDate(0, 0, -HistoryDays)

	nets := make(map[string]float64)
	active := make(map[string]struct{})
	for _, e := range entries {
		d := midnight(e.Date)
		if d.Before(start) || !d.Before(end) {
			continue
		}
		k := dayKey(d)
		nets[k] += e.Amount
		active[k] = struct{}{}
	}

	series = make([]DailyNet, 0, HistoryDays)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		series = append(series, DailyNet{Date: d, Net: nets[dayKey(d)]})
	}
	return series, len(active)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
