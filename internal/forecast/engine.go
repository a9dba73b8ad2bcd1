package forecast

import (
	"math"
	"time"
)

// Input bundles everything one projection needs. Now is injected by the
// caller so the computation is reproducible under test.
type Input struct {
	Now     time.Time
	Balance float64 // all-time income minus expense
	History []Entry // transactions from the last HistoryDays
	Rules   []Rule
	Months  int
}

// Point is the projected balance for one simulated day.
type Point struct {
	Date    time.Time
	Balance float64
	Low     float64
	High    float64
	Band    float64
}

// Result carries either a full projection or the insufficient-data outcome.
type Result struct {
	Points           []Point
	Stats            Stats
	InsufficientData bool
	AvailableDays    int
	RecurringCount   int
}

// ClampMonths normalizes a requested horizon: non-positive values fall back
// to the default, anything above the maximum is clamped.
func ClampMonths(months int) int {
	if months <= 0 {
		return DefaultHorizonMonths
	}
	if months > MaxHorizonMonths {
		return MaxHorizonMonths
	}
	return months
}

// Project runs the full pipeline: aggregate history into a daily net series,
// derive robust statistics, resolve recurring occurrences over the horizon,
// then walk day by day from today through today+months accumulating baseline,
// seasonal and recurring contributions into a balance with low/high bounds.
//
// If the history window holds fewer than MinDaysRequired active days the
// simulation never runs and the result reports insufficient data instead.
func Project(in Input) Result {
	months := ClampMonths(in.Months)

	series, activeDays := BuildDailySeries(in.History, in.Now)
	if activeDays < MinDaysRequired {
		return Result{InsufficientData: true, AvailableDays: activeDays}
	}

	stats := ComputeStats(series)

	today := midnight(in.Now)
	end := today.AddDate(0, months, 0)
	recurring := ResolveRecurring(in.Rules, today, end)

	balance := in.Balance
	low := in.Balance
	high := in.Balance

	points := make([]Point, 0, int(end.Sub(today).Hours()/24)+1)
	for d := today; !d.After(end); d = d.AddDate(0, 0, 1) {
		baseline := stats.WeekdayAverages[int(d.Weekday())]
		balance += baseline
		low += baseline - stats.DailyBand
		high += baseline + stats.DailyBand

		// Recurring occurrences are treated as certain: they shift all three
		// accumulators identically and do not widen the band.
		if totals, ok := recurring[dayKey(d)]; ok {
			net := totals.Income - totals.Expense
			balance += net
			low += net
			high += net
		}

		points = append(points, Point{
			Date:    d,
			Balance: round2(balance),
			Low:     round2(low),
			High:    round2(high),
			Band:    round2(high - low),
		})
	}

	return Result{
		Points:         points,
		Stats:          stats,
		AvailableDays:  activeDays,
		RecurringCount: len(in.Rules),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
