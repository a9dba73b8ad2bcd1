package forecast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatHistory returns entries for the given number of consecutive days just
// before now, each day active but netting to zero (+50 income, -50 expense).
func flatHistory(days int, now time.Time) []Entry {
	entries := make([]Entry, 0, days*2)
	for i := 1; i <= days; i++ {
		d := now.AddDate(0, 0, -i)
		entries = append(entries, Entry{Date: d, Amount: 50}, Entry{Date: d, Amount: -50})
	}
	return entries
}

func TestBuildDailySeries(t *testing.T) {
	now := time.Date(2026, 9, 1, 14, 45, 0, 0, time.UTC)
	entries := []Entry{
		{Date: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC), Amount: 120},
		{Date: time.Date(2026, 8, 30, 18, 30, 0, 0, time.UTC), Amount: -120},
		{Date: time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC), Amount: -40},
		{Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Amount: 999}, // before window
		{Date: time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC), Amount: 999}, // today is excluded
	}

	series, activeDays := BuildDailySeries(entries, now)
	require.Len(t, series, HistoryDays)

	// contiguous, one day apart, ending the day before now
	for i := 1; i < len(series); i++ {
		assert.Equal(t, series[i-1].Date.AddDate(0, 0, 1), series[i].Date)
	}
	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), series[len(series)-1].Date)

	// a day whose entries cancel out is active with net zero
	assert.Equal(t, 2, activeDays)
	byDay := make(map[string]float64)
	for _, d := range series {
		byDay[d.Date.Format("2006-01-02")] = d.Net
	}
	assert.Equal(t, 0.0, byDay["2026-08-30"])
	assert.Equal(t, -40.0, byDay["2026-08-29"])
	assert.Equal(t, 0.0, byDay["2026-08-28"]) // gap filled with zero
}

func TestClampMonths(t *testing.T) {
	assert.Equal(t, 6, ClampMonths(0))
	assert.Equal(t, 6, ClampMonths(-5))
	assert.Equal(t, 36, ClampMonths(999))
	assert.Equal(t, 12, ClampMonths(12))
	assert.Equal(t, 1, ClampMonths(1))
	assert.Equal(t, 36, ClampMonths(36))
}

func TestProjectGateBoundary(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	res := Project(Input{Now: now, History: flatHistory(MinDaysRequired-1, now), Months: 6})
	assert.True(t, res.InsufficientData)
	assert.Equal(t, MinDaysRequired-1, res.AvailableDays)
	assert.Empty(t, res.Points)

	res = Project(Input{Now: now, History: flatHistory(MinDaysRequired, now), Months: 6})
	assert.False(t, res.InsufficientData)
	assert.Equal(t, MinDaysRequired, res.AvailableDays)
	assert.NotEmpty(t, res.Points)
}

func TestProjectEmptyHistory(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	for _, months := range []int{1, 6, 36} {
		res := Project(Input{Now: now, Balance: 1000, Months: months})
		assert.True(t, res.InsufficientData)
		assert.Equal(t, 0, res.AvailableDays)
		assert.Empty(t, res.Points)
	}
}

func TestProjectDateSequence(t *testing.T) {
	now := time.Date(2026, 9, 1, 11, 0, 0, 0, time.UTC)
	res := Project(Input{Now: now, History: flatHistory(90, now), Months: 6})
	require.False(t, res.InsufficientData)

	today := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := today.AddDate(0, 6, 0)
	wantLen := int(end.Sub(today).Hours()/24) + 1
	require.Len(t, res.Points, wantLen)

	assert.Equal(t, today, res.Points[0].Date)
	assert.Equal(t, end, res.Points[len(res.Points)-1].Date)
	for i := 1; i < len(res.Points); i++ {
		assert.Equal(t, res.Points[i-1].Date.AddDate(0, 0, 1), res.Points[i].Date)
	}
}

func TestProjectBandOrdering(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	// noisy history: alternating inflows and outflows of varying size
	entries := make([]Entry, 0, 120)
	for i := 1; i <= 120; i++ {
		amount := float64(30 + (i%7)*25)
		if i%2 == 0 {
			amount = -amount
		}
		entries = append(entries, Entry{Date: now.AddDate(0, 0, -i), Amount: amount})
	}

	res := Project(Input{Now: now, Balance: 2500, History: entries, Rules: []Rule{
		{Anchor: now, Interval: "monthly", Amount: 900, Expense: true},
	}, Months: 36})
	require.False(t, res.InsufficientData)

	for _, p := range res.Points {
		assert.LessOrEqual(t, p.Low, p.Balance+0.01, p.Date)
		assert.LessOrEqual(t, p.Balance, p.High+0.01, p.Date)
		assert.InDelta(t, p.High-p.Low, p.Band, 0.02, p.Date)
	}
}

func TestProjectRecurringInjection(t *testing.T) {
	// flat history: median 0, MAD 0, band 0; the only movement comes from a
	// monthly 1000 expense anchored today
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	res := Project(Input{
		Now:     now,
		Balance: 5000,
		History: flatHistory(120, now),
		Rules:   []Rule{{Anchor: now, Interval: "monthly", Amount: 1000, Expense: true}},
		Months:  6,
	})
	require.False(t, res.InsufficientData)
	assert.Equal(t, 1, res.RecurringCount)

	occurrences := map[string]bool{
		"2026-09-01": true, "2026-10-01": true, "2026-11-01": true,
		"2026-12-01": true, "2027-01-01": true, "2027-02-01": true, "2027-03-01": true,
	}

	expected := 5000.0
	for _, p := range res.Points {
		if occurrences[p.Date.Format("2006-01-02")] {
			expected -= 1000
		}
		assert.Equal(t, expected, p.Balance, p.Date)
		assert.Equal(t, expected, p.Low, p.Date)
		assert.Equal(t, expected, p.High, p.Date)
		assert.Equal(t, 0.0, p.Band, p.Date)
	}
	assert.Equal(t, -2000.0, res.Points[len(res.Points)-1].Balance)
}
