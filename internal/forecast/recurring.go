package forecast

import "time"

// Rule is a recurring cashflow schedule as seen by the resolver. Anchor is
// the stored next-due date; it may lie far in the past or beyond the
// projection window.
type Rule struct {
	Anchor   time.Time
	Interval string // daily|weekly|monthly|yearly
	Amount   float64
	Expense  bool
}

// DayTotals accumulates the recurring occurrences landing on one date.
type DayTotals struct {
	Income  float64
	Expense float64
}

// NextOccurrence advances a date by one interval using calendar arithmetic.
// AddDate normalizes month overflow, so a monthly rule anchored on the 31st
// drifts through short months (Jan 31 + 1 month lands in early March).
// Existing schedules depend on that drift; it must not be corrected here.
// Unrecognized intervals advance as monthly.
func NextOccurrence(date time.Time, interval string) time.Time {
	switch interval {
	case "daily":
		return date.AddDate(0, 0, 1)
	case "weekly":
		return date.AddDate(0, 0, 7)
	case "yearly":
		return date.AddDate(1, 0, 0)
	default:
		return date.AddDate(0, 1, 0)
	}
}

// RollForward advances a past-due date to its first occurrence not before
// today. Dates already at or past today are returned unchanged. The resolver
// and the rule-rollover job share this so their schedules never diverge.
func RollForward(next time.Time, interval string, today time.Time) time.Time {
	next = midnight(next)
	today = midnight(today)
	for next.Before(today) {
		next = NextOccurrence(next, interval)
	}
	return next
}

// ResolveRecurring maps each calendar date in [from, to] to the recurring
// totals landing on it. Anchors in the past are walked forward into the
// window with the same loop that walks occurrences through it; anchors
// beyond the window contribute nothing.
func ResolveRecurring(rules []Rule, from, to time.Time) map[string]DayTotals {
	from = midnight(from)
	to = midnight(to)

	occurrences := make(map[string]DayTotals)
	for _, r := range rules {
		d := midnight(r.Anchor)
		for d.Before(from) {
			d = NextOccurrence(d, r.Interval)
		}
		for !d.After(to) {
			k := dayKey(d)
			totals := occurrences[k]
			if r.Expense {
				totals.Expense += r.Amount
			} else {
				totals.Income += r.Amount
			}
			occurrences[k] = totals
			d = NextOccurrence(d, r.Interval)
		}
	}
	return occurrences
}
