package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Recurring rule intervals
const (
	IntervalDaily   = "daily"
	IntervalWeekly  = "weekly"
	IntervalMonthly = "monthly"
	IntervalYearly  = "yearly"
)

// RecurringRule represents a scheduled repeating income or expense.
// NextDate is the next due occurrence; it is rolled forward by the
// scheduler once the date has passed.
type RecurringRule struct {
	ID          uuid.UUID       `json:"id"`
	UserID      int64           `json:"user_id"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`     // "income" or "expense"
	Interval    string          `json:"interval"` // daily|weekly|monthly|yearly
	NextDate    time.Time       `json:"next_date"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
