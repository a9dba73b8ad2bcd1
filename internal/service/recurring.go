package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/avelar/finflow/internal/forecast"
	"github.com/avelar/finflow/internal/models"
)

var validIntervals = map[string]bool{
	models.IntervalDaily:   true,
	models.IntervalWeekly:  true,
	models.IntervalMonthly: true,
	models.IntervalYearly:  true,
}

// CreateRule creates a recurring rule for the user. New rules must use a
// known interval; legacy rows with unrecognized intervals are still honored
// by the resolver, which treats them as monthly.
func (s *Service) CreateRule(ctx context.Context, userID int64, amount decimal.Decimal, ruleType, interval string, nextDate time.Time, description string) (*models.RecurringRule, error) {
	if ruleType != models.TypeIncome && ruleType != models.TypeExpense {
		return nil, fmt.Errorf("invalid rule type: %q", ruleType)
	}
	if !validIntervals[interval] {
		return nil, fmt.Errorf("invalid interval: %q", interval)
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("amount must not be negative")
	}

	rule := &models.RecurringRule{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      amount,
		Type:        ruleType,
		Interval:    interval,
		NextDate:    truncateDay(nextDate),
		Description: description,
	}
	if err := s.repo.CreateRule(ctx, rule); err != nil {
		return nil, err
	}

	s.log.Infof("Recurring rule created for user %d: %s %s %s", userID, rule.Interval, rule.Type, rule.Amount)
	return rule, nil
}

// ListRules returns all of the user's recurring rules
func (s *Service) ListRules(ctx context.Context, userID int64) ([]models.RecurringRule, error) {
	return s.repo.ListRulesByUser(ctx, userID)
}

// RolloverDueRules advances every rule whose next occurrence has passed to
// its first occurrence on or after today. The advance uses the same interval
// arithmetic as the forecast resolver so stored schedules and projected
// occurrences never diverge.
func (s *Service) RolloverDueRules(ctx context.Context, now time.Time) (int, error) {
	today := truncateDay(now)
	due, err := s.repo.ListDueRules(ctx, today)
	if err != nil {
		return 0, err
	}

	rolled := 0
	for _, rule := range due {
		next := forecast.RollForward(rule.NextDate, rule.Interval, today)
		if err := s.repo.UpdateRuleNextDate(ctx, rule.ID, next); err != nil {
			s.log.WithError(err).WithField("rule_id", rule.ID).Error("Failed to roll recurring rule forward")
			continue
		}
		rolled++
	}

	if rolled > 0 {
		s.log.WithField("count", rolled).Info("Recurring rules rolled forward")
	}
	return rolled, nil
}

// SendUpcomingReminders emails users about recurring payments due in the
// next three days. Failures are logged and skipped; reminders never block
// the rollover job.
func (s *Service) SendUpcomingReminders(ctx context.Context, now time.Time) error {
	if s.mailer == nil {
		return nil
	}

	from := truncateDay(now)
	to := from.AddDate(0, 0, 3)
	reminders, err := s.repo.ListUpcomingReminders(ctx, from, to)
	if err != nil {
		return err
	}

	for _, rem := range reminders {
		if err := s.mailer.SendRecurringReminder(rem.Email, rem.Username, rem.Rule); err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"rule_id": rem.Rule.ID,
				"email":   rem.Email,
			}).Error("Failed to send payment reminder")
		}
	}
	return nil
}
