package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avelar/finflow/internal/models"
)

// RuleReminder pairs a due recurring rule with its owner's contact details
type RuleReminder struct {
	Rule     models.RecurringRule
	Email    string
	Username string
}

// CreateRule inserts a new recurring rule
func (r *Repository) CreateRule(ctx context.Context, rule *models.RecurringRule) error {
	query := `
		INSERT INTO finflow.recurring_rules (id, user_id, amount, type, interval_unit, next_date, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		rule.ID, rule.UserID, rule.Amount, rule.Type, rule.Interval, rule.NextDate, rule.Description).
		Scan(&rule.CreatedAt, &rule.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create recurring rule: %w", err)
	}
	return nil
}

// ListRulesByUser returns all of a user's recurring rules
func (r *Repository) ListRulesByUser(ctx context.Context, userID int64) ([]models.RecurringRule, error) {
	query := `
		SELECT id, user_id, amount, type, interval_unit, next_date, description, created_at, updated_at
		FROM finflow.recurring_rules
		WHERE user_id = $1
		ORDER BY next_date`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring rules: %w", err)
	}
	defer rows.Close()
	return scanRules(rows)
}

// ListDueRules returns every rule whose next occurrence is before asOf,
// across all users. Used by the rollover job.
func (r *Repository) ListDueRules(ctx context.Context, asOf time.Time) ([]models.RecurringRule, error) {
	query := `
		SELECT id, user_id, amount, type, interval_unit, next_date, description, created_at, updated_at
		FROM finflow.recurring_rules
		WHERE next_date < $1`
	rows, err := r.db.QueryContext(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list due rules: %w", err)
	}
	defer rows.Close()
	return scanRules(rows)
}

// ListUpcomingReminders returns rules due in [from, to) joined with their
// owner's email
func (r *Repository) ListUpcomingReminders(ctx context.Context, from, to time.Time) ([]RuleReminder, error) {
	query := `
		SELECT rr.id, rr.user_id, rr.amount, rr.type, rr.interval_unit, rr.next_date,
		       rr.description, rr.created_at, rr.updated_at, u.email, u.username
		FROM finflow.recurring_rules rr
		JOIN finflow.users u ON u.id = rr.user_id
		WHERE rr.next_date >= $1 AND rr.next_date < $2`
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming reminders: %w", err)
	}
	defer rows.Close()

	var reminders []RuleReminder
	for rows.Next() {
		var rem RuleReminder
		if err := rows.Scan(&rem.Rule.ID, &rem.Rule.UserID, &rem.Rule.Amount, &rem.Rule.Type,
			&rem.Rule.Interval, &rem.Rule.NextDate, &rem.Rule.Description,
			&rem.Rule.CreatedAt, &rem.Rule.UpdatedAt, &rem.Email, &rem.Username); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		reminders = append(reminders, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read reminders: %w", err)
	}
	return reminders, nil
}

// UpdateRuleNextDate moves a rule's next occurrence forward
func (r *Repository) UpdateRuleNextDate(ctx context.Context, id uuid.UUID, nextDate time.Time) error {
	query := `
		UPDATE finflow.recurring_rules
		SET next_date = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, nextDate); err != nil {
		return fmt.Errorf("failed to update rule next date: %w", err)
	}
	return nil
}

func scanRules(rows *sql.Rows) ([]models.RecurringRule, error) {
	var rules []models.RecurringRule
	for rows.Next() {
		var rule models.RecurringRule
		if err := rows.Scan(&rule.ID, &rule.UserID, &rule.Amount, &rule.Type, &rule.Interval,
			&rule.NextDate, &rule.Description, &rule.CreatedAt, &rule.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recurring rule: %w", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recurring rules: %w", err)
	}
	return rules, nil
}
