package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/avelar/finflow/internal/models"
)

// CreateTransaction inserts a new transaction
func (r *Repository) CreateTransaction(ctx context.Context, tx *models.Transaction) error {
	query := `
		INSERT INTO finflow.transactions (id, user_id, amount, type, description, occurred_on)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query,
		tx.ID, tx.UserID, tx.Amount, tx.Type, tx.Description, tx.OccurredOn).
		Scan(&tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// ListTransactionsByPeriod returns a user's transactions dated in the
// half-open interval [from, to), oldest first
func (r *Repository) ListTransactionsByPeriod(ctx context.Context, userID int64, from, to time.Time) ([]models.Transaction, error) {
	query := `
		SELECT id, user_id, amount, type, description, occurred_on, created_at
		FROM finflow.transactions
		WHERE user_id = $1 AND occurred_on >= $2 AND occurred_on < $3
		ORDER BY occurred_on`
	rows, err := r.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.Transaction
	for rows.Next() {
		var tx models.Transaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Amount, &tx.Type, &tx.Description, &tx.OccurredOn, &tx.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions: %w", err)
	}
	return transactions, nil
}

// NetBalance returns the user's all-time income minus expense as a single
// aggregate query
func (r *Repository) NetBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN type = 'income' THEN amount ELSE -amount END), 0)
		FROM finflow.transactions
		WHERE user_id = $1`
	var balance decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute net balance: %w", err)
	}
	return balance, nil
}
