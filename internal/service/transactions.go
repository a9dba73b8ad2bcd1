package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/avelar/finflow/internal/models"
)

// CreateTransaction records a new income or expense for the user
func (s *Service) CreateTransaction(ctx context.Context, userID int64, amount decimal.Decimal, txType, description string, occurredOn time.Time) (*models.Transaction, error) {
	if txType != models.TypeIncome && txType != models.TypeExpense {
		return nil, fmt.Errorf("invalid transaction type: %q", txType)
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("amount must not be negative")
	}

	tx := &models.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      amount,
		Type:        txType,
		Description: description,
		OccurredOn:  truncateDay(occurredOn),
	}
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	s.log.Infof("Transaction recorded for user %d: %s %s", userID, tx.Type, tx.Amount)
	return tx, nil
}

// ListTransactions returns the user's transactions in [from, to)
func (s *Service) ListTransactions(ctx context.Context, userID int64, from, to time.Time) ([]models.Transaction, error) {
	if from.After(to) {
		return nil, fmt.Errorf("start date is after end date")
	}
	return s.repo.ListTransactionsByPeriod(ctx, userID, truncateDay(from), truncateDay(to))
}
