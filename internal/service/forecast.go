package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/avelar/finflow/internal/forecast"
	"github.com/avelar/finflow/internal/models"
)

// forecastSummary is the fixed method description returned with every
// successful projection.
const forecastSummary = "Daily balance projection from 180 days of history: " +
	"outlier-capped median daily net with weekday seasonality, a 1.5x MAD " +
	"confidence band per day, and scheduled recurring transactions applied " +
	"as certain."

// Forecast computes the probabilistic balance projection for a user. The
// caller supplies now so the computation is reproducible; months is
// normalized by the engine.
func (s *Service) Forecast(ctx context.Context, userID int64, months int, now time.Time) (*models.ForecastResponse, error) {
	today := truncateDay(now)
	historyStart := today.AddDate(0, 0, -forecast.HistoryDays)

	// Single fan-out for the three store reads; the computation after this
	// point is synchronous and does not suspend.
	var (
		wg       sync.WaitGroup
		balance  decimal.Decimal
		history  []models.Transaction
		rules    []models.RecurringRule
		balErr   error
		histErr  error
		rulesErr error
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		balance, balErr = s.repo.NetBalance(ctx, userID)
	}()
	go func() {
		defer wg.Done()
		history, histErr = s.repo.ListTransactionsByPeriod(ctx, userID, historyStart, today)
	}()
	go func() {
		defer wg.Done()
		rules, rulesErr = s.repo.ListRulesByUser(ctx, userID)
	}()
	wg.Wait()

	for _, err := range []error{balErr, histErr, rulesErr} {
		if err != nil {
			return nil, fmt.Errorf("failed to load forecast inputs: %w", err)
		}
	}

	entries := make([]forecast.Entry, 0, len(history))
	for _, tx := range history {
		amount := tx.Amount.InexactFloat64()
		if tx.Type == models.TypeExpense {
			amount = -amount
		}
		entries = append(entries, forecast.Entry{Date: tx.OccurredOn, Amount: amount})
	}

	forecastRules := make([]forecast.Rule, 0, len(rules))
	for _, rule := range rules {
		forecastRules = append(forecastRules, forecast.Rule{
			Anchor:   rule.NextDate,
			Interval: rule.Interval,
			Amount:   rule.Amount.InexactFloat64(),
			Expense:  rule.Type == models.TypeExpense,
		})
	}

	result := forecast.Project(forecast.Input{
		Now:     now,
		Balance: balance.InexactFloat64(),
		History: entries,
		Rules:   forecastRules,
		Months:  months,
	})

	resp := &models.ForecastResponse{
		Projection:     []models.ProjectionPoint{},
		CurrentBalance: balance.InexactFloat64(),
	}

	if result.InsufficientData {
		resp.Stats = models.InsufficientStats{
			InsufficientData: true,
			MinDaysReq:       forecast.MinDaysRequired,
			AvailableDays:    result.AvailableDays,
			HistoryDays:      forecast.HistoryDays,
		}
		s.log.WithFields(logrus.Fields{
			"user_id":        userID,
			"available_days": result.AvailableDays,
		}).Info("Forecast skipped: insufficient history")
		return resp, nil
	}

	for _, p := range result.Points {
		resp.Projection = append(resp.Projection, models.ProjectionPoint{
			Date:    p.Date.Format("2006-01-02"),
			Balance: p.Balance,
			Low:     p.Low,
			High:    p.High,
			Band:    p.Band,
		})
	}
	resp.Stats = models.ForecastStats{
		RecurringCount: result.RecurringCount,
		HistoryDays:    forecast.HistoryDays,
		AvailableDays:  result.AvailableDays,
		MinDaysReq:     forecast.MinDaysRequired,
		MedianDailyNet: result.Stats.MedianNet,
		MADDailyNet:    result.Stats.MAD,
		P95DailyNet:    result.Stats.P95Net,
		DailyBand:      result.Stats.DailyBand,
		Summary:        forecastSummary,
	}

	s.log.WithFields(logrus.Fields{
		"user_id": userID,
		"months":  forecast.ClampMonths(months),
		"points":  len(resp.Projection),
	}).Info("Forecast computed")
	return resp, nil
}
