package services

import (
	"sort"
	"time"

	"github.com/moniapp/metrics-api/models"
)

// ============================================================================
// HISTORICAL AVERAGER
// Trailing monthly-balance averages over 12/60/120 completed months. The
// in-progress month is never closed, so it is excluded from every average.
// ============================================================================

// MonthlyBalances groups the trailing ledger by calendar month and returns
// one balance per month that has at least one transaction, ascending by
// month key. The month containing now is dropped.
func MonthlyBalances(transactions []models.Transaction, now time.Time) []models.MonthlyBalance {
	currentKey := now.Format("2006-01")
	byMonth := make(map[string]*models.MonthlyBalance)

	for _, tx := range transactions {
		key := tx.MonthKey()
		if key == currentKey {
			continue
		}
		entry, ok := byMonth[key]
		if !ok {
			entry = &models.MonthlyBalance{MonthKey: key}
			byMonth[key] = entry
		}
		switch tx.Type {
		case models.TypeIncome:
			entry.Income += tx.Amount
		case models.TypeExpense:
			entry.Expenses += tx.Amount
		}
	}

	balances := make([]models.MonthlyBalance, 0, len(byMonth))
	for _, entry := range byMonth {
		entry.Balance = entry.Income - entry.Expenses
		balances = append(balances, *entry)
	}
	sort.Slice(balances, func(i, j int) bool {
		return balances[i].MonthKey < balances[j].MonthKey
	})
	return balances
}

// AverageBalances computes the trailing 12/60/120-month means of the closed
// monthly balances. With zero completed months every horizon falls back to
// the in-window balance, so forecasting still has a growth assumption.
func AverageBalances(balances []models.MonthlyBalance, currentBalance float64) models.HistoricalAverages {
	if len(balances) == 0 {
		return models.HistoricalAverages{
			Avg12:  currentBalance,
			Avg60:  currentBalance,
			Avg120: currentBalance,
		}
	}

	return models.HistoricalAverages{
		Avg12:       trailingMean(balances, 12),
		Avg60:       trailingMean(balances, 60),
		Avg120:      trailingMean(balances, 120),
		MonthsKnown: len(balances),
	}
}

// trailingMean averages the balance of the most recent n months (or fewer
// when history is short). balances must be ascending by month key.
func trailingMean(balances []models.MonthlyBalance, n int) float64 {
	start := len(balances) - n
	if start < 0 {
		start = 0
	}
	window := balances[start:]

	var sum float64
	for _, b := range window {
		sum += b.Balance
	}
	return sum / float64(len(window))
}
