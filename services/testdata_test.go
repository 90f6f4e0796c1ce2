package services

import (
	"time"

	"github.com/moniapp/metrics-api/models"
)

// Fixed clock for every deterministic test: mid-March so month arithmetic
// never overflows at month ends.
var testNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func tx(txType string, amount float64, date time.Time) models.Transaction {
	return models.Transaction{
		ID:     "tx-" + date.Format("20060102") + "-" + txType,
		UserID: "user-1",
		Type:   txType,
		Amount: amount,
		Date:   date,
	}
}

func expenseIn(category string, amount float64, date time.Time) models.Transaction {
	t := tx(models.TypeExpense, amount, date)
	t.CategoryID = "cat-" + category
	t.CategoryName = category
	return t
}

func recurringExpense(category string, amount float64, date time.Time) models.Transaction {
	t := expenseIn(category, amount, date)
	t.Frequency = models.FrequencyRecurring
	return t
}

// monthlyHistory builds count closed months ending the month before
// testNow, each with one income and one expense transaction.
func monthlyHistory(count int, income, expense float64) []models.Transaction {
	var transactions []models.Transaction
	for i := 1; i <= count; i++ {
		monthStart := time.Date(testNow.Year(), testNow.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
		transactions = append(transactions,
			tx(models.TypeIncome, income, monthStart.AddDate(0, 0, 1)),
			tx(models.TypeExpense, expense, monthStart.AddDate(0, 0, 10)),
		)
	}
	return transactions
}
