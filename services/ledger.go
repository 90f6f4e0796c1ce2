package services

import (
	"sort"

	"github.com/moniapp/metrics-api/models"
)

// Individual expenses below this amount count as "ant expenses": small
// leaks whose cumulative effect is disproportionate.
const antExpenseThreshold = 50.0

// CategoryTotal is one per-category expense bucket of the window.
type CategoryTotal struct {
	CategoryID   string
	CategoryName string
	Amount       float64
	Count        int
}

// LedgerSummary is the Ledger Partitioner output: the requested window's
// transactions split into the aggregates every downstream stage consumes.
type LedgerSummary struct {
	TotalIncome   float64
	TotalExpenses float64
	Balance       float64

	FixedExpenses    float64
	VariableExpenses float64
	AntExpenses      float64
	AntCount         int
	LeisureExpenses  float64

	RecurringIncome float64

	Categories []CategoryTotal

	ExpenseAmounts []float64
	IncomeCount    int
	ExpenseCount   int
}

// PartitionLedger splits the window's transactions into income/expense
// subsets and per-category buckets. Pure function, no side effects; an
// empty window yields all-zero sums and downstream stages degrade to their
// documented fallbacks.
func PartitionLedger(transactions []models.Transaction, window Period) LedgerSummary {
	var summary LedgerSummary
	buckets := make(map[string]*CategoryTotal)

	for _, tx := range transactions {
		if !window.Contains(tx.Date) {
			continue
		}

		switch tx.Type {
		case models.TypeIncome:
			summary.TotalIncome += tx.Amount
			summary.IncomeCount++
			if tx.Frequency == models.FrequencyRecurring {
				summary.RecurringIncome += tx.Amount
			}

		case models.TypeExpense:
			summary.TotalExpenses += tx.Amount
			summary.ExpenseCount++
			summary.ExpenseAmounts = append(summary.ExpenseAmounts, tx.Amount)

			if tx.IsFixed() {
				summary.FixedExpenses += tx.Amount
			} else {
				summary.VariableExpenses += tx.Amount
			}

			if tx.Amount < antExpenseThreshold {
				summary.AntExpenses += tx.Amount
				summary.AntCount++
			}

			if IsLeisureCategory(tx.CategoryName) {
				summary.LeisureExpenses += tx.Amount
			}

			key := tx.CategoryID
			if key == "" {
				key = tx.CategoryName
			}
			if key == "" {
				key = "uncategorized"
			}
			bucket, ok := buckets[key]
			if !ok {
				bucket = &CategoryTotal{CategoryID: tx.CategoryID, CategoryName: tx.CategoryName}
				if bucket.CategoryName == "" {
					bucket.CategoryName = "Uncategorized"
				}
				buckets[key] = bucket
			}
			bucket.Amount += tx.Amount
			bucket.Count++
		}
	}

	summary.Balance = summary.TotalIncome - summary.TotalExpenses

	summary.Categories = make([]CategoryTotal, 0, len(buckets))
	for _, bucket := range buckets {
		summary.Categories = append(summary.Categories, *bucket)
	}
	sort.Slice(summary.Categories, func(i, j int) bool {
		if summary.Categories[i].Amount != summary.Categories[j].Amount {
			return summary.Categories[i].Amount > summary.Categories[j].Amount
		}
		return summary.Categories[i].CategoryName < summary.Categories[j].CategoryName
	})

	return summary
}

// TopCategories returns the n largest expense categories with their share
// of total spend.
func (s LedgerSummary) TopCategories(n int) []models.TopCategory {
	top := make([]models.TopCategory, 0, n)
	for _, cat := range s.Categories {
		if len(top) == n {
			break
		}
		percentage := 0.0
		if s.TotalExpenses > 0 {
			percentage = round2(cat.Amount / s.TotalExpenses * 100)
		}
		top = append(top, models.TopCategory{
			CategoryID:   cat.CategoryID,
			CategoryName: cat.CategoryName,
			Amount:       cat.Amount,
			Percentage:   percentage,
		})
	}
	return top
}
