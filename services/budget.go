package services

import "github.com/moniapp/metrics-api/models"

// ============================================================================
// BUDGET TRACKER
// Period spend per category against configured monthly budgets. No budgets
// configured is a normal state (hasBudgets=false, empty list), never an
// error.
// ============================================================================

// TrackBudgets compares each configured category budget against the spend
// recorded in the partitioned ledger. Entries with a zero budget are
// excluded: percent-used is meaningless against a zero cap.
func TrackBudgets(budgets []models.CategoryBudget, ledger LedgerSummary) models.BudgetProgress {
	progress := models.BudgetProgress{
		HasBudgets: len(budgets) > 0,
		Categories: []models.CategoryProgress{},
	}

	spentByCategory := make(map[string]float64, len(ledger.Categories))
	for _, cat := range ledger.Categories {
		if cat.CategoryID != "" {
			spentByCategory[cat.CategoryID] = cat.Amount
		}
		spentByCategory[cat.CategoryName] = cat.Amount
	}

	for _, budget := range budgets {
		if budget.MonthlyBudget <= 0 {
			continue
		}

		spent, ok := spentByCategory[budget.CategoryID]
		if !ok {
			spent = spentByCategory[budget.CategoryName]
		}

		percentUsed := round2(spent / budget.MonthlyBudget * 100)
		progress.Categories = append(progress.Categories, models.CategoryProgress{
			CategoryID:   budget.CategoryID,
			CategoryName: budget.CategoryName,
			Budget:       budget.MonthlyBudget,
			Spent:        spent,
			PercentUsed:  percentUsed,
			OverBudget:   percentUsed > 100,
		})
	}

	return progress
}
