package services

import (
	"fmt"
	"sort"

	"github.com/moniapp/metrics-api/models"
)

// ============================================================================
// SUGGESTION ENGINE
// Threshold rules over the computed metrics producing ranked savings
// actions. Deterministic: also serves as the fallback when the narrative
// collaborator is unavailable.
// ============================================================================

type SuggestionService struct{}

func NewSuggestionService() *SuggestionService {
	return &SuggestionService{}
}

// RankActions evaluates every rule against the metrics and returns the
// actions ordered by potential savings, highest first.
func (s *SuggestionService) RankActions(metrics models.FinancialMetrics, budgets models.BudgetProgress) []models.TopAction {
	var actions []models.TopAction

	// Ant expenses: small leaks with a disproportionate cumulative effect.
	if metrics.AntExpenses > 0 && metrics.AntExpensesPercentage > 5 {
		actions = append(actions, models.TopAction{
			Title: "Plug your small leaks",
			Description: fmt.Sprintf("Purchases under $%.0f add up to %.2f this period (%.1f%% of monthly income). Cutting half of them is an easy win.",
				antExpenseThreshold, metrics.AntExpenses, metrics.AntExpensesPercentage),
			PotentialSavings: round2(metrics.AntExpenses * 0.5),
		})
	}

	// Leisure share above a third of spend.
	if metrics.LeisureExpensesPercentage > 30 {
		actions = append(actions, models.TopAction{
			Title: "Trim discretionary spending",
			Description: fmt.Sprintf("Leisure and entertainment take %.1f%% of your expenses. Bringing it near 20%% frees real money.",
				metrics.LeisureExpensesPercentage),
			PotentialSavings: round2(metrics.LeisureExpenses * 0.3),
		})
	}

	// High fixed-cost share limits room to maneuver.
	if metrics.FixedExpensesPercentage > 60 {
		actions = append(actions, models.TopAction{
			Title: "Renegotiate fixed commitments",
			Description: fmt.Sprintf("Fixed expenses are %.1f%% of your spending. Reviewing subscriptions and contracts usually recovers 10%%.",
				metrics.FixedExpensesPercentage),
			PotentialSavings: round2(metrics.FixedExpenses * 0.1),
		})
	}

	// Savings rate below the 20% target.
	if metrics.TotalIncome > 0 && metrics.SavingsRate < savingsTargetRate {
		gap := (savingsTargetRate - metrics.SavingsRate) / 100 * metrics.MonthlyIncome
		actions = append(actions, models.TopAction{
			Title: "Raise your savings rate",
			Description: fmt.Sprintf("You are saving %.1f%% of income; the 20%% target needs about %.2f more per month.",
				metrics.SavingsRate, gap),
			PotentialSavings: round2(gap),
		})
	}

	// Overshot budgets.
	for _, cat := range budgets.Categories {
		if cat.OverBudget {
			actions = append(actions, models.TopAction{
				Title: fmt.Sprintf("Back under budget: %s", cat.CategoryName),
				Description: fmt.Sprintf("%s is at %.0f%% of its %.2f budget.",
					cat.CategoryName, cat.PercentUsed, cat.Budget),
				PotentialSavings: round2(cat.Spent - cat.Budget),
			})
		}
	}

	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].PotentialSavings > actions[j].PotentialSavings
	})
	for i := range actions {
		actions[i].Priority = i + 1
	}

	return actions
}

// FallbackSuggestions is the hardcoded generic list returned when neither
// the rules nor the collaborator produced anything useful.
func FallbackSuggestions() []models.TopAction {
	return []models.TopAction{
		{
			Title:       "Track every expense for two weeks",
			Description: "Awareness alone typically cuts spending by 5-10%.",
			Priority:    1,
		},
		{
			Title:       "Automate a transfer on payday",
			Description: "Move a fixed amount to savings before you can spend it.",
			Priority:    2,
		},
		{
			Title:       "Review your recurring charges",
			Description: "Cancel one subscription you have not used this month.",
			Priority:    3,
		},
	}
}
