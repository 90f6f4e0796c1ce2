package services

import (
	"fmt"

	"github.com/moniapp/metrics-api/models"
)

// RiskIndicators derives traffic-light messages from the metrics with plain
// threshold rules. This is both the collaborator fallback and the context
// handed to the narrative prompt, so the levels must be deterministic.
func RiskIndicators(metrics models.FinancialMetrics) []models.RiskIndicator {
	var indicators []models.RiskIndicator

	switch {
	case metrics.TotalIncome == 0 && metrics.TotalExpenses == 0:
		indicators = append(indicators, models.RiskIndicator{
			Level:   models.RiskWarning,
			Message: "No activity recorded this period. Add transactions to unlock your analysis.",
		})
	case metrics.Balance < 0:
		indicators = append(indicators, models.RiskIndicator{
			Level:   models.RiskCritical,
			Message: fmt.Sprintf("You spent %.2f more than you earned this period.", -metrics.Balance),
		})
	case metrics.SavingsRate >= savingsTargetRate:
		indicators = append(indicators, models.RiskIndicator{
			Level:   models.RiskGood,
			Message: fmt.Sprintf("Savings rate of %.1f%% beats the 20%% target. Keep it up.", metrics.SavingsRate),
		})
	default:
		indicators = append(indicators, models.RiskIndicator{
			Level:   models.RiskWarning,
			Message: fmt.Sprintf("Savings rate is %.1f%%, below the 20%% target.", metrics.SavingsRate),
		})
	}

	if metrics.TotalExpenses > 0 {
		switch {
		case metrics.LiquidityMonths < 1:
			indicators = append(indicators, models.RiskIndicator{
				Level:   models.RiskCritical,
				Message: "Liquid assets cover less than one month of expenses.",
			})
		case metrics.LiquidityMonths < liquidityTargetMonths:
			indicators = append(indicators, models.RiskIndicator{
				Level:   models.RiskWarning,
				Message: fmt.Sprintf("Emergency runway is %.1f months; aim for %.0f.", metrics.LiquidityMonths, liquidityTargetMonths),
			})
		default:
			indicators = append(indicators, models.RiskIndicator{
				Level:   models.RiskGood,
				Message: fmt.Sprintf("Emergency runway of %.1f months is solid.", metrics.LiquidityMonths),
			})
		}
	}

	if metrics.FixedExpensesPercentage > 60 {
		indicators = append(indicators, models.RiskIndicator{
			Level:   models.RiskWarning,
			Message: fmt.Sprintf("Fixed commitments are %.1f%% of spending, leaving little flexibility.", metrics.FixedExpensesPercentage),
		})
	}

	if metrics.AntExpensesPercentage > 10 {
		indicators = append(indicators, models.RiskIndicator{
			Level:   models.RiskWarning,
			Message: fmt.Sprintf("Small purchases eat %.1f%% of your monthly income.", metrics.AntExpensesPercentage),
		})
	}

	return indicators
}
