package services

import (
	"math"

	"github.com/moniapp/metrics-api/models"
)

// ============================================================================
// RATIO CALCULATOR
// Deterministic formulas over the partitioned ledger and classified assets.
// Every ratio defines an explicit zero/fallback when its denominator is
// zero; nothing here can produce NaN or panic.
// ============================================================================

// CalculateMetrics derives the full ratio set for one analysis window.
// Debt figures arrive as an injected snapshot (currently always zero, the
// surrounding system has no debt ledger yet).
func CalculateMetrics(
	ledger LedgerSummary,
	assets AssetSummary,
	goals []models.Goal,
	debt models.DebtSnapshot,
	window Period,
) models.FinancialMetrics {
	m := models.FinancialMetrics{
		TotalIncome:   ledger.TotalIncome,
		TotalExpenses: ledger.TotalExpenses,
		Balance:       ledger.Balance,

		TotalAssets:       assets.TotalAssets,
		TotalLiquidAssets: assets.TotalLiquidAssets,

		TotalDebt:        debt.TotalDebt,
		FixedExpenses:    ledger.FixedExpenses,
		VariableExpenses: ledger.VariableExpenses,
		AntExpenses:      ledger.AntExpenses,
		LeisureExpenses:  ledger.LeisureExpenses,
	}

	months := float64(window.Months)
	m.MonthlyIncome = ledger.TotalIncome / months
	m.MonthlyExpenses = ledger.TotalExpenses / months

	days := float64(window.DaysElapsed())
	m.AverageDailyIncome = round2(ledger.TotalIncome / days)
	m.AverageDailyExpense = round2(ledger.TotalExpenses / days)

	// Growth
	m.SavingsRate = safePercent(ledger.Balance, ledger.TotalIncome)
	m.SavingsCapacity = ledger.Balance
	m.ProjectedAnnualSavings = round2(ledger.Balance / months * 12)
	if len(goals) > 0 && goals[0].Target > 0 {
		m.GoalFundingRate = safePercent(goals[0].Current, goals[0].Target)
	}

	// Liquidity
	if ledger.TotalExpenses > 0 {
		m.LiquidityMonths = round2(assets.TotalLiquidAssets / m.MonthlyExpenses)
	}
	if m.MonthlyExpenses > 0 {
		m.EmergencyFundRatio = round2(math.Min(100, assets.TotalLiquidAssets/(3*m.MonthlyExpenses)*100))
	}
	daysLeft := window.DaysLeft()
	if daysLeft > 0 && ledger.Balance > 0 {
		m.SafeToSpendDaily = round2(ledger.Balance / float64(daysLeft))
	}

	// Expense structure
	m.FixedExpensesPercentage = safePercent(ledger.FixedExpenses, ledger.TotalExpenses)
	m.VariableExpensesPercentage = safePercent(ledger.VariableExpenses, ledger.TotalExpenses)
	m.AntExpensesPercentage = safePercent(ledger.AntExpenses, m.MonthlyIncome)
	m.LeisureExpensesPercentage = safePercent(ledger.LeisureExpenses, ledger.TotalExpenses)
	m.ExpenseToIncomeRatio = safePercent(ledger.TotalExpenses, ledger.TotalIncome)
	if len(ledger.Categories) > 0 {
		m.TopCategoryShare = safePercent(ledger.Categories[0].Amount, ledger.TotalExpenses)
	}

	// Debt — defined fallbacks when the snapshot is empty
	m.DebtRatio = safePercent(debt.TotalDebt, assets.TotalAssets)
	m.FinancialBurden = safePercent(debt.MonthlyPayments, m.MonthlyIncome)
	m.DebtToIncomeRatio = safePercent(debt.TotalDebt, m.MonthlyIncome*12)
	m.InterestOnIncome = safePercent(debt.MonthlyInterest, m.MonthlyIncome)
	if debt.MonthlyPayments > 0 {
		m.MonthsToClearDebt = round2(debt.TotalDebt / debt.MonthlyPayments)
	}

	// Stability / behavior
	m.ConsistencyScore = consistencyScore(ledger, days)
	m.ExpenseVolatility = round2(expenseVolatility(ledger.ExpenseAmounts))
	m.RecurringIncomeShare = safePercent(ledger.RecurringIncome, ledger.TotalIncome)

	m.MonthlyIncome = round2(m.MonthlyIncome)
	m.MonthlyExpenses = round2(m.MonthlyExpenses)

	return m
}

// consistencyScore is the share of expense transactions below 1.5x the
// average daily expense: many spikes above the daily run-rate mean erratic
// spending behavior.
func consistencyScore(ledger LedgerSummary, daysElapsed float64) float64 {
	if ledger.ExpenseCount == 0 || daysElapsed <= 0 {
		return 0
	}

	avgDaily := ledger.TotalExpenses / daysElapsed
	threshold := avgDaily * 1.5

	within := 0
	for _, amount := range ledger.ExpenseAmounts {
		if amount < threshold {
			within++
		}
	}
	return round2(100 * float64(within) / float64(ledger.ExpenseCount))
}

// expenseVolatility is the population standard deviation of individual
// expense amounts; 0 for fewer than two expenses.
func expenseVolatility(amounts []float64) float64 {
	if len(amounts) < 2 {
		return 0
	}
	var sum float64
	for _, a := range amounts {
		sum += a
	}
	mean := sum / float64(len(amounts))

	var variance float64
	for _, a := range amounts {
		variance += (a - mean) * (a - mean)
	}
	variance /= float64(len(amounts))
	return math.Sqrt(variance)
}

// safePercent is numerator/denominator*100 rounded to 2 decimals, 0 when
// the denominator is not positive.
func safePercent(numerator, denominator float64) float64 {
	if denominator <= 0 {
		return 0
	}
	return round2(numerator / denominator * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
