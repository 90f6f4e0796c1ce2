package services

import (
	"fmt"
	"math"

	"github.com/moniapp/metrics-api/models"
)

// ============================================================================
// SCORE COMPOSER
// Five weighted groups summing to at most 100. Each group is clamped to its
// own cap so a pathological ratio can never push the composite outside
// [0, 100].
//
// Targets for full credit: 20% savings rate, 3 months of liquidity runway,
// no debt burden, fixed expenses at 0%, perfectly consistent spending.
// ============================================================================

const (
	savingsTargetRate     = 20.0 // % savings rate for full savings credit
	liquidityTargetMonths = 3.0  // months of runway for full liquidity credit
)

// ComposeScore fills ScoreMoni and Components on the metrics object and
// returns it.
func ComposeScore(m models.FinancialMetrics, debt models.DebtSnapshot) models.FinancialMetrics {
	savings := clamp(m.SavingsRate/savingsTargetRate*15, 0, 15)
	liquidity := clamp(m.LiquidityMonths/liquidityTargetMonths*15, 0, 15)

	debtScore := 20.0
	if debt.HasDebt() {
		debtScore = clamp(20-m.FinancialBurden/5, 0, 20)
	}

	control := clamp((100-m.FixedExpensesPercentage)/5, 0, 20)
	growth := clamp(m.SavingsRate/savingsTargetRate*15, 0, 15)
	behavior := clamp(m.ConsistencyScore/100*15, 0, 15)

	m.Components = models.ScoreComponents{
		SavingsAndLiquidity: round2(savings + liquidity),
		Debt:                round2(debtScore),
		Control:             round2(control),
		Growth:              round2(growth),
		Behavior:            round2(behavior),
	}

	total := savings + liquidity + debtScore + control + growth + behavior
	m.ScoreMoni = int(math.Round(math.Min(100, total)))

	return m
}

// ExplainScore builds the human-readable "score changed because..." string
// attached to the score breakdown. Narrative polish is delegated to the
// collaborator; this is the deterministic baseline.
func ExplainScore(current, previous int, components models.ScoreComponents) string {
	delta := current - previous
	var trend string
	switch {
	case previous == 0:
		trend = fmt.Sprintf("Your Score Moni is %d.", current)
	case delta > 0:
		trend = fmt.Sprintf("Your Score Moni went up %d points to %d.", delta, current)
	case delta < 0:
		trend = fmt.Sprintf("Your Score Moni dropped %d points to %d.", -delta, current)
	default:
		trend = fmt.Sprintf("Your Score Moni held steady at %d.", current)
	}

	weakest, name := components.SavingsAndLiquidity/30, "savings and liquidity"
	if components.Debt/20 < weakest {
		weakest, name = components.Debt/20, "debt"
	}
	if components.Control/20 < weakest {
		weakest, name = components.Control/20, "expense control"
	}
	if components.Growth/15 < weakest {
		weakest, name = components.Growth/15, "growth"
	}
	if components.Behavior/15 < weakest {
		name = "spending consistency"
	}

	return fmt.Sprintf("%s Your biggest opportunity is %s.", trend, name)
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
