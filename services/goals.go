package services

import (
	"fmt"
	"math"

	"github.com/moniapp/metrics-api/models"
)

// ============================================================================
// GOAL PROBABILITY ESTIMATOR
// Likelihood and ETA of reaching the primary goal from the required
// run-rate, saving consistency, and recent trend.
// ============================================================================

// EstimateGoal scores the primary goal against the user's trailing savings
// behavior. The estimate is undefined (Computable=false) when the trailing
// average is non-positive or the goal is already funded.
func EstimateGoal(goal models.Goal, averages models.HistoricalAverages, balances []models.MonthlyBalance) models.GoalForecast {
	remaining := goal.Target - goal.Current
	avg12 := averages.Avg12

	if avg12 <= 0 || remaining <= 0 {
		return models.GoalForecast{Computable: false, GoalID: goal.ID, GoalTitle: goal.Title}
	}

	monthsToGoal := int(math.Ceil(remaining / avg12))

	timeScore := goalTimeScore(monthsToGoal)
	consistency := math.Max(0, 100-deltaVariance(balances)/avg12)
	paceScore := math.Min(100, avg12/(remaining/12)*100)

	raw := (timeScore*0.5 + consistency*0.3 + paceScore*0.2) * trendMultiplier(balances)
	probability := int(clamp(math.Round(raw), 5, 95))

	return models.GoalForecast{
		Computable:   true,
		GoalID:       goal.ID,
		GoalTitle:    goal.Title,
		Probability:  probability,
		MonthsToGoal: monthsToGoal,
		ETA:          formatETA(monthsToGoal),
		Remaining:    round2(remaining),
	}
}

func goalTimeScore(months int) float64 {
	switch {
	case months <= 12:
		return 100
	case months <= 24:
		return 85
	case months <= 36:
		return 70
	case months <= 60:
		return 50
	default:
		return 30
	}
}

// deltaVariance is the population variance of consecutive monthly balance
// deltas: jumpy month-to-month savings lower the consistency score.
func deltaVariance(balances []models.MonthlyBalance) float64 {
	if len(balances) < 3 {
		return 0
	}

	deltas := make([]float64, 0, len(balances)-1)
	for i := 1; i < len(balances); i++ {
		deltas = append(deltas, balances[i].Balance-balances[i-1].Balance)
	}

	var sum float64
	for _, d := range deltas {
		sum += d
	}
	mean := sum / float64(len(deltas))

	var variance float64
	for _, d := range deltas {
		variance += (d - mean) * (d - mean)
	}
	return variance / float64(len(deltas))
}

// trendMultiplier rewards an improving balance trend: the mean of the most
// recent six months against the mean of the oldest six. Ties and short
// histories count as non-declining.
func trendMultiplier(balances []models.MonthlyBalance) float64 {
	n := len(balances)
	window := 6
	if n < window {
		window = n
	}
	if window == 0 {
		return 1.1
	}

	var oldest, recent float64
	for _, b := range balances[:window] {
		oldest += b.Balance
	}
	for _, b := range balances[n-window:] {
		recent += b.Balance
	}

	if recent >= oldest {
		return 1.1
	}
	return 0.9
}

func formatETA(months int) string {
	if months <= 12 {
		if months == 1 {
			return "1 month"
		}
		return fmt.Sprintf("%d months", months)
	}
	years := int(math.Round(float64(months) / 12))
	if years == 1 {
		return "1 year"
	}
	return fmt.Sprintf("%d years", years)
}
