package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moniapp/metrics-api/models"
)

func steadyBalances(count int, balance float64) []models.MonthlyBalance {
	balances := make([]models.MonthlyBalance, 0, count)
	for i := count; i >= 1; i-- {
		balances = append(balances, models.MonthlyBalance{
			MonthKey: testNow.AddDate(0, -i, 0).Format("2006-01"),
			Balance:  balance,
		})
	}
	return balances
}

func TestEstimateGoalSteadySaver(t *testing.T) {
	t.Parallel()

	goal := models.Goal{ID: "g1", Title: "House deposit", Target: 20000, Current: 8000}
	averages := models.HistoricalAverages{Avg12: 1000, MonthsKnown: 12}
	balances := steadyBalances(12, 1000)

	forecast := EstimateGoal(goal, averages, balances)

	require.True(t, forecast.Computable)
	assert.Equal(t, "g1", forecast.GoalID)
	assert.Equal(t, 12, forecast.MonthsToGoal)
	assert.Equal(t, "12 months", forecast.ETA)
	assert.Equal(t, 12000.0, forecast.Remaining)
	// Perfect consistency, full time score, pace at 100 and an upward-tie
	// trend: (100*0.5 + 100*0.3 + 100*0.2) * 1.1 clamps to 95.
	assert.Equal(t, 95, forecast.Probability)
}

func TestEstimateGoalNotComputable(t *testing.T) {
	t.Parallel()

	averages := models.HistoricalAverages{Avg12: -200}
	forecast := EstimateGoal(models.Goal{ID: "g1", Target: 5000}, averages, nil)
	assert.False(t, forecast.Computable)
	assert.Zero(t, forecast.Probability)

	// Already funded.
	funded := models.Goal{ID: "g2", Target: 5000, Current: 6000}
	forecast = EstimateGoal(funded, models.HistoricalAverages{Avg12: 500}, nil)
	assert.False(t, forecast.Computable)
	assert.Equal(t, "g2", forecast.GoalID)
}

func TestEstimateGoalProbabilityFloor(t *testing.T) {
	t.Parallel()

	// A distant goal with erratic savings still reports at least 5%.
	goal := models.Goal{ID: "g1", Target: 500000, Current: 0}
	averages := models.HistoricalAverages{Avg12: 100}
	balances := []models.MonthlyBalance{
		{MonthKey: "2025-01", Balance: 5000},
		{MonthKey: "2025-02", Balance: 3000},
		{MonthKey: "2025-03", Balance: -2000},
		{MonthKey: "2025-04", Balance: 100},
	}

	forecast := EstimateGoal(goal, averages, balances)

	require.True(t, forecast.Computable)
	assert.GreaterOrEqual(t, forecast.Probability, 5)
	assert.LessOrEqual(t, forecast.Probability, 95)
	assert.Equal(t, 5000, forecast.MonthsToGoal)
}

func TestGoalTimeScoreTiers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		months int
		score  float64
	}{
		{6, 100},
		{12, 100},
		{13, 85},
		{24, 85},
		{36, 70},
		{48, 50},
		{61, 30},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.score, goalTimeScore(tt.months), "months=%d", tt.months)
	}
}

func TestTrendMultiplier(t *testing.T) {
	t.Parallel()

	// Improving recent months against the oldest six.
	improving := append(steadyBalances(6, 100), steadyBalances(6, 900)...)
	assert.Equal(t, 1.1, trendMultiplier(improving))

	declining := append(steadyBalances(6, 900), steadyBalances(6, 100)...)
	assert.Equal(t, 0.9, trendMultiplier(declining))

	// Flat history and short history both count as non-declining.
	assert.Equal(t, 1.1, trendMultiplier(steadyBalances(12, 500)))
	assert.Equal(t, 1.1, trendMultiplier(steadyBalances(3, 500)))
	assert.Equal(t, 1.1, trendMultiplier(nil))
}

func TestDeltaVariance(t *testing.T) {
	t.Parallel()

	// Steady savings: every delta is zero.
	assert.Zero(t, deltaVariance(steadyBalances(12, 1000)))

	// Fewer than three months is treated as consistent.
	assert.Zero(t, deltaVariance(steadyBalances(2, 1000)))

	// Alternating 0/1000 gives deltas of +-1000 around a zero mean.
	jumpy := []models.MonthlyBalance{
		{Balance: 0}, {Balance: 1000}, {Balance: 0}, {Balance: 1000}, {Balance: 0},
	}
	assert.InDelta(t, 1000000, deltaVariance(jumpy), 1)
}

func TestFormatETA(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1 month", formatETA(1))
	assert.Equal(t, "8 months", formatETA(8))
	assert.Equal(t, "12 months", formatETA(12))
	assert.Equal(t, "1 year", formatETA(14))
	assert.Equal(t, "2 years", formatETA(26))
	assert.Equal(t, "10 years", formatETA(120))
}
