package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moniapp/metrics-api/models"
)

func TestProjectForecastUniformHistory(t *testing.T) {
	t.Parallel()

	averages := models.HistoricalAverages{Avg12: 1000, Avg60: 1000, Avg120: 1000, MonthsKnown: 13}
	points := ProjectForecast(averages, testNow)

	require.Len(t, points, 120)
	assert.Equal(t, 1000.0, points[0].Realistic)
	assert.Equal(t, 12000.0, points[11].Realistic)
	assert.Equal(t, 13000.0, points[12].Realistic)
	assert.Equal(t, 120000.0, points[119].Realistic)
}

func TestProjectForecastHorizonSwitches(t *testing.T) {
	t.Parallel()

	averages := models.HistoricalAverages{Avg12: 1000, Avg60: 600, Avg120: 600, MonthsKnown: 60}
	points := ProjectForecast(averages, testNow)

	// First year compounds avg12, month 13 switches to avg60.
	assert.Equal(t, 12000.0, points[11].Realistic)
	assert.Equal(t, 12600.0, points[12].Realistic)
	// 12*1000 + 48*600 through month 60, then avg120 from month 61.
	assert.Equal(t, 40800.0, points[59].Realistic)
	assert.Equal(t, 41400.0, points[60].Realistic)
}

func TestProjectForecastBands(t *testing.T) {
	t.Parallel()

	averages := models.HistoricalAverages{Avg12: 1000, Avg60: 1000, Avg120: 1000}
	points := ProjectForecast(averages, testNow)

	p := points[11]
	assert.Equal(t, 8400.0, p.Conservative)
	assert.Equal(t, 12000.0, p.Realistic)
	assert.Equal(t, 15600.0, p.Optimistic)

	for _, point := range points {
		assert.LessOrEqual(t, point.Conservative, point.Realistic)
		assert.LessOrEqual(t, point.Realistic, point.Optimistic)
	}
}

func TestProjectForecastNegativeAccumulationKeepsBandOrder(t *testing.T) {
	t.Parallel()

	averages := models.HistoricalAverages{Avg12: -500, Avg60: -500, Avg120: -500}
	points := ProjectForecast(averages, testNow)

	p := points[0]
	assert.Equal(t, -500.0, p.Realistic)
	assert.Equal(t, -650.0, p.Conservative)
	assert.Equal(t, -350.0, p.Optimistic)

	for _, point := range points {
		assert.LessOrEqual(t, point.Conservative, point.Realistic)
		assert.LessOrEqual(t, point.Realistic, point.Optimistic)
	}
}

func TestProjectForecastLabels(t *testing.T) {
	t.Parallel()

	averages := models.HistoricalAverages{Avg12: 100, Avg60: 100, Avg120: 100}
	points := ProjectForecast(averages, testNow)

	// testNow is March 2026: month 1 lands in April.
	assert.Equal(t, "Apr", points[0].Label)
	assert.Equal(t, "Mar", points[11].Label)
	assert.Equal(t, "Apr '27", points[12].Label)
	assert.Equal(t, "Year 2", points[23].Label)
	assert.Equal(t, "Year 5", points[59].Label)
	assert.Equal(t, "Apr '31", points[60].Label)
	assert.Equal(t, "Year 10", points[119].Label)
}

func TestProjectForecastZeroAverages(t *testing.T) {
	t.Parallel()

	points := ProjectForecast(models.HistoricalAverages{}, testNow)

	require.Len(t, points, 120)
	for _, p := range points {
		assert.Zero(t, p.Realistic)
		assert.Zero(t, p.Conservative)
		assert.Zero(t, p.Optimistic)
	}
}
