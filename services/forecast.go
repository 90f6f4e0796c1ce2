package services

import (
	"fmt"
	"time"

	"github.com/moniapp/metrics-api/models"
)

// ============================================================================
// FORECAST PROJECTOR
// 120 forward months of additive compounding over the horizon-appropriate
// trailing average. Not a reinvestment model: each month simply adds the
// selected average to the running accumulation.
// ============================================================================

const forecastMonths = 120

// ProjectForecast builds the 120-point projection as a pure scan over the
// per-month horizon selections. The first year compounds avg12, years two
// through five avg60, beyond that avg120 (switch points at months 13 and 61).
func ProjectForecast(averages models.HistoricalAverages, now time.Time) []models.ForecastPoint {
	points := make([]models.ForecastPoint, 0, forecastMonths)

	var accumulated float64
	for i := 1; i <= forecastMonths; i++ {
		accumulated += horizonAverage(averages, i)

		conservative := accumulated * 0.7
		optimistic := accumulated * 1.3
		if accumulated < 0 {
			// Multiplying a negative accumulation by 0.7/1.3 inverts the
			// bands; swap so conservative <= realistic <= optimistic holds.
			conservative, optimistic = optimistic, conservative
		}

		points = append(points, models.ForecastPoint{
			Month:        i,
			Label:        forecastLabel(i, now),
			Conservative: round2(conservative),
			Realistic:    round2(accumulated),
			Optimistic:   round2(optimistic),
		})
	}

	return points
}

func horizonAverage(averages models.HistoricalAverages, month int) float64 {
	switch {
	case month <= 12:
		return averages.Avg12
	case month <= 60:
		return averages.Avg60
	default:
		return averages.Avg120
	}
}

// forecastLabel formats the x-axis label: first year shows the month name,
// each later year boundary shows "Year N", everything else "Jan '28" style.
func forecastLabel(month int, now time.Time) string {
	target := now.AddDate(0, month, 0)

	switch {
	case month <= 12:
		return target.Format("Jan")
	case month%12 == 0:
		return fmt.Sprintf("Year %d", month/12)
	default:
		return target.Format("Jan '06")
	}
}
