// Package runway computes how long projected balances stay above the
// user's buffer, under the three forecast scenarios.
package runway

import (
	"github.com/theirongolddev/cashcast/internal/model"
)

// Milestone day counts reported by Milestones.
var milestoneDays = []int{7, 14, 30, 60, 90}

// Buffer zone boundaries, in expected runway days.
const (
	safeDays    = 30
	cautionDays = 14
)

// Calculate scans each percentile series for the first day the balance
// drops below buffer. The primary day count follows the expected (P50)
// scenario. trendTolerance is the relative threshold for classifying the
// balance trend (typically 0.10).
func Calculate(days []model.ForecastDay, buffer float64, trendTolerance float64) model.RunwayCalculation {
	calc := model.RunwayCalculation{
		Optimistic:   scan(days, buffer, func(d model.ForecastDay) float64 { return d.P90Total }),
		Expected:     scan(days, buffer, func(d model.ForecastDay) float64 { return d.P50Total }),
		Conservative: scan(days, buffer, func(d model.ForecastDay) float64 { return d.P10Total }),
	}
	calc.Days = calc.Expected.Days
	calc.Zones = zones(calc.Days)
	calc.Trend = trend(days, trendTolerance)
	calc.Confidence = bandConfidence(days)
	return calc
}

// AdjustmentImpact recomputes runway after a hypothetical lump-sum change
// to the balance: positive for a deposit, negative for a withdrawal. All
// three band series shift uniformly.
func AdjustmentImpact(days []model.ForecastDay, buffer, amount, trendTolerance float64) (model.RunwayCalculation, int) {
	shifted := make([]model.ForecastDay, len(days))
	for i, d := range days {
		d.P10Total += amount
		d.P50Total += amount
		d.P90Total += amount
		shifted[i] = d
	}
	base := Calculate(days, buffer, trendTolerance)
	adjusted := Calculate(shifted, buffer, trendTolerance)
	return adjusted, adjusted.Days - base.Days
}

// Milestones reports which fixed day-count milestones the expected runway
// reaches.
func Milestones(days []model.ForecastDay, buffer, trendTolerance float64) []model.Milestone {
	runwayDays := Calculate(days, buffer, trendTolerance).Days

	out := make([]model.Milestone, 0, len(milestoneDays))
	for _, m := range milestoneDays {
		if m > len(days) {
			break
		}
		ms := model.Milestone{Days: m, Achieved: runwayDays >= m}
		if !ms.Achieved {
			ms.Remaining = m - runwayDays
		}
		out = append(out, ms)
	}
	return out
}

// scan returns the first buffer crossing in one percentile series. A
// series that never crosses runs the full horizon.
func scan(days []model.ForecastDay, buffer float64, value func(model.ForecastDay) float64) model.ScenarioRunway {
	for i, d := range days {
		if value(d) < buffer {
			return model.ScenarioRunway{Days: i, CrossDate: d.Date, Crossed: true}
		}
	}
	return model.ScenarioRunway{Days: len(days)}
}

func zones(days int) model.BufferZones {
	switch {
	case days > safeDays:
		return model.BufferZones{Safe: true}
	case days >= cautionDays:
		return model.BufferZones{Caution: true}
	default:
		return model.BufferZones{Critical: true}
	}
}

// trend compares the first forecast week's average expected balance with
// a comparable later week.
func trend(days []model.ForecastDay, tolerance float64) model.RunwayTrend {
	if len(days) < 14 {
		return model.TrendStable
	}

	laterStart := 21
	if laterStart+7 > len(days) {
		laterStart = len(days) - 7
	}

	first := weekAverage(days, 0)
	later := weekAverage(days, laterStart)

	// Compare against the first-week magnitude so the threshold scales
	// with the balance.
	base := first
	if base < 0 {
		base = -base
	}
	if base < 1 {
		base = 1
	}

	switch {
	case later > first+base*tolerance:
		return model.TrendExtending
	case later < first-base*tolerance:
		return model.TrendShrinking
	default:
		return model.TrendStable
	}
}

func weekAverage(days []model.ForecastDay, start int) float64 {
	var sum float64
	for i := start; i < start+7; i++ {
		sum += days[i].P50Total
	}
	return sum / 7
}

// bandConfidence maps relative band width to 0..1, same shape as the
// forecast confidence sub-score.
func bandConfidence(days []model.ForecastDay) float64 {
	if len(days) == 0 {
		return 0
	}
	var widthSum, balSum float64
	for _, d := range days {
		widthSum += d.P90Total - d.P10Total
		b := d.P50Total
		if b < 0 {
			b = -b
		}
		balSum += b
	}
	avgBal := balSum / float64(len(days))
	if avgBal < 1 {
		avgBal = 1
	}
	conf := 1 - (widthSum/float64(len(days)))/avgBal
	if conf < 0 {
		conf = 0
	}
	if conf > 1 {
		conf = 1
	}
	return conf
}
