package insights

import (
	"math"

	"github.com/theirongolddev/cashcast/internal/model"
)

// Trend is a linear-regression fit over the start of the forecast.
type Trend struct {
	Slope      float64 // currency units per day
	Confidence float64 // R-squared of the fit, 0..1
	Direction  Direction
}

// trendWindowDays is how much of the forecast the regression looks at.
const trendWindowDays = 30

// AnalyzeTrend fits a least-squares line through the expected (P50)
// balances of the forecast's first 30 days. slopeThreshold is the
// relative per-day slope (e.g. 0.005) separating stable from moving.
func AnalyzeTrend(days []model.ForecastDay, slopeThreshold float64) Trend {
	n := len(days)
	if n > trendWindowDays {
		n = trendWindowDays
	}
	if n < 2 {
		return Trend{Direction: DirectionStable}
	}

	var sumX, sumY, sumXY, sumXX float64
	for i := 0; i < n; i++ {
		x, y := float64(i), days[i].P50Total
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}
	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return Trend{Direction: DirectionStable}
	}

	slope := (fn*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / fn

	// R-squared
	meanY := sumY / fn
	var ssRes, ssTot float64
	for i := 0; i < n; i++ {
		y := days[i].P50Total
		fit := intercept + slope*float64(i)
		ssRes += (y - fit) * (y - fit)
		ssTot += (y - meanY) * (y - meanY)
	}
	r2 := 1.0
	if ssTot > 0 {
		r2 = 1 - ssRes/ssTot
	}
	if r2 < 0 {
		r2 = 0
	}

	base := math.Abs(meanY)
	if base < 1 {
		base = 1
	}
	direction := DirectionStable
	switch {
	case slope/base > slopeThreshold:
		direction = DirectionImproving
	case slope/base < -slopeThreshold:
		direction = DirectionDeclining
	}

	return Trend{Slope: slope, Confidence: r2, Direction: direction}
}
