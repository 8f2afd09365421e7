package forecast

import "github.com/theirongolddev/cashcast/internal/model"

// Confidence weights: data depth 0.3, recurrence confidence 0.4, band
// width 0.3. The result is clamped to [30, 100] so thin data reads as
// "rough estimate" rather than "meaningless".
const (
	weightDepth = 0.3
	weightRecur = 0.4
	weightBands = 0.3

	confidenceFloor = 30
	depthCapTxns    = 30
)

// Score combines data depth, recurrence confidence, and forecast band
// width into one 0-100 confidence value.
func Score(txnCount int, recs []model.Recurrence, days []model.ForecastDay) float64 {
	depth := float64(txnCount) / depthCapTxns * 100
	if depth > 100 {
		depth = 100
	}

	recur := 50.0 // neutral when nothing recurring is known
	if len(recs) > 0 {
		var sum float64
		for _, r := range recs {
			sum += r.Confidence.Multiplier()
		}
		recur = sum / float64(len(recs)) * 100
	}

	bands := bandScore(days)

	score := weightDepth*depth + weightRecur*recur + weightBands*bands
	if score < confidenceFloor {
		score = confidenceFloor
	}
	if score > 100 {
		score = 100
	}
	return score
}

// bandScore maps relative band width to 0-100: narrower bands mean a
// more trustworthy forecast.
func bandScore(days []model.ForecastDay) float64 {
	if len(days) == 0 {
		return 0
	}

	var widthSum, balSum float64
	for _, d := range days {
		widthSum += d.P90Total - d.P10Total
		balSum += abs(d.P50Total)
	}
	avgWidth := widthSum / float64(len(days))
	avgBal := balSum / float64(len(days))
	if avgBal < 1 {
		avgBal = 1
	}

	score := 100 - avgWidth/avgBal*100
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}
