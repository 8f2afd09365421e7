package insights

import (
	"math"
	"sort"
	"time"

	"github.com/theirongolddev/cashcast/internal/model"
)

// PatternInterval classifies a mined recurring pattern's cadence.
type PatternInterval string

const (
	IntervalWeekly    PatternInterval = "weekly"
	IntervalBiweekly  PatternInterval = "biweekly"
	IntervalMonthly   PatternInterval = "monthly"
	IntervalIrregular PatternInterval = "irregular"
)

// RecurringPattern is a merchant with a consistent payment rhythm mined
// from history.
type RecurringPattern struct {
	Merchant     string
	AvgAmount    float64 // signed mean amount
	Interval     PatternInterval
	AvgGapDays   float64
	Confidence   float64 // interval consistency, 0..1
	Occurrences  int
	LastDate     time.Time
	NextExpected time.Time
}

// minPatternOccurrences is how many transactions a merchant needs before
// an interval is worth inferring.
const minPatternOccurrences = 3

// MineRecurringPatterns groups transactions by merchant, measures the
// gaps between consecutive charges, and keeps merchants whose rhythm is
// consistent enough. Patterns with confidence at or below minConfidence
// or with no recognizable interval are dropped.
func MineRecurringPatterns(txns []model.Transaction, minConfidence float64) []RecurringPattern {
	byMerchant := make(map[string][]model.Transaction)
	for _, t := range txns {
		byMerchant[t.Merchant] = append(byMerchant[t.Merchant], t)
	}

	var out []RecurringPattern
	for merchant, group := range byMerchant {
		if len(group) < minPatternOccurrences {
			continue
		}
		sort.Slice(group, func(i, j int) bool {
			return group[i].Date.Before(group[j].Date)
		})

		var gapSum, amountSum float64
		gaps := make([]float64, 0, len(group)-1)
		for i := 1; i < len(group); i++ {
			gap := group[i].Date.Sub(group[i-1].Date).Hours() / 24
			gaps = append(gaps, gap)
			gapSum += gap
		}
		for _, t := range group {
			amountSum += t.Amount
		}

		avgGap := gapSum / float64(len(gaps))
		if avgGap <= 0 {
			continue
		}

		var variance float64
		for _, g := range gaps {
			variance += (g - avgGap) * (g - avgGap)
		}
		stddev := math.Sqrt(variance / float64(len(gaps)))

		confidence := 1 - stddev/avgGap
		if confidence < 0 {
			confidence = 0
		}

		interval := classifyInterval(avgGap)
		if interval == IntervalIrregular || confidence <= minConfidence {
			continue
		}

		last := group[len(group)-1].Date
		out = append(out, RecurringPattern{
			Merchant:     merchant,
			AvgAmount:    amountSum / float64(len(group)),
			Interval:     interval,
			AvgGapDays:   avgGap,
			Confidence:   confidence,
			Occurrences:  len(group),
			LastDate:     last,
			NextExpected: last.AddDate(0, 0, int(math.Round(avgGap))),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	return out
}

// classifyInterval buckets an average gap into a cadence using tolerance
// bands around 7, 14, and 30 days.
func classifyInterval(avgGap float64) PatternInterval {
	switch {
	case avgGap >= 5.5 && avgGap <= 8.5:
		return IntervalWeekly
	case avgGap >= 12 && avgGap <= 16:
		return IntervalBiweekly
	case avgGap >= 26 && avgGap <= 35:
		return IntervalMonthly
	default:
		return IntervalIrregular
	}
}
