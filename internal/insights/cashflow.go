// Package insights analyzes historical cash flow: period summaries,
// trends, burn rate, and recurring-pattern mining. It works directly on
// raw transactions, independent of the simulator.
package insights

import (
	"math"
	"sort"
	"time"

	"github.com/theirongolddev/cashcast/internal/model"
)

// Direction classifies which way a metric is moving.
type Direction string

const (
	DirectionImproving Direction = "improving"
	DirectionDeclining Direction = "declining"
	DirectionStable    Direction = "stable"
)

// CategoryBreakdown is one category's share of period spending.
type CategoryBreakdown struct {
	Category model.Category
	Total    float64
	Count    int
	Percent  float64
}

// MerchantBreakdown is one merchant's share of period spending.
type MerchantBreakdown struct {
	Merchant string
	Total    float64
	Count    int
	Percent  float64
}

// Summary aggregates cash flow over a date range.
type Summary struct {
	Start, End   time.Time
	Income       float64
	Expenses     float64
	Net          float64
	IncomeCount  int
	ExpenseCount int
	ByCategory   []CategoryBreakdown
	ByMerchant   []MerchantBreakdown
	Trend        Direction // first-half vs second-half net
	Volatility   float64   // 0-100, from daily net coefficient of variation
}

// Summarize computes a cash-flow summary for transactions inside
// [start, end]. tolerance is the relative threshold for the half-over-half
// trend classification.
func Summarize(txns []model.Transaction, start, end time.Time, tolerance float64) Summary {
	s := Summary{Start: start, End: end, Trend: DirectionStable}

	catMap := make(map[model.Category]*CategoryBreakdown)
	merchMap := make(map[string]*MerchantBreakdown)
	daily := make(map[string]float64)

	mid := start.Add(end.Sub(start) / 2)
	var firstNet, secondNet float64

	for _, t := range txns {
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}

		daily[t.Date.Format("2006-01-02")] += t.Amount
		if t.Date.Before(mid) {
			firstNet += t.Amount
		} else {
			secondNet += t.Amount
		}

		if t.Amount > 0 {
			s.Income += t.Amount
			s.IncomeCount++
			continue
		}
		s.Expenses += -t.Amount
		s.ExpenseCount++

		cb, ok := catMap[t.Category]
		if !ok {
			cb = &CategoryBreakdown{Category: t.Category}
			catMap[t.Category] = cb
		}
		cb.Total += -t.Amount
		cb.Count++

		mb, ok := merchMap[t.Merchant]
		if !ok {
			mb = &MerchantBreakdown{Merchant: t.Merchant}
			merchMap[t.Merchant] = mb
		}
		mb.Total += -t.Amount
		mb.Count++
	}

	s.Net = s.Income - s.Expenses

	for _, cb := range catMap {
		if s.Expenses > 0 {
			cb.Percent = cb.Total / s.Expenses * 100
		}
		s.ByCategory = append(s.ByCategory, *cb)
	}
	sort.Slice(s.ByCategory, func(i, j int) bool {
		return s.ByCategory[i].Total > s.ByCategory[j].Total
	})

	for _, mb := range merchMap {
		if s.Expenses > 0 {
			mb.Percent = mb.Total / s.Expenses * 100
		}
		s.ByMerchant = append(s.ByMerchant, *mb)
	}
	sort.Slice(s.ByMerchant, func(i, j int) bool {
		return s.ByMerchant[i].Total > s.ByMerchant[j].Total
	})

	base := math.Abs(firstNet)
	if base < 1 {
		base = 1
	}
	switch {
	case secondNet > firstNet+base*tolerance:
		s.Trend = DirectionImproving
	case secondNet < firstNet-base*tolerance:
		s.Trend = DirectionDeclining
	}

	s.Volatility = volatility(daily)
	return s
}

// volatility maps the coefficient of variation of daily net totals to a
// 0-100 score.
func volatility(daily map[string]float64) float64 {
	if len(daily) < 2 {
		return 0
	}

	var sum float64
	for _, v := range daily {
		sum += v
	}
	mean := sum / float64(len(daily))

	var variance float64
	for _, v := range daily {
		variance += (v - mean) * (v - mean)
	}
	stddev := math.Sqrt(variance / float64(len(daily)))

	base := math.Abs(mean)
	if base < 1 {
		base = 1
	}
	score := stddev / base * 100
	if score > 100 {
		score = 100
	}
	return score
}
