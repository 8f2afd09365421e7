package forecast

import (
	"math"
	"time"

	"github.com/theirongolddev/cashcast/internal/model"
)

// Patterns summarizes historical cash-flow behavior for the simulator.
type Patterns struct {
	DailyMean   float64 // mean net flow per calendar day of the span
	DailyStdDev float64 // std dev of daily net totals, floored

	IncomeMean       float64 // mean income transaction amount
	IncomeFrequency  float64 // income transactions per day
	ExpenseMean      float64 // mean expense magnitude
	ExpenseFrequency float64
}

// AnalyzePatterns derives daily cash-flow statistics from history. The
// std dev is floored at stddevFloor so a short or flat history never
// produces a degenerate zero-variance simulation. Empty history returns
// a zero mean with the floor std dev.
func AnalyzePatterns(txns []model.Transaction, stddevFloor float64) Patterns {
	p := Patterns{DailyStdDev: stddevFloor}
	if len(txns) == 0 {
		return p
	}

	first, last := txns[0].Date, txns[0].Date
	daily := make(map[string]float64)

	var incomeSum, expenseSum float64
	var incomeCount, expenseCount int

	for _, t := range txns {
		if t.Date.Before(first) {
			first = t.Date
		}
		if t.Date.After(last) {
			last = t.Date
		}
		daily[t.Date.Format("2006-01-02")] += t.Amount

		if t.Amount > 0 {
			incomeSum += t.Amount
			incomeCount++
		} else if t.Amount < 0 {
			expenseSum += -t.Amount
			expenseCount++
		}
	}

	spanDays := int(last.Sub(first).Hours()/24) + 1
	if spanDays < 1 {
		spanDays = 1
	}

	var net float64
	for _, v := range daily {
		net += v
	}
	p.DailyMean = net / float64(spanDays)

	// Variance over every day of the span; days with no transactions
	// count as zero-flow days.
	var sumSq float64
	day := first.Truncate(24 * time.Hour)
	for i := 0; i < spanDays; i++ {
		v := daily[day.Format("2006-01-02")]
		d := v - p.DailyMean
		sumSq += d * d
		day = day.AddDate(0, 0, 1)
	}
	stddev := math.Sqrt(sumSq / float64(spanDays))
	if stddev > stddevFloor {
		p.DailyStdDev = stddev
	}

	if incomeCount > 0 {
		p.IncomeMean = incomeSum / float64(incomeCount)
		p.IncomeFrequency = float64(incomeCount) / float64(spanDays)
	}
	if expenseCount > 0 {
		p.ExpenseMean = expenseSum / float64(expenseCount)
		p.ExpenseFrequency = float64(expenseCount) / float64(spanDays)
	}

	return p
}
