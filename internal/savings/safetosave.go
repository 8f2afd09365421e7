// Package savings derives prudent transfer recommendations and ranks
// savings goals against the forecast.
package savings

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/theirongolddev/cashcast/internal/config"
	"github.com/theirongolddev/cashcast/internal/model"
)

// Input bundles what the safe-to-save calculation looks at.
type Input struct {
	Forecast     []model.ForecastDay
	Runway       model.RunwayCalculation
	Projections  []model.Projection
	Transactions []model.Transaction
	Today        time.Time
	Buffer       float64
	Tolerance    model.RiskTolerance
}

// lookaheadDays is how far out the conservative balance is sampled.
const lookaheadDays = 14

// Calculate derives the recommended transfer-to-savings amount. The
// recommendation is zero whenever the runway is below the tolerance's
// minimum; otherwise it starts from the conservative balance two weeks
// out and subtracts the buffer, an unexpected-spending allowance, and
// large bills due in the window, scaled down by the risk tolerance.
func Calculate(in Input, tun config.Tuning) model.SafeToSave {
	rec := model.SafeToSave{TransferDate: nextTransferDate(in.Projections, in.Today)}

	minDays := in.Tolerance.MinRunwayDays()
	if in.Runway.Days < minDays {
		rec.Reasoning = fmt.Sprintf(
			"Runway is %d days, below the %d-day minimum for your risk tolerance. Rebuild your buffer before saving.",
			in.Runway.Days, minDays)
		rec.Factors = []string{"runway below minimum"}
		return rec
	}

	if len(in.Forecast) == 0 {
		rec.Reasoning = "No forecast available."
		return rec
	}

	idx := lookaheadDays - 1
	if idx >= len(in.Forecast) {
		idx = len(in.Forecast) - 1
	}
	conservative := in.Forecast[idx].P10Total

	allowance := trailingDailySpend(in.Transactions, in.Today) * 7
	bills := upcomingLargeBills(in.Projections, in.Today, tun.LargeBillFloor)

	maxSafe := conservative - in.Buffer - allowance - bills
	if maxSafe < 0 {
		maxSafe = 0
	}
	rec.MaxSafe = maxSafe
	rec.Amount = math.Floor(maxSafe * in.Tolerance.Multiplier())

	rec.Factors = []string{
		fmt.Sprintf("conservative balance in %d days: %.0f", idx+1, conservative),
		fmt.Sprintf("buffer reserved: %.0f", in.Buffer),
		fmt.Sprintf("unexpected spending allowance: %.0f", allowance),
	}
	if bills > 0 {
		rec.Factors = append(rec.Factors, fmt.Sprintf("large bills within %d days: %.0f", lookaheadDays, bills))
	}

	if rec.Amount <= 0 {
		rec.Amount = 0
		rec.Reasoning = "The conservative forecast leaves no room above your buffer right now."
	} else {
		rec.Reasoning = fmt.Sprintf("You can move %.0f to savings while keeping %.0f of cushion in a conservative scenario.",
			rec.Amount, in.Buffer+allowance)
	}

	rec.Confidence = confidence(in, maxSafe)
	return rec
}

// TransferImpact reports the expected runway after moving amount to
// savings: the P50 series shifts down and the scan reruns.
func TransferImpact(days []model.ForecastDay, buffer, amount float64) (newDays int, delta int) {
	base := len(days)
	adjusted := len(days)
	for i, d := range days {
		if base == len(days) && d.P50Total < buffer {
			base = i
		}
		if adjusted == len(days) && d.P50Total-amount < buffer {
			adjusted = i
		}
	}
	return adjusted, adjusted - base
}

// BuildSchedule greedily plans transfers toward a goal using successive
// income dates, one recommended-size transfer per payday.
func BuildSchedule(goal model.SavingsGoal, perTransfer float64, projections []model.Projection, today time.Time) []model.ScheduledTransfer {
	remaining := goal.Remaining()
	if remaining <= 0 || perTransfer <= 0 {
		return nil
	}

	var incomes []time.Time
	for _, p := range projections {
		if p.Amount > 0 && !p.Date.Before(today) {
			incomes = append(incomes, p.Date.AddDate(0, 0, 1))
		}
	}
	sort.Slice(incomes, func(i, j int) bool { return incomes[i].Before(incomes[j]) })

	var plan []model.ScheduledTransfer
	for _, d := range incomes {
		if remaining <= 0 {
			break
		}
		amount := perTransfer
		if amount > remaining {
			amount = remaining
		}
		plan = append(plan, model.ScheduledTransfer{Date: d, Amount: amount})
		remaining -= amount
	}
	return plan
}

// nextTransferDate is the day after the next scheduled income, or a week
// out when no income is on the calendar.
func nextTransferDate(projections []model.Projection, today time.Time) time.Time {
	var next time.Time
	for _, p := range projections {
		if p.Amount <= 0 || p.Date.Before(today) {
			continue
		}
		if next.IsZero() || p.Date.Before(next) {
			next = p.Date
		}
	}
	if next.IsZero() {
		return today.AddDate(0, 0, 7)
	}
	return next.AddDate(0, 0, 1)
}

// trailingDailySpend averages expense outflow over the last 30 days.
func trailingDailySpend(txns []model.Transaction, today time.Time) float64 {
	var total float64
	for _, t := range txns {
		if t.Amount >= 0 {
			continue
		}
		age := today.Sub(t.Date).Hours() / 24
		if age < 0 || age > 30 {
			continue
		}
		total += -t.Amount
	}
	return total / 30
}

// upcomingLargeBills sums expense projections at or above the floor due
// within the lookahead window.
func upcomingLargeBills(projections []model.Projection, today time.Time, floor float64) float64 {
	cutoff := today.AddDate(0, 0, lookaheadDays)
	var total float64
	for _, p := range projections {
		if p.Amount >= 0 || p.Date.Before(today) || !p.Date.Before(cutoff) {
			continue
		}
		if -p.Amount >= floor {
			total += -p.Amount
		}
	}
	return total
}

// confidence weighs runway length, spending stability, and forecast
// margin into 0..1.
func confidence(in Input, maxSafe float64) float64 {
	runwayPart := float64(in.Runway.Days) / 30
	if runwayPart > 1 {
		runwayPart = 1
	}

	stability := spendingStability(in.Transactions, in.Today)

	margin := 0.0
	if in.Buffer > 0 {
		margin = maxSafe / in.Buffer
		if margin > 1 {
			margin = 1
		}
	}

	return 0.4*runwayPart + 0.3*stability + 0.3*margin
}

// spendingStability is 1 minus the coefficient of variation of the last
// four weekly expense totals, floored at 0.
func spendingStability(txns []model.Transaction, today time.Time) float64 {
	var weeks [4]float64
	for _, t := range txns {
		if t.Amount >= 0 {
			continue
		}
		age := int(today.Sub(t.Date).Hours() / 24)
		if age < 0 || age >= 28 {
			continue
		}
		weeks[age/7] += -t.Amount
	}

	var sum float64
	for _, w := range weeks {
		sum += w
	}
	mean := sum / 4
	if mean == 0 {
		return 0.5 // no spending history, neither stable nor unstable
	}

	var variance float64
	for _, w := range weeks {
		variance += (w - mean) * (w - mean)
	}
	cov := math.Sqrt(variance/4) / mean

	s := 1 - cov
	if s < 0 {
		s = 0
	}
	return s
}
