package savings

import (
	"fmt"
	"testing"
	"time"

	"github.com/theirongolddev/cashcast/internal/config"
	"github.com/theirongolddev/cashcast/internal/model"
)

var tun = config.DefaultTuning()

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func steadyForecast(base time.Time, p10 float64, n int) []model.ForecastDay {
	days := make([]model.ForecastDay, n)
	for i := range days {
		days[i] = model.ForecastDay{
			Date:     base.AddDate(0, 0, i+1),
			P10Total: p10,
			P50Total: p10 + 500,
			P90Total: p10 + 1000,
		}
	}
	return days
}

func steadySpending(today time.Time, perDay float64, days int) []model.Transaction {
	var txns []model.Transaction
	for d := 1; d <= days; d++ {
		txns = append(txns, model.Transaction{
			ID: fmt.Sprintf("t%d", d), Date: today.AddDate(0, 0, -d), Amount: -perDay,
		})
	}
	return txns
}

func TestCalculate_ZeroWhenRunwayBelowMinimum(t *testing.T) {
	today := date(t, "2026-03-01")
	in := Input{
		Forecast:  steadyForecast(today, 5000, 90),
		Runway:    model.RunwayCalculation{Days: 10},
		Today:     today,
		Buffer:    500,
		Tolerance: model.RiskModerate, // minimum 14 days
	}

	rec := Calculate(in, tun)
	if rec.Amount != 0 {
		t.Errorf("Amount = %v, want 0 below minimum runway", rec.Amount)
	}
	if rec.Reasoning == "" {
		t.Error("zero recommendation must carry a reason")
	}
}

func TestCalculate_ToleranceGates(t *testing.T) {
	today := date(t, "2026-03-01")
	in := Input{
		Forecast: steadyForecast(today, 5000, 90),
		Runway:   model.RunwayCalculation{Days: 12},
		Today:    today,
		Buffer:   500,
	}

	in.Tolerance = model.RiskConservative // needs 21
	if rec := Calculate(in, tun); rec.Amount != 0 {
		t.Errorf("conservative Amount = %v, want 0 at 12-day runway", rec.Amount)
	}

	in.Tolerance = model.RiskAggressive // needs 10
	if rec := Calculate(in, tun); rec.Amount <= 0 {
		t.Errorf("aggressive Amount = %v, want > 0 at 12-day runway", rec.Amount)
	}
}

func TestCalculate_DeductionsAndMultiplier(t *testing.T) {
	today := date(t, "2026-03-01")
	in := Input{
		Forecast:     steadyForecast(today, 5000, 90),
		Runway:       model.RunwayCalculation{Days: 60},
		Transactions: steadySpending(today, 30, 30), // 210/week allowance
		Today:        today,
		Buffer:       500,
		Tolerance:    model.RiskModerate,
	}

	rec := Calculate(in, tun)
	// max = 5000 - 500 - 210 = 4290; moderate multiplier 0.7 -> 3003.
	if rec.MaxSafe != 4290 {
		t.Errorf("MaxSafe = %v, want 4290", rec.MaxSafe)
	}
	if rec.Amount != 3003 {
		t.Errorf("Amount = %v, want 3003", rec.Amount)
	}
	if rec.Amount < 0 {
		t.Error("Amount must never be negative")
	}
}

func TestCalculate_LargeBillDeducted(t *testing.T) {
	today := date(t, "2026-03-01")
	in := Input{
		Forecast: steadyForecast(today, 5000, 90),
		Runway:   model.RunwayCalculation{Days: 60},
		Projections: []model.Projection{
			{Name: "rent", Amount: -2100, Date: today.AddDate(0, 0, 10), Confidence: 0.95},
			{Name: "spotify", Amount: -12, Date: today.AddDate(0, 0, 3), Confidence: 0.95},
		},
		Today:     today,
		Buffer:    500,
		Tolerance: model.RiskModerate,
	}

	rec := Calculate(in, tun)
	// max = 5000 - 500 - 0 - 2100 = 2400; the 12 subscription is under
	// the large-bill floor.
	if rec.MaxSafe != 2400 {
		t.Errorf("MaxSafe = %v, want 2400", rec.MaxSafe)
	}
}

func TestCalculate_TransferDateAfterNextIncome(t *testing.T) {
	today := date(t, "2026-03-01")
	payday := today.AddDate(0, 0, 4)
	in := Input{
		Forecast: steadyForecast(today, 5000, 90),
		Runway:   model.RunwayCalculation{Days: 60},
		Projections: []model.Projection{
			{Name: "payroll", Amount: 3000, Date: payday, Confidence: 0.95},
		},
		Today:     today,
		Buffer:    500,
		Tolerance: model.RiskModerate,
	}

	rec := Calculate(in, tun)
	if !rec.TransferDate.Equal(payday.AddDate(0, 0, 1)) {
		t.Errorf("TransferDate = %v, want day after payday", rec.TransferDate)
	}

	in.Projections = nil
	rec = Calculate(in, tun)
	if !rec.TransferDate.Equal(today.AddDate(0, 0, 7)) {
		t.Errorf("TransferDate = %v, want 7 days out with no income", rec.TransferDate)
	}
}

func TestTransferImpact(t *testing.T) {
	base := date(t, "2026-03-02")
	days := make([]model.ForecastDay, 60)
	for i := range days {
		days[i] = model.ForecastDay{
			Date:     base.AddDate(0, 0, i),
			P50Total: 4000 - 100*float64(i+1),
		}
	}

	// Unshifted crossing below 500 at i=35; moving 1000 out crosses at i=25.
	newDays, delta := TransferImpact(days, 500, 1000)
	if newDays != 25 {
		t.Errorf("newDays = %d, want 25", newDays)
	}
	if delta != -10 {
		t.Errorf("delta = %d, want -10", delta)
	}
}

func TestBuildSchedule(t *testing.T) {
	today := date(t, "2026-03-01")
	goal := model.SavingsGoal{ID: "g", Name: "Trip", Target: 1000, Saved: 250}
	var projections []model.Projection
	for i := 0; i < 6; i++ {
		projections = append(projections, model.Projection{
			Name: "payroll", Amount: 2000, Date: today.AddDate(0, 0, 14*i+5), Confidence: 0.95,
		})
	}

	plan := BuildSchedule(goal, 300, projections, today)
	if len(plan) != 3 {
		t.Fatalf("plan length = %d, want 3 (300+300+150)", len(plan))
	}
	if plan[2].Amount != 150 {
		t.Errorf("final transfer = %v, want 150", plan[2].Amount)
	}
	for i := 1; i < len(plan); i++ {
		if plan[i].Date.Before(plan[i-1].Date) {
			t.Error("plan not in date order")
		}
	}
}

func goalSet(t *testing.T) []model.SavingsGoal {
	deadline := date(t, "2026-04-15")
	far := date(t, "2027-06-01")
	return []model.SavingsGoal{
		{ID: "g1", Name: "Emergency fund", Target: 5000, Saved: 1000, Priority: model.PriorityHigh, Category: model.GoalEmergency},
		{ID: "g2", Name: "Card payoff", Target: 2000, Saved: 1600, Deadline: &deadline, Priority: model.PriorityMedium, Category: model.GoalDebt},
		{ID: "g3", Name: "New laptop", Target: 1800, Saved: 200, Deadline: &far, Priority: model.PriorityLow, Category: model.GoalLargePurchase},
	}
}

func TestPrioritize_DenseRanksSortedByScore(t *testing.T) {
	goals := goalSet(t)
	ranked := Prioritize(goals, 20, 400, date(t, "2026-03-01"))

	if len(ranked) != 3 {
		t.Fatalf("ranked = %d, want 3", len(ranked))
	}
	seen := make(map[int]bool)
	for i, g := range ranked {
		if g.Rank != i+1 {
			t.Errorf("rank at %d = %d, want %d", i, g.Rank, i+1)
		}
		if seen[g.Rank] {
			t.Errorf("duplicate rank %d", g.Rank)
		}
		seen[g.Rank] = true
		if i > 0 && g.Score > ranked[i-1].Score {
			t.Errorf("scores not non-increasing at %d", i)
		}
		if g.Urgency < 0 || g.Urgency > 100 || g.Impact < 0 || g.Impact > 100 || g.Feasibility < 0 || g.Feasibility > 100 {
			t.Errorf("sub-scores out of range: %+v", g)
		}
		if g.Reasoning == "" {
			t.Error("missing reasoning")
		}
	}
}

func TestPrioritize_LowRunwayBoostsEmergencyFund(t *testing.T) {
	goals := goalSet(t)
	today := date(t, "2026-03-01")

	low := Prioritize(goals, 10, 400, today)
	var lowEmergency float64
	for _, g := range low {
		if g.Category == model.GoalEmergency {
			lowEmergency = g.Impact
		}
	}

	high := Prioritize(goals, 90, 400, today)
	var highEmergency float64
	for _, g := range high {
		if g.Category == model.GoalEmergency {
			highEmergency = g.Impact
		}
	}

	if lowEmergency <= highEmergency {
		t.Errorf("emergency impact at low runway = %v, want > %v", lowEmergency, highEmergency)
	}
}

func TestAllocate_TieredWithMinimum(t *testing.T) {
	goals := goalSet(t)
	ranked := Prioritize(goals, 20, 400, date(t, "2026-03-01"))

	allocated := Allocate(ranked, 1000)

	var total float64
	for _, g := range allocated {
		if g.Allocated < 0 {
			t.Errorf("%s allocated %v, want >= 0", g.Name, g.Allocated)
		}
		if g.Allocated > 0 && g.Allocated < minAllocation && g.Remaining() >= minAllocation {
			t.Errorf("%s allocated %v, below minimum", g.Name, g.Allocated)
		}
		total += g.Allocated
	}
	if total > 1000+1e-9 {
		t.Errorf("total allocated %v exceeds available 1000", total)
	}
	// The top-ranked goal only has 400 remaining, which caps its 60% slice.
	if allocated[0].Allocated != 400 {
		t.Errorf("top goal allocated %v, want 400", allocated[0].Allocated)
	}
	if allocated[1].Allocated != 300 {
		t.Errorf("second goal allocated %v, want 300", allocated[1].Allocated)
	}
}

func TestOnTrack(t *testing.T) {
	today := date(t, "2026-03-01")
	near := date(t, "2026-04-01")
	farAway := date(t, "2027-03-01")

	g := model.SavingsGoal{Target: 1000, Saved: 400}
	if got := OnTrack(g, 200, today); got != model.TrackNoDeadline {
		t.Errorf("no deadline = %q, want no_deadline", got)
	}

	g.Deadline = &farAway
	if got := OnTrack(g, 300, today); got != model.TrackAhead {
		t.Errorf("fast saver = %q, want ahead", got)
	}

	g.Deadline = &near
	if got := OnTrack(g, 100, today); got != model.TrackBehind {
		t.Errorf("slow saver = %q, want behind", got)
	}

	if got := OnTrack(g, 0, today); got != model.TrackBehind {
		t.Errorf("zero contribution = %q, want behind", got)
	}
}
