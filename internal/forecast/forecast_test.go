package forecast

import (
	"testing"
	"time"

	"github.com/theirongolddev/cashcast/internal/model"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("parse date %q: %v", s, err)
	}
	return d
}

func TestRand_Deterministic(t *testing.T) {
	a := SeedForRun(42, 7)
	b := SeedForRun(42, 7)
	for i := 0; i < 100; i++ {
		var va, vb float64
		va, a = a.Next()
		vb, b = b.Next()
		if va != vb {
			t.Fatalf("draw %d: %v != %v", i, va, vb)
		}
		if va < 0 || va >= 1 {
			t.Fatalf("draw %d out of [0,1): %v", i, va)
		}
	}
}

func TestRand_RunsIndependent(t *testing.T) {
	a := SeedForRun(42, 0)
	b := SeedForRun(42, 1)
	va, _ := a.Next()
	vb, _ := b.Next()
	if va == vb {
		t.Error("different run indexes produced identical first draws")
	}
}

func TestRand_NormRoughlyCentered(t *testing.T) {
	rng := SeedForRun(1, 0)
	var sum float64
	const n = 2000
	for i := 0; i < n; i++ {
		var z float64
		z, rng = rng.Norm()
		sum += z
	}
	mean := sum / n
	if mean < -0.1 || mean > 0.1 {
		t.Errorf("normal sample mean = %v, want near 0", mean)
	}
}

func TestAnalyzePatterns_EmptyHistory(t *testing.T) {
	p := AnalyzePatterns(nil, 20)
	if p.DailyMean != 0 {
		t.Errorf("DailyMean = %v, want 0", p.DailyMean)
	}
	if p.DailyStdDev != 20 {
		t.Errorf("DailyStdDev = %v, want floor 20", p.DailyStdDev)
	}
}

func TestAnalyzePatterns_DaySpanNormalized(t *testing.T) {
	// 100 net over a 10-day span -> 10/day regardless of txn count.
	txns := []model.Transaction{
		{Date: day(t, "2026-03-01"), Amount: 60},
		{Date: day(t, "2026-03-10"), Amount: 40},
	}
	p := AnalyzePatterns(txns, 20)
	if p.DailyMean != 10 {
		t.Errorf("DailyMean = %v, want 10", p.DailyMean)
	}
	if p.IncomeFrequency != 0.2 {
		t.Errorf("IncomeFrequency = %v, want 0.2", p.IncomeFrequency)
	}
	if p.IncomeMean != 50 {
		t.Errorf("IncomeMean = %v, want 50", p.IncomeMean)
	}
}

func TestAnalyzePatterns_StdDevFloor(t *testing.T) {
	// Identical daily flow has near-zero variance; the floor must hold.
	var txns []model.Transaction
	start := day(t, "2026-03-01")
	for i := 0; i < 10; i++ {
		txns = append(txns, model.Transaction{Date: start.AddDate(0, 0, i), Amount: -50})
	}
	p := AnalyzePatterns(txns, 20)
	if p.DailyStdDev != 20 {
		t.Errorf("DailyStdDev = %v, want floor 20", p.DailyStdDev)
	}
	if p.ExpenseMean != 50 {
		t.Errorf("ExpenseMean = %v, want 50", p.ExpenseMean)
	}
}

func TestProjectRecurrences_MonthlyWithinHorizon(t *testing.T) {
	today := day(t, "2026-03-01")
	recs := []model.Recurrence{{
		Name:       "rent",
		Amount:     -2100,
		Cadence:    model.CadenceMonthly,
		NextDate:   today.AddDate(0, 0, 12),
		Confidence: model.ConfidenceHigh,
	}}

	got := ProjectRecurrences(recs, today, 90)
	if len(got) != 3 {
		t.Fatalf("projections = %d, want 3 (days 12, 42, 72)", len(got))
	}
	for i, want := range []int{12, 42, 72} {
		if !got[i].Date.Equal(today.AddDate(0, 0, want)) {
			t.Errorf("projection %d on %v, want day %d", i, got[i].Date, want)
		}
	}
	if got[0].Confidence != 0.95 {
		t.Errorf("Confidence = %v, want 0.95", got[0].Confidence)
	}
}

func TestProjectRecurrences_SortedAcrossRecurrences(t *testing.T) {
	today := day(t, "2026-03-01")
	recs := []model.Recurrence{
		{Name: "rent", Amount: -2100, Cadence: model.CadenceMonthly, NextDate: today.AddDate(0, 0, 20), Confidence: model.ConfidenceHigh},
		{Name: "payroll", Amount: 3000, Cadence: model.CadenceBiweekly, NextDate: today.AddDate(0, 0, 3), Confidence: model.ConfidenceHigh},
	}
	got := ProjectRecurrences(recs, today, 60)
	for i := 1; i < len(got); i++ {
		if got[i].Date.Before(got[i-1].Date) {
			t.Fatalf("projections not sorted at %d", i)
		}
	}
}

func TestProjectRecurrences_PastNextDateSkipped(t *testing.T) {
	today := day(t, "2026-03-01")
	recs := []model.Recurrence{{
		Name: "old", Amount: -10, Cadence: model.CadenceWeekly,
		NextDate: today.AddDate(0, 0, -10), Confidence: model.ConfidenceLow,
	}}
	got := ProjectRecurrences(recs, today, 14)
	for _, p := range got {
		if p.Date.Before(today) {
			t.Errorf("projection before today: %v", p.Date)
		}
	}
	if len(got) == 0 {
		t.Error("expected in-window projections from a past-dated recurrence")
	}
}

func simAccounts() []model.Account {
	return []model.Account{
		{ID: "chk", Type: model.AccountChecking, Balance: 8000},
		{ID: "sav", Type: model.AccountSavings, Balance: 4350},
	}
}

func TestSimulate_BandOrderingAndShape(t *testing.T) {
	today := day(t, "2026-03-01")
	patterns := Patterns{DailyMean: -120, DailyStdDev: 60}
	cfg := SimConfig{HorizonDays: 90, Runs: 200, Seed: DefaultSeed, NoiseScale: 0.5}

	days := Simulate(simAccounts(), nil, patterns, today, cfg)

	if len(days) != 90 {
		t.Fatalf("forecast length = %d, want 90", len(days))
	}
	for i, d := range days {
		if d.P10Total > d.P50Total || d.P50Total > d.P90Total {
			t.Fatalf("day %d bands out of order: %v %v %v", i, d.P10Total, d.P50Total, d.P90Total)
		}
		want := today.AddDate(0, 0, i+1)
		if !d.Date.Equal(want) {
			t.Fatalf("day %d date = %v, want %v", i, d.Date, want)
		}
	}
}

func TestSimulate_Deterministic(t *testing.T) {
	today := day(t, "2026-03-01")
	patterns := Patterns{DailyMean: -50, DailyStdDev: 40}
	projs := ProjectRecurrences([]model.Recurrence{
		{Name: "rent", Amount: -2100, Cadence: model.CadenceMonthly, NextDate: today.AddDate(0, 0, 12), Confidence: model.ConfidenceMedium},
	}, today, 60)
	cfg := SimConfig{HorizonDays: 60, Runs: 150, Seed: 99, NoiseScale: 0.5}

	a := Simulate(simAccounts(), projs, patterns, today, cfg)
	b := Simulate(simAccounts(), projs, patterns, today, cfg)

	for i := range a {
		if a[i].P10Total != b[i].P10Total || a[i].P50Total != b[i].P50Total || a[i].P90Total != b[i].P90Total {
			t.Fatalf("day %d differs between identical invocations", i)
		}
	}
}

func TestSimulate_ZeroBalanceDegenerate(t *testing.T) {
	today := day(t, "2026-03-01")
	accounts := []model.Account{
		{ID: "a", Balance: 0},
		{ID: "b", Balance: 0},
	}
	days := Simulate(accounts, nil, Patterns{DailyStdDev: 20}, today, SimConfig{HorizonDays: 30, Runs: 100, Seed: 1, NoiseScale: 0.5})

	if len(days) != 30 {
		t.Fatalf("forecast length = %d, want 30", len(days))
	}
	// Equal split of the per-account bands when the total is zero.
	d := days[0]
	if len(d.Accounts) != 2 {
		t.Fatalf("account bands = %d, want 2", len(d.Accounts))
	}
	if d.Accounts[0].P50 != d.Accounts[1].P50 {
		t.Errorf("zero-balance split not equal: %v vs %v", d.Accounts[0].P50, d.Accounts[1].P50)
	}
}

func TestSimulate_RecurrenceShiftsMedian(t *testing.T) {
	today := day(t, "2026-03-01")
	projs := []model.Projection{{Name: "rent", Amount: -2100, Date: today.AddDate(0, 0, 12), Confidence: 0.95}}
	cfg := SimConfig{HorizonDays: 30, Runs: 200, Seed: 7, NoiseScale: 0.5}
	patterns := Patterns{DailyStdDev: 20}

	days := Simulate(simAccounts(), projs, patterns, today, cfg)

	before := days[10].P50Total
	after := days[13].P50Total
	if after > before-1500 {
		t.Errorf("median after rent = %v, want roughly 2100 below %v", after, before)
	}
}

func TestScore_ClampedToFloor(t *testing.T) {
	got := Score(0, nil, nil)
	if got < 30 || got > 100 {
		t.Errorf("Score = %v, want within [30,100]", got)
	}
}

func TestScore_RichDataScoresHigher(t *testing.T) {
	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	narrow := []model.ForecastDay{{Date: today, P10Total: 9800, P50Total: 10000, P90Total: 10200}}
	recs := []model.Recurrence{{Confidence: model.ConfidenceHigh}}

	rich := Score(40, recs, narrow)
	poor := Score(2, nil, nil)
	if rich <= poor {
		t.Errorf("rich data score %v <= poor data score %v", rich, poor)
	}
	if rich > 100 {
		t.Errorf("Score = %v, want <= 100", rich)
	}
}
