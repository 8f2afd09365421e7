package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/theirongolddev/cashcast/internal/config"
	"github.com/theirongolddev/cashcast/internal/model"
)

var tun = config.DefaultTuning()

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// householdSnapshot builds the reference scenario: two accounts totaling
// 12,350, sixty days of roughly -80/day spending, a 2,100 rent payment
// due in 12 days, and a 500 buffer.
func householdSnapshot(t *testing.T) model.Snapshot {
	t.Helper()
	today := date(2026, time.March, 1)
	txns := make([]model.Transaction, 0, 60)
	for i := 0; i < 60; i++ {
		txns = append(txns, model.Transaction{
			ID:        fmt.Sprintf("t%d", i),
			AccountID: "chk",
			Date:      today.AddDate(0, 0, -60+i),
			Amount:    -80,
			Merchant:  "Grocery Mart",
		})
	}
	return model.Snapshot{
		Accounts: []model.Account{
			{ID: "chk", Name: "Checking", Type: model.AccountChecking, Balance: 9350},
			{ID: "sav", Name: "Savings", Type: model.AccountSavings, Balance: 3000},
		},
		Transactions: txns,
		Recurrences: []model.Recurrence{
			{ID: "rent", Name: "Rent", Amount: -2100, Cadence: model.CadenceMonthly,
				NextDate: today.AddDate(0, 0, 12), Confidence: model.ConfidenceHigh},
		},
		Today:         today,
		Buffer:        500,
		HorizonDays:   90,
		Simulations:   200,
		RiskTolerance: model.RiskModerate,
	}
}

func TestRunEndToEnd(t *testing.T) {
	snap := householdSnapshot(t)
	res := Run(snap, tun)

	if len(res.Forecast) != 90 {
		t.Fatalf("len(Forecast) = %d, want 90", len(res.Forecast))
	}
	for i, d := range res.Forecast {
		if d.P10Total > d.P50Total || d.P50Total > d.P90Total {
			t.Errorf("day %d: bands out of order: %v %v %v", i, d.P10Total, d.P50Total, d.P90Total)
		}
	}

	// Steady -80/day plus monthly rent burns through 11,850 of headroom
	// well inside the horizon.
	if res.Runway.Days <= 0 || res.Runway.Days >= 90 {
		t.Errorf("Runway.Days = %d, want within (0, 90)", res.Runway.Days)
	}
	if !res.Runway.Expected.Crossed {
		t.Error("Expected.Crossed = false, want true")
	}
	if res.Confidence < 30 || res.Confidence > 100 {
		t.Errorf("Confidence = %v, want in [30, 100]", res.Confidence)
	}
	if res.RiskScore < 0 || res.RiskScore > 100 {
		t.Errorf("RiskScore = %v, want in [0, 100]", res.RiskScore)
	}
}

func TestRunDeterministic(t *testing.T) {
	snap := householdSnapshot(t)
	a := Run(snap, tun)
	b := Run(snap, tun)

	if a.Runway.Days != b.Runway.Days {
		t.Errorf("Runway.Days differs between runs: %d vs %d", a.Runway.Days, b.Runway.Days)
	}
	last := len(a.Forecast) - 1
	if a.Forecast[last].P50Total != b.Forecast[last].P50Total {
		t.Errorf("final P50 differs: %v vs %v", a.Forecast[last].P50Total, b.Forecast[last].P50Total)
	}
	if a.SafeToSave.Amount != b.SafeToSave.Amount {
		t.Errorf("SafeToSave.Amount differs: %v vs %v", a.SafeToSave.Amount, b.SafeToSave.Amount)
	}
}

func TestRunSafeToSaveGatedOnShortRunway(t *testing.T) {
	today := date(2026, time.March, 1)
	txns := make([]model.Transaction, 0, 30)
	for i := 0; i < 30; i++ {
		txns = append(txns, model.Transaction{
			ID: "t", AccountID: "chk", Date: today.AddDate(0, 0, -30+i),
			Amount: -100, Merchant: "Grocery Mart",
		})
	}
	snap := model.Snapshot{
		Accounts:      []model.Account{{ID: "chk", Name: "Checking", Type: model.AccountChecking, Balance: 1200}},
		Transactions:  txns,
		Today:         today,
		Buffer:        500,
		HorizonDays:   90,
		Simulations:   200,
		RiskTolerance: model.RiskModerate,
	}
	res := Run(snap, tun)

	if res.Runway.Days >= 14 {
		t.Fatalf("Runway.Days = %d, want < 14 for this fixture", res.Runway.Days)
	}
	if res.SafeToSave.Amount != 0 {
		t.Errorf("SafeToSave.Amount = %v, want 0 when runway is below minimum", res.SafeToSave.Amount)
	}
}

func TestRunGoalsPrioritizedAndAllocated(t *testing.T) {
	snap := householdSnapshot(t)
	// Income keeps the runway long enough for a nonzero recommendation.
	snap.Recurrences = append(snap.Recurrences, model.Recurrence{
		ID: "pay", Name: "Paycheck", Amount: 3400, Cadence: model.CadenceBiweekly,
		NextDate: snap.Today.AddDate(0, 0, 3), Confidence: model.ConfidenceHigh,
	})
	deadline := snap.Today.AddDate(0, 6, 0)
	snap.Goals = []model.SavingsGoal{
		{ID: "g1", Name: "Emergency fund", Target: 10000, Saved: 2000,
			Priority: model.PriorityHigh, Category: model.GoalEmergency},
		{ID: "g2", Name: "Vacation", Target: 3000, Saved: 500, Deadline: &deadline,
			Priority: model.PriorityLow, Category: model.GoalLifestyle},
	}
	res := Run(snap, tun)

	if len(res.Goals) != 2 {
		t.Fatalf("len(Goals) = %d, want 2", len(res.Goals))
	}
	for i, g := range res.Goals {
		if g.Rank != i+1 {
			t.Errorf("Goals[%d].Rank = %d, want %d", i, g.Rank, i+1)
		}
		if g.Score <= 0 {
			t.Errorf("Goals[%d].Score = %v, want > 0", i, g.Score)
		}
	}
	if res.Goals[0].Category != model.GoalEmergency {
		t.Errorf("top goal = %s, want emergency fund ranked first", res.Goals[0].Name)
	}
}

func TestRunDefaults(t *testing.T) {
	res := Run(model.Snapshot{
		Accounts: []model.Account{{ID: "chk", Name: "Checking", Balance: 1000}},
		Today:    date(2026, time.March, 1),
	}, tun)

	if len(res.Forecast) != 90 {
		t.Errorf("len(Forecast) = %d, want 90 from defaults", len(res.Forecast))
	}
}

func TestRunEmptySnapshot(t *testing.T) {
	res := Run(model.Snapshot{Today: date(2026, time.March, 1)}, tun)

	if len(res.Forecast) != 90 {
		t.Errorf("len(Forecast) = %d, want 90", len(res.Forecast))
	}
	if res.SafeToSave.Amount != 0 {
		t.Errorf("SafeToSave.Amount = %v, want 0 with no accounts", res.SafeToSave.Amount)
	}
	if len(res.Goals) != 0 {
		t.Errorf("len(Goals) = %d, want 0", len(res.Goals))
	}
}
