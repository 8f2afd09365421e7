package risk

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

func flatForecast(base time.Time, values ...float64) []model.ForecastDay {
	days := make([]model.ForecastDay, len(values))
	for i, v := range values {
		days[i] = model.ForecastDay{
			Date:     base.AddDate(0, 0, i+1),
			P10Total: v,
			P50Total: v + 300,
			P90Total: v + 600,
		}
	}
	return days
}

func TestLowBalance_FlagsOnceThenOverdraftThenStops(t *testing.T) {
	base := date(t, "2026-03-01")
	days := flatForecast(base, 900, 400, 300, -50, -200, -400)

	alerts := lowBalance(days, tun)
	if len(alerts) != 2 {
		t.Fatalf("alerts = %d, want 2 (low + overdraft)", len(alerts))
	}
	if alerts[0].Severity != model.SeverityWarning {
		t.Errorf("first alert severity = %q, want warning", alerts[0].Severity)
	}
	if alerts[1].Severity != model.SeverityCritical {
		t.Errorf("second alert severity = %q, want critical", alerts[1].Severity)
	}
	// Overdraft flagged on the first negative day, not repeated.
	if !alerts[1].Date.Equal(base.AddDate(0, 0, 4)) {
		t.Errorf("overdraft date = %v, want day 4", alerts[1].Date)
	}
}

func TestLargeBills_ThresholdAndSeverity(t *testing.T) {
	accounts := []model.Account{{ID: "chk", Name: "Checking", Balance: 3000}}
	base := date(t, "2026-03-01")
	projections := []model.Projection{
		{Name: "rent", Amount: -2100, Date: base.AddDate(0, 0, 12), Confidence: 0.95},
		{Name: "payroll", Amount: 3000, Date: base.AddDate(0, 0, 5), Confidence: 0.95},
	}
	// A stack of small weekly subscriptions keeps the average recurring
	// expense low, so the threshold comes from the balance share.
	for w := 0; w < 10; w++ {
		projections = append(projections, model.Projection{
			Name: "spotify", Amount: -12, Date: base.AddDate(0, 0, 3+7*w), Confidence: 0.95,
		})
	}

	alerts := largeBills(accounts, projections, tun)
	if len(alerts) != 1 {
		t.Fatalf("alerts = %d, want 1 (rent only)", len(alerts))
	}
	if alerts[0].Severity != model.SeverityCritical {
		// 2100/3000 = 70% of balance
		t.Errorf("severity = %q, want critical", alerts[0].Severity)
	}
}

func TestSpendingSpike(t *testing.T) {
	today := date(t, "2026-03-01")
	var txns []model.Transaction
	// Four steady prior weeks at ~100/week.
	for w := 1; w <= 4; w++ {
		txns = append(txns, model.Transaction{
			ID: fmt.Sprintf("w%d", w), Date: today.AddDate(0, 0, -7*w-1), Amount: -100,
		})
	}
	// A heavy current week.
	for d := 0; d < 4; d++ {
		txns = append(txns, model.Transaction{
			ID: fmt.Sprintf("d%d", d), Date: today.AddDate(0, 0, -d), Amount: -300,
		})
	}

	alerts := spendingSpike(txns, today, tun)
	if len(alerts) != 1 {
		t.Fatalf("alerts = %d, want 1", len(alerts))
	}
	if alerts[0].Severity != model.SeverityWarning {
		t.Errorf("severity = %q, want warning", alerts[0].Severity)
	}
}

func TestSpendingSpike_SteadySpendingQuiet(t *testing.T) {
	today := date(t, "2026-03-01")
	var txns []model.Transaction
	for d := 1; d <= 35; d++ {
		txns = append(txns, model.Transaction{
			ID: fmt.Sprintf("t%d", d), Date: today.AddDate(0, 0, -d), Amount: -50,
		})
	}
	if alerts := spendingSpike(txns, today, tun); len(alerts) != 0 {
		t.Errorf("alerts = %d, want 0 for steady spending", len(alerts))
	}
}

func TestConcentration(t *testing.T) {
	accounts := []model.Account{
		{ID: "chk", Name: "Checking", Balance: 9000},
		{ID: "sav", Name: "Savings", Balance: 500},
	}
	alerts := concentration(accounts, tun)
	if len(alerts) != 1 {
		t.Fatalf("alerts = %d, want 1", len(alerts))
	}
	if alerts[0].Severity != model.SeverityInfo {
		t.Errorf("severity = %q, want info", alerts[0].Severity)
	}

	balanced := []model.Account{
		{ID: "chk", Balance: 5000},
		{ID: "sav", Balance: 4500},
	}
	if alerts := concentration(balanced, tun); len(alerts) != 0 {
		t.Errorf("alerts = %d, want 0 for balanced accounts", len(alerts))
	}
}

func TestDetect_SortsAndTruncates(t *testing.T) {
	today := date(t, "2026-03-01")
	in := Input{
		Accounts: []model.Account{
			{ID: "chk", Name: "Checking", Balance: 950},
			{ID: "sav", Name: "Savings", Balance: 50},
		},
		Projections: []model.Projection{
			{Name: "rent", Amount: -2100, Date: today.AddDate(0, 0, 12), Confidence: 0.95},
		},
		Forecast: flatForecast(today, 400, 100, -100, -300, -500, -700),
		Runway: model.RunwayCalculation{
			Days:     2,
			Expected: model.ScenarioRunway{Days: 2, Crossed: true, CrossDate: today.AddDate(0, 0, 2)},
		},
		Today:  today,
		Buffer: 500,
	}

	alerts := Detect(in, tun)
	if len(alerts) == 0 || len(alerts) > tun.MaxRisks {
		t.Fatalf("alerts = %d, want 1..%d", len(alerts), tun.MaxRisks)
	}
	for i := 1; i < len(alerts); i++ {
		if alerts[i].Severity.Weight() > alerts[i-1].Severity.Weight() {
			t.Fatalf("alerts not sorted by severity at %d", i)
		}
	}
}

func TestScore_CappedAt100(t *testing.T) {
	run := model.RunwayCalculation{Days: 3}
	var alerts []model.RiskAlert
	for i := 0; i < 10; i++ {
		alerts = append(alerts, model.RiskAlert{Severity: model.SeverityCritical})
	}
	if got := Score(run, alerts); got != 100 {
		t.Errorf("Score = %d, want capped 100", got)
	}
}

func TestScore_HealthyIsLow(t *testing.T) {
	run := model.RunwayCalculation{Days: 90}
	if got := Score(run, nil); got != 0 {
		t.Errorf("Score = %d, want 0", got)
	}
}
