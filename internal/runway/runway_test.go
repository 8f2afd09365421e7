package runway

import (
	"testing"
	"time"

	"github.com/theirongolddev/cashcast/internal/model"
)

// declining builds a forecast whose expected balance falls by step each
// day, with a fixed band width around it.
func declining(start, step, width float64, n int) []model.ForecastDay {
	base := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	days := make([]model.ForecastDay, n)
	for i := range days {
		mid := start - step*float64(i+1)
		days[i] = model.ForecastDay{
			Date:     base.AddDate(0, 0, i),
			P10Total: mid - width,
			P50Total: mid,
			P90Total: mid + width,
		}
	}
	return days
}

func TestCalculate_FindsCrossingDay(t *testing.T) {
	// 5000 start, -100/day: P50 crosses below 500 after day 45.
	days := declining(5000, 100, 200, 90)
	calc := Calculate(days, 500, 0.10)

	if calc.Days != 45 {
		t.Errorf("Days = %d, want 45", calc.Days)
	}
	if !calc.Expected.Crossed {
		t.Error("Expected.Crossed = false, want true")
	}
	// Conservative crosses earlier, optimistic later.
	if calc.Conservative.Days >= calc.Expected.Days {
		t.Errorf("Conservative.Days = %d, want < %d", calc.Conservative.Days, calc.Expected.Days)
	}
	if calc.Optimistic.Days <= calc.Expected.Days {
		t.Errorf("Optimistic.Days = %d, want > %d", calc.Optimistic.Days, calc.Expected.Days)
	}
	if calc.Trend != model.TrendShrinking {
		t.Errorf("Trend = %q, want shrinking", calc.Trend)
	}
}

func TestCalculate_NeverCrossesRunsFullHorizon(t *testing.T) {
	days := declining(10000, 1, 100, 90)
	calc := Calculate(days, 500, 0.10)

	if calc.Days != 90 {
		t.Errorf("Days = %d, want full horizon 90", calc.Days)
	}
	if calc.Expected.Crossed {
		t.Error("Expected.Crossed = true, want false")
	}
	if !calc.Zones.Safe {
		t.Error("Zones.Safe = false, want true")
	}
}

func TestCalculate_ZonesExclusive(t *testing.T) {
	cases := []struct {
		days int
		want model.BufferZones
	}{
		{45, model.BufferZones{Safe: true}},
		{20, model.BufferZones{Caution: true}},
		{5, model.BufferZones{Critical: true}},
	}
	for _, c := range cases {
		got := zones(c.days)
		if got != c.want {
			t.Errorf("zones(%d) = %+v, want %+v", c.days, got, c.want)
		}
		trueCount := 0
		for _, b := range []bool{got.Safe, got.Caution, got.Critical} {
			if b {
				trueCount++
			}
		}
		if trueCount != 1 {
			t.Errorf("zones(%d): %d zones set, want exactly 1", c.days, trueCount)
		}
	}
}

func TestAdjustmentImpact_DepositExtendsRunway(t *testing.T) {
	days := declining(5000, 100, 200, 90)
	adjusted, delta := AdjustmentImpact(days, 500, 2000, 0.10)

	if delta <= 0 {
		t.Errorf("delta = %d, want > 0 for a deposit", delta)
	}
	if adjusted.Days != 65 {
		t.Errorf("adjusted Days = %d, want 65", adjusted.Days)
	}
}

func TestAdjustmentImpact_WithdrawalShortensRunway(t *testing.T) {
	days := declining(5000, 100, 200, 90)
	_, delta := AdjustmentImpact(days, 500, -2000, 0.10)
	if delta >= 0 {
		t.Errorf("delta = %d, want < 0 for a withdrawal", delta)
	}
}

func TestMilestones(t *testing.T) {
	days := declining(5000, 100, 200, 90) // runway 45
	got := Milestones(days, 500, 0.10)

	if len(got) != 5 {
		t.Fatalf("milestones = %d, want 5", len(got))
	}
	wantAchieved := []bool{true, true, true, false, false}
	for i, m := range got {
		if m.Achieved != wantAchieved[i] {
			t.Errorf("milestone %dd achieved = %v, want %v", m.Days, m.Achieved, wantAchieved[i])
		}
	}
	if got[3].Remaining != 60-45 {
		t.Errorf("60d Remaining = %d, want 15", got[3].Remaining)
	}
}

func TestCalculate_StableTrend(t *testing.T) {
	days := declining(10000, 0.5, 100, 90)
	calc := Calculate(days, 500, 0.10)
	if calc.Trend != model.TrendStable {
		t.Errorf("Trend = %q, want stable", calc.Trend)
	}
}
