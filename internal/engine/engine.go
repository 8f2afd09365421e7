// Package engine runs one full forecasting pass: categorization,
// simulation, runway, risks, anomalies, savings recommendation, and goal
// prioritization over a single immutable snapshot. Pure computation; no
// I/O, no persistence.
package engine

import (
	"time"

	"github.com/theirongolddev/cashcast/internal/classify"
	"github.com/theirongolddev/cashcast/internal/config"
	"github.com/theirongolddev/cashcast/internal/forecast"
	"github.com/theirongolddev/cashcast/internal/risk"
	"github.com/theirongolddev/cashcast/internal/runway"
	"github.com/theirongolddev/cashcast/internal/savings"

	"github.com/theirongolddev/cashcast/internal/model"
)

// Run executes one engine pass over the snapshot. Degenerate inputs
// (no accounts, no history, no goals) produce well-defined zero-ish
// outputs rather than errors.
func Run(snap model.Snapshot, tun config.Tuning) model.Result {
	if snap.HorizonDays <= 0 {
		snap.HorizonDays = 90
	}
	if snap.Simulations <= 0 {
		snap.Simulations = 300
	}
	if snap.Today.IsZero() {
		snap.Today = time.Now().Truncate(24 * time.Hour)
	}
	if snap.RiskTolerance == "" {
		snap.RiskTolerance = model.RiskModerate
	}

	txns := classify.CategorizeAll(snap.Transactions)
	patterns := forecast.AnalyzePatterns(txns, tun.StdDevFloor)
	projections := forecast.ProjectRecurrences(snap.Recurrences, snap.Today, snap.HorizonDays)

	days := forecast.Simulate(snap.Accounts, projections, patterns, snap.Today, forecast.SimConfig{
		HorizonDays: snap.HorizonDays,
		Runs:        snap.Simulations,
		Seed:        forecast.DefaultSeed,
		NoiseScale:  tun.DailyNoiseScale,
	})

	run := runway.Calculate(days, snap.Buffer, tun.TrendTolerance)

	risks := risk.Detect(risk.Input{
		Accounts:     snap.Accounts,
		Transactions: txns,
		Projections:  projections,
		Forecast:     days,
		Runway:       run,
		Today:        snap.Today,
		Buffer:       snap.Buffer,
	}, tun)

	anomalies := risk.DetectAnomalies(txns, snap.Today, tun)

	safe := savings.Calculate(savings.Input{
		Forecast:     days,
		Runway:       run,
		Projections:  projections,
		Transactions: txns,
		Today:        snap.Today,
		Buffer:       snap.Buffer,
		Tolerance:    snap.RiskTolerance,
	}, tun)

	var goals []model.PrioritizedGoal
	if len(snap.Goals) > 0 {
		goals = savings.Prioritize(snap.Goals, run.Days, safe.Amount, snap.Today)
		goals = savings.Allocate(goals, safe.Amount)
	}

	return model.Result{
		Forecast:   days,
		Runway:     run,
		Risks:      risks,
		RiskScore:  risk.Score(run, risks),
		Anomalies:  anomalies,
		SafeToSave: safe,
		Goals:      goals,
		Confidence: forecast.Score(len(txns), snap.Recurrences, days),
	}
}
