package model

import "time"

// RiskTolerance controls how aggressive the savings recommendations are.
type RiskTolerance string

const (
	RiskConservative RiskTolerance = "conservative"
	RiskModerate     RiskTolerance = "moderate"
	RiskAggressive   RiskTolerance = "aggressive"
)

// MinRunwayDays is the runway floor below which no transfer is recommended.
func (r RiskTolerance) MinRunwayDays() int {
	switch r {
	case RiskConservative:
		return 21
	case RiskAggressive:
		return 10
	default:
		return 14
	}
}

// Multiplier scales the theoretical maximum safe transfer down to the
// recommended amount.
func (r RiskTolerance) Multiplier() float64 {
	switch r {
	case RiskConservative:
		return 0.5
	case RiskAggressive:
		return 0.85
	default:
		return 0.7
	}
}

// Snapshot is the engine's entire input: the state of the world at one
// reference date. The engine never mutates it.
type Snapshot struct {
	Accounts      []Account
	Transactions  []Transaction
	Recurrences   []Recurrence
	Goals         []SavingsGoal
	Today         time.Time
	Buffer        float64
	HorizonDays   int
	Simulations   int
	RiskTolerance RiskTolerance
}

// Result is everything one engine pass produces.
type Result struct {
	Forecast   []ForecastDay
	Runway     RunwayCalculation
	Risks      []RiskAlert
	RiskScore  int
	Anomalies  []Anomaly
	SafeToSave SafeToSave
	Goals      []PrioritizedGoal
	Confidence float64 // 0..100
}
