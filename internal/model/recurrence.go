package model

import "time"

// Cadence is how often a recurrence repeats.
type Cadence string

const (
	CadenceWeekly    Cadence = "weekly"
	CadenceBiweekly  Cadence = "biweekly"
	CadenceMonthly   Cadence = "monthly"
	CadenceQuarterly Cadence = "quarterly"
	CadenceYearly    Cadence = "yearly"
)

// Days returns the fixed day step used when projecting the cadence forward.
func (c Cadence) Days() int {
	switch c {
	case CadenceWeekly:
		return 7
	case CadenceBiweekly:
		return 14
	case CadenceQuarterly:
		return 90
	case CadenceYearly:
		return 365
	default:
		return 30
	}
}

// ConfidenceTier is how certain we are a recurrence will actually happen.
type ConfidenceTier string

const (
	ConfidenceLow    ConfidenceTier = "low"
	ConfidenceMedium ConfidenceTier = "medium"
	ConfidenceHigh   ConfidenceTier = "high"
)

// Multiplier maps a tier to the factor used to scale simulated variance.
func (c ConfidenceTier) Multiplier() float64 {
	switch c {
	case ConfidenceHigh:
		return 0.95
	case ConfidenceLow:
		return 0.6
	default:
		return 0.8
	}
}

// Recurrence is a predicted repeating cash-flow event, not a ledger entry.
// Amount is signed like Transaction.Amount.
type Recurrence struct {
	ID         string
	Name       string
	Amount     float64
	Cadence    Cadence
	NextDate   time.Time
	Confidence ConfidenceTier
}

// Projection is one dated future occurrence of a recurrence.
type Projection struct {
	Name       string
	Amount     float64
	Date       time.Time
	Confidence float64 // tier multiplier, scales simulated variance
}
