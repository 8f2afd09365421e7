package model

import "time"

// AccountBand is one account's share of a forecast day's percentile bands.
type AccountBand struct {
	AccountID string
	P10       float64
	P50       float64
	P90       float64
}

// ForecastDay holds the percentile-banded balance projection for one day.
// Invariant: P10Total <= P50Total <= P90Total.
type ForecastDay struct {
	Date     time.Time
	P10Total float64
	P50Total float64
	P90Total float64
	Accounts []AccountBand
}

// BufferZones classifies a runway day count. Exactly one field is true.
type BufferZones struct {
	Safe     bool // more than 30 days
	Caution  bool // 14 to 30 days
	Critical bool // under 14 days
}

// RunwayTrend describes how the runway is moving over the forecast window.
type RunwayTrend string

const (
	TrendExtending RunwayTrend = "extending"
	TrendStable    RunwayTrend = "stable"
	TrendShrinking RunwayTrend = "shrinking"
)

// ScenarioRunway is the runway under one percentile scenario.
type ScenarioRunway struct {
	Days      int
	CrossDate time.Time // zero when the buffer is never crossed
	Crossed   bool
}

// RunwayCalculation is the full three-scenario runway result. Days mirrors
// the expected (P50) scenario.
type RunwayCalculation struct {
	Days         int
	Optimistic   ScenarioRunway
	Expected     ScenarioRunway
	Conservative ScenarioRunway
	Zones        BufferZones
	Trend        RunwayTrend
	Confidence   float64 // 0..1
}

// Milestone reports whether the balance is projected to stay above the
// buffer through a fixed day count.
type Milestone struct {
	Days      int
	Achieved  bool
	Remaining int // days short when not achieved
}
