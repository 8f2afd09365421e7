package model

import "time"

// Severity grades a risk alert or anomaly.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Weight orders severities for sorting: critical > warning > info.
func (s Severity) Weight() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityWarning:
		return 2
	default:
		return 1
	}
}

// RiskAlert is one detected forward-looking risk. Alerts are derived fresh
// on every engine run and never persisted.
type RiskAlert struct {
	ID          string
	Title       string
	Description string
	Date        time.Time
	Severity    Severity
}

// AnomalyType names the heuristic that produced an anomaly.
type AnomalyType string

const (
	AnomalyAmountOutlier    AnomalyType = "amount_outlier"
	AnomalyFrequencySpike   AnomalyType = "frequency_spike"
	AnomalyNewMerchant      AnomalyType = "new_merchant"
	AnomalyDuplicateSuspect AnomalyType = "duplicate_suspect"
	AnomalyTimeAnomaly      AnomalyType = "time_anomaly"
)

// AnomalySeverity grades how unusual an anomaly is.
type AnomalySeverity string

const (
	AnomalyLow    AnomalySeverity = "low"
	AnomalyMedium AnomalySeverity = "medium"
	AnomalyHigh   AnomalySeverity = "high"
)

// Weight orders anomaly severities for sorting.
func (s AnomalySeverity) Weight() int {
	switch s {
	case AnomalyHigh:
		return 3
	case AnomalyMedium:
		return 2
	default:
		return 1
	}
}

// Anomaly is one statistically unusual historical transaction.
type Anomaly struct {
	ID          string
	Transaction Transaction
	Type        AnomalyType
	Severity    AnomalySeverity
	Description string
	Confidence  float64 // 0..1
}
