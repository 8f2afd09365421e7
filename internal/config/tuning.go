package config

// Tuning exposes the engine's empirically chosen constants as config
// overrides. The defaults are the values the heuristics were calibrated
// with; change them only if you know what a threshold is doing.
type Tuning struct {
	// Simulation
	StdDevFloor     float64 `toml:"stddev_floor"`      // minimum daily net std dev
	DailyNoiseScale float64 `toml:"daily_noise_scale"` // scales daily discretionary perturbation

	// Anomaly detection
	OutlierSigma         float64 `toml:"outlier_sigma"`           // z-score flag threshold
	OutlierHighSigma     float64 `toml:"outlier_high_sigma"`      // medium -> high severity
	OutlierExtremeSigma  float64 `toml:"outlier_extreme_sigma"`   // high severity, max confidence
	FrequencySpikeRatio  float64 `toml:"frequency_spike_ratio"`   // recent vs historical rate
	NewMerchantDays      int     `toml:"new_merchant_days"`       // lookback window
	NewMerchantMinAmount float64 `toml:"new_merchant_min_amount"` // ignore small first purchases
	DuplicateTolerance   float64 `toml:"duplicate_tolerance"`     // amount match slack
	TimeAnomalySigma     float64 `toml:"time_anomaly_sigma"`
	TimeAnomalyMinHours  float64 `toml:"time_anomaly_min_hours"`
	MaxAnomalies         int     `toml:"max_anomalies"`

	// Risk detection
	LowBalanceThreshold   float64 `toml:"low_balance_threshold"`
	LargeBillFloor        float64 `toml:"large_bill_floor"`
	LargeBillExpenseRatio float64 `toml:"large_bill_expense_ratio"` // vs average recurring expense
	LargeBillBalanceShare float64 `toml:"large_bill_balance_share"` // vs current balance
	RunwayWarningDays     int     `toml:"runway_warning_days"`
	SpendingSpikeSigma    float64 `toml:"spending_spike_sigma"`
	ConcentrationShare    float64 `toml:"concentration_share"`
	MaxRisks              int     `toml:"max_risks"`

	// Trend classification
	TrendTolerance     float64 `toml:"trend_tolerance"`      // first-vs-later week comparison
	BurnTrendTolerance float64 `toml:"burn_trend_tolerance"` // burn rate half comparison
	SlopeThreshold     float64 `toml:"slope_threshold"`      // regression direction, per period

	// Recurring pattern mining
	PatternMinConfidence float64 `toml:"pattern_min_confidence"`
}

// DefaultTuning returns the calibrated defaults.
func DefaultTuning() Tuning {
	return Tuning{
		StdDevFloor:     20,
		DailyNoiseScale: 0.5,

		OutlierSigma:         2.5,
		OutlierHighSigma:     3.0,
		OutlierExtremeSigma:  4.0,
		FrequencySpikeRatio:  3.0,
		NewMerchantDays:      30,
		NewMerchantMinAmount: 20,
		DuplicateTolerance:   0.01,
		TimeAnomalySigma:     3.0,
		TimeAnomalyMinHours:  6,
		MaxAnomalies:         10,

		LowBalanceThreshold:   500,
		LargeBillFloor:        500,
		LargeBillExpenseRatio: 3.0,
		LargeBillBalanceShare: 0.30,
		RunwayWarningDays:     14,
		SpendingSpikeSigma:    2.0,
		ConcentrationShare:    0.85,
		MaxRisks:              5,

		TrendTolerance:     0.10,
		BurnTrendTolerance: 0.15,
		SlopeThreshold:     0.005,

		PatternMinConfidence: 0.5,
	}
}
