package risk

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/theirongolddev/cashcast/internal/config"
	"github.com/theirongolddev/cashcast/internal/model"

	"github.com/google/uuid"
)

// minAnomalyTxns is the history size below which anomaly detection stays
// silent; with fewer transactions the statistics are noise.
const minAnomalyTxns = 5

// DetectAnomalies runs all anomaly heuristics over the transaction
// history, merges the findings, sorts by severity then confidence, and
// keeps the top tun.MaxAnomalies.
func DetectAnomalies(txns []model.Transaction, today time.Time, tun config.Tuning) []model.Anomaly {
	if len(txns) < minAnomalyTxns {
		return nil
	}

	var out []model.Anomaly
	out = append(out, amountOutliers(txns, tun)...)
	out = append(out, frequencySpikes(txns, today, tun)...)
	out = append(out, newMerchants(txns, today, tun)...)
	out = append(out, duplicateSuspects(txns, tun)...)
	out = append(out, timeAnomalies(txns, tun)...)

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Severity.Weight() != out[j].Severity.Weight() {
			return out[i].Severity.Weight() > out[j].Severity.Weight()
		}
		return out[i].Confidence > out[j].Confidence
	})

	if len(out) > tun.MaxAnomalies {
		out = out[:tun.MaxAnomalies]
	}
	return out
}

// amountOutliers z-scores each transaction's magnitude against its own
// sign population (income vs expense).
func amountOutliers(txns []model.Transaction, tun config.Tuning) []model.Anomaly {
	var income, expense []model.Transaction
	for _, t := range txns {
		if t.Amount > 0 {
			income = append(income, t)
		} else if t.Amount < 0 {
			expense = append(expense, t)
		}
	}

	var out []model.Anomaly
	out = append(out, outliersInPopulation(income, tun)...)
	out = append(out, outliersInPopulation(expense, tun)...)
	return out
}

func outliersInPopulation(txns []model.Transaction, tun config.Tuning) []model.Anomaly {
	if len(txns) < minAnomalyTxns {
		return nil
	}

	var sum float64
	for _, t := range txns {
		sum += math.Abs(t.Amount)
	}
	mean := sum / float64(len(txns))

	var variance float64
	for _, t := range txns {
		d := math.Abs(t.Amount) - mean
		variance += d * d
	}
	stddev := math.Sqrt(variance / float64(len(txns)))
	if stddev == 0 {
		return nil
	}

	var out []model.Anomaly
	for _, t := range txns {
		z := (math.Abs(t.Amount) - mean) / stddev
		if z <= tun.OutlierSigma {
			continue
		}

		severity := model.AnomalyMedium
		if z >= tun.OutlierHighSigma {
			severity = model.AnomalyHigh
		}
		conf := z / tun.OutlierExtremeSigma
		if conf > 0.99 {
			conf = 0.99
		}

		out = append(out, model.Anomaly{
			ID:          uuid.NewString(),
			Transaction: t,
			Type:        model.AnomalyAmountOutlier,
			Severity:    severity,
			Description: fmt.Sprintf("%s for %.2f is %.1f standard deviations above your typical amount.", t.Merchant, math.Abs(t.Amount), z),
			Confidence:  conf,
		})
	}
	return out
}

// frequencySpikes flags merchants whose last-7-day transaction rate is a
// multiple of their historical rate.
func frequencySpikes(txns []model.Transaction, today time.Time, tun config.Tuning) []model.Anomaly {
	type merchantStats struct {
		total  int
		recent int
		first  time.Time
		latest model.Transaction
	}
	stats := make(map[string]*merchantStats)

	for _, t := range txns {
		s, ok := stats[t.Merchant]
		if !ok {
			s = &merchantStats{first: t.Date}
			stats[t.Merchant] = s
		}
		s.total++
		if t.Date.Before(s.first) {
			s.first = t.Date
		}
		if today.Sub(t.Date).Hours() <= 7*24 && !t.Date.After(today) {
			s.recent++
			if s.latest.ID == "" || t.Date.After(s.latest.Date) {
				s.latest = t
			}
		}
	}

	var out []model.Anomaly
	for merchant, s := range stats {
		spanDays := today.Sub(s.first).Hours() / 24
		if spanDays < 14 || s.recent < 2 {
			continue // too little history to call anything a spike
		}
		histRate := float64(s.total) / spanDays
		recentRate := float64(s.recent) / 7
		if recentRate < histRate*tun.FrequencySpikeRatio {
			continue
		}

		out = append(out, model.Anomaly{
			ID:          uuid.NewString(),
			Transaction: s.latest,
			Type:        model.AnomalyFrequencySpike,
			Severity:    model.AnomalyMedium,
			Description: fmt.Sprintf("%d transactions at %s this week vs a typical %.1f.", s.recent, merchant, histRate*7),
			Confidence:  0.7,
		})
	}
	return out
}

// newMerchants flags a merchant's first-ever transaction when it happened
// recently and isn't trivial in size.
func newMerchants(txns []model.Transaction, today time.Time, tun config.Tuning) []model.Anomaly {
	firstSeen := make(map[string]model.Transaction)
	for _, t := range txns {
		f, ok := firstSeen[t.Merchant]
		if !ok || t.Date.Before(f.Date) {
			firstSeen[t.Merchant] = t
		}
	}

	var out []model.Anomaly
	for merchant, first := range firstSeen {
		age := today.Sub(first.Date).Hours() / 24
		if age < 0 || age > float64(tun.NewMerchantDays) {
			continue
		}
		if math.Abs(first.Amount) < tun.NewMerchantMinAmount {
			continue
		}

		severity := model.AnomalyLow
		if math.Abs(first.Amount) >= tun.NewMerchantMinAmount*10 {
			severity = model.AnomalyMedium
		}

		out = append(out, model.Anomaly{
			ID:          uuid.NewString(),
			Transaction: first,
			Type:        model.AnomalyNewMerchant,
			Severity:    severity,
			Description: fmt.Sprintf("First transaction at %s (%.2f).", merchant, math.Abs(first.Amount)),
			Confidence:  0.6,
		})
	}
	return out
}

// duplicateSuspects flags pairs sharing merchant and amount within a
// one-day window. Only the first pairing per transaction is reported.
func duplicateSuspects(txns []model.Transaction, tun config.Tuning) []model.Anomaly {
	sorted := make([]model.Transaction, len(txns))
	copy(sorted, txns)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	used := make(map[string]bool)
	var out []model.Anomaly

	for i, a := range sorted {
		if used[a.ID] {
			continue
		}
		for j := i + 1; j < len(sorted); j++ {
			b := sorted[j]
			if b.Date.Sub(a.Date).Hours() > 24 {
				break
			}
			if used[b.ID] || b.Merchant != a.Merchant {
				continue
			}
			if math.Abs(a.Amount-b.Amount) > tun.DuplicateTolerance {
				continue
			}

			used[a.ID] = true
			used[b.ID] = true
			out = append(out, model.Anomaly{
				ID:          uuid.NewString(),
				Transaction: b,
				Type:        model.AnomalyDuplicateSuspect,
				Severity:    model.AnomalyMedium,
				Description: fmt.Sprintf("Possible duplicate charge at %s for %.2f within one day.", a.Merchant, math.Abs(a.Amount)),
				Confidence:  0.75,
			})
			break
		}
	}
	return out
}

// timeAnomalies flags transactions far outside a merchant's usual
// hour-of-day.
func timeAnomalies(txns []model.Transaction, tun config.Tuning) []model.Anomaly {
	byMerchant := make(map[string][]model.Transaction)
	for _, t := range txns {
		byMerchant[t.Merchant] = append(byMerchant[t.Merchant], t)
	}

	var out []model.Anomaly
	for merchant, group := range byMerchant {
		if len(group) < minAnomalyTxns {
			continue
		}

		var sum float64
		for _, t := range group {
			sum += float64(t.Date.Hour())
		}
		mean := sum / float64(len(group))

		var variance float64
		for _, t := range group {
			d := float64(t.Date.Hour()) - mean
			variance += d * d
		}
		stddev := math.Sqrt(variance / float64(len(group)))

		limit := tun.TimeAnomalySigma * stddev
		if limit < tun.TimeAnomalyMinHours {
			limit = tun.TimeAnomalyMinHours
		}

		for _, t := range group {
			diff := math.Abs(float64(t.Date.Hour()) - mean)
			if diff <= limit {
				continue
			}
			out = append(out, model.Anomaly{
				ID:          uuid.NewString(),
				Transaction: t,
				Type:        model.AnomalyTimeAnomaly,
				Severity:    model.AnomalyLow,
				Description: fmt.Sprintf("Transaction at %s around %d:00, far from the usual %.0f:00.", merchant, t.Date.Hour(), mean),
				Confidence:  0.5,
			})
		}
	}
	return out
}
