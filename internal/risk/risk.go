// Package risk flags forward-looking financial risks and historical
// spending anomalies. Heuristics are independent; the same underlying
// event may surface through more than one of them.
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

// Input bundles everything the risk heuristics look at.
type Input struct {
	Accounts     []model.Account
	Transactions []model.Transaction
	Projections  []model.Projection
	Forecast     []model.ForecastDay
	Runway       model.RunwayCalculation
	Today        time.Time
	Buffer       float64
}

// Detect runs all risk heuristics, merges their alerts, sorts by severity
// then date, and keeps the top tun.MaxRisks.
func Detect(in Input, tun config.Tuning) []model.RiskAlert {
	var alerts []model.RiskAlert
	alerts = append(alerts, lowBalance(in.Forecast, tun)...)
	alerts = append(alerts, largeBills(in.Accounts, in.Projections, tun)...)
	alerts = append(alerts, runwayWarning(in.Runway, tun)...)
	alerts = append(alerts, spendingSpike(in.Transactions, in.Today, tun)...)
	alerts = append(alerts, concentration(in.Accounts, tun)...)

	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].Severity.Weight() != alerts[j].Severity.Weight() {
			return alerts[i].Severity.Weight() > alerts[j].Severity.Weight()
		}
		return alerts[i].Date.Before(alerts[j].Date)
	})

	if len(alerts) > tun.MaxRisks {
		alerts = alerts[:tun.MaxRisks]
	}
	return alerts
}

// Score aggregates runway severity and per-alert weights into a 0-100
// composite risk score.
func Score(run model.RunwayCalculation, alerts []model.RiskAlert) int {
	score := 0
	switch {
	case run.Days < 7:
		score += 40
	case run.Days < 14:
		score += 30
	case run.Days < 30:
		score += 15
	}

	for _, a := range alerts {
		switch a.Severity {
		case model.SeverityCritical:
			score += 25
		case model.SeverityWarning:
			score += 15
		default:
			score += 5
		}
	}

	if score > 100 {
		score = 100
	}
	return score
}

// lowBalance flags the first conservative-band dip below the threshold,
// and separately the first dip below zero, then stops scanning.
func lowBalance(days []model.ForecastDay, tun config.Tuning) []model.RiskAlert {
	var alerts []model.RiskAlert
	flaggedLow := false

	for _, d := range days {
		if !flaggedLow && d.P10Total < tun.LowBalanceThreshold {
			alerts = append(alerts, model.RiskAlert{
				ID:    uuid.NewString(),
				Title: "Balance may run low",
				Description: fmt.Sprintf("In a conservative scenario your balance could dip below %.0f on %s.",
					tun.LowBalanceThreshold, d.Date.Format("Jan 2")),
				Date:     d.Date,
				Severity: model.SeverityWarning,
			})
			flaggedLow = true
		}
		if d.P10Total < 0 {
			alerts = append(alerts, model.RiskAlert{
				ID:    uuid.NewString(),
				Title: "Possible overdraft",
				Description: fmt.Sprintf("In a conservative scenario your balance could go negative on %s.",
					d.Date.Format("Jan 2")),
				Date:     d.Date,
				Severity: model.SeverityCritical,
			})
			break
		}
	}
	return alerts
}

// largeBills flags upcoming recurrences that are big relative to typical
// recurring expenses or to the current balance.
func largeBills(accounts []model.Account, projections []model.Projection, tun config.Tuning) []model.RiskAlert {
	balance := model.TotalBalance(accounts)

	var expenseSum float64
	var expenseCount int
	for _, p := range projections {
		if p.Amount < 0 {
			expenseSum += -p.Amount
			expenseCount++
		}
	}
	if expenseCount == 0 {
		return nil
	}
	avgExpense := expenseSum / float64(expenseCount)

	threshold := tun.LargeBillExpenseRatio * avgExpense
	if s := tun.LargeBillBalanceShare * balance; s > threshold {
		threshold = s
	}
	if tun.LargeBillFloor > threshold {
		threshold = tun.LargeBillFloor
	}

	var alerts []model.RiskAlert
	seen := make(map[string]bool)
	for _, p := range projections {
		if p.Amount >= 0 || -p.Amount <= threshold || seen[p.Name] {
			continue
		}
		seen[p.Name] = true

		impact := 1.0
		if balance > 0 {
			impact = -p.Amount / balance
		}
		severity := model.SeverityInfo
		switch {
		case impact >= 0.5:
			severity = model.SeverityCritical
		case impact >= 0.25:
			severity = model.SeverityWarning
		}

		alerts = append(alerts, model.RiskAlert{
			ID:    uuid.NewString(),
			Title: fmt.Sprintf("Large bill ahead: %s", p.Name),
			Description: fmt.Sprintf("%s (%.0f) due %s is %.0f%% of your current balance.",
				p.Name, -p.Amount, p.Date.Format("Jan 2"), impact*100),
			Date:     p.Date,
			Severity: severity,
		})
	}
	return alerts
}

// runwayWarning flags a short expected runway, referencing the crossing day.
func runwayWarning(run model.RunwayCalculation, tun config.Tuning) []model.RiskAlert {
	if run.Days >= tun.RunwayWarningDays {
		return nil
	}

	severity := model.SeverityWarning
	if run.Days < 7 {
		severity = model.SeverityCritical
	}

	desc := fmt.Sprintf("Your expected balance drops below the buffer in %d days.", run.Days)
	date := run.Expected.CrossDate
	if !run.Expected.Crossed {
		date = time.Time{}
	}

	return []model.RiskAlert{{
		ID:          uuid.NewString(),
		Title:       "Short runway",
		Description: desc,
		Date:        date,
		Severity:    severity,
	}}
}

// spendingSpike compares the most recent week's expenses against the
// preceding four weekly buckets.
func spendingSpike(txns []model.Transaction, today time.Time, tun config.Tuning) []model.RiskAlert {
	// buckets[0] is the most recent 7 days, buckets[1..4] the weeks before.
	var buckets [5]float64
	for _, t := range txns {
		if t.Amount >= 0 {
			continue
		}
		age := int(today.Sub(t.Date).Hours() / 24)
		if age < 0 || age >= 35 {
			continue
		}
		buckets[age/7] += -t.Amount
	}

	var mean float64
	for _, b := range buckets[1:] {
		mean += b
	}
	mean /= 4

	var variance float64
	for _, b := range buckets[1:] {
		variance += (b - mean) * (b - mean)
	}
	stddev := math.Sqrt(variance / 4)
	if stddev < 1 {
		stddev = 1
	}

	if buckets[0] <= mean+tun.SpendingSpikeSigma*stddev || mean == 0 {
		return nil
	}

	return []model.RiskAlert{{
		ID:    uuid.NewString(),
		Title: "Spending spike this week",
		Description: fmt.Sprintf("You spent %.0f in the last 7 days vs a recent weekly average of %.0f.",
			buckets[0], mean),
		Date:     today,
		Severity: model.SeverityWarning,
	}}
}

// concentration flags a single account holding too large a share of funds.
// Informational only.
func concentration(accounts []model.Account, tun config.Tuning) []model.RiskAlert {
	total := model.TotalBalance(accounts)
	if total <= 0 || len(accounts) < 2 {
		return nil
	}

	for _, a := range accounts {
		if a.Balance/total > tun.ConcentrationShare {
			return []model.RiskAlert{{
				ID:    uuid.NewString(),
				Title: "Funds concentrated in one account",
				Description: fmt.Sprintf("%s holds %.0f%% of your total balance.",
					a.Name, a.Balance/total*100),
				Severity: model.SeverityInfo,
			}}
		}
	}
	return nil
}
