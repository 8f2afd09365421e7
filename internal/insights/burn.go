package insights

import (
	"time"

	"github.com/theirongolddev/cashcast/internal/model"
)

// BurnRate is the trailing expense outflow rate.
type BurnRate struct {
	Daily   float64
	Weekly  float64
	Monthly float64
	Trend   Direction // first half vs second half of the window
}

// burnWindowDays is the trailing window burn rate is measured over.
const burnWindowDays = 30

// CalculateBurnRate measures expense outflow over the trailing 30 days.
// tolerance is the relative threshold for the half-over-half trend
// (typically 0.15). Here "improving" means burn is slowing down.
func CalculateBurnRate(txns []model.Transaction, today time.Time, tolerance float64) BurnRate {
	var older, newer float64 // first half, second half of the window
	for _, t := range txns {
		if t.Amount >= 0 {
			continue
		}
		age := today.Sub(t.Date).Hours() / 24
		if age < 0 || age > burnWindowDays {
			continue
		}
		if age > burnWindowDays/2 {
			older += -t.Amount
		} else {
			newer += -t.Amount
		}
	}

	total := older + newer
	br := BurnRate{
		Daily: total / burnWindowDays,
		Trend: DirectionStable,
	}
	br.Weekly = br.Daily * 7
	br.Monthly = br.Daily * 30

	base := older
	if base < 1 {
		base = 1
	}
	switch {
	case newer < older-base*tolerance:
		br.Trend = DirectionImproving
	case newer > older+base*tolerance:
		br.Trend = DirectionDeclining
	}
	return br
}

// WeeklySummary is income and expenses for one week.
type WeeklySummary struct {
	WeekStart time.Time
	Income    float64
	Expenses  float64
	Net       float64
}

// weeklyWindow is the number of recent weeks WeeklySummaries reports.
const weeklyWindow = 8

// WeeklySummaries buckets the recent history into calendar-agnostic
// 7-day windows ending today, oldest first.
func WeeklySummaries(txns []model.Transaction, today time.Time) []WeeklySummary {
	weeks := make([]WeeklySummary, weeklyWindow)
	for i := range weeks {
		weeks[i].WeekStart = today.AddDate(0, 0, -7*(weeklyWindow-i))
	}

	for _, t := range txns {
		age := int(today.Sub(t.Date).Hours() / 24)
		if age < 0 || age >= weeklyWindow*7 {
			continue
		}
		idx := weeklyWindow - 1 - age/7
		if t.Amount > 0 {
			weeks[idx].Income += t.Amount
		} else {
			weeks[idx].Expenses += -t.Amount
		}
	}

	for i := range weeks {
		weeks[i].Net = weeks[i].Income - weeks[i].Expenses
	}
	return weeks
}
