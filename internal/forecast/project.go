package forecast

import (
	"sort"
	"time"

	"github.com/theirongolddev/cashcast/internal/model"
)

// ProjectRecurrences expands recurrences into dated future occurrences
// inside [today, today+horizonDays). Each occurrence carries the
// confidence multiplier of its recurrence tier; the simulator uses it to
// scale variance. Output is sorted by date ascending.
func ProjectRecurrences(recs []model.Recurrence, today time.Time, horizonDays int) []model.Projection {
	end := today.AddDate(0, 0, horizonDays)

	var out []model.Projection
	for _, rec := range recs {
		step := rec.Cadence.Days()
		for date := rec.NextDate; date.Before(end); date = date.AddDate(0, 0, step) {
			if date.Before(today) {
				continue
			}
			out = append(out, model.Projection{
				Name:       rec.Name,
				Amount:     rec.Amount,
				Date:       date,
				Confidence: rec.Confidence.Multiplier(),
			})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
