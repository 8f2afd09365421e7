package savings

import (
	"fmt"
	"sort"
	"time"

	"github.com/theirongolddev/cashcast/internal/model"
)

// Scoring weights for the combined goal score.
const (
	weightUrgency     = 0.35
	weightImpact      = 0.40
	weightFeasibility = 0.25
)

// Allocation percentages by rank, and the minimum worthwhile transfer.
const (
	topGoalShare    = 0.60
	secondGoalShare = 0.30
	otherGoalShare  = 0.15
	minAllocation   = 5
)

// Prioritize scores and ranks savings goals. runwayDays feeds the
// emergency-fund impact weighting; monthlyRate is the current
// safe-to-save rate used for feasibility.
func Prioritize(goals []model.SavingsGoal, runwayDays int, monthlyRate float64, today time.Time) []model.PrioritizedGoal {
	out := make([]model.PrioritizedGoal, len(goals))
	for i, g := range goals {
		u := urgencyScore(g, today)
		im := impactScore(g, runwayDays)
		f := feasibilityScore(g, monthlyRate, today)

		out[i] = model.PrioritizedGoal{
			SavingsGoal: g,
			Urgency:     u,
			Impact:      im,
			Feasibility: f,
			Score:       weightUrgency*u + weightImpact*im + weightFeasibility*f,
			Reasoning:   reasoning(g, u, im, f),
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// Allocate distributes an available amount across ranked goals using
// tiered percentages, keeping each slice at least the minimum where room
// remains.
func Allocate(goals []model.PrioritizedGoal, available float64) []model.PrioritizedGoal {
	out := make([]model.PrioritizedGoal, len(goals))
	copy(out, goals)

	left := available
	for i := range out {
		if left <= 0 {
			break
		}

		share := otherGoalShare
		switch out[i].Rank {
		case 1:
			share = topGoalShare
		case 2:
			share = secondGoalShare
		}

		alloc := available * share
		if alloc < minAllocation {
			alloc = minAllocation
		}
		if r := out[i].Remaining(); alloc > r {
			alloc = r
		}
		if alloc > left {
			alloc = left
		}
		if alloc < 0 {
			alloc = 0
		}

		out[i].Allocated = alloc
		left -= alloc
	}
	return out
}

// OnTrack compares projected completion at the current contribution rate
// against the goal's deadline.
func OnTrack(g model.SavingsGoal, monthlyContribution float64, today time.Time) model.TrackStatus {
	if g.Deadline == nil {
		return model.TrackNoDeadline
	}
	remaining := g.Remaining()
	if remaining <= 0 {
		return model.TrackAhead
	}
	if monthlyContribution <= 0 {
		return model.TrackBehind
	}

	months := remaining / monthlyContribution
	projected := today.AddDate(0, 0, int(months*30))

	switch {
	case projected.AddDate(0, 1, 0).Before(*g.Deadline):
		return model.TrackAhead
	case !projected.After(*g.Deadline):
		return model.TrackOnTrack
	default:
		return model.TrackBehind
	}
}

// urgencyScore blends priority tier, deadline proximity, and how
// intrinsically time-sensitive the goal category is.
func urgencyScore(g model.SavingsGoal, today time.Time) float64 {
	score := 10.0
	switch g.Priority {
	case model.PriorityHigh:
		score = 40
	case model.PriorityMedium:
		score = 25
	}

	if g.Deadline != nil {
		days := g.Deadline.Sub(today).Hours() / 24
		switch {
		case days < 30:
			score += 40
		case days < 90:
			score += 25
		case days < 180:
			score += 15
		default:
			score += 5
		}
	}

	switch g.Category {
	case model.GoalEmergency:
		score += 20
	case model.GoalDebt:
		score += 15
	case model.GoalRetirement:
		score += 10
	case model.GoalLargePurchase:
		score += 8
	case model.GoalLifestyle:
		score += 5
	}

	return clamp100(score)
}

// impactScore weighs what finishing the goal does for financial health.
func impactScore(g model.SavingsGoal, runwayDays int) float64 {
	var score float64
	switch g.Category {
	case model.GoalEmergency:
		score = 25
		if runwayDays < 30 {
			// A thin runway makes the emergency fund the highest-impact
			// place for every spare unit of cash.
			score = 40
		}
	case model.GoalDebt:
		score = 30
	case model.GoalRetirement:
		score = 20
	case model.GoalLargePurchase:
		score = 20
	case model.GoalLifestyle:
		score = 10
	}

	switch p := g.Progress(); {
	case p >= 0.75:
		score += 20
	case p >= 0.5:
		score += 10
	}

	score += 20 // baseline: completing any goal beats completing none
	return clamp100(score)
}

// feasibilityScore favors goals reachable at the current savings rate.
func feasibilityScore(g model.SavingsGoal, monthlyRate float64, today time.Time) float64 {
	remaining := g.Remaining()
	if remaining <= 0 {
		return 100
	}

	score := 50.0
	if monthlyRate > 0 {
		months := remaining / monthlyRate
		switch {
		case months <= 3:
			score += 30
		case months <= 12:
			score += 15
		case months > 36:
			score -= 20
		}

		if g.Deadline != nil {
			projected := today.AddDate(0, 0, int(months*30))
			if projected.After(*g.Deadline) {
				score -= 20
			} else {
				score += 20
			}
		}
	} else {
		score -= 20
	}

	switch {
	case remaining < 500:
		score += 20
	case remaining < 2000:
		score += 10
	}

	return clamp100(score)
}

func reasoning(g model.SavingsGoal, u, im, f float64) string {
	top := "feasibility"
	switch {
	case u >= im && u >= f:
		top = "urgency"
	case im >= u && im >= f:
		top = "impact"
	}
	return fmt.Sprintf("%s scores highest on %s (urgency %.0f, impact %.0f, feasibility %.0f).",
		g.Name, top, u, im, f)
}

func clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
