package model

import "time"

// GoalPriority is the user-assigned priority tier of a savings goal.
type GoalPriority string

const (
	PriorityLow    GoalPriority = "low"
	PriorityMedium GoalPriority = "medium"
	PriorityHigh   GoalPriority = "high"
)

// GoalCategory is what kind of goal this is; it feeds urgency and impact
// scoring.
type GoalCategory string

const (
	GoalEmergency     GoalCategory = "emergency_fund"
	GoalDebt          GoalCategory = "debt_payoff"
	GoalLargePurchase GoalCategory = "large_purchase"
	GoalLifestyle     GoalCategory = "lifestyle"
	GoalRetirement    GoalCategory = "retirement"
)

// SavingsGoal is a target the user is saving toward.
type SavingsGoal struct {
	ID       string
	Name     string
	Target   float64
	Saved    float64
	Deadline *time.Time // nil when open-ended
	Priority GoalPriority
	Category GoalCategory
}

// Remaining returns the amount still to be saved, floored at zero.
func (g SavingsGoal) Remaining() float64 {
	r := g.Target - g.Saved
	if r < 0 {
		return 0
	}
	return r
}

// Progress returns completion as a 0..1 fraction.
func (g SavingsGoal) Progress() float64 {
	if g.Target <= 0 {
		return 1
	}
	p := g.Saved / g.Target
	if p > 1 {
		return 1
	}
	return p
}

// TrackStatus compares projected completion against a goal's deadline.
type TrackStatus string

const (
	TrackAhead      TrackStatus = "ahead"
	TrackOnTrack    TrackStatus = "on_track"
	TrackBehind     TrackStatus = "behind"
	TrackNoDeadline TrackStatus = "no_deadline"
)

// PrioritizedGoal is a goal with its computed score, rank, and allocation.
type PrioritizedGoal struct {
	SavingsGoal
	Score       float64
	Rank        int // 1-based, dense, assigned after sort
	Urgency     float64
	Impact      float64
	Feasibility float64
	Reasoning   string
	Allocated   float64
}

// SafeToSave is the engine's transfer recommendation.
type SafeToSave struct {
	Amount       float64 // >= 0
	MaxSafe      float64
	Confidence   float64 // 0..1
	Reasoning    string
	Factors      []string
	TransferDate time.Time
}

// ScheduledTransfer is one step of a multi-period transfer plan.
type ScheduledTransfer struct {
	Date   time.Time
	Amount float64
}
