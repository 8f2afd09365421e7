package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/cashcast/internal/cli"
	"github.com/theirongolddev/cashcast/internal/config"
	"github.com/theirongolddev/cashcast/internal/forecast"
	"github.com/theirongolddev/cashcast/internal/model"
	"github.com/theirongolddev/cashcast/internal/savings"
	"github.com/theirongolddev/cashcast/internal/store"
)

var (
	flagGoalsAllocate float64

	flagGoalTarget   float64
	flagGoalSaved    float64
	flagGoalDeadline string
	flagGoalPriority string
	flagGoalCategory string
)

var goalsCmd = &cobra.Command{
	Use:   "goals",
	Short: "Prioritize savings goals and allocate the safe-to-save amount",
	RunE:  runGoals,
}

var goalsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a savings goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalsAdd,
}

var goalsRemoveCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Remove a savings goal by name",
	Args:  cobra.ExactArgs(1),
	RunE:  runGoalsRemove,
}

func init() {
	goalsCmd.Flags().Float64Var(&flagGoalsAllocate, "allocate", 0, "Allocate this amount instead of the safe-to-save recommendation")

	goalsAddCmd.Flags().Float64Var(&flagGoalTarget, "target", 0, "Target amount (required)")
	goalsAddCmd.Flags().Float64Var(&flagGoalSaved, "saved", 0, "Amount already saved")
	goalsAddCmd.Flags().StringVar(&flagGoalDeadline, "deadline", "", "Deadline as YYYY-MM-DD")
	goalsAddCmd.Flags().StringVar(&flagGoalPriority, "priority", "medium", "Priority: low, medium, high")
	goalsAddCmd.Flags().StringVar(&flagGoalCategory, "category", "lifestyle",
		"Category: emergency_fund, debt_payoff, large_purchase, lifestyle, retirement")

	goalsCmd.AddCommand(goalsAddCmd)
	goalsCmd.AddCommand(goalsRemoveCmd)
	rootCmd.AddCommand(goalsCmd)
}

func runGoals(_ *cobra.Command, _ []string) error {
	snap, res, _, err := runForecast()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("GOALS"))
	fmt.Println()

	if len(res.Goals) == 0 {
		fmt.Println("  No goals yet. Add one with `cashcast goals add`.")
		fmt.Println()
		return nil
	}

	goals := res.Goals
	if flagGoalsAllocate > 0 {
		goals = savings.Allocate(goals, flagGoalsAllocate)
	}

	var rows [][]string
	for _, g := range goals {
		status := savings.OnTrack(g.SavingsGoal, res.SafeToSave.Amount, snap.Today)
		rows = append(rows, []string{
			fmt.Sprintf("%d. %s", g.Rank, g.Name),
			cli.FormatMoneyCompact(g.Remaining()),
			cli.RenderProgressBar(g.Progress(), 12),
			cli.FormatMoneyCompact(g.Allocated),
			string(status),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Goal", "Remaining", "Progress", "Allocated", "Status"},
		Rows:    rows,
	}))

	fmt.Println()
	for _, g := range goals {
		fmt.Printf("  %s\n", cli.Muted(fmt.Sprintf("%d. %s", g.Rank, g.Reasoning)))
	}

	// Transfer schedule for the top goal.
	top := goals[0]
	if res.SafeToSave.Amount > 0 && top.Remaining() > 0 {
		projections := forecast.ProjectRecurrences(snap.Recurrences, snap.Today, snap.HorizonDays)
		schedule := savings.BuildSchedule(top.SavingsGoal, res.SafeToSave.Amount, projections, snap.Today)
		if len(schedule) > 0 {
			fmt.Printf("\n  Plan for %q:\n", top.Name)
			for _, s := range schedule {
				fmt.Printf("    %s  %s\n", cli.FormatDateLong(s.Date), cli.FormatMoneyCompact(s.Amount))
			}
		}
	}
	fmt.Println()

	return nil
}

func runGoalsAdd(_ *cobra.Command, args []string) error {
	if flagGoalTarget <= 0 {
		return errors.New("--target must be positive")
	}

	goal := model.SavingsGoal{
		ID:     uuid.NewString(),
		Name:   args[0],
		Target: flagGoalTarget,
		Saved:  flagGoalSaved,
	}

	switch p := model.GoalPriority(flagGoalPriority); p {
	case model.PriorityLow, model.PriorityMedium, model.PriorityHigh:
		goal.Priority = p
	default:
		return fmt.Errorf("unknown priority %q", flagGoalPriority)
	}

	switch c := model.GoalCategory(flagGoalCategory); c {
	case model.GoalEmergency, model.GoalDebt, model.GoalLargePurchase, model.GoalLifestyle, model.GoalRetirement:
		goal.Category = c
	default:
		return fmt.Errorf("unknown category %q", flagGoalCategory)
	}

	if flagGoalDeadline != "" {
		d, err := time.Parse("2006-01-02", flagGoalDeadline)
		if err != nil {
			return fmt.Errorf("parsing deadline: %w", err)
		}
		goal.Deadline = &d
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	db, err := store.Open(dbPath(cfg))
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := db.SaveGoal(goal); err != nil {
		return err
	}

	fmt.Printf("  Added goal %q: %s target\n", goal.Name, cli.FormatMoneyCompact(goal.Target))
	return nil
}

func runGoalsRemove(_ *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	db, err := store.Open(dbPath(cfg))
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	goals, err := db.Goals()
	if err != nil {
		return err
	}
	for _, g := range goals {
		if g.Name == args[0] {
			if err := db.DeleteGoal(g.ID); err != nil {
				return err
			}
			fmt.Printf("  Removed goal %q\n", g.Name)
			return nil
		}
	}
	return fmt.Errorf("no goal named %q", args[0])
}
