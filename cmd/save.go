package cmd

import (
	"fmt"

	"github.com/theirongolddev/cashcast/internal/cli"
	"github.com/theirongolddev/cashcast/internal/forecast"
	"github.com/theirongolddev/cashcast/internal/model"
	"github.com/theirongolddev/cashcast/internal/savings"

	"github.com/spf13/cobra"
)

var (
	flagSaveAmount float64
	flagSaveGoal   string
)

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Show how much is safe to move to savings",
	RunE:  runSave,
}

func init() {
	saveCmd.Flags().Float64Var(&flagSaveAmount, "amount", 0, "What-if transfer amount instead of the recommendation")
	saveCmd.Flags().StringVar(&flagSaveGoal, "goal", "", "Print the transfer schedule toward this goal")
	rootCmd.AddCommand(saveCmd)
}

func runSave(_ *cobra.Command, _ []string) error {
	snap, res, _, err := runForecast()
	if err != nil {
		return err
	}
	safe := res.SafeToSave

	fmt.Println()
	fmt.Println(cli.RenderTitle("SAFE TO SAVE"))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Recommended", cli.FormatMoneyCompact(safe.Amount)},
			{"Maximum safe", cli.FormatMoneyCompact(safe.MaxSafe)},
			{"Transfer date", cli.FormatDateLong(safe.TransferDate)},
			{"Confidence", cli.FormatPercent(safe.Confidence)},
		},
	}))

	fmt.Printf("\n  %s\n", safe.Reasoning)
	for _, f := range safe.Factors {
		fmt.Printf("  %s\n", cli.Muted("· "+f))
	}

	amount := safe.Amount
	if flagSaveAmount > 0 {
		amount = flagSaveAmount
	}
	if amount > 0 {
		newDays, delta := savings.TransferImpact(res.Forecast, snap.Buffer, amount)
		fmt.Printf("\n  Moving %s shifts runway to %s (%+d days)\n",
			cli.FormatMoneyCompact(amount),
			cli.FormatDays(newDays, snap.HorizonDays),
			delta)
	}

	if flagSaveGoal != "" {
		if err := printSchedule(snap, amount, flagSaveGoal); err != nil {
			return err
		}
	}
	fmt.Println()

	return nil
}

// printSchedule shows the per-period transfer plan toward one named goal.
func printSchedule(snap model.Snapshot, perTransfer float64, name string) error {
	for _, g := range snap.Goals {
		if g.Name != name {
			continue
		}
		projections := forecast.ProjectRecurrences(snap.Recurrences, snap.Today, snap.HorizonDays)
		schedule := savings.BuildSchedule(g, perTransfer, projections, snap.Today)
		if len(schedule) == 0 {
			fmt.Printf("\n  No transfers scheduled for %q within the horizon.\n", g.Name)
			return nil
		}
		fmt.Printf("\n  Plan for %q:\n", g.Name)
		for _, s := range schedule {
			fmt.Printf("    %s  %s\n", cli.FormatDateLong(s.Date), cli.FormatMoneyCompact(s.Amount))
		}
		return nil
	}
	return fmt.Errorf("no goal named %q", name)
}
