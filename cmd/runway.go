package cmd

import (
	"fmt"

	"github.com/theirongolddev/cashcast/internal/cli"
	"github.com/theirongolddev/cashcast/internal/model"
	"github.com/theirongolddev/cashcast/internal/runway"

	"github.com/spf13/cobra"
)

var flagRunwayAdjust float64

var runwayCmd = &cobra.Command{
	Use:   "runway",
	Short: "Show how long the balance stays above the buffer",
	RunE:  runRunway,
}

func init() {
	runwayCmd.Flags().Float64Var(&flagRunwayAdjust, "adjust", 0, "What-if balance adjustment (e.g. -2000 for a planned purchase)")
	rootCmd.AddCommand(runwayCmd)
}

func scenarioRow(label string, s model.ScenarioRunway, horizon int) []string {
	if !s.Crossed {
		return []string{label, fmt.Sprintf("%d+ days", horizon), "—"}
	}
	return []string{label, cli.FormatDays(s.Days, horizon), cli.FormatDate(s.CrossDate)}
}

func runRunway(_ *cobra.Command, _ []string) error {
	snap, res, cfg, err := runForecast()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("RUNWAY"))
	fmt.Println()

	run := res.Runway
	fmt.Printf("  %s above a %s buffer\n\n",
		cli.StyleZone(run.Zones, cli.FormatDays(run.Days, snap.HorizonDays)),
		cli.FormatMoneyCompact(snap.Buffer))

	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Scenarios",
		Headers: []string{"Scenario", "Runway", "Crosses"},
		Rows: [][]string{
			scenarioRow("Optimistic (P90)", run.Optimistic, snap.HorizonDays),
			scenarioRow("Expected (P50)", run.Expected, snap.HorizonDays),
			scenarioRow("Conservative (P10)", run.Conservative, snap.HorizonDays),
		},
	}))

	var rows [][]string
	for _, m := range runway.Milestones(res.Forecast, snap.Buffer, cfg.Tuning.TrendTolerance) {
		status := "on track"
		if !m.Achieved {
			status = fmt.Sprintf("short by %d days", m.Remaining)
		}
		rows = append(rows, []string{fmt.Sprintf("%d days", m.Days), status})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Milestones",
		Headers: []string{"Horizon", "Status"},
		Rows:    rows,
	}))

	if flagRunwayAdjust != 0 {
		adjusted, delta := runway.AdjustmentImpact(res.Forecast, snap.Buffer, flagRunwayAdjust, cfg.Tuning.TrendTolerance)
		fmt.Printf("\n  With %s: runway %s (%+d days)\n",
			cli.FormatSignedMoney(flagRunwayAdjust),
			cli.FormatDays(adjusted.Days, snap.HorizonDays),
			delta)
	}

	fmt.Printf("\n  Trend: %s, band confidence %s\n\n", run.Trend, cli.FormatPercent(run.Confidence))

	return nil
}
