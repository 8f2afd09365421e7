package cmd

import (
	"fmt"

	"github.com/theirongolddev/cashcast/internal/cli"
	"github.com/theirongolddev/cashcast/internal/insights"

	"github.com/spf13/cobra"
)

var flagForecastWeekly bool

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Show the P10/P50/P90 balance forecast",
	RunE:  runForecastCmd,
}

func init() {
	forecastCmd.Flags().BoolVarP(&flagForecastWeekly, "weekly", "w", false, "One row per week instead of selected days")
	rootCmd.AddCommand(forecastCmd)
}

func runForecastCmd(_ *cobra.Command, _ []string) error {
	snap, res, cfg, err := runForecast()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("FORECAST  Next %dd", snap.HorizonDays)))
	fmt.Println()

	step := 7
	if !flagForecastWeekly {
		// A handful of checkpoint days keeps the table readable.
		step = snap.HorizonDays / 10
		if step < 1 {
			step = 1
		}
	}

	var rows [][]string
	for i := step - 1; i < len(res.Forecast); i += step {
		d := res.Forecast[i]
		rows = append(rows, []string{
			cli.FormatDate(d.Date),
			cli.FormatMoneyCompact(d.P10Total),
			cli.FormatMoneyCompact(d.P50Total),
			cli.FormatMoneyCompact(d.P90Total),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "P10 (worst)", "P50 (median)", "P90 (best)"},
		Rows:    rows,
	}))

	p50 := make([]float64, 0, len(res.Forecast))
	for _, d := range res.Forecast {
		p50 = append(p50, d.P50Total)
	}
	fmt.Printf("\n  %s\n", cli.RenderSparkline(p50))

	tr := insights.AnalyzeTrend(res.Forecast, cfg.Tuning.SlopeThreshold)
	fmt.Printf("  %s\n", cli.Muted(fmt.Sprintf("trend %s, %s/day over the first month",
		tr.Direction, cli.FormatSignedMoney(tr.Slope))))
	fmt.Printf("  %s\n\n", cli.Muted(fmt.Sprintf("confidence %s over %d runs", cli.FormatScore(res.Confidence), snap.Simulations)))

	return nil
}
