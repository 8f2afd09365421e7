package cmd

import (
	"fmt"
	"time"

	"github.com/theirongolddev/cashcast/internal/cli"
	"github.com/theirongolddev/cashcast/internal/classify"
	"github.com/theirongolddev/cashcast/internal/insights"

	"github.com/spf13/cobra"
)

var flagCashflowDays int

var cashflowCmd = &cobra.Command{
	Use:   "cashflow",
	Short: "Summarize income, spending, and burn rate",
	RunE:  runCashflow,
}

func init() {
	cashflowCmd.Flags().IntVar(&flagCashflowDays, "days", 30, "Summary window in days")
	rootCmd.AddCommand(cashflowCmd)
}

func runCashflow(_ *cobra.Command, _ []string) error {
	snap, cfg, err := loadSnapshot()
	if err != nil {
		return err
	}
	txns := classify.CategorizeAll(snap.Transactions)

	today := time.Now()
	start := today.AddDate(0, 0, -flagCashflowDays)
	sum := insights.Summarize(txns, start, today, cfg.Tuning.TrendTolerance)
	burn := insights.CalculateBurnRate(txns, today, cfg.Tuning.BurnTrendTolerance)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("CASH FLOW  Last %dd", flagCashflowDays)))
	fmt.Println()

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Income", cli.FormatMoneyCompact(sum.Income)},
			{"Expenses", cli.FormatMoneyCompact(sum.Expenses)},
			{"Net", cli.FormatSignedMoney(sum.Net)},
			{"Trend", string(sum.Trend)},
			{"Volatility", fmt.Sprintf("%.0f/100", sum.Volatility)},
			{"---"},
			{"Burn/day", cli.FormatMoneyCompact(burn.Daily)},
			{"Burn/week", cli.FormatMoneyCompact(burn.Weekly)},
			{"Burn/month", cli.FormatMoneyCompact(burn.Monthly)},
			{"Burn trend", string(burn.Trend)},
		},
	}))

	if len(sum.ByCategory) > 0 {
		var rows [][]string
		for i, c := range sum.ByCategory {
			if i >= 6 {
				break
			}
			rows = append(rows, []string{
				string(c.Category),
				cli.FormatMoneyCompact(c.Total),
				fmt.Sprintf("%d", c.Count),
				cli.FormatPercent(c.Percent / 100),
			})
		}
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Top Categories",
			Headers: []string{"Category", "Spent", "Txns", "Share"},
			Rows:    rows,
		}))
	}

	if weeks := insights.WeeklySummaries(txns, today); len(weeks) > 0 {
		nets := make([]float64, len(weeks))
		for i, w := range weeks {
			nets[i] = w.Net
		}
		fmt.Printf("\n  %s\n", cli.RenderSparkline(nets))
		fmt.Printf("  %s\n", cli.Muted("weekly net, oldest to newest"))
	}

	patterns := insights.MineRecurringPatterns(txns, cfg.Tuning.PatternMinConfidence)
	if len(patterns) > 0 {
		var rows [][]string
		for _, p := range patterns {
			rows = append(rows, []string{
				p.Merchant,
				cli.FormatMoney(p.AvgAmount),
				string(p.Interval),
				cli.FormatDate(p.NextExpected),
				cli.FormatPercent(p.Confidence),
			})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Detected Recurring",
			Headers: []string{"Merchant", "Amount", "Interval", "Next", "Confidence"},
			Rows:    rows,
		}))
	}
	fmt.Println()

	return nil
}
