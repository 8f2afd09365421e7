package cmd

import (
	"fmt"

	"github.com/theirongolddev/cashcast/internal/cli"

	"github.com/spf13/cobra"
)

var anomaliesCmd = &cobra.Command{
	Use:   "anomalies",
	Short: "Show statistically unusual transactions",
	RunE:  runAnomalies,
}

func init() {
	rootCmd.AddCommand(anomaliesCmd)
}

func runAnomalies(_ *cobra.Command, _ []string) error {
	_, res, _, err := runForecast()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("ANOMALIES"))
	fmt.Println()

	if len(res.Anomalies) == 0 {
		fmt.Println("  Nothing unusual in your recent transactions.")
		fmt.Println()
		return nil
	}

	var rows [][]string
	for _, a := range res.Anomalies {
		rows = append(rows, []string{
			cli.FormatDate(a.Transaction.Date),
			a.Transaction.Merchant,
			cli.StyleMoney(a.Transaction.Amount, cli.FormatMoney(a.Transaction.Amount)),
			cli.StyleAnomaly(a.Severity, string(a.Type)),
			cli.FormatPercent(a.Confidence),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Merchant", "Amount", "Type", "Confidence"},
		Rows:    rows,
	}))

	fmt.Println()
	for _, a := range res.Anomalies {
		fmt.Printf("  %s\n", cli.Muted(a.Description))
	}
	fmt.Println()

	return nil
}
