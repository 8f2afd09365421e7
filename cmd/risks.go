package cmd

import (
	"fmt"

	"github.com/theirongolddev/cashcast/internal/cli"

	"github.com/spf13/cobra"
)

var risksCmd = &cobra.Command{
	Use:   "risks",
	Short: "Show forward-looking risk alerts and the overall risk score",
	RunE:  runRisks,
}

func init() {
	rootCmd.AddCommand(risksCmd)
}

func runRisks(_ *cobra.Command, _ []string) error {
	_, res, _, err := runForecast()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("RISKS"))
	fmt.Println()
	fmt.Printf("  Risk score: %s\n\n", cli.FormatScore(float64(res.RiskScore)))

	if len(res.Risks) == 0 {
		fmt.Println("  No risks detected over the forecast window.")
		fmt.Println()
		return nil
	}

	for _, alert := range res.Risks {
		label := cli.StyleSeverity(alert.Severity, fmt.Sprintf("[%s]", alert.Severity))
		fmt.Printf("  %s %s\n", label, alert.Title)
		fmt.Printf("       %s", cli.Muted(alert.Description))
		if !alert.Date.IsZero() {
			fmt.Printf(" %s", cli.Muted(fmt.Sprintf("(%s)", cli.FormatDate(alert.Date))))
		}
		fmt.Println()
	}
	fmt.Println()

	return nil
}
