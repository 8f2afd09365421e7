package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/cashcast/internal/cli"
	"github.com/theirongolddev/cashcast/internal/classify"
	"github.com/theirongolddev/cashcast/internal/insights"
	"github.com/theirongolddev/cashcast/internal/model"
)

var (
	flagBillAmount     float64
	flagBillCadence    string
	flagBillNext       string
	flagBillConfidence string
)

var billsCmd = &cobra.Command{
	Use:   "bills",
	Short: "List known recurring bills and income",
	RunE:  runBills,
}

var billsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a recurring bill or income (negative amount = bill)",
	Args:  cobra.ExactArgs(1),
	RunE:  runBillsAdd,
}

var billsRemoveCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Remove a recurring entry by name",
	Args:  cobra.ExactArgs(1),
	RunE:  runBillsRemove,
}

var billsDetectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Suggest recurrences mined from transaction history",
	RunE:  runBillsDetect,
}

func init() {
	billsAddCmd.Flags().Float64Var(&flagBillAmount, "amount", 0, "Signed amount per occurrence (required)")
	billsAddCmd.Flags().StringVar(&flagBillCadence, "cadence", "monthly", "Cadence: weekly, biweekly, monthly, quarterly, yearly")
	billsAddCmd.Flags().StringVar(&flagBillNext, "next", "", "Next occurrence as YYYY-MM-DD (required)")
	billsAddCmd.Flags().StringVar(&flagBillConfidence, "confidence", "medium", "Confidence: low, medium, high")
	_ = billsAddCmd.MarkFlagRequired("next")

	billsCmd.AddCommand(billsAddCmd)
	billsCmd.AddCommand(billsRemoveCmd)
	billsCmd.AddCommand(billsDetectCmd)
	rootCmd.AddCommand(billsCmd)
}

func runBills(_ *cobra.Command, _ []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	recs, err := db.Recurrences()
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("  No recurring entries yet. Add one with `cashcast bills add`,")
		fmt.Println("  or mine candidates with `cashcast bills detect`.")
		return nil
	}

	var rows [][]string
	for _, r := range recs {
		rows = append(rows, []string{
			r.Name,
			cli.FormatMoney(r.Amount),
			string(r.Cadence),
			cli.FormatDate(r.NextDate),
			string(r.Confidence),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Name", "Amount", "Cadence", "Next", "Confidence"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

func runBillsAdd(_ *cobra.Command, args []string) error {
	if flagBillAmount == 0 {
		return errors.New("--amount must be nonzero (negative for bills, positive for income)")
	}

	r := model.Recurrence{
		ID:     uuid.NewString(),
		Name:   args[0],
		Amount: flagBillAmount,
	}

	switch c := model.Cadence(flagBillCadence); c {
	case model.CadenceWeekly, model.CadenceBiweekly, model.CadenceMonthly, model.CadenceQuarterly, model.CadenceYearly:
		r.Cadence = c
	default:
		return fmt.Errorf("unknown cadence %q", flagBillCadence)
	}

	switch ct := model.ConfidenceTier(flagBillConfidence); ct {
	case model.ConfidenceLow, model.ConfidenceMedium, model.ConfidenceHigh:
		r.Confidence = ct
	default:
		return fmt.Errorf("unknown confidence %q", flagBillConfidence)
	}

	next, err := time.Parse("2006-01-02", flagBillNext)
	if err != nil {
		return fmt.Errorf("parsing next date: %w", err)
	}
	r.NextDate = next

	db, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := db.SaveRecurrence(r); err != nil {
		return err
	}

	fmt.Printf("  Added %s %s, next on %s\n", string(r.Cadence), cli.FormatMoney(r.Amount), cli.FormatDateLong(r.NextDate))
	return nil
}

func runBillsRemove(_ *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	recs, err := db.Recurrences()
	if err != nil {
		return err
	}
	for _, r := range recs {
		if r.Name == args[0] {
			if err := db.DeleteRecurrence(r.ID); err != nil {
				return err
			}
			fmt.Printf("  Removed %q\n", r.Name)
			return nil
		}
	}
	return fmt.Errorf("no recurring entry named %q", args[0])
}

func runBillsDetect(_ *cobra.Command, _ []string) error {
	snap, cfg, err := loadSnapshot()
	if err != nil {
		return err
	}
	txns := classify.CategorizeAll(snap.Transactions)

	patterns := insights.MineRecurringPatterns(txns, cfg.Tuning.PatternMinConfidence)
	if len(patterns) == 0 {
		fmt.Println("  No recurring patterns found. Import more history first.")
		return nil
	}

	fmt.Println()
	var rows [][]string
	for _, p := range patterns {
		rows = append(rows, []string{
			p.Merchant,
			cli.FormatMoney(p.AvgAmount),
			string(p.Interval),
			fmt.Sprintf("%d", p.Occurrences),
			cli.FormatDate(p.NextExpected),
			cli.FormatPercent(p.Confidence),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Candidates",
		Headers: []string{"Merchant", "Amount", "Interval", "Seen", "Next", "Confidence"},
		Rows:    rows,
	}))
	fmt.Println()
	fmt.Println("  Track one with: cashcast bills add <name> --amount <amt> --cadence <interval> --next <date>")
	fmt.Println()
	return nil
}
