package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/cashcast/internal/cli"
	"github.com/theirongolddev/cashcast/internal/source"
)

var flagImportAccount string

var importCmd = &cobra.Command{
	Use:   "import <file.csv> [file.csv...]",
	Short: "Import bank CSV exports into the ledger",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runImport,
}

func init() {
	importCmd.Flags().StringVarP(&flagImportAccount, "account", "a", "", "Account name to import into (required)")
	_ = importCmd.MarkFlagRequired("account")
	rootCmd.AddCommand(importCmd)
}

func runImport(_ *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	account, err := findAccount(db, flagImportAccount)
	if err != nil {
		return err
	}

	existing, err := db.TransactionKeys()
	if err != nil {
		return err
	}

	var imported, skipped, duplicates int
	for _, path := range args {
		res := source.ParseFile(path, account.ID, existing)
		if res.Err != nil {
			return fmt.Errorf("%s: %w", path, res.Err)
		}

		if err := db.SaveTransactions(res.Transactions); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		for _, t := range res.Transactions {
			key := fmt.Sprintf("%s|%.2f|%s", t.Date.UTC().Format(time.RFC3339), t.Amount, t.Merchant)
			existing[key] = true
		}

		imported += len(res.Transactions)
		skipped += res.Skipped
		duplicates += res.Duplicates

		if !flagQuiet {
			fmt.Printf("  %s: %d imported", path, len(res.Transactions))
			if res.Duplicates > 0 {
				fmt.Printf(", %d duplicates", res.Duplicates)
			}
			if res.Skipped > 0 {
				fmt.Printf(", %d malformed", res.Skipped)
			}
			fmt.Println()
		}
	}

	total, err := db.TransactionCount()
	if err != nil {
		return err
	}
	fmt.Printf("\n  Imported %s transactions into %q (%s total in ledger)\n",
		cli.FormatNumber(int64(imported)), account.Name, cli.FormatNumber(int64(total)))
	if duplicates > 0 {
		fmt.Printf("  Skipped %d duplicates\n", duplicates)
	}
	if skipped > 0 {
		fmt.Printf("  Skipped %d malformed rows\n", skipped)
	}
	return nil
}
