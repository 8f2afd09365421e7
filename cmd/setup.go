package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/cashcast/internal/cli"
	"github.com/theirongolddev/cashcast/internal/config"
	"github.com/theirongolddev/cashcast/internal/model"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func validateMoney(s string) error {
	if s == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("enter a number, like 500")
	}
	return nil
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, _ := config.Load()

	var (
		accountName    = "Checking"
		accountType    = string(model.AccountChecking)
		accountBalance string
		buffer         = strconv.FormatFloat(cfg.General.Buffer, 'f', -1, 64)
		tolerance      = cfg.General.RiskTolerance
		horizon        = cfg.General.HorizonDays
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("First account name").
				Description("The account your bank exports come from.").
				Value(&accountName),
			huh.NewSelect[string]().
				Title("Account type").
				Options(
					huh.NewOption("Checking", string(model.AccountChecking)),
					huh.NewOption("Savings", string(model.AccountSavings)),
					huh.NewOption("Credit", string(model.AccountCredit)),
					huh.NewOption("Investment", string(model.AccountInvestment)),
				).
				Value(&accountType),
			huh.NewInput().
				Title("Current balance").
				Placeholder("0").
				Validate(validateMoney).
				Value(&accountBalance),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Minimum balance buffer").
				Description("The forecast treats dropping below this as running out.").
				Validate(validateMoney).
				Value(&buffer),
			huh.NewSelect[int]().
				Title("Forecast horizon").
				Options(
					huh.NewOption("30 days", 30),
					huh.NewOption("90 days", 90),
					huh.NewOption("180 days", 180),
				).
				Value(&horizon),
			huh.NewSelect[string]().
				Title("Risk tolerance").
				Description("How aggressive the safe-to-save recommendation should be.").
				Options(
					huh.NewOption("Conservative", string(model.RiskConservative)),
					huh.NewOption("Moderate", string(model.RiskModerate)),
					huh.NewOption("Aggressive", string(model.RiskAggressive)),
				).
				Value(&tolerance),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	cfg.General.Buffer, _ = strconv.ParseFloat(buffer, 64)
	cfg.General.HorizonDays = horizon
	cfg.General.RiskTolerance = tolerance
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	balance, _ := strconv.ParseFloat(accountBalance, 64)
	account := model.Account{
		ID:       uuid.NewString(),
		Name:     accountName,
		Type:     model.AccountType(accountType),
		Balance:  balance,
		Currency: cfg.General.Currency,
	}
	if err := db.SaveAccount(account); err != nil {
		return err
	}

	fmt.Println()
	fmt.Printf("  Saved config to %s\n", config.ConfigPath())
	fmt.Printf("  Added %s account %q with balance %s\n", account.Type, account.Name, cli.FormatMoney(account.Balance))
	fmt.Println()
	fmt.Println("  Next: import history with `cashcast import statement.csv --account " + account.Name + "`")
	fmt.Println()

	return nil
}
