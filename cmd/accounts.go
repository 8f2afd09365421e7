package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/cashcast/internal/cli"
	"github.com/theirongolddev/cashcast/internal/config"
	"github.com/theirongolddev/cashcast/internal/model"
	"github.com/theirongolddev/cashcast/internal/store"
)

var (
	flagAccountType    string
	flagAccountBalance float64
)

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List tracked accounts",
	RunE:  runAccounts,
}

var accountsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountsAdd,
}

var accountsBalanceCmd = &cobra.Command{
	Use:   "balance <name> <amount>",
	Short: "Set an account's current balance",
	Args:  cobra.ExactArgs(2),
	RunE:  runAccountsBalance,
}

func init() {
	accountsAddCmd.Flags().StringVar(&flagAccountType, "type", "checking", "Account type: checking, savings, credit, investment")
	accountsAddCmd.Flags().Float64Var(&flagAccountBalance, "balance", 0, "Current balance")

	accountsCmd.AddCommand(accountsAddCmd)
	accountsCmd.AddCommand(accountsBalanceCmd)
	rootCmd.AddCommand(accountsCmd)
}

func openStore() (*store.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return store.Open(dbPath(cfg))
}

func findAccount(db *store.Store, name string) (model.Account, error) {
	accounts, err := db.Accounts()
	if err != nil {
		return model.Account{}, err
	}
	for _, a := range accounts {
		if a.Name == name || a.ID == name {
			return a, nil
		}
	}
	return model.Account{}, fmt.Errorf("no account named %q (add one with `cashcast accounts add`)", name)
}

func runAccounts(_ *cobra.Command, _ []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	accounts, err := db.Accounts()
	if err != nil {
		return err
	}
	if len(accounts) == 0 {
		fmt.Println("  No accounts yet. Add one with `cashcast accounts add`.")
		return nil
	}

	var rows [][]string
	var total float64
	for _, a := range accounts {
		rows = append(rows, []string{a.Name, string(a.Type), cli.FormatMoney(a.Balance)})
		total += a.Balance
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"Total", "", cli.FormatMoney(total)})

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Account", "Type", "Balance"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

func runAccountsAdd(_ *cobra.Command, args []string) error {
	var typ model.AccountType
	switch t := model.AccountType(flagAccountType); t {
	case model.AccountChecking, model.AccountSavings, model.AccountCredit, model.AccountInvestment:
		typ = t
	default:
		return fmt.Errorf("unknown account type %q", flagAccountType)
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	a := model.Account{
		ID:       uuid.NewString(),
		Name:     args[0],
		Type:     typ,
		Balance:  flagAccountBalance,
		Currency: "USD",
	}
	if err := db.SaveAccount(a); err != nil {
		return err
	}

	fmt.Printf("  Added %s account %q with balance %s\n", a.Type, a.Name, cli.FormatMoney(a.Balance))
	return nil
}

func runAccountsBalance(_ *cobra.Command, args []string) error {
	var amount float64
	if _, err := fmt.Sscanf(args[1], "%f", &amount); err != nil {
		return fmt.Errorf("parsing amount %q: %w", args[1], err)
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	a, err := findAccount(db, args[0])
	if err != nil {
		return err
	}
	a.Balance = amount
	if err := db.SaveAccount(a); err != nil {
		return err
	}

	fmt.Printf("  %s balance set to %s\n", a.Name, cli.FormatMoney(a.Balance))
	return nil
}
