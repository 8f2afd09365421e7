// Package model defines the value types exchanged between the forecasting
// engine and its callers. Everything here is a plain immutable snapshot;
// nothing carries behavior or does I/O.
package model

// AccountType identifies the kind of account a balance belongs to.
type AccountType string

const (
	AccountChecking   AccountType = "checking"
	AccountSavings    AccountType = "savings"
	AccountCredit     AccountType = "credit"
	AccountInvestment AccountType = "investment"
)

// Account is a balance snapshot at forecast time.
type Account struct {
	ID       string
	Name     string
	Type     AccountType
	Balance  float64
	Currency string
}

// TotalBalance sums the balances of all accounts.
func TotalBalance(accounts []Account) float64 {
	var total float64
	for _, a := range accounts {
		total += a.Balance
	}
	return total
}
