package model

import "time"

// Category is a spending category from the fixed taxonomy.
type Category string

const (
	CategoryIncome         Category = "income"
	CategoryHousing        Category = "housing"
	CategoryTransportation Category = "transportation"
	CategoryFood           Category = "food"
	CategoryUtilities      Category = "utilities"
	CategoryHealthcare     Category = "healthcare"
	CategoryEntertainment  Category = "entertainment"
	CategoryShopping       Category = "shopping"
	CategorySubscriptions  Category = "subscriptions"
	CategoryFinancial      Category = "financial"
	CategoryOther          Category = "other"
)

// Transaction is one ledger entry. Amount is signed: negative for expenses,
// positive for income.
type Transaction struct {
	ID        string
	AccountID string
	Date      time.Time
	Amount    float64
	Merchant  string
	Category  Category
}

// IsExpense reports whether the transaction is an outflow.
func (t Transaction) IsExpense() bool {
	return t.Amount < 0
}
