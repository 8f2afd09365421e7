// Package classify assigns spending categories to transactions using an
// ordered keyword rule list.
package classify

import (
	"strings"

	"github.com/theirongolddev/cashcast/internal/model"
)

// rule maps a category to the merchant keywords that select it. Rules are
// evaluated in order and the first match wins, so earlier categories take
// precedence over later ones for overlapping keywords.
type rule struct {
	category model.Category
	keywords []string
}

var rules = []rule{
	{model.CategoryHousing, []string{
		"rent", "mortgage", "apartment", "landlord", "hoa", "property mgmt",
	}},
	{model.CategoryTransportation, []string{
		"uber", "lyft", "shell", "chevron", "exxon", "gas station", "fuel",
		"parking", "transit", "metro", "toll", "auto repair",
	}},
	{model.CategoryFood, []string{
		"grocery", "restaurant", "cafe", "coffee", "starbucks", "mcdonald",
		"chipotle", "doordash", "grubhub", "safeway", "whole foods", "kroger",
		"trader joe", "pizza", "burger", "taco", "deli", "bakery",
	}},
	{model.CategoryUtilities, []string{
		"electric", "water dept", "power", "energy", "internet", "comcast",
		"xfinity", "verizon", "t-mobile", "utility", "sewer", "waste mgmt",
	}},
	{model.CategoryHealthcare, []string{
		"pharmacy", "cvs", "walgreens", "doctor", "dental", "medical",
		"clinic", "hospital", "urgent care", "vision",
	}},
	{model.CategoryEntertainment, []string{
		"netflix", "hulu", "spotify", "disney", "hbo", "cinema", "movie",
		"theater", "concert", "steam", "playstation", "xbox", "twitch",
	}},
	{model.CategoryShopping, []string{
		"amazon", "walmart", "target", "costco", "best buy", "ebay", "etsy",
		"ikea", "nordstrom", "macy",
	}},
	{model.CategorySubscriptions, []string{
		"subscription", "membership", "patreon", "substack", "gym", "audible",
		"icloud", "dropbox", "adobe",
	}},
	{model.CategoryFinancial, []string{
		"transfer", "loan", "interest", "fee", "atm", "withdrawal",
		"insurance", "brokerage", "investment", "credit card payment",
	}},
}

// Categorize returns the category for a transaction. Income is anything
// positive without a custom category; otherwise the merchant string is
// matched against the rule list. Already-categorized transactions pass
// through unchanged, so the function is idempotent.
func Categorize(t model.Transaction) model.Category {
	if t.Category != "" && t.Category != model.CategoryOther {
		return t.Category
	}
	if t.Amount > 0 {
		return model.CategoryIncome
	}

	merchant := strings.ToLower(t.Merchant)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(merchant, kw) {
				return r.category
			}
		}
	}
	return model.CategoryOther
}

// CategorizeAll categorizes a batch in place order, returning a new slice
// with categories filled in. Input order is preserved.
func CategorizeAll(txns []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, len(txns))
	for i, t := range txns {
		t.Category = Categorize(t)
		out[i] = t
	}
	return out
}
