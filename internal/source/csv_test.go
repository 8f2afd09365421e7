package source

import (
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/cashcast/internal/model"
)

func TestParseBasicExport(t *testing.T) {
	input := `Date,Description,Amount
2026-03-01,Grocery Mart,-42.50
2026-03-02,Paycheck,2500.00
`
	res := parse(strings.NewReader(input), "chk", nil)
	if res.Err != nil {
		t.Fatalf("parse() error = %v", res.Err)
	}
	if len(res.Transactions) != 2 {
		t.Fatalf("len(transactions) = %d, want 2", len(res.Transactions))
	}

	first := res.Transactions[0]
	if first.Merchant != "Grocery Mart" {
		t.Errorf("Merchant = %q, want %q", first.Merchant, "Grocery Mart")
	}
	if first.Amount != -42.50 {
		t.Errorf("Amount = %v, want -42.50", first.Amount)
	}
	if first.AccountID != "chk" {
		t.Errorf("AccountID = %q, want %q", first.AccountID, "chk")
	}
	if first.ID == "" {
		t.Error("ID is empty, want a generated id")
	}
	want := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	if !first.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", first.Date, want)
	}

	// Positive amounts categorize as income.
	if res.Transactions[1].Category != model.CategoryIncome {
		t.Errorf("Category = %v, want income", res.Transactions[1].Category)
	}
}

func TestParseHeaderAliases(t *testing.T) {
	input := `Posted Date,Payee,Transaction Amount
01/15/2026,Coffee Bar,-4.75
`
	res := parse(strings.NewReader(input), "chk", nil)
	if res.Err != nil {
		t.Fatalf("parse() error = %v", res.Err)
	}
	if len(res.Transactions) != 1 {
		t.Fatalf("len(transactions) = %d, want 1", len(res.Transactions))
	}
	want := time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)
	if !res.Transactions[0].Date.Equal(want) {
		t.Errorf("Date = %v, want %v", res.Transactions[0].Date, want)
	}
}

func TestParseAmountFormats(t *testing.T) {
	input := `Date,Description,Amount
2026-03-01,Rent,"($2,100.00)"
2026-03-02,Bonus,"$1,000.00"
`
	res := parse(strings.NewReader(input), "chk", nil)
	if res.Err != nil {
		t.Fatalf("parse() error = %v", res.Err)
	}
	if len(res.Transactions) != 2 {
		t.Fatalf("len(transactions) = %d, want 2", len(res.Transactions))
	}
	if res.Transactions[0].Amount != -2100 {
		t.Errorf("paren amount = %v, want -2100", res.Transactions[0].Amount)
	}
	if res.Transactions[1].Amount != 1000 {
		t.Errorf("dollar amount = %v, want 1000", res.Transactions[1].Amount)
	}
}

func TestParseSkipsMalformedRows(t *testing.T) {
	input := `Date,Description,Amount
2026-03-01,Grocery Mart,-42.50
not-a-date,Coffee Bar,-4.75
2026-03-03,Gas Station,abc
2026-03-04,,-10.00
2026-03-05,Pharmacy,-12.00
`
	res := parse(strings.NewReader(input), "chk", nil)
	if res.Err != nil {
		t.Fatalf("parse() error = %v", res.Err)
	}
	if len(res.Transactions) != 2 {
		t.Errorf("len(transactions) = %d, want 2", len(res.Transactions))
	}
	if res.Skipped != 3 {
		t.Errorf("Skipped = %d, want 3", res.Skipped)
	}
}

func TestParseDedupesWithinFileAndAgainstLedger(t *testing.T) {
	input := `Date,Description,Amount
2026-03-01,Grocery Mart,-42.50
2026-03-01,Grocery Mart,-42.50
2026-03-02,Coffee Bar,-4.75
`
	existing := map[string]bool{
		"2026-03-02T00:00:00Z|-4.75|Coffee Bar": true,
	}
	res := parse(strings.NewReader(input), "chk", existing)
	if res.Err != nil {
		t.Fatalf("parse() error = %v", res.Err)
	}
	if len(res.Transactions) != 1 {
		t.Errorf("len(transactions) = %d, want 1", len(res.Transactions))
	}
	if res.Duplicates != 2 {
		t.Errorf("Duplicates = %d, want 2", res.Duplicates)
	}
}

func TestParseMissingColumns(t *testing.T) {
	input := `Foo,Bar
1,2
`
	res := parse(strings.NewReader(input), "chk", nil)
	if res.Err == nil {
		t.Fatal("parse() error = nil, want missing-column error")
	}
}

func TestParseCategorizesByMerchant(t *testing.T) {
	input := `Date,Description,Amount
2026-03-01,Netflix,-15.99
2026-03-02,Grocery Mart,-42.50
2026-03-03,Mystery Vendor,-9.99
`
	res := parse(strings.NewReader(input), "chk", nil)
	if res.Err != nil {
		t.Fatalf("parse() error = %v", res.Err)
	}
	if len(res.Transactions) != 3 {
		t.Fatalf("len(transactions) = %d, want 3", len(res.Transactions))
	}
	if got := res.Transactions[0].Category; got != model.CategoryEntertainment {
		t.Errorf("Netflix Category = %v, want entertainment", got)
	}
	if got := res.Transactions[1].Category; got != model.CategoryFood {
		t.Errorf("Grocery Mart Category = %v, want food", got)
	}
	if got := res.Transactions[2].Category; got != model.CategoryOther {
		t.Errorf("Mystery Vendor Category = %v, want other", got)
	}
}

func TestMapColumnsLeftmostAliasWins(t *testing.T) {
	cols, err := mapColumns([]string{"Date", "Memo", "Description", "Amount"})
	if err != nil {
		t.Fatalf("mapColumns() error = %v", err)
	}
	if cols.merchant != 1 {
		t.Errorf("merchant column = %d, want 1 (leftmost alias)", cols.merchant)
	}
}

func TestParseCategoryColumnPassThrough(t *testing.T) {
	input := `Date,Description,Amount,Category
2026-03-01,Some Shop,-30.00,healthcare
`
	res := parse(strings.NewReader(input), "chk", nil)
	if res.Err != nil {
		t.Fatalf("parse() error = %v", res.Err)
	}
	if res.Transactions[0].Category != model.CategoryHealthcare {
		t.Errorf("Category = %v, want healthcare (explicit column wins)", res.Transactions[0].Category)
	}
}
