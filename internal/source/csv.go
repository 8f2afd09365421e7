// Package source parses bank-export CSV files into ledger transactions.
package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/theirongolddev/cashcast/internal/classify"
	"github.com/theirongolddev/cashcast/internal/model"
)

// Date layouts seen across bank exports, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"2006/01/02",
	"01-02-2006",
	"Jan 2, 2006",
	time.RFC3339,
}

// ParseResult holds the output of parsing a single CSV file.
type ParseResult struct {
	Transactions []model.Transaction
	Skipped      int // malformed rows
	Duplicates   int // rows matching an existing date|amount|merchant key
	Err          error
}

// ParseFile reads a bank CSV export and produces categorized transactions
// for the given account. Header names are matched case-insensitively;
// common aliases (description, payee, name) map to merchant. Rows that
// fail to parse are counted and skipped rather than aborting the file.
// existing holds date|amount|merchant keys already in the ledger; matching
// rows are dropped as duplicates.
func ParseFile(path, accountID string, existing map[string]bool) ParseResult {
	f, err := os.Open(path)
	if err != nil {
		return ParseResult{Err: err}
	}
	defer func() { _ = f.Close() }()

	return parse(f, accountID, existing)
}

func parse(r io.Reader, accountID string, existing map[string]bool) ParseResult {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return ParseResult{Err: fmt.Errorf("reading header: %w", err)}
	}
	cols, err := mapColumns(header)
	if err != nil {
		return ParseResult{Err: err}
	}

	seen := make(map[string]bool)
	var result ParseResult
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Skipped++
			continue
		}

		t, ok := parseRow(row, cols, accountID)
		if !ok {
			result.Skipped++
			continue
		}

		key := fmt.Sprintf("%s|%.2f|%s", t.Date.UTC().Format(time.RFC3339), t.Amount, t.Merchant)
		if seen[key] || existing[key] {
			result.Duplicates++
			continue
		}
		seen[key] = true

		t.Category = classify.Categorize(t)
		result.Transactions = append(result.Transactions, t)
	}
	return result
}

// columns holds the resolved field index per logical column. Category is
// optional; -1 means absent.
type columns struct {
	date     int
	amount   int
	merchant int
	category int
}

// Header aliases per logical column, all lowercase. Checked in order so
// column resolution is deterministic when a header matches more than one.
var headerAliases = []struct {
	logical string
	aliases []string
}{
	{"date", []string{"date", "transaction date", "posted date", "post date"}},
	{"amount", []string{"amount", "transaction amount", "value"}},
	{"merchant", []string{"merchant", "description", "payee", "name", "memo"}},
	{"category", []string{"category"}},
}

func mapColumns(header []string) (columns, error) {
	cols := columns{date: -1, amount: -1, merchant: -1, category: -1}
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		for _, entry := range headerAliases {
			matched := false
			for _, a := range entry.aliases {
				if name == a {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
			switch entry.logical {
			case "date":
				if cols.date < 0 {
					cols.date = i
				}
			case "amount":
				if cols.amount < 0 {
					cols.amount = i
				}
			case "merchant":
				if cols.merchant < 0 {
					cols.merchant = i
				}
			case "category":
				if cols.category < 0 {
					cols.category = i
				}
			}
			break
		}
	}
	if cols.date < 0 || cols.amount < 0 || cols.merchant < 0 {
		return cols, fmt.Errorf("csv header missing required columns (need date, amount, merchant): %v", header)
	}
	return cols, nil
}

func parseRow(row []string, cols columns, accountID string) (model.Transaction, bool) {
	max := cols.date
	if cols.amount > max {
		max = cols.amount
	}
	if cols.merchant > max {
		max = cols.merchant
	}
	if len(row) <= max {
		return model.Transaction{}, false
	}

	date, ok := parseDate(row[cols.date])
	if !ok {
		return model.Transaction{}, false
	}
	amount, ok := parseAmount(row[cols.amount])
	if !ok {
		return model.Transaction{}, false
	}
	merchant := strings.TrimSpace(row[cols.merchant])
	if merchant == "" {
		return model.Transaction{}, false
	}

	t := model.Transaction{
		ID:        uuid.NewString(),
		AccountID: accountID,
		Date:      date,
		Amount:    amount,
		Merchant:  merchant,
	}
	if cols.category >= 0 && cols.category < len(row) {
		t.Category = model.Category(strings.ToLower(strings.TrimSpace(row[cols.category])))
	}
	return t, true
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// parseAmount accepts "$1,234.56", "(42.00)" for negatives, and plain
// signed decimals.
func parseAmount(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		v = -v
	}
	return v, true
}
