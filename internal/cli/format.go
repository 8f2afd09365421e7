// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatMoney formats a dollar amount with comma separators and a sign.
// e.g., 1234.5 -> "$1,234.50", -42 -> "-$42.00"
func FormatMoney(v float64) string {
	if v < 0 {
		return "-" + FormatMoney(-v)
	}
	whole := int64(v)
	cents := int64(math.Round((v - float64(whole)) * 100))
	if cents >= 100 {
		whole++
		cents -= 100
	}
	return fmt.Sprintf("$%s.%02d", FormatNumber(whole), cents)
}

// FormatMoneyCompact drops the cents for large amounts.
// e.g., 12350.75 -> "$12,351", 42.50 -> "$42.50"
func FormatMoneyCompact(v float64) string {
	if v < 0 {
		return "-" + FormatMoneyCompact(-v)
	}
	if v >= 1000 {
		return "$" + FormatNumber(int64(math.Round(v)))
	}
	return FormatMoney(v)
}

// FormatSignedMoney always carries an explicit sign, for deltas.
func FormatSignedMoney(v float64) string {
	if v >= 0 {
		return "+" + FormatMoneyCompact(v)
	}
	return FormatMoneyCompact(v)
}

// FormatDays formats a day count, with "90+" for counts at or beyond the
// forecast horizon.
func FormatDays(days, horizon int) string {
	if days >= horizon {
		return fmt.Sprintf("%d+ days", horizon)
	}
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatScore formats a 0-100 score.
func FormatScore(s float64) string {
	return fmt.Sprintf("%.0f/100", s)
}

// FormatDate formats a date as "Mar 13".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("Jan 2")
}

// FormatDateLong formats a date as "Mar 13, 2026".
func FormatDateLong(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("Jan 2, 2006")
}
