package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/cashcast/internal/cli"
	"github.com/theirongolddev/cashcast/internal/tui/components"
	"github.com/theirongolddev/cashcast/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderAlertsTab(cw int) string {
	var b strings.Builder

	innerW := components.CardInnerWidth(cw)

	// Row 1: Risk score gauge
	b.WriteString(components.ContentCard("Risk Score",
		components.RiskGauge(float64(a.res.RiskScore), innerW), cw))
	b.WriteString("\n")

	// Row 2: Forward-looking risk alerts
	b.WriteString(components.ContentCard(
		fmt.Sprintf("Alerts (%d)", len(a.res.Risks)),
		a.renderAlertList(innerW), cw))
	b.WriteString("\n")

	// Row 3: Historical anomalies
	b.WriteString(components.ContentCard(
		fmt.Sprintf("Anomalies (%d)", len(a.res.Anomalies)),
		a.renderAnomalyList(innerW), cw))

	return b.String()
}

func (a App) renderAlertList(innerW int) string {
	t := theme.Active
	if len(a.res.Risks) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Render("No risks detected over the forecast window.")
	}

	dateStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	for _, alert := range a.res.Risks {
		titleStyle := lipgloss.NewStyle().Foreground(severityColor(alert.Severity)).Bold(true)
		fmt.Fprintf(&b, "%s %s",
			titleStyle.Render("●"),
			titleStyle.Render(alert.Title))
		if !alert.Date.IsZero() {
			b.WriteString(dateStyle.Render("  " + cli.FormatDate(alert.Date)))
		}
		b.WriteString("\n")
		b.WriteString("  " + descStyle.Render(truncStr(alert.Description, innerW-2)))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func (a App) renderAnomalyList(innerW int) string {
	t := theme.Active
	if len(a.res.Anomalies) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Render("Nothing unusual in recent history.")
	}

	dateStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	merchantStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)

	merchantW := innerW / 3
	if merchantW < 12 {
		merchantW = 12
	}

	var b strings.Builder
	for _, an := range a.res.Anomalies {
		typeStyle := lipgloss.NewStyle().Foreground(anomalyColor(an.Severity))
		fmt.Fprintf(&b, "%s %s %s %s\n",
			dateStyle.Render(fmt.Sprintf("%-7s", cli.FormatDate(an.Transaction.Date))),
			merchantStyle.Render(fmt.Sprintf("%-*s", merchantW, truncStr(an.Transaction.Merchant, merchantW))),
			amountStyle.Render(fmt.Sprintf("%11s", cli.FormatSignedMoney(an.Transaction.Amount))),
			typeStyle.Render(string(an.Type)))
	}

	return strings.TrimRight(b.String(), "\n")
}
