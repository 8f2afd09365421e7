package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/cashcast/internal/cli"
	"github.com/theirongolddev/cashcast/internal/model"
	"github.com/theirongolddev/cashcast/internal/tui/components"
	"github.com/theirongolddev/cashcast/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderForecastTab(cw int) string {
	t := theme.Active
	res := a.res
	var b strings.Builder

	// Row 1: Metric cards
	balance := model.TotalBalance(a.snap.Accounts)

	saveColor := t.Green
	if res.SafeToSave.Amount == 0 {
		saveColor = t.TextMuted
	}

	metrics := []components.Metric{
		{Label: "Balance", Value: cli.FormatMoneyCompact(balance),
			Detail: fmt.Sprintf("%d accounts", len(a.snap.Accounts))},
		{Label: "Runway", Value: cli.FormatDays(res.Runway.Days, a.snap.HorizonDays),
			Detail: string(res.Runway.Trend), Color: zoneColor(res.Runway.Zones)},
		{Label: "Safe to Save", Value: cli.FormatMoneyCompact(res.SafeToSave.Amount),
			Detail: "per period", Color: saveColor},
		{Label: "Confidence", Value: cli.FormatScore(res.Confidence),
			Detail: fmt.Sprintf("%d runs", a.snap.Simulations)},
	}
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	// Row 2: Median balance chart over the horizon
	if len(res.Forecast) > 0 {
		vals := make([]float64, len(res.Forecast))
		for i, d := range res.Forecast {
			vals[i] = d.P50Total
		}
		chartH := 10
		if a.isCompactLayout() {
			chartH = 7
		}
		b.WriteString(components.ContentCard(
			fmt.Sprintf("Median Balance (%dd)", a.snap.HorizonDays),
			components.BarChart(vals, forecastDateLabels(res.Forecast), t.Blue, components.CardInnerWidth(cw), chartH),
			cw,
		))
		b.WriteString("\n")
	}

	// Row 3: Scenario runways + percentile checkpoints
	halves := components.LayoutRow(cw, 2)

	scenarioCard := components.ContentCard("Runway Scenarios", a.renderScenarios(), halves[0])
	checkpointCard := components.ContentCard("Checkpoints", a.renderCheckpoints(), halves[1])

	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Runway Scenarios", a.renderScenarios(), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Checkpoints", a.renderCheckpoints(), cw))
	} else {
		b.WriteString(components.CardRow([]string{scenarioCard, checkpointCard}))
	}

	return b.String()
}

func (a App) renderScenarios() string {
	t := theme.Active
	run := a.res.Runway

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	rows := []struct {
		name  string
		s     model.ScenarioRunway
		color lipgloss.Color
	}{
		{"Optimistic (P90)", run.Optimistic, t.Green},
		{"Expected (P50)", run.Expected, t.TextPrimary},
		{"Conservative (P10)", run.Conservative, t.Orange},
	}

	var b strings.Builder
	for _, r := range rows {
		days := cli.FormatDays(r.s.Days, a.snap.HorizonDays)
		valStyle := lipgloss.NewStyle().Foreground(r.color).Bold(true)
		fmt.Fprintf(&b, "%s %s",
			labelStyle.Render(fmt.Sprintf("%-19s", r.name)),
			valStyle.Render(fmt.Sprintf("%9s", days)))
		if r.s.Crossed {
			b.WriteString(dimStyle.Render("  buffer hit " + cli.FormatDate(r.s.CrossDate)))
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "%s %s\n",
		labelStyle.Render(fmt.Sprintf("%-19s", "Band confidence")),
		dimStyle.Render(fmt.Sprintf("%9s", cli.FormatPercent(run.Confidence))))

	return b.String()
}

func (a App) renderCheckpoints() string {
	t := theme.Active
	fc := a.res.Forecast
	if len(fc) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Render("no forecast")
	}

	dateStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	p50Style := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	bandStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	step := len(fc) / 5
	if step < 1 {
		step = 1
	}

	var b strings.Builder
	for i := step - 1; i < len(fc); i += step {
		d := fc[i]
		fmt.Fprintf(&b, "%s %s %s\n",
			dateStyle.Render(fmt.Sprintf("%-7s", cli.FormatDate(d.Date))),
			p50Style.Render(fmt.Sprintf("%10s", cli.FormatMoneyCompact(d.P50Total))),
			bandStyle.Render(fmt.Sprintf("%s to %s",
				cli.FormatMoneyCompact(d.P10Total), cli.FormatMoneyCompact(d.P90Total))))
	}

	return b.String()
}

// forecastDateLabels builds compact X-axis labels for the forecast series:
// month abbreviation at the start and on month boundaries, day number elsewhere.
func forecastDateLabels(fc []model.ForecastDay) []string {
	labels := make([]string, len(fc))
	prevMonth := time.Month(0)
	for i, d := range fc {
		m := d.Date.Month()
		switch {
		case i == 0, m != prevMonth:
			labels[i] = d.Date.Format("Jan")
		default:
			labels[i] = strconv.Itoa(d.Date.Day())
		}
		prevMonth = m
	}
	return labels
}
