package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/cashcast/internal/cli"
	"github.com/theirongolddev/cashcast/internal/tui/components"
	"github.com/theirongolddev/cashcast/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderGoalsTab(cw int) string {
	var b strings.Builder

	innerW := components.CardInnerWidth(cw)

	b.WriteString(components.ContentCard("Safe to Save", a.renderSafeToSave(innerW), cw))
	b.WriteString("\n")

	b.WriteString(components.ContentCard(
		fmt.Sprintf("Goals (%d)", len(a.res.Goals)),
		a.renderGoalList(innerW), cw))

	return b.String()
}

func (a App) renderSafeToSave(innerW int) string {
	t := theme.Active
	safe := a.res.SafeToSave

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	amountColor := t.Green
	if safe.Amount == 0 {
		amountColor = t.TextMuted
	}
	amountStyle := lipgloss.NewStyle().Foreground(amountColor).Bold(true)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s",
		amountStyle.Render(cli.FormatMoney(safe.Amount)),
		labelStyle.Render(fmt.Sprintf("recommended · max %s · %s confidence",
			cli.FormatMoneyCompact(safe.MaxSafe), cli.FormatPercent(safe.Confidence))))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(truncStr(safe.Reasoning, innerW)))
	b.WriteString("\n")
	for _, f := range safe.Factors {
		b.WriteString(dimStyle.Render("· " + truncStr(f, innerW-2)))
		b.WriteString("\n")
	}
	if !safe.TransferDate.IsZero() {
		b.WriteString(dimStyle.Render("next transfer " + cli.FormatDate(safe.TransferDate)))
	}

	return strings.TrimRight(b.String(), "\n")
}

func (a App) renderGoalList(innerW int) string {
	t := theme.Active
	goals := a.res.Goals
	if len(goals) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Render("No goals yet. Add one with `cashcast goals add`.")
	}

	labelW := 4
	for _, g := range goals {
		if w := len(g.Name) + 3; w > labelW {
			labelW = w
		}
	}
	if labelW > innerW/3 {
		labelW = innerW / 3
	}
	barW := innerW - labelW - 30
	if barW < 10 {
		barW = 10
	}

	reasonStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	for _, g := range goals {
		label := fmt.Sprintf("%d. %s", g.Rank, truncStr(g.Name, labelW-3))
		detail := fmt.Sprintf("%s of %s",
			cli.FormatMoneyCompact(g.Saved), cli.FormatMoneyCompact(g.Target))
		if g.Allocated > 0 {
			detail += fmt.Sprintf(" · +%s now", cli.FormatMoneyCompact(g.Allocated))
		}
		b.WriteString(components.GoalBar(label, g.Progress(), detail, labelW, barW))
		b.WriteString("\n")
		b.WriteString("  " + reasonStyle.Render(truncStr(g.Reasoning, innerW-2)))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
