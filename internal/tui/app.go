// Package tui provides the interactive Bubble Tea dashboard for cashcast.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/cashcast/internal/config"
	"github.com/theirongolddev/cashcast/internal/engine"
	"github.com/theirongolddev/cashcast/internal/model"
	"github.com/theirongolddev/cashcast/internal/store"
	"github.com/theirongolddev/cashcast/internal/tui/components"
	"github.com/theirongolddev/cashcast/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DataLoadedMsg is sent when the initial load and engine pass finish.
type DataLoadedMsg struct {
	Snap     model.Snapshot
	Res      model.Result
	LoadTime time.Duration
	Err      error
}

// RefreshDataMsg is sent when a background refresh completes.
type RefreshDataMsg struct {
	Snap     model.Snapshot
	Res      model.Result
	LoadTime time.Duration
	Err      error
}

// Params configures a dashboard session.
type Params struct {
	DBPath string
	Cfg    config.Config
}

// App is the root Bubble Tea model.
type App struct {
	params Params

	// Data from the last engine pass
	snap     model.Snapshot
	res      model.Result
	loaded   bool
	loadErr  error
	loadTime time.Duration

	// Auto-refresh state
	autoRefresh     bool
	refreshInterval time.Duration
	lastRefresh     time.Time
	refreshing      bool

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	spinner spinner.Model
}

const (
	minTerminalWidth = 72
	compactWidth     = 100
	maxContentWidth  = 150
	minContentHeight = 5
)

// NewApp creates the dashboard model. The theme is activated from config
// before any rendering happens.
func NewApp(p Params) App {
	theme.SetActive(p.Cfg.TUI.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	refreshInterval := time.Duration(p.Cfg.TUI.RefreshIntervalSec) * time.Second
	if refreshInterval < 30*time.Second {
		refreshInterval = 5 * time.Minute
	}

	return App{
		params:          p,
		autoRefresh:     p.Cfg.TUI.AutoRefresh,
		refreshInterval: refreshInterval,
		spinner:         sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.params),
		a.spinner.Tick,
		tickCmd(),
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp {
			return a, nil
		}
		if msg.Button == tea.MouseButtonLeft && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" || key == "q" {
			return a, tea.Quit
		}

		if !a.loaded {
			return a, nil
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch key {
		case "r":
			if !a.refreshing {
				a.refreshing = true
				return a, refreshDataCmd(a.params)
			}
			return a, nil
		case "R":
			a.autoRefresh = !a.autoRefresh
			a.params.Cfg.TUI.AutoRefresh = a.autoRefresh
			_ = config.Save(a.params.Cfg)
			return a, nil
		case "t":
			next := theme.Next(theme.Active.Name)
			theme.SetActive(next)
			a.params.Cfg.TUI.Theme = next
			_ = config.Save(a.params.Cfg)
			return a, nil
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
			return a, nil
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			return a, nil
		}

		if len(key) == 1 {
			if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
				a.activeTab = idx
			}
		}
		return a, nil

	case DataLoadedMsg:
		a.snap = msg.Snap
		a.res = msg.Res
		a.loadErr = msg.Err
		a.loadTime = msg.LoadTime
		a.loaded = true
		a.lastRefresh = time.Now()
		return a, nil

	case RefreshDataMsg:
		a.refreshing = false
		a.lastRefresh = time.Now()
		if msg.Err == nil {
			a.snap = msg.Snap
			a.res = msg.Res
			a.loadErr = nil
			a.loadTime = msg.LoadTime
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}
		if a.loaded && a.autoRefresh && !a.refreshing {
			if time.Since(a.lastRefresh) >= a.refreshInterval {
				a.refreshing = true
				cmds = append(cmds, refreshDataCmd(a.params))
			}
		}
		return a, tea.Batch(cmds...)
	}

	return a, nil
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.loadErr != nil {
		return a.viewError()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  cashcast needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ cashcast"))
	b.WriteString(subtitleStyle.Render(" · Cash-Flow Forecast"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Render(a.spinner.View()))
	b.WriteString(subtitleStyle.Render(" Simulating..."))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewError() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Red).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.Red).
		Background(t.Surface).
		Bold(true)

	textStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Cannot load ledger"))
	b.WriteString("\n\n")
	b.WriteString(textStyle.Render(truncStr(a.loadErr.Error(), 60)))
	b.WriteString("\n\n")
	b.WriteString(textStyle.Render("Press r to retry, q to quit"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	bindings := []struct{ key, desc string }{
		{"f a g", "Jump to tab"},
		{"← → tab", "Previous / Next tab"},
		{"r", "Re-run the forecast"},
		{"R", "Toggle auto-refresh"},
		{"t", "Cycle color theme"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab)

	asOf := fmt.Sprintf("%d txns · computed in %.1fs", len(a.snap.Transactions), a.loadTime.Seconds())
	statusBar := components.RenderStatusBar(w, asOf, a.refreshing)

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case 0:
		content = a.renderForecastTab(cw)
	case 1:
		content = a.renderAlertsTab(cw)
	case 2:
		content = a.renderGoalsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Color helpers ──────────────────────────────────────────────

func severityColor(sev model.Severity) lipgloss.Color {
	t := theme.Active
	switch sev {
	case model.SeverityCritical:
		return t.Red
	case model.SeverityWarning:
		return t.Orange
	default:
		return t.Blue
	}
}

func anomalyColor(sev model.AnomalySeverity) lipgloss.Color {
	t := theme.Active
	switch sev {
	case model.AnomalyHigh:
		return t.Red
	case model.AnomalyMedium:
		return t.Orange
	default:
		return t.Yellow
	}
}

func zoneColor(z model.BufferZones) lipgloss.Color {
	t := theme.Active
	switch {
	case z.Critical:
		return t.Red
	case z.Caution:
		return t.Yellow
	default:
		return t.Green
	}
}

// ─── Data loading ───────────────────────────────────────────────

// runEngine opens the ledger, applies config overrides, and executes one
// engine pass. It is called from background tea commands only.
func runEngine(p Params) (model.Snapshot, model.Result, error) {
	db, err := store.Open(p.DBPath)
	if err != nil {
		return model.Snapshot{}, model.Result{}, err
	}
	defer func() { _ = db.Close() }()

	snap, err := db.LoadSnapshot()
	if err != nil {
		return model.Snapshot{}, model.Result{}, err
	}

	snap.Buffer = p.Cfg.General.Buffer
	snap.HorizonDays = p.Cfg.General.HorizonDays
	snap.Simulations = p.Cfg.General.Simulations
	snap.RiskTolerance = p.Cfg.General.GetRiskTolerance()
	snap.Today = time.Now().Truncate(24 * time.Hour)

	if len(snap.Accounts) == 0 {
		return snap, model.Result{}, fmt.Errorf("no accounts yet — run `cashcast setup` first")
	}

	return snap, engine.Run(snap, p.Cfg.Tuning), nil
}

func loadDataCmd(p Params) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		snap, res, err := runEngine(p)
		return DataLoadedMsg{Snap: snap, Res: res, LoadTime: time.Since(start), Err: err}
	}
}

func refreshDataCmd(p Params) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		snap, res, err := runEngine(p)
		return RefreshDataMsg{Snap: snap, Res: res, LoadTime: time.Since(start), Err: err}
	}
}

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// ─── Layout helpers ─────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 1 // leading space before the first tab
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW
		if i < len(components.Tabs)-1 {
			pos += 2 // separator between tabs
		}
	}
	return -1
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color,
// so gaps between cards and empty lines keep a uniform fill.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}
