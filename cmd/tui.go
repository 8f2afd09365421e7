package cmd

import (
	"fmt"

	"github.com/theirongolddev/cashcast/internal/config"
	"github.com/theirongolddev/cashcast/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive forecast dashboard",
	Long:  "Full-screen dashboard with forecast, alert, and goal views that re-runs the engine on demand.",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	applyOverrides(&cfg)

	app := tui.NewApp(tui.Params{
		DBPath: dbPath(cfg),
		Cfg:    cfg,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}

// applyOverrides copies persistent flag values into the config so the
// dashboard's engine passes see the same settings as the CLI commands.
func applyOverrides(cfg *config.Config) {
	if flagBuffer >= 0 {
		cfg.General.Buffer = flagBuffer
	}
	if flagHorizon > 0 {
		cfg.General.HorizonDays = flagHorizon
	}
	if flagSimulations > 0 {
		cfg.General.Simulations = flagSimulations
	}
	if flagTolerance != "" {
		cfg.General.RiskTolerance = flagTolerance
	}
}
