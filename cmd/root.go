package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/cashcast/internal/cli"
	"github.com/theirongolddev/cashcast/internal/config"
	"github.com/theirongolddev/cashcast/internal/engine"
	"github.com/theirongolddev/cashcast/internal/model"
	"github.com/theirongolddev/cashcast/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagDBPath      string
	flagBuffer      float64
	flagHorizon     int
	flagSimulations int
	flagTolerance   string
	flagQuiet       bool
)

var rootCmd = &cobra.Command{
	Use:   "cashcast",
	Short: "Probabilistic cash-flow forecasting for personal finances",
	Long:  "Forecast your balances, runway, risks, and safe-to-save amount from local transaction history.",
	RunE:  runOverview,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Ledger database path (default XDG data dir)")
	rootCmd.PersistentFlags().Float64Var(&flagBuffer, "buffer", -1, "Minimum balance buffer (overrides config)")
	rootCmd.PersistentFlags().IntVarP(&flagHorizon, "horizon", "n", 0, "Forecast horizon in days (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagSimulations, "sims", 0, "Monte Carlo run count (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagTolerance, "risk", "", "Risk tolerance: conservative, moderate, aggressive")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// dbPath resolves the ledger database location from flag, config, or the
// XDG default.
func dbPath(cfg config.Config) string {
	if flagDBPath != "" {
		return flagDBPath
	}
	if cfg.General.DBPath != "" {
		return cfg.General.DBPath
	}
	return config.DefaultDBPath()
}

// loadSnapshot is the shared loading path used by all forecast commands.
// Flags override config values where set.
func loadSnapshot() (model.Snapshot, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return model.Snapshot{}, cfg, err
	}

	db, err := store.Open(dbPath(cfg))
	if err != nil {
		return model.Snapshot{}, cfg, err
	}
	defer func() { _ = db.Close() }()

	snap, err := db.LoadSnapshot()
	if err != nil {
		return model.Snapshot{}, cfg, err
	}

	snap.Buffer = cfg.General.Buffer
	if flagBuffer >= 0 {
		snap.Buffer = flagBuffer
	}
	snap.HorizonDays = cfg.General.HorizonDays
	if flagHorizon > 0 {
		snap.HorizonDays = flagHorizon
	}
	snap.Simulations = cfg.General.Simulations
	if flagSimulations > 0 {
		snap.Simulations = flagSimulations
	}
	snap.Today = time.Now().Truncate(24 * time.Hour)
	snap.RiskTolerance = cfg.General.GetRiskTolerance()
	if flagTolerance != "" {
		switch model.RiskTolerance(flagTolerance) {
		case model.RiskConservative, model.RiskModerate, model.RiskAggressive:
			snap.RiskTolerance = model.RiskTolerance(flagTolerance)
		default:
			return snap, cfg, fmt.Errorf("unknown risk tolerance %q", flagTolerance)
		}
	}

	return snap, cfg, nil
}

// runForecast loads the ledger and executes one engine pass.
func runForecast() (model.Snapshot, model.Result, config.Config, error) {
	snap, cfg, err := loadSnapshot()
	if err != nil {
		return snap, model.Result{}, cfg, err
	}
	if len(snap.Accounts) == 0 {
		return snap, model.Result{}, cfg, errors.New("no accounts yet — run `cashcast setup` and `cashcast import` first")
	}

	if !flagQuiet {
		fmt.Fprintf(os.Stderr, "  Simulating %d runs over %d days...\n", snap.Simulations, snap.HorizonDays)
	}

	return snap, engine.Run(snap, cfg.Tuning), cfg, nil
}

func runOverview(_ *cobra.Command, _ []string) error {
	snap, res, _, err := runForecast()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle("CASHCAST"))
	fmt.Println()

	balance := model.TotalBalance(snap.Accounts)
	runwayStr := cli.FormatDays(res.Runway.Days, snap.HorizonDays)

	rows := [][]string{
		{"Balance", cli.FormatMoneyCompact(balance)},
		{"Runway", cli.StyleZone(res.Runway.Zones, runwayStr)},
		{"Trend", string(res.Runway.Trend)},
		{"---"},
		{"Risk Score", cli.FormatScore(float64(res.RiskScore))},
		{"Active Alerts", fmt.Sprintf("%d", len(res.Risks))},
		{"Anomalies", fmt.Sprintf("%d", len(res.Anomalies))},
		{"---"},
		{"Safe to Save", cli.FormatMoneyCompact(res.SafeToSave.Amount)},
		{"Forecast Confidence", cli.FormatScore(res.Confidence)},
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	// Balance sparkline over the P50 path.
	p50 := make([]float64, 0, len(res.Forecast))
	for i := 0; i < len(res.Forecast); i += 2 {
		p50 = append(p50, res.Forecast[i].P50Total)
	}
	fmt.Printf("\n  %s\n", cli.RenderSparkline(p50))
	fmt.Printf("  %s\n\n", cli.Muted(fmt.Sprintf("median balance, next %d days", snap.HorizonDays)))

	for _, alert := range res.Risks {
		fmt.Printf("  %s %s\n", cli.StyleSeverity(alert.Severity, "●"), alert.Title)
	}
	if len(res.Risks) > 0 {
		fmt.Println()
	}

	return nil
}
