package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/cashcast/internal/cli"
	"github.com/theirongolddev/cashcast/internal/config"
	"github.com/theirongolddev/cashcast/internal/daemon"
)

type watchRuntimeState struct {
	PID       int       `json:"pid"`
	Addr      string    `json:"addr"`
	StartedAt time.Time `json:"started_at"`
	DBPath    string    `json:"db_path"`
}

var (
	flagWatchAddr         string
	flagWatchInterval     time.Duration
	flagWatchDetach       bool
	flagWatchPIDFile      string
	flagWatchLogFile      string
	flagWatchEventsBuffer int
	flagWatchChild        bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run a background forecast monitor with HTTP/SSE endpoints",
	RunE:  runWatch,
}

var watchStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show monitor process and API status",
	RunE:  runWatchStatus,
}

var watchStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running monitor",
	RunE:  runWatchStop,
}

func init() {
	dataDir := filepath.Dir(config.DefaultDBPath())
	defaultPID := filepath.Join(dataDir, "cashcastd.pid")
	defaultLog := filepath.Join(dataDir, "cashcastd.log")

	watchCmd.PersistentFlags().StringVar(&flagWatchAddr, "addr", "127.0.0.1:8377", "HTTP listen address")
	watchCmd.PersistentFlags().DurationVar(&flagWatchInterval, "interval", 5*time.Minute, "Re-forecast interval")
	watchCmd.PersistentFlags().StringVar(&flagWatchPIDFile, "pid-file", defaultPID, "PID file path")
	watchCmd.PersistentFlags().StringVar(&flagWatchLogFile, "log-file", defaultLog, "Log file path for detached mode")
	watchCmd.PersistentFlags().IntVar(&flagWatchEventsBuffer, "events-buffer", 200, "Max in-memory events retained")

	watchCmd.Flags().BoolVar(&flagWatchDetach, "detach", false, "Run monitor as a background process")
	watchCmd.Flags().BoolVar(&flagWatchChild, "child", false, "Internal: mark detached child process")
	_ = watchCmd.Flags().MarkHidden("child")

	watchCmd.AddCommand(watchStatusCmd)
	watchCmd.AddCommand(watchStopCmd)
	rootCmd.AddCommand(watchCmd)
}

func runWatch(_ *cobra.Command, _ []string) error {
	if flagWatchDetach && flagWatchChild {
		return errors.New("invalid monitor launch mode")
	}

	if flagWatchDetach {
		return startWatchDetached()
	}

	return runWatchForeground()
}

func startWatchDetached() error {
	if err := ensureWatchNotRunning(flagWatchPIDFile); err != nil {
		return err
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}

	args := filterDetachArg(os.Args[1:])
	args = append(args, "--child")

	if err := os.MkdirAll(filepath.Dir(flagWatchPIDFile), 0o750); err != nil {
		return fmt.Errorf("create monitor directory: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(flagWatchLogFile), 0o750); err != nil {
		return fmt.Errorf("create monitor log directory: %w", err)
	}

	//nolint:gosec // monitor log path is configured by the local user
	logf, err := os.OpenFile(flagWatchLogFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open monitor log file: %w", err)
	}
	defer func() { _ = logf.Close() }()

	cmd := exec.Command(exe, args...) //nolint:gosec // exe/args come from current process invocation
	cmd.Stdout = logf
	cmd.Stderr = logf
	cmd.Stdin = nil
	cmd.Env = os.Environ()

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start detached monitor: %w", err)
	}

	fmt.Printf("  Started monitor (pid %d)\n", cmd.Process.Pid)
	fmt.Printf("  PID file: %s\n", flagWatchPIDFile)
	fmt.Printf("  API: http://%s/v1/status\n", flagWatchAddr)
	fmt.Printf("  Log: %s\n", flagWatchLogFile)
	return nil
}

func runWatchForeground() error {
	if err := ensureWatchNotRunning(flagWatchPIDFile); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(flagWatchPIDFile), 0o750); err != nil {
		return fmt.Errorf("create monitor directory: %w", err)
	}

	pid := os.Getpid()
	if err := writePID(flagWatchPIDFile, pid); err != nil {
		return err
	}
	defer func() { _ = os.Remove(flagWatchPIDFile) }()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	state := watchRuntimeState{
		PID:       pid,
		Addr:      flagWatchAddr,
		StartedAt: time.Now(),
		DBPath:    dbPath(cfg),
	}
	_ = writeState(statePath(flagWatchPIDFile), state)
	defer func() { _ = os.Remove(statePath(flagWatchPIDFile)) }()

	snapBuffer := cfg.General.Buffer
	if flagBuffer >= 0 {
		snapBuffer = flagBuffer
	}
	horizon := cfg.General.HorizonDays
	if flagHorizon > 0 {
		horizon = flagHorizon
	}
	sims := cfg.General.Simulations
	if flagSimulations > 0 {
		sims = flagSimulations
	}

	svc := daemon.New(daemon.Config{
		DBPath:       dbPath(cfg),
		Buffer:       snapBuffer,
		HorizonDays:  horizon,
		Simulations:  sims,
		Tolerance:    cfg.General.GetRiskTolerance(),
		Tuning:       cfg.Tuning,
		Interval:     flagWatchInterval,
		Addr:         flagWatchAddr,
		EventsBuffer: flagWatchEventsBuffer,
	})

	fmt.Printf("  cashcast monitor listening on http://%s\n", flagWatchAddr)
	fmt.Printf("  Re-forecasting every %s from %s\n", flagWatchInterval, dbPath(cfg))
	fmt.Printf("  Stop with: cashcast watch stop --pid-file %s\n", flagWatchPIDFile)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := svc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runWatchStatus(_ *cobra.Command, _ []string) error {
	pid, err := readPID(flagWatchPIDFile)
	if err != nil {
		fmt.Printf("  Monitor: not running (pid file not found)\n")
		return nil
	}

	alive := processAlive(pid)
	if !alive {
		fmt.Printf("  Monitor: stale pid file (pid %d not alive)\n", pid)
		return nil
	}

	addr := flagWatchAddr
	if st, err := readState(statePath(flagWatchPIDFile)); err == nil && st.Addr != "" {
		addr = st.Addr
	}

	fmt.Printf("  Monitor PID: %d\n", pid)
	fmt.Printf("  Address: http://%s\n", addr)

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get("http://" + addr + "/v1/status") //nolint:noctx // short status probe
	if err != nil {
		fmt.Printf("  API status: unreachable (%v)\n", err)
		return nil
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("  API status: HTTP %d\n", resp.StatusCode)
		return nil
	}

	var st daemon.Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		fmt.Printf("  API status: malformed response (%v)\n", err)
		return nil
	}

	if st.LastPollAt.IsZero() {
		fmt.Printf("  Last forecast: pending\n")
	} else {
		fmt.Printf("  Last forecast: %s\n", st.LastPollAt.Local().Format(time.RFC3339))
	}
	fmt.Printf("  Poll count: %d\n", st.PollCount)
	fmt.Printf("  Balance: %s\n", cli.FormatMoneyCompact(st.Summary.Balance))
	fmt.Printf("  Runway: %s\n", cli.FormatDays(st.Summary.RunwayDays, st.HorizonDays))
	fmt.Printf("  Risk score: %s\n", cli.FormatScore(st.Summary.RiskScore))
	fmt.Printf("  Safe to save: %s\n", cli.FormatMoneyCompact(st.Summary.SafeToSave))
	if st.LastError != "" {
		fmt.Printf("  Last error: %s\n", st.LastError)
	}
	return nil
}

func runWatchStop(_ *cobra.Command, _ []string) error {
	pid, err := readPID(flagWatchPIDFile)
	if err != nil {
		return errors.New("monitor is not running")
	}

	proc, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("find monitor process: %w", err)
	}
	if err := proc.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("signal monitor process: %w", err)
	}

	deadline := time.Now().Add(8 * time.Second)
	for time.Now().Before(deadline) {
		if !processAlive(pid) {
			_ = os.Remove(flagWatchPIDFile)
			_ = os.Remove(statePath(flagWatchPIDFile))
			fmt.Printf("  Stopped monitor (pid %d)\n", pid)
			return nil
		}
		time.Sleep(150 * time.Millisecond)
	}

	return fmt.Errorf("monitor (pid %d) did not exit in time", pid)
}

func filterDetachArg(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a == "--detach" || strings.HasPrefix(a, "--detach=") {
			continue
		}
		out = append(out, a)
	}
	return out
}

func ensureWatchNotRunning(pidFile string) error {
	pid, err := readPID(pidFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if processAlive(pid) {
		return fmt.Errorf("monitor already running (pid %d)", pid)
	}
	_ = os.Remove(pidFile)
	_ = os.Remove(statePath(pidFile))
	return nil
}

func writePID(path string, pid int) error {
	return os.WriteFile(path, []byte(strconv.Itoa(pid)+"\n"), 0o600)
}

func readPID(path string) (int, error) {
	//nolint:gosec // monitor pid path is configured by the local user
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	pidStr := strings.TrimSpace(string(data))
	pid, err := strconv.Atoi(pidStr)
	if err != nil || pid <= 0 {
		return 0, fmt.Errorf("invalid pid in %s", path)
	}
	return pid, nil
}

func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}

func statePath(pidFile string) string {
	return pidFile + ".json"
}

func writeState(path string, st watchRuntimeState) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o600)
}

func readState(path string) (watchRuntimeState, error) {
	var st watchRuntimeState
	//nolint:gosec // monitor state path is configured by the local user
	data, err := os.ReadFile(path)
	if err != nil {
		return st, err
	}
	if err := json.Unmarshal(data, &st); err != nil {
		return st, err
	}
	return st, nil
}
