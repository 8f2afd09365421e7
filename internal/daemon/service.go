// Package daemon provides the long-running background forecast monitor.
// It re-runs the engine on an interval and serves the latest result over
// a local HTTP API.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/theirongolddev/cashcast/internal/config"
	"github.com/theirongolddev/cashcast/internal/engine"
	"github.com/theirongolddev/cashcast/internal/model"
	"github.com/theirongolddev/cashcast/internal/store"
)

// Config controls the daemon runtime behavior.
type Config struct {
	DBPath       string
	Buffer       float64
	HorizonDays  int
	Simulations  int
	Tolerance    model.RiskTolerance
	Tuning       config.Tuning
	Interval     time.Duration
	Addr         string
	EventsBuffer int
}

// Snapshot is a compact forecast state for status/event payloads.
type Snapshot struct {
	At           time.Time `json:"at"`
	Balance      float64   `json:"balance"`
	RunwayDays   int       `json:"runway_days"`
	RunwayTrend  string    `json:"runway_trend"`
	RiskScore    float64   `json:"risk_score"`
	AlertCount   int       `json:"alert_count"`
	AnomalyCount int       `json:"anomaly_count"`
	SafeToSave   float64   `json:"safe_to_save"`
	Confidence   float64   `json:"confidence"`
	Transactions int       `json:"transactions"`
}

// Delta captures snapshot deltas between polls.
type Delta struct {
	Balance    float64 `json:"balance"`
	RunwayDays int     `json:"runway_days"`
	RiskScore  float64 `json:"risk_score"`
	Alerts     int     `json:"alerts"`
	Anomalies  int     `json:"anomalies"`
}

func (d Delta) isZero() bool {
	return d.Balance == 0 &&
		d.RunwayDays == 0 &&
		d.RiskScore == 0 &&
		d.Alerts == 0 &&
		d.Anomalies == 0
}

// Event is emitted whenever the forecast snapshot changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	DBPath          string    `json:"db_path"`
	HorizonDays     int       `json:"horizon_days"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg Config

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service with the provided config.
func New(cfg Config) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 30 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8377"
	}

	return &Service{
		cfg:       cfg,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce()
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

func (s *Service) pollOnce() {
	snap, err := s.runEngine()
	now := time.Now()
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = now
		s.pollCount++
		s.mu.Unlock()
		log.Printf("cashcast daemon poll error: %v", err)
		return
	}

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      "snapshot",
			Timestamp: now,
			Snapshot:  snap,
		}
		publish = true
	} else {
		delta := diffSnapshots(prev, snap)
		if !delta.isZero() {
			s.nextEventID++
			ev = Event{
				ID:        s.nextEventID,
				Type:      "forecast_delta",
				Timestamp: now,
				Snapshot:  snap,
				Delta:     delta,
			}
			publish = true
		}
	}
	s.mu.Unlock()

	if publish {
		s.publishEvent(ev)
	}
}

func (s *Service) runEngine() (Snapshot, error) {
	db, err := store.Open(s.cfg.DBPath)
	if err != nil {
		return Snapshot{}, fmt.Errorf("opening ledger: %w", err)
	}
	defer func() { _ = db.Close() }()

	snap, err := db.LoadSnapshot()
	if err != nil {
		return Snapshot{}, err
	}
	snap.Buffer = s.cfg.Buffer
	snap.HorizonDays = s.cfg.HorizonDays
	snap.Simulations = s.cfg.Simulations
	snap.RiskTolerance = s.cfg.Tolerance

	res := engine.Run(snap, s.cfg.Tuning)
	return snapshotFromResult(snap, res, time.Now()), nil
}

func snapshotFromResult(snap model.Snapshot, res model.Result, at time.Time) Snapshot {
	return Snapshot{
		At:           at,
		Balance:      model.TotalBalance(snap.Accounts),
		RunwayDays:   res.Runway.Days,
		RunwayTrend:  string(res.Runway.Trend),
		RiskScore:    float64(res.RiskScore),
		AlertCount:   len(res.Risks),
		AnomalyCount: len(res.Anomalies),
		SafeToSave:   res.SafeToSave.Amount,
		Confidence:   res.Confidence,
		Transactions: len(snap.Transactions),
	}
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		Balance:    curr.Balance - prev.Balance,
		RunwayDays: curr.RunwayDays - prev.RunwayDays,
		RiskScore:  curr.RiskScore - prev.RiskScore,
		Alerts:     curr.AlertCount - prev.AlertCount,
		Anomalies:  curr.AnomalyCount - prev.AnomalyCount,
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		DBPath:          s.cfg.DBPath,
		HorizonDays:     s.cfg.HorizonDays,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      "snapshot",
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
