package daemon

import (
	"math"
	"testing"
	"time"
)

func TestDiffSnapshots(t *testing.T) {
	prev := Snapshot{
		Balance:      12350,
		RunwayDays:   45,
		RiskScore:    30,
		AlertCount:   2,
		AnomalyCount: 1,
	}
	curr := Snapshot{
		Balance:      11850,
		RunwayDays:   41,
		RiskScore:    45,
		AlertCount:   3,
		AnomalyCount: 1,
	}

	delta := diffSnapshots(prev, curr)
	if math.Abs(delta.Balance-(-500)) > 1e-9 {
		t.Fatalf("Balance delta = %.2f, want -500", delta.Balance)
	}
	if delta.RunwayDays != -4 {
		t.Fatalf("RunwayDays delta = %d, want -4", delta.RunwayDays)
	}
	if math.Abs(delta.RiskScore-15) > 1e-9 {
		t.Fatalf("RiskScore delta = %.2f, want 15", delta.RiskScore)
	}
	if delta.Alerts != 1 {
		t.Fatalf("Alerts delta = %d, want 1", delta.Alerts)
	}
	if delta.isZero() {
		t.Fatal("delta unexpectedly reported as zero")
	}

	if !diffSnapshots(curr, curr).isZero() {
		t.Fatal("identical snapshots should produce a zero delta")
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{
		DBPath:       "ledger.db",
		Interval:     10 * time.Second,
		EventsBuffer: 2,
	})

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	s := New(Config{DBPath: "ledger.db"})

	if s.cfg.Interval < 2*time.Second {
		t.Errorf("Interval = %v, want a sane default", s.cfg.Interval)
	}
	if s.cfg.EventsBuffer < 1 {
		t.Errorf("EventsBuffer = %d, want >= 1", s.cfg.EventsBuffer)
	}
	if s.cfg.Addr == "" {
		t.Error("Addr is empty, want a default listen address")
	}
}
