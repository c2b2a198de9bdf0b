package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := NewMetrics(reg)
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}

	m.StationSynced(31)
	m.StationSynced(0)
	m.SyncFailed()
	m.ObserveSyncDuration(1500 * time.Millisecond)

	if got := testutil.ToFloat64(m.stationsSynced); got != 2 {
		t.Errorf("expected 2 stations synced, got %f", got)
	}
	if got := testutil.ToFloat64(m.recordsSynced); got != 31 {
		t.Errorf("expected 31 records synced, got %f", got)
	}
	if got := testutil.ToFloat64(m.syncFailures); got != 1 {
		t.Errorf("expected 1 sync failure, got %f", got)
	}
	if got := testutil.CollectAndCount(m.syncDuration); got == 0 {
		t.Error("expected duration histogram to be collected, got 0")
	}
	if got := testutil.ToFloat64(m.lastSync); got <= 0 {
		t.Errorf("expected last sync timestamp to be set, got %f", got)
	}
}

func TestNewMetrics_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewMetrics(reg); err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}

	// Same registry refuses a second registration of the same collectors.
	if _, err := NewMetrics(reg); err == nil {
		t.Error("expected duplicate registration to fail")
	}
}
