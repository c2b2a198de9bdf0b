// Package observability exposes prometheus instrumentation for the sync
// pipeline.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks sync activity: stations and readings pulled in, failures,
// run durations, and when data last landed.
type Metrics struct {
	stationsSynced prometheus.Counter
	recordsSynced  prometheus.Counter
	syncFailures   prometheus.Counter
	syncDuration   prometheus.Histogram
	lastSync       prometheus.Gauge
}

// NewMetrics creates the sync metrics and registers them on reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		stationsSynced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "groundwater_stations_synced_total",
			Help: "Total number of stations synced successfully.",
		}),
		recordsSynced: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "groundwater_records_synced_total",
			Help: "Total number of water level readings stored by sync runs.",
		}),
		syncFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "groundwater_sync_failures_total",
			Help: "Total number of station syncs that failed.",
		}),
		syncDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "groundwater_sync_duration_seconds",
			Help:    "Duration of sync runs in seconds.",
			Buckets: prometheus.DefBuckets,
		}),
		lastSync: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "groundwater_last_sync_timestamp_seconds",
			Help: "Unix timestamp of the most recent successful station sync.",
		}),
	}

	collectors := []prometheus.Collector{
		m.stationsSynced,
		m.recordsSynced,
		m.syncFailures,
		m.syncDuration,
		m.lastSync,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// StationSynced records one station completing a sync and how many readings
// were stored for it.
func (m *Metrics) StationSynced(records int) {
	m.stationsSynced.Inc()
	m.recordsSynced.Add(float64(records))
	m.lastSync.SetToCurrentTime()
}

// SyncFailed counts a station sync that did not complete.
func (m *Metrics) SyncFailed() {
	m.syncFailures.Inc()
}

// ObserveSyncDuration records the wall time of one sync run.
func (m *Metrics) ObserveSyncDuration(d time.Duration) {
	m.syncDuration.Observe(d.Seconds())
}
