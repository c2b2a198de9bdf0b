package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/Goutham227347/Ground-Water/internal/analysis"
	"github.com/Goutham227347/Ground-Water/internal/archive"
	"github.com/Goutham227347/Ground-Water/internal/cgwb"
	"github.com/Goutham227347/Ground-Water/internal/config"
	"github.com/Goutham227347/Ground-Water/internal/events"
	"github.com/Goutham227347/Ground-Water/internal/logger"
	"github.com/Goutham227347/Ground-Water/internal/model"
	"github.com/Goutham227347/Ground-Water/internal/observability"
	"github.com/Goutham227347/Ground-Water/internal/repository"
)

// SyncResult reports one station's sync outcome.
type SyncResult struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	StationCode string `json:"station_code"`
	Records     int    `json:"records_synced"`
}

// SyncAllResult aggregates a bulk sync run.
type SyncAllResult struct {
	Status             string    `json:"status"`
	Message            string    `json:"message"`
	TotalRecordsSynced int       `json:"total_records_synced"`
	SuccessfulStations int       `json:"successful_stations"`
	FailedStations     int       `json:"failed_stations"`
	Timestamp          time.Time `json:"timestamp"`
}

// ImportResult reports a station catalog import.
type ImportResult struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Imported int    `json:"imported"`
	Updated  int    `json:"updated"`
}

// SyncService pulls data from the CGWB portal into local storage and keeps
// each station's resource metrics current.
type SyncService interface {
	// SyncStation fetches the window ending now for one station, stores new
	// readings, and recomputes its metrics. periodDays <= 0 uses the
	// configured single-station default.
	SyncStation(ctx context.Context, code string, periodDays int) (*SyncResult, error)

	// SyncAll syncs every active station, isolating per-station failures.
	// periodDays <= 0 uses the configured bulk default.
	SyncAll(ctx context.Context, periodDays int) (*SyncAllResult, error)

	// SyncByStates syncs active stations in the named states.
	SyncByStates(ctx context.Context, states []string, periodDays int) (*SyncAllResult, error)

	// ImportStations fetches the station catalog, optionally narrowed by
	// state and district, and upserts every entry.
	ImportStations(ctx context.Context, state, district string) (*ImportResult, error)
}

// SyncDeps bundles everything a sync run touches.
type SyncDeps struct {
	Stations  repository.StationRepository
	Levels    repository.WaterLevelRepository
	Resources repository.ResourceRepository
	Client    cgwb.Client
	Archiver  archive.Archiver
	Publisher events.Publisher
	Metrics   *observability.Metrics
	Clock     clockwork.Clock
	Config    config.SyncConfig
}

type syncService struct {
	stations  repository.StationRepository
	levels    repository.WaterLevelRepository
	resources repository.ResourceRepository
	client    cgwb.Client
	archiver  archive.Archiver
	publisher events.Publisher
	metrics   *observability.Metrics
	clock     clockwork.Clock
	cfg       config.SyncConfig
}

// NewSyncService constructs a SyncService.
func NewSyncService(d SyncDeps) SyncService {
	return &syncService{
		stations:  d.Stations,
		levels:    d.Levels,
		resources: d.Resources,
		client:    d.Client,
		archiver:  d.Archiver,
		publisher: d.Publisher,
		metrics:   d.Metrics,
		clock:     d.Clock,
		cfg:       d.Config,
	}
}

func (s *syncService) SyncStation(ctx context.Context, code string, periodDays int) (*SyncResult, error) {
	if code == "" {
		return nil, ErrCodeRequired
	}
	st, err := s.stations.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStationNotFound
		}
		return nil, err
	}
	if periodDays <= 0 {
		periodDays = s.cfg.PeriodDays
	}
	return s.syncOne(ctx, st, periodDays)
}

func (s *syncService) SyncAll(ctx context.Context, periodDays int) (*SyncAllResult, error) {
	if periodDays <= 0 {
		periodDays = s.cfg.BulkPeriodDays
	}
	active := true
	stations, err := s.stations.List(ctx, repository.StationFilter{IsActive: &active})
	if err != nil {
		return nil, err
	}
	return s.syncMany(ctx, stations, periodDays), nil
}

func (s *syncService) SyncByStates(ctx context.Context, states []string, periodDays int) (*SyncAllResult, error) {
	if periodDays <= 0 {
		periodDays = s.cfg.PeriodDays
	}
	active := true
	stations, err := s.stations.List(ctx, repository.StationFilter{IsActive: &active, States: states})
	if err != nil {
		return nil, err
	}
	return s.syncMany(ctx, stations, periodDays), nil
}

func (s *syncService) ImportStations(ctx context.Context, state, district string) (*ImportResult, error) {
	entries, err := s.client.FetchStations(ctx, state, district)
	if err != nil {
		return nil, fmt.Errorf("fetch stations: %w", err)
	}

	if _, err := s.archiver.SaveStations(ctx, entries, s.clock.Now()); err != nil {
		logger.Log.Warn("archiving station catalog failed", zap.Error(err))
	}

	imported, updated := 0, 0
	for _, e := range entries {
		st := &model.Station{
			StationCode: e.ResolvedCode(),
			Name:        e.Name,
			State:       e.State,
			District:    e.District,
			Block:       e.Block,
			Latitude:    e.Latitude,
			Longitude:   e.Longitude,
			AquiferType: e.AquiferType,
			WellDepth:   e.WellDepth,
			Elevation:   e.Elevation,
			IsActive:    e.Active(),
		}
		if st.Name == "" {
			st.Name = st.StationCode
		}
		_, created, err := s.stations.Upsert(ctx, st)
		if err != nil {
			return nil, fmt.Errorf("upsert station %s: %w", st.StationCode, err)
		}
		if created {
			imported++
		} else {
			updated++
		}
	}

	logger.Log.Info("station catalog imported",
		zap.Int("imported", imported), zap.Int("updated", updated))

	return &ImportResult{
		Status:   "success",
		Message:  fmt.Sprintf("Imported %d new stations, updated %d", imported, updated),
		Imported: imported,
		Updated:  updated,
	}, nil
}

// syncMany runs one window over each station. Failures are isolated so one
// bad station cannot sink the run; a station with no data counts as failed.
func (s *syncService) syncMany(ctx context.Context, stations []model.Station, periodDays int) *SyncAllResult {
	var totalRecords, succeeded, failed int
	for i := range stations {
		res, err := s.syncOne(ctx, &stations[i], periodDays)
		if err != nil {
			logger.Log.Error("station sync failed",
				zap.String("station_code", stations[i].StationCode), zap.Error(err))
			failed++
			continue
		}
		if res.Status != "success" {
			failed++
			continue
		}
		totalRecords += res.Records
		succeeded++
	}

	return &SyncAllResult{
		Status:             "success",
		Message:            fmt.Sprintf("Synced %d out of %d stations", succeeded, len(stations)),
		TotalRecordsSynced: totalRecords,
		SuccessfulStations: succeeded,
		FailedStations:     failed,
		Timestamp:          s.clock.Now(),
	}
}

func (s *syncService) syncOne(ctx context.Context, st *model.Station, periodDays int) (*SyncResult, error) {
	started := s.clock.Now()
	from := started.AddDate(0, 0, -periodDays)

	readings, err := s.client.FetchWaterLevels(ctx, st.StationCode, from, started)
	if err != nil {
		s.metrics.SyncFailed()
		return nil, fmt.Errorf("fetch water levels: %w", err)
	}
	if len(readings) == 0 {
		s.metrics.SyncFailed()
		return &SyncResult{
			Status:      "warning",
			Message:     "No data available from API",
			StationCode: st.StationCode,
		}, nil
	}

	if _, err := s.archiver.SaveWaterLevels(ctx, st.StationCode, readings, started); err != nil {
		logger.Log.Warn("archiving sync payload failed",
			zap.String("station_code", st.StationCode), zap.Error(err))
	}

	count := 0
	for _, r := range readings {
		wl := &model.WaterLevel{
			StationCode: st.StationCode,
			Timestamp:   r.ResolvedTime(started),
			Depth:       r.ResolvedDepth(),
			DataSource:  model.DataSourceCGWB,
		}
		if st.Elevation != nil {
			elev := *st.Elevation - wl.Depth
			wl.WaterLevelElevation = &elev
		}
		_, created, err := s.levels.Upsert(ctx, wl)
		if err != nil {
			s.metrics.SyncFailed()
			return nil, fmt.Errorf("store reading: %w", err)
		}
		if created {
			count++
		}
	}

	if err := s.stations.TouchLastDataUpdate(ctx, st.StationCode, started); err != nil {
		return nil, fmt.Errorf("update last data timestamp: %w", err)
	}

	rm, err := s.recompute(ctx, st)
	if err != nil {
		s.metrics.SyncFailed()
		return nil, err
	}
	s.maybePublishAlert(ctx, rm)

	s.metrics.StationSynced(count)
	s.metrics.ObserveSyncDuration(s.clock.Since(started))

	logger.Log.Info("station sync complete",
		zap.String("station_code", st.StationCode),
		zap.Int("new_records", count),
		zap.String("alert_status", string(rm.AlertStatus)))

	return &SyncResult{
		Status:      "success",
		Message:     fmt.Sprintf("Synced %d water level records", count),
		StationCode: st.StationCode,
		Records:     count,
	}, nil
}

// recompute evaluates the standard window and appends a fresh metrics row.
func (s *syncService) recompute(ctx context.Context, st *model.Station) (*model.ResourceMetrics, error) {
	end := s.clock.Now()
	start := end.AddDate(0, 0, -metricsWindowDays)
	readings, err := s.levels.ListRange(ctx, st.StationCode, start, end)
	if err != nil {
		return nil, fmt.Errorf("load evaluation window: %w", err)
	}
	rm, err := s.resources.Create(ctx, analysis.Evaluate(st, readings, start, end))
	if err != nil {
		return nil, fmt.Errorf("store metrics: %w", err)
	}
	return rm, nil
}

// maybePublishAlert emits an event for critical and warning computations.
// Publish failures are logged, never surfaced; eventing must not fail a sync.
func (s *syncService) maybePublishAlert(ctx context.Context, rm *model.ResourceMetrics) {
	if rm.AlertStatus != model.AlertCritical && rm.AlertStatus != model.AlertWarning {
		return
	}
	ev := events.AlertEvent{
		StationCode:       rm.StationCode,
		StationName:       rm.StationName,
		AlertStatus:       rm.AlertStatus,
		StoragePercentage: rm.StoragePercentage,
		Trend:             rm.Trend,
		CalculationDate:   rm.CalculationDate,
		EmittedAt:         s.clock.Now(),
	}
	if err := s.publisher.PublishAlert(ctx, ev); err != nil {
		logger.Log.Warn("alert event publish failed",
			zap.String("station_code", rm.StationCode), zap.Error(err))
	}
}
