package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Goutham227347/Ground-Water/internal/model"
	"github.com/Goutham227347/Ground-Water/internal/repository"
)

var (
	ErrCodeRequired    = errors.New("station code is required")
	ErrStationNotFound = errors.New("station not found")
)

// Station detail embeds at most this many recent readings; year-long series
// go through the water_levels endpoint instead.
const detailReadingsCap = 100

// StationListItem is the lightweight list row: identity plus the latest
// observation state. AlertStatus defaults to normal for stations that were
// never evaluated.
type StationListItem struct {
	StationCode string            `json:"station_code"`
	Name        string            `json:"name"`
	State       string            `json:"state"`
	District    string            `json:"district"`
	Latitude    float64           `json:"latitude"`
	Longitude   float64           `json:"longitude"`
	IsActive    bool              `json:"is_active"`
	LatestDepth *float64          `json:"latest_depth"`
	AlertStatus model.AlertStatus `json:"alert_status"`
}

// LatestWaterLevel is the compact latest-reading view embedded in a detail.
type LatestWaterLevel struct {
	Timestamp           time.Time `json:"timestamp"`
	Depth               float64   `json:"depth"`
	WaterLevelElevation *float64  `json:"water_level_elevation"`
}

// ResourceStatus is the compact resource view embedded in a detail.
type ResourceStatus struct {
	AlertStatus       model.AlertStatus `json:"alert_status"`
	StoragePercentage *float64          `json:"storage_percentage"`
	Trend             *model.Trend      `json:"trend"`
	TrendMagnitude    *float64          `json:"trend_magnitude"`
	CalculationDate   model.Date        `json:"calculation_date"`
}

// StationDetail is the full station view with recent readings embedded,
// newest first.
type StationDetail struct {
	model.Station
	WaterLevels      []model.WaterLevel `json:"water_levels"`
	LatestWaterLevel *LatestWaterLevel  `json:"latest_water_level"`
	ResourceStatus   *ResourceStatus    `json:"resource_status"`
}

// StationStatistics is the catalog-wide snapshot behind the statistics
// endpoint. AlertDistribution always carries all four statuses.
type StationStatistics struct {
	TotalStations     int                       `json:"total_stations"`
	ActiveStations    int                       `json:"active_stations"`
	StatesCovered     int                       `json:"states_covered"`
	AlertDistribution map[model.AlertStatus]int `json:"alert_distribution"`
}

// Insight is one rule-based decision support entry for planners.
type Insight struct {
	Priority string `json:"priority"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Action   string `json:"action"`
}

// StationService defines the read use cases over the station catalog.
type StationService interface {
	// List returns stations matching the filter, each annotated with its
	// latest measured depth and latest alert status.
	List(ctx context.Context, f repository.StationFilter) ([]StationListItem, error)

	// Get returns the full station view: recent readings, the latest
	// reading, and the latest resource status.
	Get(ctx context.Context, code string) (*StationDetail, error)

	// Statistics returns counts across the whole catalog.
	Statistics(ctx context.Context) (*StationStatistics, error)

	// Insights derives decision support entries from current alert counts.
	Insights(ctx context.Context) ([]Insight, error)
}

type stationService struct {
	stations  repository.StationRepository
	levels    repository.WaterLevelRepository
	resources repository.ResourceRepository
}

// NewStationService constructs a StationService.
func NewStationService(stations repository.StationRepository, levels repository.WaterLevelRepository, resources repository.ResourceRepository) StationService {
	return &stationService{stations: stations, levels: levels, resources: resources}
}

func (s *stationService) List(ctx context.Context, f repository.StationFilter) ([]StationListItem, error) {
	stations, err := s.stations.List(ctx, f)
	if err != nil {
		return nil, err
	}

	latestLevels, err := s.levels.LatestPerStation(ctx)
	if err != nil {
		return nil, err
	}
	latestResources, err := s.resources.LatestPerStation(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]StationListItem, 0, len(stations))
	for _, st := range stations {
		item := StationListItem{
			StationCode: st.StationCode,
			Name:        st.Name,
			State:       st.State,
			District:    st.District,
			Latitude:    st.Latitude,
			Longitude:   st.Longitude,
			IsActive:    st.IsActive,
			AlertStatus: model.AlertNormal,
		}
		if wl, ok := latestLevels[st.StationCode]; ok {
			depth := wl.Depth
			item.LatestDepth = &depth
		}
		if rm, ok := latestResources[st.StationCode]; ok {
			item.AlertStatus = rm.AlertStatus
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *stationService) Get(ctx context.Context, code string) (*StationDetail, error) {
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

	readings, err := s.levels.ListByStation(ctx, code, repository.WaterLevelFilter{}, detailReadingsCap)
	if err != nil {
		return nil, err
	}

	detail := &StationDetail{Station: *st, WaterLevels: readings}
	if len(readings) > 0 {
		detail.LatestWaterLevel = &LatestWaterLevel{
			Timestamp:           readings[0].Timestamp,
			Depth:               readings[0].Depth,
			WaterLevelElevation: readings[0].WaterLevelElevation,
		}
	}

	rm, err := s.resources.Latest(ctx, code)
	switch {
	case err == nil:
		detail.ResourceStatus = &ResourceStatus{
			AlertStatus:       rm.AlertStatus,
			StoragePercentage: rm.StoragePercentage,
			Trend:             rm.Trend,
			TrendMagnitude:    rm.TrendMagnitude,
			CalculationDate:   rm.CalculationDate,
		}
	case !errors.Is(err, sql.ErrNoRows):
		return nil, err
	}

	return detail, nil
}

func (s *stationService) Statistics(ctx context.Context) (*StationStatistics, error) {
	stats, err := s.stations.Stats(ctx)
	if err != nil {
		return nil, err
	}
	dist, err := s.resources.AlertDistribution(ctx)
	if err != nil {
		return nil, err
	}

	full := make(map[model.AlertStatus]int, len(model.AllAlertStatuses))
	for _, status := range model.AllAlertStatuses {
		full[status] = dist[status]
	}

	return &StationStatistics{
		TotalStations:     stats.Total,
		ActiveStations:    stats.Active,
		StatesCovered:     stats.States,
		AlertDistribution: full,
	}, nil
}

// Insights mirrors the decision rules planners rely on: critical and warning
// row counts first, then coverage gaps, then the all-clear.
func (s *stationService) Insights(ctx context.Context) ([]Insight, error) {
	critical, err := s.resources.CountByAlert(ctx, model.AlertCritical)
	if err != nil {
		return nil, err
	}
	warning, err := s.resources.CountByAlert(ctx, model.AlertWarning)
	if err != nil {
		return nil, err
	}
	stats, err := s.stations.Stats(ctx)
	if err != nil {
		return nil, err
	}
	evaluated, err := s.resources.DistinctStationCount(ctx)
	if err != nil {
		return nil, err
	}

	insights := make([]Insight, 0, 2)
	if critical > 0 {
		insights = append(insights, Insight{
			Priority: "high",
			Title:    "Critical groundwater stress",
			Message:  fmt.Sprintf("%d station(s) in critical status. Recommend urgent assessment and demand management in affected areas.", critical),
			Action:   "Prioritize recharge augmentation and regulated extraction in critical zones.",
		})
	}
	if warning > 0 {
		insights = append(insights, Insight{
			Priority: "medium",
			Title:    "Declining groundwater levels",
			Message:  fmt.Sprintf("%d station(s) show warning. Monitor trends and consider seasonal rationing or recharge measures.", warning),
			Action:   "Review extraction patterns and promote rainwater harvesting in warning zones.",
		})
	}
	if stats.Active > 0 && evaluated == 0 {
		insights = append(insights, Insight{
			Priority: "info",
			Title:    "Resource evaluation pending",
			Message:  "Stations exist but resource metrics are not yet computed. Run sync or ensure water level data is available.",
			Action:   "Trigger a station sync or run the seed command to load demo data.",
		})
	}
	if stats.Active >= 3 && critical+warning == 0 {
		insights = append(insights, Insight{
			Priority: "low",
			Title:    "Stable resource picture",
			Message:  "No critical or warning alerts. Continue routine monitoring and maintain recharge initiatives.",
			Action:   "Sustain current management; use trends to plan long-term interventions.",
		})
	}
	if len(insights) == 0 {
		insights = append(insights, Insight{
			Priority: "info",
			Title:    "Add DWLR data",
			Message:  "Add stations and water level data to enable real-time groundwater evaluation and insights.",
			Action:   "Run the seed command to load demo stations and readings.",
		})
	}
	return insights, nil
}
