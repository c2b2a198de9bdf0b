package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jonboulle/clockwork"

	"github.com/Goutham227347/Ground-Water/internal/analysis"
	"github.com/Goutham227347/Ground-Water/internal/model"
	"github.com/Goutham227347/Ground-Water/internal/repository"
)

// metricsWindowDays is the evaluation window for resource metrics. Fetch
// windows vary by sync path; the evaluation always looks back a year.
const metricsWindowDays = 365

// ResourceListResult is the service-level DTO for paginated metrics rows.
type ResourceListResult struct {
	Items []model.ResourceMetrics `json:"data"`
	Total int                     `json:"total"`
}

// ResourceService defines the use cases over computed resource metrics.
type ResourceService interface {
	// LatestOrCompute returns the latest metrics row for a station. When none
	// exists, or the last calculation date is before today, it evaluates the
	// standard window, persists a fresh row, and returns that.
	LatestOrCompute(ctx context.Context, code string) (*model.ResourceMetrics, error)

	// List returns metrics rows matching the filter, newest calculation first.
	List(ctx context.Context, f repository.ResourceFilter, limit, offset int) (*ResourceListResult, error)

	// Alerts returns up to 1000 rows with status critical or warning,
	// newest calculation first.
	Alerts(ctx context.Context) ([]model.ResourceMetrics, error)
}

type resourceService struct {
	stations  repository.StationRepository
	levels    repository.WaterLevelRepository
	resources repository.ResourceRepository
	clock     clockwork.Clock
}

// NewResourceService constructs a ResourceService.
func NewResourceService(stations repository.StationRepository, levels repository.WaterLevelRepository, resources repository.ResourceRepository, clock clockwork.Clock) ResourceService {
	return &resourceService{stations: stations, levels: levels, resources: resources, clock: clock}
}

func (s *resourceService) LatestOrCompute(ctx context.Context, code string) (*model.ResourceMetrics, error) {
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

	today := model.NewDate(s.clock.Now())
	latest, err := s.resources.Latest(ctx, code)
	switch {
	case err == nil && !latest.CalculationDate.Before(today):
		return latest, nil
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return nil, err
	}

	end := s.clock.Now()
	start := end.AddDate(0, 0, -metricsWindowDays)
	readings, err := s.levels.ListRange(ctx, code, start, end)
	if err != nil {
		return nil, err
	}
	return s.resources.Create(ctx, analysis.Evaluate(st, readings, start, end))
}

func (s *resourceService) List(ctx context.Context, f repository.ResourceFilter, limit, offset int) (*ResourceListResult, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.resources.List(ctx, f, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &ResourceListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *resourceService) Alerts(ctx context.Context) ([]model.ResourceMetrics, error) {
	res, err := s.resources.List(ctx, repository.ResourceFilter{
		AlertStatuses: []string{string(model.AlertCritical), string(model.AlertWarning)},
	}, repository.PageQuery{Limit: 1000, Offset: 0})
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}
