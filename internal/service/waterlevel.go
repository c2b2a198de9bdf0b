package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Goutham227347/Ground-Water/internal/model"
	"github.com/Goutham227347/Ground-Water/internal/repository"
)

// WaterLevelListResult is the service-level DTO for the paginated feed.
type WaterLevelListResult struct {
	Items []model.WaterLevel `json:"data"`
	Total int                `json:"total"`
}

// WaterLevelService defines the read use cases over recorded readings.
type WaterLevelService interface {
	// ListByStation returns readings for one station, newest first, bounded
	// by the optional time range. limit <= 0 falls back to 1000.
	ListByStation(ctx context.Context, code string, from, to *time.Time, limit int) ([]model.WaterLevel, error)

	// List returns the cross-station feed, newest first, with limit/offset
	// pagination and a total count.
	List(ctx context.Context, f repository.WaterLevelFilter, limit, offset int) (*WaterLevelListResult, error)
}

type waterLevelService struct {
	stations repository.StationRepository
	levels   repository.WaterLevelRepository
}

// NewWaterLevelService constructs a WaterLevelService.
func NewWaterLevelService(stations repository.StationRepository, levels repository.WaterLevelRepository) WaterLevelService {
	return &waterLevelService{stations: stations, levels: levels}
}

func (s *waterLevelService) ListByStation(ctx context.Context, code string, from, to *time.Time, limit int) ([]model.WaterLevel, error) {
	if code == "" {
		return nil, ErrCodeRequired
	}
	if _, err := s.stations.FindByCode(ctx, code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStationNotFound
		}
		return nil, err
	}

	if limit <= 0 {
		limit = 1000
	}
	return s.levels.ListByStation(ctx, code, repository.WaterLevelFilter{From: from, To: to}, limit)
}

func (s *waterLevelService) List(ctx context.Context, f repository.WaterLevelFilter, limit, offset int) (*WaterLevelListResult, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.levels.List(ctx, f, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &WaterLevelListResult{Items: res.Items, Total: res.Total}, nil
}
