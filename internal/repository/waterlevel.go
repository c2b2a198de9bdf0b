package repository

import (
	"context"
	"time"

	"github.com/Goutham227347/Ground-Water/internal/model"
)

// WaterLevelFilter narrows water level listings. Nil time bounds mean unbounded.
type WaterLevelFilter struct {
	StationCode string
	From        *time.Time
	To          *time.Time
}

// WaterLevelRepository defines data access for water level readings.
type WaterLevelRepository interface {
	// Upsert inserts a reading, or updates depth/elevation/source when a row
	// for the same (station_code, timestamp) already exists. The second return
	// value reports whether a new row was created.
	Upsert(ctx context.Context, wl *model.WaterLevel) (*model.WaterLevel, bool, error)

	// ListByStation returns up to limit readings for one station, newest first,
	// optionally bounded by the filter's time range.
	ListByStation(ctx context.Context, code string, f WaterLevelFilter, limit int) ([]model.WaterLevel, error)

	// List returns a paginated feed of readings across stations, newest first,
	// with station names joined in.
	List(ctx context.Context, f WaterLevelFilter, pq PageQuery) (*PageResult[model.WaterLevel], error)

	// ListRange returns every reading for a station inside [from, to], oldest
	// first. This is the analysis window ordering.
	ListRange(ctx context.Context, code string, from, to time.Time) ([]model.WaterLevel, error)

	// LatestPerStation returns the newest reading for each station that has one,
	// keyed by station_code.
	LatestPerStation(ctx context.Context) (map[string]model.WaterLevel, error)

	// DeleteAll wipes every reading.
	DeleteAll(ctx context.Context) error
}
