package repository

import (
	"context"
	"time"

	"github.com/Goutham227347/Ground-Water/internal/model"
)

// StationFilter narrows station listings. Zero values mean "no filter".
type StationFilter struct {
	State       string
	District    string
	IsActive    *bool
	AlertStatus string
	// States restricts to a set of state names; used by the state-scoped sync.
	States []string
}

// StationStats is the aggregate snapshot behind the statistics endpoint.
type StationStats struct {
	Total  int
	Active int
	States int
}

// StationRepository defines data access for DWLR stations using SQL queries only.
// No business logic here, strictly persistence operations.
type StationRepository interface {
	// Upsert inserts a station or updates its mutable attributes when the
	// station_code already exists. The second return value reports whether a
	// new row was created.
	Upsert(ctx context.Context, st *model.Station) (*model.Station, bool, error)

	// FindByCode returns a station by its station_code.
	FindByCode(ctx context.Context, code string) (*model.Station, error)

	// List returns stations matching the filter, ordered by station_code.
	List(ctx context.Context, f StationFilter) ([]model.Station, error)

	// Stats returns total/active station counts and the number of distinct states.
	Stats(ctx context.Context) (*StationStats, error)

	// TouchLastDataUpdate sets last_data_update (and updated_at) for a station.
	TouchLastDataUpdate(ctx context.Context, code string, ts time.Time) error

	// DeleteAll wipes every station. Cascades to water levels and metrics.
	DeleteAll(ctx context.Context) error
}
