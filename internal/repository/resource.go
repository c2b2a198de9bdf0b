package repository

import (
	"context"

	"github.com/Goutham227347/Ground-Water/internal/model"
)

// ResourceFilter narrows resource metric listings. Zero values mean "no filter".
type ResourceFilter struct {
	StationCode string
	AlertStatus string
	// AlertStatuses restricts to a set of statuses; used by the alerts feed.
	AlertStatuses []string
}

// ResourceRepository defines data access for computed resource metrics.
// Rows are append-only: each evaluation inserts a new record and "latest"
// reads pick the most recent one.
type ResourceRepository interface {
	// Create inserts a new metrics row and returns the stored record.
	Create(ctx context.Context, rm *model.ResourceMetrics) (*model.ResourceMetrics, error)

	// Latest returns the most recently created metrics row for a station.
	Latest(ctx context.Context, code string) (*model.ResourceMetrics, error)

	// List returns a paginated list of metrics rows matching the filter, newest
	// calculation first, with station names joined in.
	List(ctx context.Context, f ResourceFilter, pq PageQuery) (*PageResult[model.ResourceMetrics], error)

	// LatestPerStation returns the newest metrics row for each station that has
	// one, keyed by station_code.
	LatestPerStation(ctx context.Context) (map[string]model.ResourceMetrics, error)

	// AlertDistribution counts distinct stations per alert status.
	AlertDistribution(ctx context.Context) (map[model.AlertStatus]int, error)

	// DistinctStationCount returns how many stations have at least one metrics row.
	DistinctStationCount(ctx context.Context) (int, error)

	// CountByAlert returns how many metrics rows carry the status.
	CountByAlert(ctx context.Context, status model.AlertStatus) (int, error)

	// DeleteAll wipes every metrics row.
	DeleteAll(ctx context.Context) error
}
