package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Goutham227347/Ground-Water/internal/model"
	"github.com/Goutham227347/Ground-Water/internal/repository"
)

// WaterLevelPostgres is a PostgreSQL implementation of repository.WaterLevelRepository.
type WaterLevelPostgres struct {
	db *sql.DB
}

// NewWaterLevelPostgres creates a new WaterLevelPostgres repository.
func NewWaterLevelPostgres(db *sql.DB) *WaterLevelPostgres {
	return &WaterLevelPostgres{db: db}
}

var _ repository.WaterLevelRepository = (*WaterLevelPostgres)(nil)

func scanWaterLevel(row rowScanner, withName bool, extra ...any) (*model.WaterLevel, error) {
	var (
		wl        model.WaterLevel
		elevation sql.NullFloat64
	)
	dest := []any{&wl.ID, &wl.StationCode}
	if withName {
		dest = append(dest, &wl.StationName)
	}
	dest = append(dest, &wl.Timestamp, &wl.Depth, &elevation, &wl.DataSource, &wl.CreatedAt)
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if elevation.Valid {
		wl.WaterLevelElevation = &elevation.Float64
	}
	return &wl, nil
}

// Upsert inserts a reading or refreshes it when the (station_code, timestamp)
// pair exists. (xmax = 0) distinguishes a fresh insert from a conflict update.
func (r *WaterLevelPostgres) Upsert(ctx context.Context, wl *model.WaterLevel) (*model.WaterLevel, bool, error) {
	const q = `
		INSERT INTO water_levels (station_code, timestamp, depth, water_level_elevation, data_source)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (station_code, timestamp) DO UPDATE SET
			depth                 = EXCLUDED.depth,
			water_level_elevation = EXCLUDED.water_level_elevation,
			data_source           = EXCLUDED.data_source
		RETURNING id, station_code, timestamp, depth, water_level_elevation, data_source, created_at,
			(xmax = 0) AS inserted
	`
	row := r.db.QueryRowContext(ctx, q,
		wl.StationCode,
		wl.Timestamp,
		wl.Depth,
		wl.WaterLevelElevation,
		wl.DataSource,
	)
	var inserted bool
	out, err := scanWaterLevel(row, false, &inserted)
	if err != nil {
		return nil, false, err
	}
	return out, inserted, nil
}

// ListByStation returns up to limit readings for one station, newest first.
func (r *WaterLevelPostgres) ListByStation(ctx context.Context, code string, f repository.WaterLevelFilter, limit int) ([]model.WaterLevel, error) {
	q := `
		SELECT w.id, w.station_code, s.name, w.timestamp, w.depth, w.water_level_elevation, w.data_source, w.created_at
		FROM water_levels w
		JOIN dwlr_stations s ON s.station_code = w.station_code
		WHERE w.station_code = $1
	`
	args := []any{code}
	if f.From != nil {
		args = append(args, *f.From)
		q += fmt.Sprintf(" AND w.timestamp >= $%d", len(args))
	}
	if f.To != nil {
		args = append(args, *f.To)
		q += fmt.Sprintf(" AND w.timestamp <= $%d", len(args))
	}
	args = append(args, limit)
	q += fmt.Sprintf(" ORDER BY w.timestamp DESC LIMIT $%d", len(args))

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.WaterLevel, 0)
	for rows.Next() {
		wl, err := scanWaterLevel(rows, true)
		if err != nil {
			return nil, err
		}
		items = append(items, *wl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// List returns the cross-station feed of readings, newest first, using
// LIMIT/OFFSET pagination and a total count over the same filter.
func (r *WaterLevelPostgres) List(ctx context.Context, f repository.WaterLevelFilter, pq repository.PageQuery) (*repository.PageResult[model.WaterLevel], error) {
	var (
		conds []string
		args  []any
	)
	if f.StationCode != "" {
		args = append(args, f.StationCode)
		conds = append(conds, fmt.Sprintf("w.station_code = $%d", len(args)))
	}
	if f.From != nil {
		args = append(args, *f.From)
		conds = append(conds, fmt.Sprintf("w.timestamp >= $%d", len(args)))
	}
	if f.To != nil {
		args = append(args, *f.To)
		conds = append(conds, fmt.Sprintf("w.timestamp <= $%d", len(args)))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	// Count total rows
	qCount := `SELECT COUNT(*) FROM water_levels w` + where
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, args...).Scan(&total); err != nil {
		return nil, err
	}

	// Fetch page
	qList := `
		SELECT w.id, w.station_code, s.name, w.timestamp, w.depth, w.water_level_elevation, w.data_source, w.created_at
		FROM water_levels w
		JOIN dwlr_stations s ON s.station_code = w.station_code
	` + where
	args = append(args, pq.Limit)
	qList += fmt.Sprintf(" ORDER BY w.timestamp DESC, w.id DESC LIMIT $%d", len(args))
	args = append(args, pq.Offset)
	qList += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.QueryContext(ctx, qList, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.WaterLevel, 0)
	for rows.Next() {
		wl, err := scanWaterLevel(rows, true)
		if err != nil {
			return nil, err
		}
		items = append(items, *wl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.WaterLevel]{
		Items: items,
		Total: total,
	}, nil
}

// ListRange returns every reading for a station inside [from, to], oldest
// first. Analysis depends on this ordering.
func (r *WaterLevelPostgres) ListRange(ctx context.Context, code string, from, to time.Time) ([]model.WaterLevel, error) {
	const q = `
		SELECT id, station_code, timestamp, depth, water_level_elevation, data_source, created_at
		FROM water_levels
		WHERE station_code = $1 AND timestamp >= $2 AND timestamp <= $3
		ORDER BY timestamp ASC
	`
	rows, err := r.db.QueryContext(ctx, q, code, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.WaterLevel, 0)
	for rows.Next() {
		wl, err := scanWaterLevel(rows, false)
		if err != nil {
			return nil, err
		}
		items = append(items, *wl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// LatestPerStation returns the newest reading per station via DISTINCT ON.
func (r *WaterLevelPostgres) LatestPerStation(ctx context.Context) (map[string]model.WaterLevel, error) {
	const q = `
		SELECT DISTINCT ON (station_code)
			id, station_code, timestamp, depth, water_level_elevation, data_source, created_at
		FROM water_levels
		ORDER BY station_code, timestamp DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]model.WaterLevel)
	for rows.Next() {
		wl, err := scanWaterLevel(rows, false)
		if err != nil {
			return nil, err
		}
		out[wl.StationCode] = *wl
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteAll wipes every reading.
func (r *WaterLevelPostgres) DeleteAll(ctx context.Context) error {
	const q = `DELETE FROM water_levels`
	_, err := r.db.ExecContext(ctx, q)
	return err
}
