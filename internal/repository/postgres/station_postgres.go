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

// StationPostgres is a PostgreSQL implementation of repository.StationRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type StationPostgres struct {
	db *sql.DB
}

// NewStationPostgres creates a new StationPostgres repository.
func NewStationPostgres(db *sql.DB) *StationPostgres {
	return &StationPostgres{db: db}
}

var _ repository.StationRepository = (*StationPostgres)(nil)

const stationColumns = `station_code, name, state, district, block, latitude, longitude,
		aquifer_type, well_depth, elevation, installation_date, is_active,
		last_data_update, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStation(row rowScanner, extra ...any) (*model.Station, error) {
	var (
		st        model.Station
		wellDepth sql.NullFloat64
		elevation sql.NullFloat64
		installed sql.NullTime
		lastData  sql.NullTime
	)
	dest := []any{
		&st.StationCode,
		&st.Name,
		&st.State,
		&st.District,
		&st.Block,
		&st.Latitude,
		&st.Longitude,
		&st.AquiferType,
		&wellDepth,
		&elevation,
		&installed,
		&st.IsActive,
		&lastData,
		&st.CreatedAt,
		&st.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if wellDepth.Valid {
		st.WellDepth = &wellDepth.Float64
	}
	if elevation.Valid {
		st.Elevation = &elevation.Float64
	}
	if installed.Valid {
		d := model.NewDate(installed.Time)
		st.InstallationDate = &d
	}
	if lastData.Valid {
		st.LastDataUpdate = &lastData.Time
	}
	return &st, nil
}

// Upsert inserts a station or refreshes its attributes when the code exists.
// (xmax = 0) distinguishes a fresh insert from a conflict update.
func (r *StationPostgres) Upsert(ctx context.Context, st *model.Station) (*model.Station, bool, error) {
	q := `
		INSERT INTO dwlr_stations (
			station_code, name, state, district, block, latitude, longitude,
			aquifer_type, well_depth, elevation, installation_date, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (station_code) DO UPDATE SET
			name              = EXCLUDED.name,
			state             = EXCLUDED.state,
			district          = EXCLUDED.district,
			block             = EXCLUDED.block,
			latitude          = EXCLUDED.latitude,
			longitude         = EXCLUDED.longitude,
			aquifer_type      = EXCLUDED.aquifer_type,
			well_depth        = EXCLUDED.well_depth,
			elevation         = EXCLUDED.elevation,
			installation_date = EXCLUDED.installation_date,
			is_active         = EXCLUDED.is_active,
			updated_at        = now()
		RETURNING ` + stationColumns + `, (xmax = 0) AS inserted
	`
	row := r.db.QueryRowContext(ctx, q,
		st.StationCode,
		st.Name,
		st.State,
		st.District,
		st.Block,
		st.Latitude,
		st.Longitude,
		st.AquiferType,
		st.WellDepth,
		st.Elevation,
		st.InstallationDate,
		st.IsActive,
	)
	var inserted bool
	out, err := scanStation(row, &inserted)
	if err != nil {
		return nil, false, err
	}
	return out, inserted, nil
}

// FindByCode fetches a single station by its station_code.
func (r *StationPostgres) FindByCode(ctx context.Context, code string) (*model.Station, error) {
	q := `
		SELECT ` + stationColumns + `
		FROM dwlr_stations
		WHERE station_code = $1
	`
	return scanStation(r.db.QueryRowContext(ctx, q, code))
}

// List returns stations matching the filter, ordered by station_code.
// State and district match as case-insensitive substrings; the alert filter
// selects stations having any metrics row with that status.
func (r *StationPostgres) List(ctx context.Context, f repository.StationFilter) ([]model.Station, error) {
	q := `
		SELECT ` + stationColumns + `
		FROM dwlr_stations
	`
	var (
		conds []string
		args  []any
	)
	if f.State != "" {
		args = append(args, "%"+f.State+"%")
		conds = append(conds, fmt.Sprintf("state ILIKE $%d", len(args)))
	}
	if f.District != "" {
		args = append(args, "%"+f.District+"%")
		conds = append(conds, fmt.Sprintf("district ILIKE $%d", len(args)))
	}
	if f.IsActive != nil {
		args = append(args, *f.IsActive)
		conds = append(conds, fmt.Sprintf("is_active = $%d", len(args)))
	}
	if f.AlertStatus != "" {
		args = append(args, f.AlertStatus)
		conds = append(conds, fmt.Sprintf(
			"station_code IN (SELECT DISTINCT station_code FROM resource_metrics WHERE alert_status = $%d)", len(args)))
	}
	if len(f.States) > 0 {
		ph := make([]string, 0, len(f.States))
		for _, s := range f.States {
			args = append(args, s)
			ph = append(ph, fmt.Sprintf("$%d", len(args)))
		}
		conds = append(conds, fmt.Sprintf("state IN (%s)", strings.Join(ph, ", ")))
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY station_code"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Station, 0)
	for rows.Next() {
		st, err := scanStation(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Stats returns total/active counts and the distinct state count in one query.
func (r *StationPostgres) Stats(ctx context.Context) (*repository.StationStats, error) {
	const q = `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE is_active),
		       COUNT(DISTINCT state)
		FROM dwlr_stations
	`
	var s repository.StationStats
	if err := r.db.QueryRowContext(ctx, q).Scan(&s.Total, &s.Active, &s.States); err != nil {
		return nil, err
	}
	return &s, nil
}

// TouchLastDataUpdate records when fresh readings last arrived for a station.
func (r *StationPostgres) TouchLastDataUpdate(ctx context.Context, code string, ts time.Time) error {
	const q = `
		UPDATE dwlr_stations
		SET last_data_update = $2, updated_at = now()
		WHERE station_code = $1
	`
	_, err := r.db.ExecContext(ctx, q, code, ts)
	return err
}

// DeleteAll wipes every station; water levels and metrics go with them via
// ON DELETE CASCADE.
func (r *StationPostgres) DeleteAll(ctx context.Context) error {
	const q = `DELETE FROM dwlr_stations`
	_, err := r.db.ExecContext(ctx, q)
	return err
}
