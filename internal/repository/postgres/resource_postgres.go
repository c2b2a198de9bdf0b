package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Goutham227347/Ground-Water/internal/model"
	"github.com/Goutham227347/Ground-Water/internal/repository"
)

// ResourcePostgres is a PostgreSQL implementation of repository.ResourceRepository.
type ResourcePostgres struct {
	db *sql.DB
}

// NewResourcePostgres creates a new ResourcePostgres repository.
func NewResourcePostgres(db *sql.DB) *ResourcePostgres {
	return &ResourcePostgres{db: db}
}

var _ repository.ResourceRepository = (*ResourcePostgres)(nil)

const resourceColumns = `calculation_date, period_start, period_end,
		estimated_recharge, recharge_rate, current_storage, available_storage,
		storage_percentage, trend, trend_magnitude, alert_status, created_at`

func scanResource(row rowScanner, withName bool) (*model.ResourceMetrics, error) {
	var (
		rm        model.ResourceMetrics
		recharge  sql.NullFloat64
		rate      sql.NullFloat64
		current   sql.NullFloat64
		available sql.NullFloat64
		pct       sql.NullFloat64
		trend     sql.NullString
		magnitude sql.NullFloat64
	)
	dest := []any{&rm.ID, &rm.StationCode}
	if withName {
		dest = append(dest, &rm.StationName)
	}
	dest = append(dest,
		&rm.CalculationDate,
		&rm.PeriodStart,
		&rm.PeriodEnd,
		&recharge,
		&rate,
		&current,
		&available,
		&pct,
		&trend,
		&magnitude,
		&rm.AlertStatus,
		&rm.CreatedAt,
	)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if recharge.Valid {
		rm.EstimatedRecharge = &recharge.Float64
	}
	if rate.Valid {
		rm.RechargeRate = &rate.Float64
	}
	if current.Valid {
		rm.CurrentStorage = &current.Float64
	}
	if available.Valid {
		rm.AvailableStorage = &available.Float64
	}
	if pct.Valid {
		rm.StoragePercentage = &pct.Float64
	}
	if trend.Valid {
		t := model.Trend(trend.String)
		rm.Trend = &t
	}
	if magnitude.Valid {
		rm.TrendMagnitude = &magnitude.Float64
	}
	return &rm, nil
}

// Create inserts a new metrics row and returns the stored record.
func (r *ResourcePostgres) Create(ctx context.Context, rm *model.ResourceMetrics) (*model.ResourceMetrics, error) {
	q := `
		INSERT INTO resource_metrics (
			station_code, calculation_date, period_start, period_end,
			estimated_recharge, recharge_rate, current_storage, available_storage,
			storage_percentage, trend, trend_magnitude, alert_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, station_code, ` + resourceColumns + `
	`
	row := r.db.QueryRowContext(ctx, q,
		rm.StationCode,
		rm.CalculationDate,
		rm.PeriodStart,
		rm.PeriodEnd,
		rm.EstimatedRecharge,
		rm.RechargeRate,
		rm.CurrentStorage,
		rm.AvailableStorage,
		rm.StoragePercentage,
		rm.Trend,
		rm.TrendMagnitude,
		rm.AlertStatus,
	)
	out, err := scanResource(row, false)
	if err != nil {
		return nil, err
	}
	out.StationName = rm.StationName
	return out, nil
}

// Latest returns the most recently created metrics row for a station.
func (r *ResourcePostgres) Latest(ctx context.Context, code string) (*model.ResourceMetrics, error) {
	q := `
		SELECT r.id, r.station_code, s.name, ` + prefixColumns("r", resourceColumns) + `
		FROM resource_metrics r
		JOIN dwlr_stations s ON s.station_code = r.station_code
		WHERE r.station_code = $1
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT 1
	`
	return scanResource(r.db.QueryRowContext(ctx, q, code), true)
}

// List returns metrics rows matching the filter, newest calculation first,
// using LIMIT/OFFSET pagination and a total count over the same filter.
func (r *ResourcePostgres) List(ctx context.Context, f repository.ResourceFilter, pq repository.PageQuery) (*repository.PageResult[model.ResourceMetrics], error) {
	var (
		conds []string
		args  []any
	)
	if f.StationCode != "" {
		args = append(args, f.StationCode)
		conds = append(conds, fmt.Sprintf("r.station_code = $%d", len(args)))
	}
	if f.AlertStatus != "" {
		args = append(args, f.AlertStatus)
		conds = append(conds, fmt.Sprintf("r.alert_status = $%d", len(args)))
	}
	if len(f.AlertStatuses) > 0 {
		ph := make([]string, 0, len(f.AlertStatuses))
		for _, s := range f.AlertStatuses {
			args = append(args, s)
			ph = append(ph, fmt.Sprintf("$%d", len(args)))
		}
		conds = append(conds, fmt.Sprintf("r.alert_status IN (%s)", strings.Join(ph, ", ")))
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	// Count total rows
	qCount := `SELECT COUNT(*) FROM resource_metrics r` + where
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, args...).Scan(&total); err != nil {
		return nil, err
	}

	// Fetch page
	qList := `
		SELECT r.id, r.station_code, s.name, ` + prefixColumns("r", resourceColumns) + `
		FROM resource_metrics r
		JOIN dwlr_stations s ON s.station_code = r.station_code
	` + where
	args = append(args, pq.Limit)
	qList += fmt.Sprintf(" ORDER BY r.calculation_date DESC, r.id DESC LIMIT $%d", len(args))
	args = append(args, pq.Offset)
	qList += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.db.QueryContext(ctx, qList, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ResourceMetrics, 0)
	for rows.Next() {
		rm, err := scanResource(rows, true)
		if err != nil {
			return nil, err
		}
		items = append(items, *rm)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.ResourceMetrics]{
		Items: items,
		Total: total,
	}, nil
}

// LatestPerStation returns the newest metrics row per station via DISTINCT ON.
func (r *ResourcePostgres) LatestPerStation(ctx context.Context) (map[string]model.ResourceMetrics, error) {
	q := `
		SELECT DISTINCT ON (station_code) id, station_code, ` + resourceColumns + `
		FROM resource_metrics
		ORDER BY station_code, created_at DESC, id DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]model.ResourceMetrics)
	for rows.Next() {
		rm, err := scanResource(rows, false)
		if err != nil {
			return nil, err
		}
		out[rm.StationCode] = *rm
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// AlertDistribution counts distinct stations per alert status.
func (r *ResourcePostgres) AlertDistribution(ctx context.Context) (map[model.AlertStatus]int, error) {
	const q = `
		SELECT alert_status, COUNT(DISTINCT station_code)
		FROM resource_metrics
		GROUP BY alert_status
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[model.AlertStatus]int)
	for rows.Next() {
		var (
			status model.AlertStatus
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// DistinctStationCount returns how many stations have at least one metrics row.
func (r *ResourcePostgres) DistinctStationCount(ctx context.Context) (int, error) {
	const q = `SELECT COUNT(DISTINCT station_code) FROM resource_metrics`
	var n int
	if err := r.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// CountByAlert returns how many metrics rows carry the status.
func (r *ResourcePostgres) CountByAlert(ctx context.Context, status model.AlertStatus) (int, error) {
	const q = `SELECT COUNT(*) FROM resource_metrics WHERE alert_status = $1`
	var n int
	if err := r.db.QueryRowContext(ctx, q, string(status)).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// DeleteAll wipes every metrics row.
func (r *ResourcePostgres) DeleteAll(ctx context.Context) error {
	const q = `DELETE FROM resource_metrics`
	_, err := r.db.ExecContext(ctx, q)
	return err
}

// prefixColumns qualifies each comma-separated column with a table alias.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
