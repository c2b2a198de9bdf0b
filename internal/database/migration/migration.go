package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

// migrationLockKey is the session-scoped advisory lock key shared by every
// replica so schema setup runs exactly once per cluster.
const migrationLockKey int64 = 874529

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_dwlr_stations",
		SQL: `CREATE TABLE IF NOT EXISTS dwlr_stations (
  station_code      VARCHAR(30)      PRIMARY KEY,
  name              TEXT             NOT NULL,
  state             TEXT             NOT NULL,
  district          TEXT             NOT NULL,
  block             TEXT             NOT NULL DEFAULT '',
  latitude          DOUBLE PRECISION NOT NULL,
  longitude         DOUBLE PRECISION NOT NULL,
  aquifer_type      TEXT             NOT NULL DEFAULT '',
  well_depth        DOUBLE PRECISION,
  elevation         DOUBLE PRECISION,
  installation_date DATE,
  is_active         BOOLEAN          NOT NULL DEFAULT TRUE,
  last_data_update  TIMESTAMPTZ,
  created_at        TIMESTAMPTZ      NOT NULL DEFAULT now(),
  updated_at        TIMESTAMPTZ      NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_stations_state_district",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_stations_state_district ON dwlr_stations (state, district);`,
	},
	{
		Name: "create_index_stations_is_active",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_stations_is_active ON dwlr_stations (is_active);`,
	},
	{
		Name: "create_table_water_levels",
		SQL: `CREATE TABLE IF NOT EXISTS water_levels (
  id                    BIGSERIAL        PRIMARY KEY,
  station_code          VARCHAR(30)      NOT NULL REFERENCES dwlr_stations (station_code) ON DELETE CASCADE,
  timestamp             TIMESTAMPTZ      NOT NULL,
  depth                 DOUBLE PRECISION NOT NULL,
  water_level_elevation DOUBLE PRECISION,
  data_source           TEXT             NOT NULL DEFAULT 'CGWB_API',
  created_at            TIMESTAMPTZ      NOT NULL DEFAULT now(),
  UNIQUE (station_code, timestamp)
);`,
	},
	{
		Name: "create_index_water_levels_timestamp",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_water_levels_timestamp ON water_levels (timestamp);`,
	},
	{
		Name: "create_table_resource_metrics",
		SQL: `CREATE TABLE IF NOT EXISTS resource_metrics (
  id                 BIGSERIAL        PRIMARY KEY,
  station_code       VARCHAR(30)      NOT NULL REFERENCES dwlr_stations (station_code) ON DELETE CASCADE,
  calculation_date   DATE             NOT NULL,
  period_start       DATE             NOT NULL,
  period_end         DATE             NOT NULL,
  estimated_recharge DOUBLE PRECISION,
  recharge_rate      DOUBLE PRECISION,
  current_storage    DOUBLE PRECISION,
  available_storage  DOUBLE PRECISION,
  storage_percentage DOUBLE PRECISION,
  trend              TEXT,
  trend_magnitude    DOUBLE PRECISION,
  alert_status       TEXT             NOT NULL DEFAULT 'normal',
  created_at         TIMESTAMPTZ      NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_resource_metrics_station_calc",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_resource_metrics_station_calc ON resource_metrics (station_code, calculation_date);`,
	},
	{
		Name: "create_index_resource_metrics_alert_status",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_resource_metrics_alert_status ON resource_metrics (alert_status);`,
	},
}

// EnsureMigrated checks if the 'dwlr_stations' table exists and runs migrations
// if it doesn't. The whole check-and-create sequence runs on a single
// connection holding a Postgres advisory lock, so replicas starting against
// the same database serialize instead of racing the DDL.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	// Advisory locks are session-scoped: lock and unlock must happen on the
	// same connection, not whichever one the pool hands out next.
	conn, err := db.Conn(ctx)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to acquire connection: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "SELECT pg_advisory_lock($1)", migrationLockKey); err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to acquire advisory lock: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to acquire advisory lock: %w", err)
	}
	defer func() {
		// Unlock with a fresh context so a canceled caller context cannot
		// leave the lock held for the lifetime of the pooled session.
		if _, err := conn.ExecContext(context.Background(), "SELECT pg_advisory_unlock($1)", migrationLockKey); err != nil {
			logJSON(loc, map[string]any{
				"component":     "database",
				"event":         "db_migration_unlock_failed",
				"status":        "error",
				"error_message": err.Error(),
				"db_host":       dbHost,
			})
		}
	}()

	var exists bool
	query := "SELECT to_regclass('public.dwlr_stations') IS NOT NULL"
	err = conn.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := conn.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
