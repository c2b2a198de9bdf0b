package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/Goutham227347/Ground-Water/internal/model"
	"github.com/Goutham227347/Ground-Water/internal/repository"
)

var stationCols = []string{
	"station_code", "name", "state", "district", "block", "latitude", "longitude",
	"aquifer_type", "well_depth", "elevation", "installation_date", "is_active",
	"last_data_update", "created_at", "updated_at",
}

func TestStationPostgres_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewStationPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	st := &model.Station{
		StationCode: "KA_Kolar_101",
		Name:        "Kolar Monitoring A",
		State:       "Karnataka",
		District:    "Kolar",
		Block:       "Block-1",
		Latitude:    13.1362,
		Longitude:   78.1291,
		AquiferType: "Granite",
		IsActive:    true,
	}

	t.Run("inserts new station", func(t *testing.T) {
		rows := sqlmock.NewRows(append(stationCols, "inserted")).
			AddRow(st.StationCode, st.Name, st.State, st.District, st.Block,
				st.Latitude, st.Longitude, st.AquiferType, nil, nil, nil,
				st.IsActive, nil, now, now, true)

		mock.ExpectQuery("INSERT INTO dwlr_stations").
			WithArgs(st.StationCode, st.Name, st.State, st.District, st.Block,
				st.Latitude, st.Longitude, st.AquiferType, nil, nil, nil, st.IsActive).
			WillReturnRows(rows)

		out, created, err := repo.Upsert(ctx, st)

		assert.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, st.StationCode, out.StationCode)
		assert.Nil(t, out.WellDepth)
		assert.Nil(t, out.InstallationDate)
	})

	t.Run("updates existing station", func(t *testing.T) {
		wellDepth := 95.5
		withDepth := *st
		withDepth.WellDepth = &wellDepth

		rows := sqlmock.NewRows(append(stationCols, "inserted")).
			AddRow(st.StationCode, st.Name, st.State, st.District, st.Block,
				st.Latitude, st.Longitude, st.AquiferType, wellDepth, nil, nil,
				st.IsActive, nil, now, now, false)

		mock.ExpectQuery("INSERT INTO dwlr_stations").
			WithArgs(st.StationCode, st.Name, st.State, st.District, st.Block,
				st.Latitude, st.Longitude, st.AquiferType, wellDepth, nil, nil, st.IsActive).
			WillReturnRows(rows)

		out, created, err := repo.Upsert(ctx, &withDepth)

		assert.NoError(t, err)
		assert.False(t, created)
		if assert.NotNil(t, out.WellDepth) {
			assert.Equal(t, wellDepth, *out.WellDepth)
		}
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStationPostgres_FindByCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewStationPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(stationCols).
			AddRow("TN_Chennai_102", "Chennai Monitoring B", "Tamil Nadu", "Chennai", "Block-2",
				13.0827, 80.2707, "Alluvium", 80.0, 210.5, now, true, now, now, now)

		mock.ExpectQuery("SELECT (.+) FROM dwlr_stations WHERE station_code = ?").
			WithArgs("TN_Chennai_102").
			WillReturnRows(rows)

		st, err := repo.FindByCode(ctx, "TN_Chennai_102")

		assert.NoError(t, err)
		assert.NotNil(t, st)
		assert.Equal(t, "Tamil Nadu", st.State)
		if assert.NotNil(t, st.Elevation) {
			assert.Equal(t, 210.5, *st.Elevation)
		}
		assert.NotNil(t, st.LastDataUpdate)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM dwlr_stations WHERE station_code = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		st, err := repo.FindByCode(ctx, "missing")

		assert.Error(t, err)
		assert.True(t, IsNoRowsError(err))
		assert.Nil(t, st)
	})
}

func TestStationPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewStationPostgres(db)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("no filter", func(t *testing.T) {
		rows := sqlmock.NewRows(stationCols).
			AddRow("KA_Kolar_101", "Kolar Monitoring A", "Karnataka", "Kolar", "Block-1",
				13.1362, 78.1291, "Granite", nil, nil, nil, true, nil, now, now).
			AddRow("TN_Chennai_102", "Chennai Monitoring B", "Tamil Nadu", "Chennai", "Block-2",
				13.0827, 80.2707, "Alluvium", nil, nil, nil, true, nil, now, now)

		mock.ExpectQuery("SELECT (.+) FROM dwlr_stations(.+)ORDER BY station_code").
			WillReturnRows(rows)

		items, err := repo.List(ctx, repository.StationFilter{})

		assert.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("state and active filter", func(t *testing.T) {
		active := true
		rows := sqlmock.NewRows(stationCols).
			AddRow("KA_Kolar_101", "Kolar Monitoring A", "Karnataka", "Kolar", "Block-1",
				13.1362, 78.1291, "Granite", nil, nil, nil, true, nil, now, now)

		mock.ExpectQuery("SELECT (.+) FROM dwlr_stations WHERE state ILIKE (.+) AND is_active = ?").
			WithArgs("%karnataka%", true).
			WillReturnRows(rows)

		items, err := repo.List(ctx, repository.StationFilter{State: "karnataka", IsActive: &active})

		assert.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Equal(t, "Karnataka", items[0].State)
	})

	t.Run("alert status filter uses metrics subquery", func(t *testing.T) {
		rows := sqlmock.NewRows(stationCols)

		mock.ExpectQuery("SELECT (.+) FROM dwlr_stations WHERE station_code IN \\(SELECT DISTINCT station_code FROM resource_metrics").
			WithArgs("critical").
			WillReturnRows(rows)

		items, err := repo.List(ctx, repository.StationFilter{AlertStatus: "critical"})

		assert.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("states set filter", func(t *testing.T) {
		rows := sqlmock.NewRows(stationCols)

		mock.ExpectQuery("SELECT (.+) FROM dwlr_stations WHERE state IN").
			WithArgs("Karnataka", "Tamil Nadu").
			WillReturnRows(rows)

		items, err := repo.List(ctx, repository.StationFilter{States: []string{"Karnataka", "Tamil Nadu"}})

		assert.NoError(t, err)
		assert.Empty(t, items)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStationPostgres_Stats(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewStationPostgres(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\)").
		WillReturnRows(sqlmock.NewRows([]string{"total", "active", "states"}).AddRow(150, 142, 10))

	stats, err := repo.Stats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, &repository.StationStats{Total: 150, Active: 142, States: 10}, stats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStationPostgres_TouchLastDataUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewStationPostgres(db)
	ts := time.Now().UTC()

	mock.ExpectExec("UPDATE dwlr_stations").
		WithArgs("KA_Kolar_101", ts).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.TouchLastDataUpdate(context.Background(), "KA_Kolar_101", ts)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStationPostgres_DeleteAll(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewStationPostgres(db)

	mock.ExpectExec("DELETE FROM dwlr_stations").
		WillReturnResult(sqlmock.NewResult(0, 150))

	err = repo.DeleteAll(context.Background())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
