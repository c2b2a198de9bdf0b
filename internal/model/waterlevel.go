package model

import "time"

// WaterLevel is a single depth-to-water reading recorded by a station.
// Depth is meters below ground level; WaterLevelElevation is the absolute
// water table elevation (station elevation minus depth) when the station's
// elevation is known.
type WaterLevel struct {
	ID                  int64     `json:"id"`
	StationCode         string    `json:"station_code"`
	StationName         string    `json:"station_name"`
	Timestamp           time.Time `json:"timestamp"`
	Depth               float64   `json:"depth"`
	WaterLevelElevation *float64  `json:"water_level_elevation"`
	DataSource          string    `json:"data_source"`
	CreatedAt           time.Time `json:"created_at"`
}

// Known DataSource values. Readings synced from the CGWB API carry
// DataSourceCGWB; demo rows written by the seeder carry DataSourceSeed.
const (
	DataSourceCGWB = "CGWB_API"
	DataSourceSeed = "SEED"
)
