package model

import "time"

// Station represents a DWLR (Digital Water Level Recorder) monitoring well.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, repository) without coupling to persistence.
type Station struct {
	StationCode      string     `json:"station_code"`
	Name             string     `json:"name"`
	State            string     `json:"state"`
	District         string     `json:"district"`
	Block            string     `json:"block"`
	Latitude         float64    `json:"latitude"`
	Longitude        float64    `json:"longitude"`
	AquiferType      string     `json:"aquifer_type"`
	WellDepth        *float64   `json:"well_depth"`
	Elevation        *float64   `json:"elevation"`
	InstallationDate *Date      `json:"installation_date,omitempty"`
	IsActive         bool       `json:"is_active"`
	LastDataUpdate   *time.Time `json:"last_data_update"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
