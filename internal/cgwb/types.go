// Package cgwb talks to the Central Ground Water Board's public data portal
// and normalizes its loosely-shaped payloads. When the portal is unreachable,
// misbehaving, or serving HTML, the client degrades to generated mock data so
// sync flows keep working offline.
package cgwb

import (
	"time"
)

// Station is one entry of the CGWB station catalog. The portal is not
// consistent about the code field name, hence the legacy alias.
type Station struct {
	StationCode string   `json:"station_code" validate:"required_without=Code"`
	Code        string   `json:"code" validate:"required_without=StationCode"`
	Name        string   `json:"name"`
	State       string   `json:"state"`
	District    string   `json:"district"`
	Block       string   `json:"block"`
	Latitude    float64  `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude   float64  `json:"longitude" validate:"gte=-180,lte=180"`
	AquiferType string   `json:"aquifer_type"`
	WellDepth   *float64 `json:"well_depth"`
	Elevation   *float64 `json:"elevation"`
	IsActive    *bool    `json:"is_active"`
}

// ResolvedCode returns station_code, falling back to the legacy code field.
func (s Station) ResolvedCode() string {
	if s.StationCode != "" {
		return s.StationCode
	}
	return s.Code
}

// Active defaults to true when the payload omits is_active.
func (s Station) Active() bool {
	return s.IsActive == nil || *s.IsActive
}

// Reading is one water level sample. Portals deliver the instant under
// different keys and in different formats; ResolvedTime deals with both.
type Reading struct {
	Timestamp  string   `json:"timestamp"`
	Date       string   `json:"date"`
	Datetime   string   `json:"datetime"`
	Depth      *float64 `json:"depth"`
	WaterLevel *float64 `json:"water_level"`
}

var readingLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ResolvedTime parses the first populated time field. Unparseable or absent
// values fall back to the given instant.
func (r Reading) ResolvedTime(fallback time.Time) time.Time {
	for _, raw := range []string{r.Timestamp, r.Date, r.Datetime} {
		if raw == "" {
			continue
		}
		for _, layout := range readingLayouts {
			if ts, err := time.Parse(layout, raw); err == nil {
				return ts
			}
		}
	}
	return fallback
}

// ResolvedDepth returns depth, falling back to the water_level alias, then 0.
func (r Reading) ResolvedDepth() float64 {
	if r.Depth != nil {
		return *r.Depth
	}
	if r.WaterLevel != nil {
		return *r.WaterLevel
	}
	return 0
}
