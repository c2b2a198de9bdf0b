package model

import "time"

// Trend classifies the direction of the water table over an analysis window.
type Trend string

const (
	TrendRising  Trend = "rising"
	TrendFalling Trend = "falling"
	TrendStable  Trend = "stable"
)

// AlertStatus buckets a station's groundwater stress level.
type AlertStatus string

const (
	AlertCritical AlertStatus = "critical"
	AlertWarning  AlertStatus = "warning"
	AlertNormal   AlertStatus = "normal"
	AlertGood     AlertStatus = "good"
)

// AllAlertStatuses lists every status in severity order, used when a
// distribution must report all buckets including empty ones.
var AllAlertStatuses = []AlertStatus{AlertCritical, AlertWarning, AlertNormal, AlertGood}

// ResourceMetrics is one computed evaluation of a station's groundwater
// resources over a period. Rows are appended per computation; history is kept.
// Numeric pointers are nil when the inputs to derive them were missing
// (fewer than two readings, unknown well depth, or an empty window).
type ResourceMetrics struct {
	ID                int64       `json:"id"`
	StationCode       string      `json:"station_code"`
	StationName       string      `json:"station_name"`
	CalculationDate   Date        `json:"calculation_date"`
	PeriodStart       Date        `json:"period_start"`
	PeriodEnd         Date        `json:"period_end"`
	EstimatedRecharge *float64    `json:"estimated_recharge"`
	RechargeRate      *float64    `json:"recharge_rate"`
	CurrentStorage    *float64    `json:"current_storage"`
	AvailableStorage  *float64    `json:"available_storage"`
	StoragePercentage *float64    `json:"storage_percentage"`
	Trend             *Trend      `json:"trend"`
	TrendMagnitude    *float64    `json:"trend_magnitude"`
	AlertStatus       AlertStatus `json:"alert_status"`
	CreatedAt         time.Time   `json:"created_at"`
}
