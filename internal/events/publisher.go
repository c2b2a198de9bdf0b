// Package events publishes alert notifications for downstream consumers
// (dashboards, SMS gateways, district escalation queues).
package events

import (
	"context"
	"time"

	"github.com/Goutham227347/Ground-Water/internal/model"
)

// AlertEvent says a station's latest evaluation landed in a stressed state.
type AlertEvent struct {
	StationCode       string            `json:"station_code"`
	StationName       string            `json:"station_name,omitempty"`
	AlertStatus       model.AlertStatus `json:"alert_status"`
	StoragePercentage *float64          `json:"storage_percentage,omitempty"`
	Trend             *model.Trend      `json:"trend,omitempty"`
	CalculationDate   model.Date        `json:"calculation_date"`
	EmittedAt         time.Time         `json:"emitted_at"`
}

// Publisher emits alert events. Implementations must be safe for concurrent use.
type Publisher interface {
	PublishAlert(ctx context.Context, ev AlertEvent) error
	Close() error
}
