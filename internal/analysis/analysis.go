// Package analysis holds the pure computation behind resource metrics:
// recharge estimation, storage accounting, level trend regression, and the
// alert classification derived from them. Functions operate on in-memory
// reading slices and never touch the database.
package analysis

import (
	"math"
	"sort"
	"time"

	"github.com/Goutham227347/Ground-Water/internal/model"
)

// specificYield is the average Sy assumed for unconfined aquifers. All storage
// and recharge figures are per unit area (1 m²).
const specificYield = 0.15

const daysPerYear = 365.25

// RechargeEstimate is the recharge picture over an evaluation window.
// Both fields are nil when fewer than two readings exist.
type RechargeEstimate struct {
	// Estimated is the recharge volume in m³ per unit area.
	Estimated *float64
	// Rate is the annualized recharge in mm/year.
	Rate *float64
}

// StorageEstimate is the storage picture at the newest reading.
// All fields are nil when the station's well depth is unknown.
type StorageEstimate struct {
	Current    *float64
	Available  *float64
	Percentage *float64
}

// TrendEstimate classifies the water level movement over a window.
type TrendEstimate struct {
	Trend model.Trend
	// Magnitude is the absolute level change in m/year.
	Magnitude float64
}

// wholeDays truncates the span between two instants to whole days.
func wholeDays(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}

// EstimateRecharge sums water table rises between consecutive readings
// (depth decreasing means the table is rising) and scales by specific yield.
// Readings must be ascending by timestamp.
func EstimateRecharge(readings []model.WaterLevel) RechargeEstimate {
	if len(readings) < 2 {
		return RechargeEstimate{}
	}

	var totalRise float64
	risePeriods := 0
	for i := 1; i < len(readings); i++ {
		rise := readings[i-1].Depth - readings[i].Depth
		if rise > 0 {
			totalRise += rise
			risePeriods++
		}
	}

	estimated := 0.0
	if risePeriods > 0 {
		estimated = totalRise * specificYield
	}

	spanYears := float64(wholeDays(readings[0].Timestamp, readings[len(readings)-1].Timestamp)) / daysPerYear
	rate := 0.0
	if spanYears > 0 {
		rate = estimated / spanYears * 1000 // m -> mm
	}

	return RechargeEstimate{Estimated: &estimated, Rate: &rate}
}

// EstimateStorage derives storage from the column of water standing in the
// well. A nil or zero well depth reads as unknown, not as an empty well.
// The percentage is clamped to [0, 100]; artesian readings with a negative
// depth would otherwise push it past 100.
func EstimateStorage(wellDepth *float64, currentDepth float64) StorageEstimate {
	if wellDepth == nil || *wellDepth == 0 {
		return StorageEstimate{}
	}

	waterColumn := *wellDepth - currentDepth
	if waterColumn < 0 {
		waterColumn = 0
	}

	current := waterColumn * specificYield
	maxStorage := *wellDepth * specificYield
	available := maxStorage - current

	pct := 0.0
	if maxStorage > 0 {
		pct = current / maxStorage * 100
	}
	pct = min(100, max(0, pct))

	return StorageEstimate{Current: &current, Available: &available, Percentage: &pct}
}

// AnalyzeTrend fits an ordinary least squares line through (days since first
// reading, depth) pairs. Depth shrinking over time means the water table is
// rising. Below 0.1 m/year the movement counts as stable.
// Readings must be ascending by timestamp.
func AnalyzeTrend(readings []model.WaterLevel) TrendEstimate {
	if len(readings) < 2 {
		return TrendEstimate{Trend: model.TrendStable}
	}

	first := readings[0].Timestamp
	n := float64(len(readings))
	var sumT, sumD, sumTD, sumT2 float64
	for _, r := range readings {
		t := float64(wholeDays(first, r.Timestamp))
		sumT += t
		sumD += r.Depth
		sumTD += t * r.Depth
		sumT2 += t * t
	}

	slope := 0.0
	if denom := n*sumT2 - sumT*sumT; denom != 0 {
		slope = (n*sumTD - sumT*sumD) / denom
	}

	magnitude := math.Abs(slope * daysPerYear)
	switch {
	case magnitude < 0.1:
		return TrendEstimate{Trend: model.TrendStable, Magnitude: magnitude}
	case slope < 0:
		return TrendEstimate{Trend: model.TrendRising, Magnitude: magnitude}
	default:
		return TrendEstimate{Trend: model.TrendFalling, Magnitude: magnitude}
	}
}

// DetermineAlert grades a station. With a storage percentage: <20 critical,
// <40 warning, >70 good, else normal. Without one it falls back to how far
// down the well the water sits, and with no well depth at all it stays normal.
func DetermineAlert(storagePct *float64, currentDepth float64, wellDepth *float64) model.AlertStatus {
	if storagePct == nil {
		if wellDepth != nil && *wellDepth != 0 {
			depthPct := currentDepth / *wellDepth * 100
			switch {
			case depthPct > 80:
				return model.AlertCritical
			case depthPct > 60:
				return model.AlertWarning
			}
		}
		return model.AlertNormal
	}

	switch {
	case *storagePct < 20:
		return model.AlertCritical
	case *storagePct < 40:
		return model.AlertWarning
	case *storagePct > 70:
		return model.AlertGood
	default:
		return model.AlertNormal
	}
}

// Evaluate assembles the full metrics row for one station over
// [periodStart, periodEnd]. With no readings in the window it returns the
// default row: dates set, alert normal, every numeric field nil. Readings may
// arrive in any order; evaluation sorts a copy ascending once.
func Evaluate(station *model.Station, readings []model.WaterLevel, periodStart, periodEnd time.Time) *model.ResourceMetrics {
	rm := &model.ResourceMetrics{
		StationCode:     station.StationCode,
		StationName:     station.Name,
		CalculationDate: model.NewDate(periodEnd),
		PeriodStart:     model.NewDate(periodStart),
		PeriodEnd:       model.NewDate(periodEnd),
		AlertStatus:     model.AlertNormal,
	}
	if len(readings) == 0 {
		return rm
	}

	sorted := make([]model.WaterLevel, len(readings))
	copy(sorted, readings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	recharge := EstimateRecharge(sorted)
	currentDepth := sorted[len(sorted)-1].Depth
	storage := EstimateStorage(station.WellDepth, currentDepth)
	trend := AnalyzeTrend(sorted)

	rm.EstimatedRecharge = recharge.Estimated
	rm.RechargeRate = recharge.Rate
	rm.CurrentStorage = storage.Current
	rm.AvailableStorage = storage.Available
	rm.StoragePercentage = storage.Percentage
	t := trend.Trend
	rm.Trend = &t
	magnitude := trend.Magnitude
	rm.TrendMagnitude = &magnitude
	rm.AlertStatus = DetermineAlert(storage.Percentage, currentDepth, station.WellDepth)

	return rm
}
