package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Goutham227347/Ground-Water/internal/repository"
	"github.com/Goutham227347/Ground-Water/internal/service"
)

// maxCodeLen matches the station_code column width.
const maxCodeLen = 30

// stationCode extracts and validates the :code route parameter.
func stationCode(c *fiber.Ctx) (string, bool) {
	code := c.Params("code")
	if code == "" || len(code) > maxCodeLen {
		return "", false
	}
	return code, true
}

// ListStations returns the station catalog. Filters: state and district match
// as case-insensitive substrings, alert_status selects stations whose metrics
// history contains that status.
func ListStations(svc service.StationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f := repository.StationFilter{
			State:       c.Query("state"),
			District:    c.Query("district"),
			AlertStatus: c.Query("alert_status"),
		}
		if v := c.Query("is_active"); v != "" {
			// Any value other than "true" selects inactive stations.
			active := strings.EqualFold(v, "true")
			f.IsActive = &active
		}

		items, err := svc.List(c.UserContext(), f)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(items)
	}
}

// GetStation returns one station with its recent readings, latest reading,
// and latest resource status.
func GetStation(svc service.StationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code, ok := stationCode(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_CODE", "invalid station code")
		}

		detail, err := svc.Get(c.UserContext(), code)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(detail)
	}
}

// StationStatistics returns catalog-wide counts and the alert distribution.
func StationStatistics(svc service.StationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		stats, err := svc.Statistics(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(stats)
	}
}

// StationInsights returns rule-based decision support entries for planners.
func StationInsights(svc service.StationService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		insights, err := svc.Insights(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"insights": insights})
	}
}

// SyncStationData pulls the last year of readings for one station from the
// CGWB portal and recomputes its resource metrics.
func SyncStationData(svc service.SyncService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code, ok := stationCode(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_CODE", "invalid station code")
		}

		res, err := svc.SyncStation(c.UserContext(), code, 0)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// SyncAllStations pulls the last month of readings for every active station.
// Heavy: runs synchronously and may take minutes on a large catalog.
func SyncAllStations(svc service.SyncService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.SyncAll(c.UserContext(), 0)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}
