package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"
)

// APIVersion is reported by /api/info and stamped on every response by the
// version middleware.
const APIVersion = "1.0"

// APIInfo documents the available endpoints for mobile app integration and
// external developers.
func APIInfo() fiber.Handler {
	info := fiber.Map{
		"name":        "Groundwater DWLR API",
		"version":     APIVersion,
		"description": "Real-time groundwater resource evaluation using DWLR data. Supports mobile and web clients.",
		"base_url":    "/api/",
		"endpoints": fiber.Map{
			"stations": fiber.Map{
				"list":             "GET /api/stations",
				"detail":           "GET /api/stations/{station_code}",
				"statistics":       "GET /api/stations/statistics",
				"water_levels":     "GET /api/stations/{station_code}/water_levels",
				"resource_metrics": "GET /api/stations/{station_code}/resource_metrics",
				"sync_single":      "POST /api/stations/{station_code}/sync_data",
				"sync_all":         "POST /api/stations/sync_all_stations",
			},
			"water_levels": "GET /api/water-levels?station_code=&start_date=&end_date=",
			"resources": fiber.Map{
				"list":   "GET /api/resources",
				"alerts": "GET /api/resources/alerts",
			},
			"insights": "GET /api/stations/insights",
		},
		"query_params": fiber.Map{
			"stations":     "state, district, is_active, alert_status",
			"water_levels": "station_code, start_date, end_date, limit",
		},
	}

	return func(c *fiber.Ctx) error {
		return c.JSON(info)
	}
}

// HealthCheck reports readiness: the database must answer a ping.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe answers 200 as long as the process is up.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
