package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Goutham227347/Ground-Water/internal/repository"
	"github.com/Goutham227347/Ground-Water/internal/service"
)

// StationResourceMetrics returns the latest metrics row for a station,
// recomputing it first when missing or older than today.
func StationResourceMetrics(svc service.ResourceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code, ok := stationCode(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_CODE", "invalid station code")
		}

		metrics, err := svc.LatestOrCompute(c.UserContext(), code)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(metrics)
	}
}

// ListResources returns metrics rows, newest calculation first, with optional
// station_code and alert_status filters.
func ListResources(svc service.ResourceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "100"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		f := repository.ResourceFilter{
			StationCode: c.Query("station_code"),
			AlertStatus: c.Query("alert_status"),
		}
		res, err := svc.List(c.UserContext(), f, limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// ResourceAlerts returns metrics rows with critical or warning status,
// newest calculation first.
func ResourceAlerts(svc service.ResourceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		alerts, err := svc.Alerts(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(alerts)
	}
}
