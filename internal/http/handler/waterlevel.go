package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Goutham227347/Ground-Water/internal/repository"
	"github.com/Goutham227347/Ground-Water/internal/service"
)

// parseTimeParam accepts RFC3339 timestamps and bare YYYY-MM-DD dates.
func parseTimeParam(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// timeRangeQuery reads the optional start_date / end_date query parameters.
func timeRangeQuery(c *fiber.Ctx) (from, to *time.Time, err error) {
	if s := c.Query("start_date"); s != "" {
		t, perr := parseTimeParam(s)
		if perr != nil {
			return nil, nil, perr
		}
		from = &t
	}
	if s := c.Query("end_date"); s != "" {
		t, perr := parseTimeParam(s)
		if perr != nil {
			return nil, nil, perr
		}
		to = &t
	}
	return from, to, nil
}

// StationWaterLevels returns one station's readings, newest first, bounded by
// the optional date range. limit defaults to 1000.
func StationWaterLevels(svc service.WaterLevelService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		code, ok := stationCode(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_CODE", "invalid station code")
		}

		from, to, err := timeRangeQuery(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_DATE", "dates must be RFC3339 or YYYY-MM-DD")
		}

		limit, err := strconv.Atoi(c.Query("limit", "1000"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}

		levels, err := svc.ListByStation(c.UserContext(), code, from, to, limit)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(levels)
	}
}

// ListWaterLevels returns the cross-station readings feed, newest first, with
// limit/offset pagination and a total count.
func ListWaterLevels(svc service.WaterLevelService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		from, to, err := timeRangeQuery(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_DATE", "dates must be RFC3339 or YYYY-MM-DD")
		}

		limit, err := strconv.Atoi(c.Query("limit", "100"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		f := repository.WaterLevelFilter{
			StationCode: c.Query("station_code"),
			From:        from,
			To:          to,
		}
		res, err := svc.List(c.UserContext(), f, limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}
