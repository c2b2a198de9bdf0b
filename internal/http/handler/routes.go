package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"github.com/Goutham227347/Ground-Water/internal/service"
)

// Services bundles the service layer for route registration.
type Services struct {
	Stations    service.StationService
	WaterLevels service.WaterLevelService
	Resources   service.ResourceService
	Sync        service.SyncService
}

// RegisterRoutes attaches all HTTP routes to the Fiber app. Handlers stay
// thin: parameter parsing and error mapping only.
func RegisterRoutes(app *fiber.App, db *sql.DB, svcs Services) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api")
	api.Get("/info", APIInfo())

	stations := api.Group("/stations")
	// Static station routes must be registered before the :code parameter.
	stations.Get("/statistics", StationStatistics(svcs.Stations))
	stations.Get("/insights", StationInsights(svcs.Stations))
	stations.Post("/sync_all_stations", SyncAllStations(svcs.Sync))
	stations.Get("/", ListStations(svcs.Stations))
	stations.Get("/:code", GetStation(svcs.Stations))
	stations.Get("/:code/water_levels", StationWaterLevels(svcs.WaterLevels))
	stations.Get("/:code/resource_metrics", StationResourceMetrics(svcs.Resources))
	stations.Post("/:code/sync_data", SyncStationData(svcs.Sync))

	api.Get("/water-levels", ListWaterLevels(svcs.WaterLevels))

	resources := api.Group("/resources")
	resources.Get("/alerts", ResourceAlerts(svcs.Resources))
	resources.Get("/", ListResources(svcs.Resources))
}
