package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Goutham227347/Ground-Water/internal/model"
	"github.com/Goutham227347/Ground-Water/internal/repository"
	"github.com/Goutham227347/Ground-Water/internal/service"
	serviceMocks "github.com/Goutham227347/Ground-Water/internal/service/mocks"
)

func TestStationResourceMetrics(t *testing.T) {
	mockSvc := new(serviceMocks.MockResourceService)
	app := fiber.New()
	app.Get("/api/stations/:code/resource_metrics", StationResourceMetrics(mockSvc))

	t.Run("success", func(t *testing.T) {
		trend := model.TrendFalling
		metrics := &model.ResourceMetrics{
			StationCode:       "RJ_Jaipur_103",
			StationName:       "Jaipur Monitoring C",
			CalculationDate:   model.NewDate(time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)),
			StoragePercentage: fptr(18.5),
			Trend:             &trend,
			AlertStatus:       model.AlertCritical,
		}
		mockSvc.On("LatestOrCompute", mock.Anything, "RJ_Jaipur_103").Return(metrics, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/stations/RJ_Jaipur_103/resource_metrics", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result map[string]any
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "critical", result["alert_status"])
		assert.Equal(t, "2025-07-10", result["calculation_date"])
		assert.Equal(t, 18.5, result["storage_percentage"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("LatestOrCompute", mock.Anything, "XX_Nowhere_999").Return(nil, service.ErrStationNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/stations/XX_Nowhere_999/resource_metrics", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("LatestOrCompute", mock.Anything, "RJ_Jaipur_103").Return(nil, errors.New("db down")).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/stations/RJ_Jaipur_103/resource_metrics", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestListResources(t *testing.T) {
	mockSvc := new(serviceMocks.MockResourceService)
	app := fiber.New()
	app.Get("/api/resources", ListResources(mockSvc))

	t.Run("success with status filter", func(t *testing.T) {
		expected := &service.ResourceListResult{
			Items: []model.ResourceMetrics{{StationCode: "RJ_Jaipur_103", AlertStatus: model.AlertCritical}},
			Total: 1,
		}
		mockSvc.On("List", mock.Anything, mock.MatchedBy(func(f repository.ResourceFilter) bool {
			return f.AlertStatus == "critical" && f.StationCode == ""
		}), 100, 0).Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/resources?alert_status=critical", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.ResourceListResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, model.AlertCritical, result.Items[0].AlertStatus)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/resources?limit=abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_LIMIT", res.Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, mock.Anything, 100, 0).Return(nil, errors.New("db down")).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/resources", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestResourceAlerts(t *testing.T) {
	mockSvc := new(serviceMocks.MockResourceService)
	app := fiber.New()
	app.Get("/api/resources/alerts", ResourceAlerts(mockSvc))

	t.Run("success", func(t *testing.T) {
		alerts := []model.ResourceMetrics{
			{StationCode: "RJ_Jaipur_103", AlertStatus: model.AlertCritical},
			{StationCode: "TN_Chennai_104", AlertStatus: model.AlertWarning},
		}
		mockSvc.On("Alerts", mock.Anything).Return(alerts, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/resources/alerts", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result []model.ResourceMetrics
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result, 2)
		assert.Equal(t, model.AlertCritical, result[0].AlertStatus)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Alerts", mock.Anything).Return(nil, errors.New("db down")).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/resources/alerts", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}
