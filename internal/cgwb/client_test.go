package cgwb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Goutham227347/Ground-Water/internal/config"
)

func newTestClient(baseURL string) *HTTPClient {
	return NewHTTPClient(config.CGWBConfig{BaseURL: baseURL, TimeoutSec: 2})
}

func TestHTTPClient_FetchStations(t *testing.T) {
	ctx := context.Background()

	t.Run("parses portal payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/stations", r.URL.Path)
			assert.Equal(t, "Karnataka", r.URL.Query().Get("state"))
			assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla/5.0")

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[
				{"station_code": "STN1001", "name": "DWLR Station 1001", "state": "Karnataka",
				 "district": "Kolar", "latitude": 13.1, "longitude": 78.1, "well_depth": 120.5},
				{"code": "STN1002", "name": "DWLR Station 1002", "state": "Karnataka",
				 "district": "Bangalore", "latitude": 12.9, "longitude": 77.6}
			]`))
		}))
		defer srv.Close()

		stations, err := newTestClient(srv.URL).FetchStations(ctx, "Karnataka", "")

		require.NoError(t, err)
		require.Len(t, stations, 2)
		assert.Equal(t, "STN1001", stations[0].ResolvedCode())
		assert.Equal(t, "STN1002", stations[1].ResolvedCode())
		require.NotNil(t, stations[0].WellDepth)
		assert.Equal(t, 120.5, *stations[0].WellDepth)
	})

	t.Run("drops invalid entries", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[
				{"station_code": "STN1001", "latitude": 13.1, "longitude": 78.1},
				{"name": "codeless station", "latitude": 13.1, "longitude": 78.1},
				{"station_code": "STN1003", "latitude": 913.0, "longitude": 78.1}
			]`))
		}))
		defer srv.Close()

		stations, err := newTestClient(srv.URL).FetchStations(ctx, "", "")

		require.NoError(t, err)
		require.Len(t, stations, 1)
		assert.Equal(t, "STN1001", stations[0].StationCode)
	})

	t.Run("falls back on http error status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "upstream broken", http.StatusBadGateway)
		}))
		defer srv.Close()

		stations, err := newTestClient(srv.URL).FetchStations(ctx, "", "")

		require.NoError(t, err)
		assert.Len(t, stations, 20)
		assert.Equal(t, "STN1001", stations[0].StationCode)
		assert.Equal(t, "STN1020", stations[19].StationCode)
	})

	t.Run("falls back on non-json body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html>maintenance page</html>"))
		}))
		defer srv.Close()

		stations, err := newTestClient(srv.URL).FetchStations(ctx, "", "")

		require.NoError(t, err)
		assert.Len(t, stations, 20)
	})

	t.Run("falls back when unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // nothing listens anymore

		stations, err := newTestClient(srv.URL).FetchStations(ctx, "", "")

		require.NoError(t, err)
		assert.Len(t, stations, 20)
	})
}

func TestHTTPClient_FetchWaterLevels(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	t.Run("parses portal payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/waterlevel/STN1001", r.URL.Path)
			assert.Equal(t, "2025-01-01", r.URL.Query().Get("start_date"))
			assert.Equal(t, "2025-01-10", r.URL.Query().Get("end_date"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[
				{"timestamp": "2025-01-01T10:00:00Z", "depth": 14.8},
				{"date": "2025-01-02", "water_level": 14.6}
			]`))
		}))
		defer srv.Close()

		readings, err := newTestClient(srv.URL).FetchWaterLevels(ctx, "STN1001", start, end)

		require.NoError(t, err)
		require.Len(t, readings, 2)
		assert.Equal(t, 14.8, readings[0].ResolvedDepth())
		assert.Equal(t, 14.6, readings[1].ResolvedDepth())
	})

	t.Run("falls back to generated series", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		readings, err := newTestClient(srv.URL).FetchWaterLevels(ctx, "STN1001", start, end)

		require.NoError(t, err)
		// One reading per day, start through end inclusive.
		assert.Len(t, readings, 10)
		for _, r := range readings {
			ts := r.ResolvedTime(time.Time{})
			assert.False(t, ts.IsZero())
			depth := r.ResolvedDepth()
			// base in [20,30], seasonal in [0,10], noise within ±0.25
			assert.GreaterOrEqual(t, depth, 19.75)
			assert.LessOrEqual(t, depth, 40.25)
		}
	})
}
