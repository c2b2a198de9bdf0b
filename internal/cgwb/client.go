package cgwb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/Goutham227347/Ground-Water/internal/config"
	"github.com/Goutham227347/Ground-Water/internal/logger"
)

// The portal rejects requests without a browser-looking agent.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Client fetches DWLR station catalogs and water level series.
type Client interface {
	// FetchStations lists stations, optionally narrowed by state and district.
	FetchStations(ctx context.Context, state, district string) ([]Station, error)

	// FetchWaterLevels returns readings for one station inside [start, end].
	FetchWaterLevels(ctx context.Context, stationCode string, start, end time.Time) ([]Reading, error)
}

// HTTPClient talks to the CGWB portal over HTTP. Any failure mode
// (network error, bad status, non-JSON body, malformed payload) falls back to
// a seeded MockClient, so callers always get data.
type HTTPClient struct {
	baseURL  string
	client   *http.Client
	validate *validator.Validate
	fallback *MockClient
}

// NewHTTPClient builds a portal client from configuration. Requests are
// traced through the otelhttp transport.
func NewHTTPClient(cfg config.CGWBConfig) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client: &http.Client{
			Timeout:   time.Duration(cfg.TimeoutSec) * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		validate: validator.New(validator.WithRequiredStructEnabled()),
		fallback: NewMockClient(time.Now().UnixNano()),
	}
}

var _ Client = (*HTTPClient)(nil)

// FetchStations lists the station catalog, dropping entries that fail
// validation (no code at all, out-of-range coordinates).
func (c *HTTPClient) FetchStations(ctx context.Context, state, district string) ([]Station, error) {
	q := url.Values{}
	if state != "" {
		q.Set("state", state)
	}
	if district != "" {
		q.Set("district", district)
	}
	endpoint := c.baseURL + "/api/stations"
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var stations []Station
	if err := c.getJSON(ctx, endpoint, &stations); err != nil {
		logger.Log.Info("CGWB station fetch failed, using mock data", zap.Error(err))
		return c.fallback.FetchStations(ctx, state, district)
	}
	return c.filterStations(stations), nil
}

// FetchWaterLevels returns readings for one station inside [start, end].
func (c *HTTPClient) FetchWaterLevels(ctx context.Context, stationCode string, start, end time.Time) ([]Reading, error) {
	q := url.Values{
		"start_date": []string{start.Format("2006-01-02")},
		"end_date":   []string{end.Format("2006-01-02")},
	}
	endpoint := fmt.Sprintf("%s/api/waterlevel/%s?%s", c.baseURL, url.PathEscape(stationCode), q.Encode())

	var readings []Reading
	if err := c.getJSON(ctx, endpoint, &readings); err != nil {
		logger.Log.Info("CGWB water level fetch failed, using mock data",
			zap.String("station_code", stationCode), zap.Error(err))
		return c.fallback.FetchWaterLevels(ctx, stationCode, start, end)
	}
	return readings, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		return fmt.Errorf("unexpected content type %q", ct)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *HTTPClient) filterStations(stations []Station) []Station {
	out := make([]Station, 0, len(stations))
	for _, s := range stations {
		if err := c.validate.Struct(s); err != nil {
			logger.Log.Warn("dropping invalid CGWB station entry",
				zap.String("station_code", s.ResolvedCode()), zap.Error(err))
			continue
		}
		out = append(out, s)
	}
	return out
}
