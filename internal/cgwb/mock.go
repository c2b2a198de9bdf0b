package cgwb

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"
)

var (
	mockStates    = []string{"Karnataka", "Tamil Nadu", "Maharashtra", "Telangana"}
	mockDistricts = []string{"Bangalore", "Chennai", "Mumbai", "Hyderabad", "Kolar", "Vellore"}
)

// MockClient generates plausible DWLR data offline: a catalog of 20 stations
// scattered around Bengaluru and daily water levels following a seasonal sine
// wave with noise. It backs HTTPClient's fallback path and works standalone
// for demos.
type MockClient struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockClient seeds the generator; the same seed reproduces the same data.
func NewMockClient(seed int64) *MockClient {
	return &MockClient{rng: rand.New(rand.NewSource(seed))}
}

var _ Client = (*MockClient)(nil)

// FetchStations returns the 20-station demo catalog. The state and district
// arguments are accepted for interface parity but not applied, mirroring the
// portal's indifferent behavior on its demo dataset.
func (m *MockClient) FetchStations(ctx context.Context, state, district string) ([]Station, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stations := make([]Station, 0, 20)
	for i := 1; i <= 20; i++ {
		wellDepth := 100 + m.rng.Float64()*50
		elevation := 900 + m.rng.Float64()*20
		active := true
		stations = append(stations, Station{
			StationCode: fmt.Sprintf("STN%d", 1000+i),
			Name:        fmt.Sprintf("DWLR Station %d", 1000+i),
			State:       mockStates[m.rng.Intn(len(mockStates))],
			District:    mockDistricts[m.rng.Intn(len(mockDistricts))],
			Block:       fmt.Sprintf("Block %c", rune('A'+i%5)),
			Latitude:    12.9716 + (m.rng.Float64()-0.5)*5,
			Longitude:   77.5946 + (m.rng.Float64()-0.5)*5,
			AquiferType: "Hard Rock",
			WellDepth:   &wellDepth,
			Elevation:   &elevation,
			IsActive:    &active,
		})
	}
	return stations, nil
}

// FetchWaterLevels generates one reading per day from start through end
// inclusive. Depth = base level + seasonal sine + noise, rounded to 2 dp.
func (m *MockClient) FetchWaterLevels(ctx context.Context, stationCode string, start, end time.Time) ([]Reading, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	baseDepth := 20 + m.rng.Float64()*10
	phase := m.rng.Float64() * 6.28

	readings := make([]Reading, 0)
	for current := start; !current.After(end); current = current.AddDate(0, 0, 1) {
		seasonal := 5 * (1 + math.Sin(float64(current.YearDay())/365.0*6.28+phase))
		noise := (m.rng.Float64() - 0.5) * 0.5
		depth := math.Round((baseDepth+seasonal+noise)*100) / 100
		readings = append(readings, Reading{
			Timestamp: current.Format(time.RFC3339),
			Depth:     &depth,
		})
	}
	return readings, nil
}
