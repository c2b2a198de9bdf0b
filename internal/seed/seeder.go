package seed

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/Goutham227347/Ground-Water/internal/analysis"
	"github.com/Goutham227347/Ground-Water/internal/logger"
	"github.com/Goutham227347/Ground-Water/internal/model"
	"github.com/Goutham227347/Ground-Water/internal/repository"
)

// Metrics are evaluated over the trailing year, the same window the sync
// pipeline uses.
const evaluationWindowDays = 365

// region bounds one state's demo catalog: its districts and an approximate
// coordinate box.
type region struct {
	name      string
	code      string
	districts []string
	latMin    float64
	latMax    float64
	lonMin    float64
	lonMax    float64
}

var regions = []region{
	{"Maharashtra", "MH", []string{"Pune", "Nashik", "Nagpur", "Aurangabad", "Thane"}, 16.0, 22.0, 73.0, 80.0},
	{"Tamil Nadu", "TN", []string{"Chennai", "Coimbatore", "Madurai", "Salem", "Tiruchirappalli"}, 8.0, 13.5, 76.0, 80.0},
	{"Karnataka", "KA", []string{"Bangalore", "Mysore", "Hubli", "Mangalore", "Belgaum"}, 11.5, 18.5, 74.0, 78.5},
	{"Rajasthan", "RJ", []string{"Jaipur", "Jodhpur", "Udaipur", "Kota", "Ajmer"}, 23.5, 30.0, 69.5, 78.0},
	{"Uttar Pradesh", "UP", []string{"Lucknow", "Kanpur", "Varanasi", "Agra", "Meerut"}, 23.9, 30.0, 77.0, 84.5},
	{"Gujarat", "GJ", []string{"Ahmedabad", "Surat", "Vadodara", "Rajkot", "Bhavnagar"}, 20.0, 24.5, 68.0, 74.0},
	{"Andhra Pradesh", "AP", []string{"Visakhapatnam", "Vijayawada", "Guntur", "Nellore", "Kurnool"}, 12.5, 19.0, 77.0, 84.5},
	{"Punjab", "PB", []string{"Ludhiana", "Amritsar", "Jalandhar", "Patiala", "Bathinda"}, 29.5, 32.5, 73.5, 77.0},
	{"Telangana", "TS", []string{"Hyderabad", "Warangal", "Nizamabad", "Karimnagar", "Khammam"}, 16.0, 19.5, 77.0, 81.0},
	{"Madhya Pradesh", "MP", []string{"Indore", "Bhopal", "Jabalpur", "Gwalior", "Ujjain"}, 21.0, 26.5, 74.0, 82.5},
}

var aquiferTypes = []string{"Alluvium", "Basalt", "Granite", "Sandstone", "Limestone"}

// monthlyDrifts are the per-station depth trends in meters per month.
var monthlyDrifts = []float64{-0.08, -0.04, 0, 0.03, 0.06}

// Seeder writes a demo catalog of stations with a year of monthly readings
// and computed metrics. Rows are upserted, so repeated runs are safe.
type Seeder struct {
	stations  repository.StationRepository
	levels    repository.WaterLevelRepository
	resources repository.ResourceRepository
	clock     clockwork.Clock
	rng       *rand.Rand
}

// Deps holds the seeder's collaborators. Rand is injectable so tests can fix
// the generated catalog.
type Deps struct {
	Stations  repository.StationRepository
	Levels    repository.WaterLevelRepository
	Resources repository.ResourceRepository
	Clock     clockwork.Clock
	Rand      *rand.Rand
}

func New(d Deps) *Seeder {
	return &Seeder{
		stations:  d.Stations,
		levels:    d.Levels,
		resources: d.Resources,
		clock:     d.Clock,
		rng:       d.Rand,
	}
}

// Result summarizes a seeding run.
type Result struct {
	StationsCreated int
	StationsUpdated int
	ReadingsCreated int
	MetricsComputed int
}

// Clear wipes readings, metrics, and stations, children first.
func (s *Seeder) Clear(ctx context.Context) error {
	if err := s.levels.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear water levels: %w", err)
	}
	if err := s.resources.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear resource metrics: %w", err)
	}
	if err := s.stations.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear stations: %w", err)
	}
	return nil
}

// Run seeds count stations. Station and reading failures abort the run;
// a failed metrics computation is logged and skipped so one degenerate
// station cannot sink the whole batch.
func (s *Seeder) Run(ctx context.Context, count int) (*Result, error) {
	res := &Result{}
	now := s.clock.Now()

	for i := 0; i < count; i++ {
		st := s.randomStation(i)
		stored, created, err := s.stations.Upsert(ctx, st)
		if err != nil {
			return nil, fmt.Errorf("seed station %s: %w", st.StationCode, err)
		}
		if created {
			res.StationsCreated++
		} else {
			res.StationsUpdated++
		}

		readings, err := s.seedReadings(ctx, stored, now)
		if err != nil {
			return nil, err
		}
		res.ReadingsCreated += readings

		if err := s.stations.TouchLastDataUpdate(ctx, stored.StationCode, now); err != nil {
			return nil, fmt.Errorf("update last data timestamp for %s: %w", stored.StationCode, err)
		}

		if err := s.computeMetrics(ctx, stored, now); err != nil {
			logger.Log.Warn("seed metrics failed",
				zap.String("station_code", stored.StationCode), zap.Error(err))
		} else {
			res.MetricsComputed++
		}

		logger.Log.Info("station seeded",
			zap.String("station_code", stored.StationCode),
			zap.String("state", stored.State),
			zap.Int("new_readings", readings))
	}

	return res, nil
}

func (s *Seeder) randomStation(i int) *model.Station {
	r := regions[s.rng.Intn(len(regions))]
	district := r.districts[s.rng.Intn(len(r.districts))]
	wellDepth := roundTo(30+s.rng.Float64()*90, 1)
	elevation := roundTo(50+s.rng.Float64()*750, 1)

	return &model.Station{
		StationCode: fmt.Sprintf("%s_%s_%d", r.code, district, 100+i),
		Name:        fmt.Sprintf("%s Monitoring %c", district, 'A'+rune(i%5)),
		State:       r.name,
		District:    district,
		Block:       fmt.Sprintf("Block-%d", 1+s.rng.Intn(10)),
		Latitude:    roundTo(r.latMin+s.rng.Float64()*(r.latMax-r.latMin), 4),
		Longitude:   roundTo(r.lonMin+s.rng.Float64()*(r.lonMax-r.lonMin), 4),
		AquiferType: aquiferTypes[s.rng.Intn(len(aquiferTypes))],
		WellDepth:   &wellDepth,
		Elevation:   &elevation,
		IsActive:    true,
	}
}

// seedReadings writes twelve monthly readings at 10:00, following the
// station's drift plus gaussian noise, clamped to the well's usable range.
func (s *Seeder) seedReadings(ctx context.Context, st *model.Station, now time.Time) (int, error) {
	base := 12 + s.rng.Float64()*8
	drift := monthlyDrifts[s.rng.Intn(len(monthlyDrifts))]

	// A missing well depth caps readings as if the well were 80 m deep.
	ceiling := 80.0
	if st.WellDepth != nil && *st.WellDepth != 0 {
		ceiling = *st.WellDepth
	}
	ceiling -= 5

	created := 0
	for m := 0; m < 12; m++ {
		day := now.AddDate(0, 0, -30*(11-m))
		depth := base + float64(m)*drift + s.rng.NormFloat64()*0.5
		depth = math.Max(2.0, math.Min(depth, ceiling))

		_, isNew, err := s.levels.Upsert(ctx, &model.WaterLevel{
			StationCode: st.StationCode,
			Timestamp:   time.Date(day.Year(), day.Month(), day.Day(), 10, 0, 0, 0, day.Location()),
			Depth:       roundTo(depth, 2),
			DataSource:  model.DataSourceSeed,
		})
		if err != nil {
			return created, fmt.Errorf("seed reading for %s: %w", st.StationCode, err)
		}
		if isNew {
			created++
		}
	}
	return created, nil
}

func (s *Seeder) computeMetrics(ctx context.Context, st *model.Station, now time.Time) error {
	start := now.AddDate(0, 0, -evaluationWindowDays)
	readings, err := s.levels.ListRange(ctx, st.StationCode, start, now)
	if err != nil {
		return fmt.Errorf("load evaluation window: %w", err)
	}
	if _, err := s.resources.Create(ctx, analysis.Evaluate(st, readings, start, now)); err != nil {
		return fmt.Errorf("store metrics: %w", err)
	}
	return nil
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow10(decimals)
	return math.Round(v*p) / p
}
