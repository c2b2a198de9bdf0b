// Package archive snapshots raw CGWB payloads into object storage before
// they are normalized into Postgres, keeping original responses replayable.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Goutham227347/Ground-Water/internal/cgwb"
	"github.com/Goutham227347/Ground-Water/internal/storage"
)

const objectTimeLayout = "20060102T150405Z"

// Archiver stores raw portal payloads. Implementations return the object key
// the payload landed under.
type Archiver interface {
	// SaveStations stores a station catalog snapshot.
	SaveStations(ctx context.Context, stations []cgwb.Station, fetchedAt time.Time) (string, error)

	// SaveWaterLevels stores one station's reading series.
	SaveWaterLevels(ctx context.Context, stationCode string, readings []cgwb.Reading, fetchedAt time.Time) (string, error)
}

type objectArchiver struct {
	store  storage.Storage
	prefix string
}

// New builds an Archiver writing JSON objects under the given key prefix.
func New(store storage.Storage, prefix string) Archiver {
	return &objectArchiver{store: store, prefix: prefix}
}

var _ Archiver = (*objectArchiver)(nil)

func (a *objectArchiver) SaveStations(ctx context.Context, stations []cgwb.Station, fetchedAt time.Time) (string, error) {
	key := fmt.Sprintf("%s/stations/%s.json", a.prefix, fetchedAt.UTC().Format(objectTimeLayout))
	meta := map[string]string{"count": strconv.Itoa(len(stations))}
	if err := a.put(ctx, key, stations, meta); err != nil {
		return "", err
	}
	return key, nil
}

func (a *objectArchiver) SaveWaterLevels(ctx context.Context, stationCode string, readings []cgwb.Reading, fetchedAt time.Time) (string, error) {
	key := fmt.Sprintf("%s/water-levels/%s/%s.json", a.prefix, stationCode, fetchedAt.UTC().Format(objectTimeLayout))
	meta := map[string]string{
		"station_code": stationCode,
		"count":        strconv.Itoa(len(readings)),
	}
	if err := a.put(ctx, key, readings, meta); err != nil {
		return "", err
	}
	return key, nil
}

func (a *objectArchiver) put(ctx context.Context, key string, payload any, meta map[string]string) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal archive payload: %w", err)
	}
	_, err = a.store.Put(ctx, key, bytes.NewReader(b), storage.PutObjectOptions{
		Size:        int64(len(b)),
		ContentType: "application/json",
		Metadata:    meta,
	})
	return err
}

type disabledArchiver struct{}

// Disabled returns an Archiver that drops everything, for deployments
// without object storage.
func Disabled() Archiver {
	return disabledArchiver{}
}

func (disabledArchiver) SaveStations(context.Context, []cgwb.Station, time.Time) (string, error) {
	return "", nil
}

func (disabledArchiver) SaveWaterLevels(context.Context, string, []cgwb.Reading, time.Time) (string, error) {
	return "", nil
}
