package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDate(t *testing.T) {
	ts := time.Date(2025, 6, 14, 18, 45, 12, 0, time.FixedZone("IST", 5*3600+1800))
	d := NewDate(ts)

	assert.Equal(t, "2025-06-14", d.String())
	assert.Equal(t, time.UTC, d.Location())
	assert.Equal(t, 0, d.Hour())
}

func TestDate_JSON(t *testing.T) {
	d := NewDate(time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC))

	b, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2025-01-03"`, string(b))

	var back Date
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, back.Equal(d))

	var invalid Date
	assert.Error(t, json.Unmarshal([]byte(`"03/01/2025"`), &invalid))
}

func TestDate_Scan(t *testing.T) {
	tests := []struct {
		name    string
		src     any
		want    string
		wantErr bool
	}{
		{name: "time.Time", src: time.Date(2024, 11, 30, 10, 0, 0, 0, time.UTC), want: "2024-11-30"},
		{name: "string", src: "2024-02-29", want: "2024-02-29"},
		{name: "bytes", src: []byte("2023-07-01"), want: "2023-07-01"},
		{name: "nil clears", src: nil, want: "0001-01-01"},
		{name: "unsupported type", src: 42, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := d.Scan(tt.src)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestDate_Before(t *testing.T) {
	earlier := NewDate(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	later := NewDate(time.Date(2025, 3, 2, 23, 59, 0, 0, time.UTC))

	assert.True(t, earlier.Before(later))
	assert.False(t, later.Before(earlier))
	assert.False(t, earlier.Before(earlier))
}
