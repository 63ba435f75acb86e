package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/storm-report-service/internal/domain"
)

func TestEventRecord_Date(t *testing.T) {
	tests := []struct {
		name   string
		record domain.EventRecord
		want   time.Time
		ok     bool
	}{
		{
			name:   "plain date",
			record: domain.EventRecord{"date": "2024-04-26"},
			want:   time.Date(2024, time.April, 26, 0, 0, 0, 0, time.UTC),
			ok:     true,
		},
		{
			name:   "timestamp prefix",
			record: domain.EventRecord{"date": "2024-04-26T15:04:05Z"},
			want:   time.Date(2024, time.April, 26, 0, 0, 0, 0, time.UTC),
			ok:     true,
		},
		{
			name:   "begin_date fallback",
			record: domain.EventRecord{"begin_date": "2023-12-01"},
			want:   time.Date(2023, time.December, 1, 0, 0, 0, 0, time.UTC),
			ok:     true,
		},
		{
			name:   "date key wins over begin_date",
			record: domain.EventRecord{"date": "2024-01-01", "begin_date": "2020-01-01"},
			want:   time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			ok:     true,
		},
		{
			name:   "nil primary falls through",
			record: domain.EventRecord{"date": nil, "begin_date": "2024-02-02"},
			want:   time.Date(2024, time.February, 2, 0, 0, 0, 0, time.UTC),
			ok:     true,
		},
		{
			name:   "too short",
			record: domain.EventRecord{"date": "2024-04"},
			ok:     false,
		},
		{
			name:   "wrong format",
			record: domain.EventRecord{"date": "04/26/2024"},
			ok:     false,
		},
		{
			name:   "missing",
			record: domain.EventRecord{"event_type": "hail"},
			ok:     false,
		},
		{
			name:   "non-string",
			record: domain.EventRecord{"date": 20240426},
			ok:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.record.Date()
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestEventRecord_Category(t *testing.T) {
	tests := []struct {
		name   string
		record domain.EventRecord
		want   string
	}{
		{"type key", domain.EventRecord{"type": "Hail"}, "Hail"},
		{"event_type fallback", domain.EventRecord{"event_type": "Tornado"}, "Tornado"},
		{"type wins", domain.EventRecord{"type": "Hail", "event_type": "Tornado"}, "Hail"},
		{"missing", domain.EventRecord{}, domain.UnknownCategory},
		{"non-string", domain.EventRecord{"type": 7}, domain.UnknownCategory},
		{"nil value", domain.EventRecord{"type": nil}, domain.UnknownCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.record.Category())
		})
	}
}

func TestEventRecord_Coordinates(t *testing.T) {
	tests := []struct {
		name   string
		record domain.EventRecord
		want   domain.Geo
		ok     bool
	}{
		{
			name:   "float coordinates",
			record: domain.EventRecord{"latitude": 30.2672, "longitude": -97.7431},
			want:   domain.Geo{Lat: 30.2672, Lon: -97.7431},
			ok:     true,
		},
		{
			name:   "begin_lat begin_lon fallback",
			record: domain.EventRecord{"begin_lat": 35.0, "begin_lon": -101.8},
			want:   domain.Geo{Lat: 35.0, Lon: -101.8},
			ok:     true,
		},
		{
			name:   "string coercion",
			record: domain.EventRecord{"latitude": "30.5", "longitude": " -97.1 "},
			want:   domain.Geo{Lat: 30.5, Lon: -97.1},
			ok:     true,
		},
		{
			name:   "mixed alias keys",
			record: domain.EventRecord{"latitude": 30.0, "begin_lon": -97.0},
			want:   domain.Geo{Lat: 30.0, Lon: -97.0},
			ok:     true,
		},
		{
			name:   "missing longitude",
			record: domain.EventRecord{"latitude": 30.0},
			ok:     false,
		},
		{
			name:   "non-numeric latitude",
			record: domain.EventRecord{"latitude": "north", "longitude": -97.0},
			ok:     false,
		},
		{
			name:   "empty record",
			record: domain.EventRecord{},
			ok:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.record.Coordinates()
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestEventRecord_Severity(t *testing.T) {
	v, ok := domain.EventRecord{"severity": "high"}.Severity()
	require.True(t, ok)
	assert.Equal(t, "high", v)

	v, ok = domain.EventRecord{"severity": 2.5}.Severity()
	require.True(t, ok)
	assert.Equal(t, 2.5, v)

	_, ok = domain.EventRecord{}.Severity()
	assert.False(t, ok)

	_, ok = domain.EventRecord{"severity": nil}.Severity()
	assert.False(t, ok)
}
