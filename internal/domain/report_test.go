package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/storm-report-service/internal/domain"
)

func validMeta() domain.ReportMeta {
	return domain.ReportMeta{
		ReportID:  "rpt-1",
		Title:     "Storm Analysis",
		Location:  "Austin, TX",
		StartDate: "2024-01-01",
		EndDate:   "2024-06-01",
	}
}

func TestReportMeta_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		require.NoError(t, validMeta().Validate())
	})

	t.Run("missing single field", func(t *testing.T) {
		meta := validMeta()
		meta.Title = ""

		err := meta.Validate()
		require.Error(t, err)

		var vErr *domain.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, []string{"title"}, vErr.Missing)
	})

	t.Run("names every missing field", func(t *testing.T) {
		err := domain.ReportMeta{Title: "only title"}.Validate()
		require.Error(t, err)

		var vErr *domain.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, []string{"report_id", "location", "start_date", "end_date"}, vErr.Missing)
	})
}

func TestSpatialData_Center(t *testing.T) {
	lat, lon := 30.2672, -97.7431

	t.Run("explicit center", func(t *testing.T) {
		s := &domain.SpatialData{CenterLat: &lat, CenterLon: &lon}
		got, ok := s.Center()
		require.True(t, ok)
		assert.Equal(t, domain.Geo{Lat: lat, Lon: lon}, got)
	})

	t.Run("falls back to first heat point", func(t *testing.T) {
		s := &domain.SpatialData{
			HeatMapData: []domain.EventRecord{
				{"event_type": "hail"}, // no coordinates, passed over
				{"latitude": 35.0, "longitude": -101.8},
			},
		}
		got, ok := s.Center()
		require.True(t, ok)
		assert.Equal(t, domain.Geo{Lat: 35.0, Lon: -101.8}, got)
	})

	t.Run("no center available", func(t *testing.T) {
		_, ok := (&domain.SpatialData{}).Center()
		assert.False(t, ok)
	})

	t.Run("nil receiver", func(t *testing.T) {
		var s *domain.SpatialData
		_, ok := s.Center()
		assert.False(t, ok)
	})
}

func TestBoundary_Polygon(t *testing.T) {
	b := &domain.Boundary{
		Name: "Metro",
		Coordinates: [][2]float64{
			{30.4, -97.9},
			{30.4, -97.5},
			{30.1, -97.5},
		},
	}
	got := b.Polygon()
	require.Len(t, got, 3)
	assert.Equal(t, domain.Geo{Lat: 30.4, Lon: -97.9}, got[0])

	var nilBoundary *domain.Boundary
	assert.Nil(t, nilBoundary.Polygon())
}

func TestFormatHelpers(t *testing.T) {
	f := 101.5
	n := 7

	assert.Equal(t, "101.5°F", domain.FormatMeasure(&f, "°F"))
	assert.Equal(t, "N/A mph", domain.FormatMeasure(nil, " mph"))
	assert.Equal(t, "7", domain.FormatCount(&n))
	assert.Equal(t, "0", domain.FormatCount(nil))
}
