// Command gensample writes a reproducible sample spatial report request for
// local testing with reportgen or the HTTP API.
//
// Usage:
//
//	go run ./cmd/gensample -out request.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"time"

	"github.com/couchcryptid/storm-report-service/internal/adapter/httpapi"
	"github.com/couchcryptid/storm-report-service/internal/domain"
)

// Austin, TX city center.
const (
	centerLat = 30.2672
	centerLon = -97.7431
)

var eventTypes = []string{"Thunderstorm Wind", "Hail", "Tornado", "Flash Flood", "Lightning", "Heavy Rain", "Funnel Cloud"}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outPath := flag.String("out", "request.json", "output path for the sample request")
	count := flag.Int("count", 40, "number of sample events")
	flag.Parse()

	req := httpapi.SpatialRequest{ReportMeta: sampleMeta(*count)}

	raw, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	if err := os.WriteFile(*outPath, raw, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Printf("wrote %s: %d events", *outPath, *count)
	return nil
}

func sampleMeta(count int) domain.ReportMeta {
	lat, lon := centerLat, centerLon
	events := make([]domain.EventRecord, 0, count)
	start := time.Date(2024, time.January, 3, 0, 0, 0, 0, time.UTC)

	for i := 0; i < count; i++ {
		// Deterministic spiral of points around the center.
		angle := float64(i) * 2.399963 // golden angle, spreads points evenly
		radius := 0.02 + 0.004*float64(i)
		day := start.AddDate(0, 0, i*3)

		ev := domain.EventRecord{
			"event_type": eventTypes[i%len(eventTypes)],
			"begin_date": day.Format("2006-01-02") + "T00:00:00Z",
			"latitude":   lat + radius*math.Sin(angle),
			"longitude":  lon + radius*math.Cos(angle),
		}
		switch i % 3 {
		case 0:
			ev["severity"] = "high"
		case 1:
			ev["severity"] = "medium"
		}
		events = append(events, ev)
	}

	return domain.ReportMeta{
		ReportID:  "sample-austin-2024",
		Title:     "Severe Weather Analysis: Austin Metro",
		Location:  "Austin, TX",
		StartDate: "2024-01-01",
		EndDate:   "2024-06-01",
		Spatial: &domain.SpatialData{
			CenterLat: ptr(lat),
			CenterLon: ptr(lon),
			Boundary: &domain.Boundary{
				Name: "Austin Metro Area",
				Type: "city",
				Coordinates: [][2]float64{
					{lat + 0.15, lon - 0.18},
					{lat + 0.15, lon + 0.18},
					{lat - 0.15, lon + 0.18},
					{lat - 0.15, lon - 0.18},
				},
			},
			Events:      events,
			HeatMapData: events,
		},
	}
}

func ptr(f float64) *float64 { return &f }
