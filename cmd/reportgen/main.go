// Command reportgen generates a single report PDF from a JSON request file,
// using the native map backend. Useful for local inspection of report
// output without running the service.
//
// Usage:
//
//	go run ./cmd/reportgen -kind spatial -request request.json -out report.pdf
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/couchcryptid/storm-report-service/internal/adapter/httpapi"
	"github.com/couchcryptid/storm-report-service/internal/adapter/staticmap"
	"github.com/couchcryptid/storm-report-service/internal/chart"
	"github.com/couchcryptid/storm-report-service/internal/compose"
	"github.com/couchcryptid/storm-report-service/internal/geo"
	"github.com/couchcryptid/storm-report-service/internal/layout"
	"github.com/couchcryptid/storm-report-service/internal/observability"
	"github.com/couchcryptid/storm-report-service/internal/style"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	kind := flag.String("kind", "spatial", "report kind: address or spatial")
	requestPath := flag.String("request", "", "path to JSON request file")
	outPath := flag.String("out", "report.pdf", "output PDF path")
	styleFile := flag.String("style", "", "optional style override YAML")
	timeout := flag.Duration("timeout", 60*time.Second, "render timeout")
	flag.Parse()

	if *requestPath == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -request")
	}

	raw, err := os.ReadFile(*requestPath)
	if err != nil {
		return fmt.Errorf("read request: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	metrics := observability.NewMetricsForTesting()
	styleCfg, err := style.Load(*styleFile)
	if err != nil {
		return fmt.Errorf("load style: %w", err)
	}

	charts, err := chart.New(styleCfg, logger, metrics)
	if err != nil {
		return fmt.Errorf("init chart renderer: %w", err)
	}
	backend := staticmap.New(styleCfg, "", logger)
	geoRenderer := geo.NewRenderer(backend, *timeout, styleCfg, logger, metrics)
	composer := compose.New(charts, geoRenderer, layout.NewEngine(), logger, metrics)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var pdf []byte
	switch *kind {
	case "address":
		var req httpapi.AddressRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return fmt.Errorf("parse request: %w", err)
		}
		pdf, err = composer.ComposeAddressReport(ctx, req.ReportMeta, req.WeatherStats)
	case "spatial":
		var req httpapi.SpatialRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return fmt.Errorf("parse request: %w", err)
		}
		pdf, err = composer.ComposeSpatialReport(ctx, req.ReportMeta)
	default:
		return fmt.Errorf("unknown kind %q: want address or spatial", *kind)
	}
	if err != nil {
		return fmt.Errorf("compose report: %w", err)
	}

	if err := os.WriteFile(*outPath, pdf, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("wrote %s (%d bytes)\n", *outPath, len(pdf))
	return nil
}
