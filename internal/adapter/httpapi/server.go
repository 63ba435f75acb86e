// Package httpapi exposes report generation over HTTP alongside health,
// readiness, and metrics endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/storm-report-service/internal/domain"
)

// Composer generates report documents from request payloads.
type Composer interface {
	ComposeAddressReport(ctx context.Context, meta domain.ReportMeta, stats domain.WeatherStats) ([]byte, error)
	ComposeSpatialReport(ctx context.Context, meta domain.ReportMeta) ([]byte, error)
	CheckReadiness(ctx context.Context) error
}

// AddressRequest is the payload of POST /v1/reports/address.
type AddressRequest struct {
	ReportMeta   domain.ReportMeta   `json:"report_meta"`
	WeatherStats domain.WeatherStats `json:"weather_stats"`
}

// SpatialRequest is the payload of POST /v1/reports/spatial.
type SpatialRequest struct {
	ReportMeta domain.ReportMeta `json:"report_meta"`
}

// Server exposes the report API plus health, readiness, and metrics routes.
type Server struct {
	httpServer *http.Server
	composer   Composer
	logger     *slog.Logger
}

// NewServer creates the HTTP server. Report generation renders charts and
// maps inline, so the write timeout is generous compared to the probe
// endpoints.
func NewServer(addr string, composer Composer, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 120 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		composer: composer,
		logger:   logger,
	}

	mux.HandleFunc("POST /v1/reports/address", s.handleAddressReport)
	mux.HandleFunc("POST /v1/reports/spatial", s.handleSpatialReport)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleAddressReport(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	logger := s.logger.With("request_id", requestID, "kind", "address")

	var req AddressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON payload"})
		return
	}

	pdf, err := s.composer.ComposeAddressReport(r.Context(), req.ReportMeta, req.WeatherStats)
	if err != nil {
		s.writeComposeError(w, logger, err)
		return
	}
	s.writePDF(w, logger, req.ReportMeta.ReportID, pdf)
}

func (s *Server) handleSpatialReport(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	logger := s.logger.With("request_id", requestID, "kind", "spatial")

	var req SpatialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON payload"})
		return
	}

	pdf, err := s.composer.ComposeSpatialReport(r.Context(), req.ReportMeta)
	if err != nil {
		s.writeComposeError(w, logger, err)
		return
	}
	s.writePDF(w, logger, req.ReportMeta.ReportID, pdf)
}

// writeComposeError maps compose failures to status codes: validation
// problems are the caller's fault, renderer backend failures are a
// dependency outage, anything else is internal.
func (s *Server) writeComposeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		logger.Warn("report request rejected", "missing", validationErr.Missing)
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "invalid report metadata",
			"missing": validationErr.Missing,
		})
		return
	}

	var rendererErr *domain.RendererError
	if errors.As(err, &rendererErr) {
		logger.Error("report generation failed", "backend", rendererErr.Backend, "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "map rendering backend unavailable",
		})
		return
	}

	logger.Error("report generation failed", "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "report generation failed"})
}

func (s *Server) writePDF(w http.ResponseWriter, logger *slog.Logger, reportID string, pdf []byte) {
	logger.Info("report generated", "report_id", reportID, "bytes", len(pdf))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", reportID+".pdf"))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf) //nolint:errcheck // client disconnects are not actionable
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.composer.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort health response
}
