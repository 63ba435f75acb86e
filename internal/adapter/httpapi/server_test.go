package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/storm-report-service/internal/adapter/httpapi"
	"github.com/couchcryptid/storm-report-service/internal/domain"
)

// --- mocks ---

type mockComposer struct {
	pdf      []byte
	err      error
	readyErr error
	lastMeta domain.ReportMeta
}

func (m *mockComposer) ComposeAddressReport(_ context.Context, meta domain.ReportMeta, _ domain.WeatherStats) ([]byte, error) {
	m.lastMeta = meta
	return m.pdf, m.err
}

func (m *mockComposer) ComposeSpatialReport(_ context.Context, meta domain.ReportMeta) ([]byte, error) {
	m.lastMeta = meta
	return m.pdf, m.err
}

func (m *mockComposer) CheckReadiness(_ context.Context) error {
	return m.readyErr
}

func newServer(composer *mockComposer) *httpapi.Server {
	return httpapi.NewServer(":0", composer, slog.Default())
}

func postJSON(t *testing.T, srv *httpapi.Server, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func validRequest() httpapi.AddressRequest {
	return httpapi.AddressRequest{
		ReportMeta: domain.ReportMeta{
			ReportID:  "rpt-7",
			Title:     "Storm Report",
			Location:  "Austin, TX",
			StartDate: "2024-01-01",
			EndDate:   "2024-06-01",
		},
	}
}

// --- tests ---

func TestAddressReportEndpoint(t *testing.T) {
	t.Run("returns PDF attachment", func(t *testing.T) {
		composer := &mockComposer{pdf: []byte("%PDF-1.7 fake")}
		srv := newServer(composer)

		rec := postJSON(t, srv, "/v1/reports/address", validRequest())

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "rpt-7.pdf")
		assert.Equal(t, "%PDF-1.7 fake", rec.Body.String())
		assert.Equal(t, "rpt-7", composer.lastMeta.ReportID)
	})

	t.Run("invalid JSON is a 400", func(t *testing.T) {
		srv := newServer(&mockComposer{})

		req := httptest.NewRequest(http.MethodPost, "/v1/reports/address", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("validation failure is a 400 naming fields", func(t *testing.T) {
		composer := &mockComposer{err: &domain.ValidationError{Missing: []string{"report_id", "title"}}}
		srv := newServer(composer)

		rec := postJSON(t, srv, "/v1/reports/address", httpapi.AddressRequest{})

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, []any{"report_id", "title"}, body["missing"])
	})

	t.Run("renderer failure is a 503", func(t *testing.T) {
		composer := &mockComposer{err: &domain.RendererError{Backend: "staticmap", Err: fmt.Errorf("tiles down")}}
		srv := newServer(composer)

		rec := postJSON(t, srv, "/v1/reports/address", validRequest())
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("other failures are a 500", func(t *testing.T) {
		composer := &mockComposer{err: fmt.Errorf("boom")}
		srv := newServer(composer)

		rec := postJSON(t, srv, "/v1/reports/address", validRequest())
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestSpatialReportEndpoint(t *testing.T) {
	composer := &mockComposer{pdf: []byte("%PDF-1.7 spatial")}
	srv := newServer(composer)

	req := httpapi.SpatialRequest{ReportMeta: validRequest().ReportMeta}
	rec := postJSON(t, srv, "/v1/reports/spatial", req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "rpt-7", composer.lastMeta.ReportID)
}

func TestProbeEndpoints(t *testing.T) {
	t.Run("healthz", func(t *testing.T) {
		srv := newServer(&mockComposer{})
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
	})

	t.Run("readyz ready", func(t *testing.T) {
		srv := newServer(&mockComposer{})
		req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("readyz not ready", func(t *testing.T) {
		srv := newServer(&mockComposer{readyErr: fmt.Errorf("font missing")})
		req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("metrics", func(t *testing.T) {
		srv := newServer(&mockComposer{})
		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
