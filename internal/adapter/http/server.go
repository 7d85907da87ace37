package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/pro-finder-service/internal/domain"
	"github.com/couchcryptid/pro-finder-service/internal/observability"
)

// Prospector is the workflow behind the API.
type Prospector interface {
	sharedobs.ReadinessChecker
	Search(ctx context.Context, q domain.SearchQuery) ([]domain.BusinessRecord, error)
	ExportCSV(ctx context.Context, records []domain.BusinessRecord, keyword string) (domain.ExportFile, error)
	ExportXLSX(ctx context.Context, records []domain.BusinessRecord, keyword string) (domain.ExportFile, error)
	ExportWorkspace(ctx context.Context, records []domain.BusinessRecord, keyword string) (int, error)
	ExportSpreadsheet(ctx context.Context, records []domain.BusinessRecord, keyword, city string) (string, error)
	DescribeWorkspace(ctx context.Context) (domain.DatabaseInfo, error)
}

// Options tunes request handling.
type Options struct {
	// GeocodeCountry qualifies place names on /api/recherche-google.
	GeocodeCountry string
}

// Server exposes the prospecting API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	svc        Prospector
	opts       Options
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer creates the HTTP server and registers every route.
func NewServer(addr string, svc Prospector, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		svc:     svc,
		opts:    opts,
		logger:  logger,
		metrics: metrics,
	}
	s.httpServer = &http.Server{
		Addr:        addr,
		Handler:     s.instrument(mux),
		ReadTimeout: 10 * time.Second,
		// Searches wait between result pages and fetch details one by one.
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("GET /suggestions", s.handleSuggestions)
	mux.HandleFunc("GET /api/recherche-google", s.handleSearchQuery)
	mux.HandleFunc("POST /search", s.handleSearchJSON)
	mux.HandleFunc("POST /api/export-csv", s.handleExportCSV)
	mux.HandleFunc("POST /api/export-xlsx", s.handleExportXLSX)
	mux.HandleFunc("POST /api/export-notion", s.handleExportWorkspace)
	mux.HandleFunc("POST /api/export-sheets", s.handleExportSheets)
	mux.HandleFunc("GET /api/test-notion", s.handleTestWorkspace)

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(svc))
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
