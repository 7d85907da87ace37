package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pro_finder"

// Metrics holds the Prometheus counters and histograms for the prospecting service.
type Metrics struct {
	// HTTP surface.
	HTTPRequests *prometheus.CounterVec   // labels: route, status
	HTTPDuration *prometheus.HistogramVec // labels: route

	// Places provider.
	PlacesRequests      *prometheus.CounterVec   // labels: method={geocode,nearby,details}, outcome={success,error,empty}
	PlacesAPIDuration   *prometheus.HistogramVec // labels: method
	PlaceDetailsSkipped prometheus.Counter
	SearchResults       prometheus.Histogram

	// Workspace and spreadsheet providers.
	WorkspaceRequests      *prometheus.CounterVec // labels: method={query,create,retrieve}, outcome={success,error}
	SpreadsheetRequests    *prometheus.CounterVec // labels: method, outcome
	DuplicateCheckDegraded prometheus.Counter

	// Exporter internals.
	WorkspacePages          *prometheus.CounterVec // labels: outcome={created,skipped,error}
	SpreadsheetStepFailures *prometheus.CounterVec // labels: step

	// Exports.
	Exports         *prometheus.CounterVec // labels: target, outcome={success,error}
	ExportedRecords *prometheus.CounterVec // labels: target
	ExportEvents    *prometheus.CounterVec // labels: outcome={published,error}
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.PlacesRequests,
		m.PlacesAPIDuration,
		m.PlaceDetailsSkipped,
		m.SearchResults,
		m.WorkspaceRequests,
		m.SpreadsheetRequests,
		m.DuplicateCheckDegraded,
		m.WorkspacePages,
		m.SpreadsheetStepFailures,
		m.Exports,
		m.ExportedRecords,
		m.ExportEvents,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern and status code.",
		}, []string{"route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds. Searches include pagination delays.",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2.5, 5, 10, 20, 40},
		}, []string{"route"}),
		PlacesRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "places_requests_total",
			Help:      "Google Maps API requests by method and outcome.",
		}, []string{"method", "outcome"}),
		PlacesAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "places_api_duration_seconds",
			Help:      "Google Maps API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method"}),
		PlaceDetailsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "place_details_skipped_total",
			Help:      "Places dropped from search results because their details could not be fetched.",
		}),
		SearchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_results",
			Help:      "Number of business records returned per search.",
			Buckets:   []float64{0, 1, 5, 10, 20, 40, 60},
		}),
		WorkspaceRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workspace_requests_total",
			Help:      "Notion API requests by method and outcome.",
		}, []string{"method", "outcome"}),
		SpreadsheetRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "spreadsheet_requests_total",
			Help:      "Google Sheets and Drive API requests by method and outcome.",
		}, []string{"method", "outcome"}),
		DuplicateCheckDegraded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicate_check_degraded_total",
			Help:      "Duplicate lookups that failed and were reported as not exported.",
		}),
		WorkspacePages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workspace_pages_total",
			Help:      "Workspace export records by outcome.",
		}, []string{"outcome"}),
		SpreadsheetStepFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "spreadsheet_step_failures_total",
			Help:      "Spreadsheet exports aborted, by the step that failed.",
		}, []string{"step"}),
		Exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Export requests by target and outcome.",
		}, []string{"target", "outcome"}),
		ExportedRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exported_records_total",
			Help:      "Business records written per export target.",
		}, []string{"target"}),
		ExportEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "export_events_total",
			Help:      "Export audit events by publish outcome.",
		}, []string{"outcome"}),
	}
}
