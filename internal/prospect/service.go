package prospect

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/couchcryptid/pro-finder-service/internal/domain"
	"github.com/couchcryptid/pro-finder-service/internal/observability"
)

// Dependencies are the external adapters behind a Service. Only Places is
// required; a nil Workspace, Spreadsheets or Events disables that feature.
type Dependencies struct {
	Places       PlacesProvider
	Workspace    Workspace
	Spreadsheets Spreadsheets
	Events       EventPublisher
	PhoneRegion  string
}

// Service is the request-facing entry point for searches and exports.
type Service struct {
	searcher    *Searcher
	workspace   Workspace
	workspaceEx *WorkspaceExporter
	sheetsEx    *SpreadsheetExporter
	events      EventPublisher
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// NewService wires the workflow components around deps.
func NewService(deps Dependencies, logger *slog.Logger, metrics *observability.Metrics) *Service {
	duplicates := NewDuplicateChecker(deps.Workspace, logger, metrics)

	s := &Service{
		searcher:  NewSearcher(deps.Places, duplicates, logger, metrics),
		workspace: deps.Workspace,
		events:    deps.Events,
		logger:    logger,
		metrics:   metrics,
	}
	if deps.Workspace != nil {
		s.workspaceEx = NewWorkspaceExporter(deps.Workspace, duplicates, deps.PhoneRegion, logger, metrics)
	}
	if deps.Spreadsheets != nil {
		s.sheetsEx = NewSpreadsheetExporter(deps.Spreadsheets, logger, metrics)
	}
	return s
}

// CheckReadiness reports whether a places provider is wired.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.searcher.places == nil {
		return errors.New("places provider not configured")
	}
	return nil
}

// Search runs a prospect search.
func (s *Service) Search(ctx context.Context, q domain.SearchQuery) ([]domain.BusinessRecord, error) {
	return s.searcher.Search(ctx, q)
}

// ExportCSV renders records as a CSV download.
func (s *Service) ExportCSV(ctx context.Context, records []domain.BusinessRecord, keyword string) (domain.ExportFile, error) {
	data, err := CSV(records, keyword)
	if err != nil {
		s.recordExport(domain.TargetCSV, 0, err)
		return domain.ExportFile{}, err
	}
	s.recordExport(domain.TargetCSV, len(records), nil)
	s.publish(ctx, domain.TargetCSV, keyword, records)
	return domain.ExportFile{
		Name:        exportFileName(keyword, "csv"),
		ContentType: csvContentType,
		Data:        data,
	}, nil
}

// ExportXLSX renders records as an Excel workbook download.
func (s *Service) ExportXLSX(ctx context.Context, records []domain.BusinessRecord, keyword string) (domain.ExportFile, error) {
	data, err := XLSX(records, keyword)
	if err != nil {
		s.recordExport(domain.TargetXLSX, 0, err)
		return domain.ExportFile{}, err
	}
	s.recordExport(domain.TargetXLSX, len(records), nil)
	s.publish(ctx, domain.TargetXLSX, keyword, records)
	return domain.ExportFile{
		Name:        exportFileName(keyword, "xlsx"),
		ContentType: xlsxContentType,
		Data:        data,
	}, nil
}

// ExportWorkspace creates workspace pages and returns how many were new.
func (s *Service) ExportWorkspace(ctx context.Context, records []domain.BusinessRecord, keyword string) (int, error) {
	if len(records) == 0 {
		return 0, errNoResultsSelected
	}
	if s.workspaceEx == nil {
		return 0, domain.NotConfiguredError("Configuration Notion manquante")
	}

	created := s.workspaceEx.ExportMany(ctx, records, keyword)
	s.recordExport(domain.TargetWorkspace, len(created), nil)
	s.publish(ctx, domain.TargetWorkspace, keyword, created)
	return len(created), nil
}

// ExportSpreadsheet publishes records to a new shared spreadsheet titled
// after the search and returns its URL.
func (s *Service) ExportSpreadsheet(ctx context.Context, records []domain.BusinessRecord, keyword, city string) (string, error) {
	if len(records) == 0 {
		return "", errNoResultsSelected
	}
	if s.sheetsEx == nil {
		return "", domain.NotConfiguredError("Export Google Sheets non configuré")
	}

	tagged := make([]domain.BusinessRecord, len(records))
	for i, rec := range records {
		rec.Keyword = keyword
		tagged[i] = rec
	}

	url, err := s.sheetsEx.ExportBatch(ctx, tagged, "Recherche "+keyword+" - "+city)
	if err != nil {
		s.recordExport(domain.TargetSheets, 0, err)
		return "", err
	}
	s.recordExport(domain.TargetSheets, len(records), nil)
	s.publish(ctx, domain.TargetSheets, keyword, records)
	return url, nil
}

// DescribeWorkspace returns the workspace database summary.
func (s *Service) DescribeWorkspace(ctx context.Context) (domain.DatabaseInfo, error) {
	if s.workspace == nil {
		return domain.DatabaseInfo{}, domain.NotConfiguredError("Configuration Notion manquante")
	}
	return s.workspace.DescribeDatabase(ctx)
}

func (s *Service) recordExport(target string, written int, err error) {
	if err != nil {
		s.metrics.Exports.WithLabelValues(target, "error").Inc()
		return
	}
	s.metrics.Exports.WithLabelValues(target, "success").Inc()
	s.metrics.ExportedRecords.WithLabelValues(target).Add(float64(written))
}

// publish emits the export audit event for the records actually written.
// Failures are logged only.
func (s *Service) publish(ctx context.Context, target, keyword string, records []domain.BusinessRecord) {
	if s.events == nil {
		return
	}
	ids := make([]string, len(records))
	for i, rec := range records {
		ids[i] = rec.ID
	}
	event := domain.ExportEvent{
		ID:         uuid.NewString(),
		Target:     target,
		Keyword:    keyword,
		Count:      len(records),
		PlaceIDs:   ids,
		ExportedAt: clock.Now().UTC(),
	}
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("export event publish failed", "target", target, "event_id", event.ID, "error", err)
		s.metrics.ExportEvents.WithLabelValues("error").Inc()
		return
	}
	s.metrics.ExportEvents.WithLabelValues("published").Inc()
}
