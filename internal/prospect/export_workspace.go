package prospect

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"

	"github.com/couchcryptid/pro-finder-service/internal/domain"
	"github.com/couchcryptid/pro-finder-service/internal/observability"
)

const (
	contactStatusToReach = "À contacter"
	workspaceSource      = "Pro Finder"
	addressPlaceholder   = "Non renseignée"
)

// ExportOutcome reports what ExportOne did for a record.
type ExportOutcome struct {
	Page    domain.PageRef
	Skipped bool // an entry with the same title already existed
}

// WorkspaceExporter writes one workspace page per business, never twice for
// the same name.
type WorkspaceExporter struct {
	workspace   Workspace
	duplicates  *DuplicateChecker
	phoneRegion string
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// NewWorkspaceExporter creates an exporter. phoneRegion is the ISO country
// used to interpret national phone numbers.
func NewWorkspaceExporter(workspace Workspace, duplicates *DuplicateChecker, phoneRegion string, logger *slog.Logger, metrics *observability.Metrics) *WorkspaceExporter {
	return &WorkspaceExporter{
		workspace:   workspace,
		duplicates:  duplicates,
		phoneRegion: phoneRegion,
		logger:      logger,
		metrics:     metrics,
	}
}

// ExportOne creates the page for rec unless one with the same title exists.
// A failed duplicate lookup aborts the record instead of risking a second page.
func (e *WorkspaceExporter) ExportOne(ctx context.Context, rec domain.BusinessRecord) (ExportOutcome, error) {
	existing, found, err := e.duplicates.Lookup(ctx, rec.Name)
	if err != nil {
		return ExportOutcome{}, err
	}
	if found {
		e.logger.Info("business already in workspace, skipping", "name", rec.Name, "page_id", existing.ID)
		return ExportOutcome{Page: existing, Skipped: true}, nil
	}

	page, err := e.workspace.CreatePage(ctx, e.buildPage(rec))
	if err != nil {
		return ExportOutcome{}, err
	}
	return ExportOutcome{Page: page}, nil
}

// ExportMany exports every record tagged with keyword and returns the records
// that got a new page. Individual failures are logged and never abort the batch.
func (e *WorkspaceExporter) ExportMany(ctx context.Context, records []domain.BusinessRecord, keyword string) []domain.BusinessRecord {
	var created []domain.BusinessRecord
	for _, rec := range records {
		rec.Keyword = keyword
		out, err := e.ExportOne(ctx, rec)
		switch {
		case err != nil:
			e.metrics.WorkspacePages.WithLabelValues("error").Inc()
			e.logger.Error("workspace export failed", "name", rec.Name, "place_id", rec.ID, "error", err)
		case out.Skipped:
			e.metrics.WorkspacePages.WithLabelValues("skipped").Inc()
		default:
			e.metrics.WorkspacePages.WithLabelValues("created").Inc()
			created = append(created, rec)
		}
	}
	return created
}

func (e *WorkspaceExporter) buildPage(rec domain.BusinessRecord) domain.WorkspacePage {
	category, glyph := domain.ResolveCategory(rec.Keyword)

	name := rec.Name
	if name == "" {
		name = "Sans nom"
	}
	address := rec.Address
	if address == "" {
		address = addressPlaceholder
	}

	now := clock.Now()
	return domain.WorkspacePage{
		Title:         name,
		Completeness:  rec.CompletenessNote(),
		LastContact:   time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		ContactStatus: contactStatusToReach,
		Category:      category,
		Address:       address,
		Phone:         formatPhone(rec.Phone, e.phoneRegion),
		Website:       strings.TrimSpace(rec.Website),
		Source:        workspaceSource,
		Glyph:         glyph,
	}
}

// formatPhone renders valid numbers in international format and returns
// anything unparseable trimmed but otherwise untouched.
func formatPhone(input, region string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}
	num, err := phonenumbers.Parse(trimmed, region)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return trimmed
	}
	return phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
}
