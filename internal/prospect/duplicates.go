package prospect

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/pro-finder-service/internal/domain"
	"github.com/couchcryptid/pro-finder-service/internal/observability"
)

// DuplicateChecker looks up businesses in the workspace by exact title.
type DuplicateChecker struct {
	workspace Workspace
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewDuplicateChecker creates a checker. A nil workspace is allowed and means
// no workspace is configured.
func NewDuplicateChecker(workspace Workspace, logger *slog.Logger, metrics *observability.Metrics) *DuplicateChecker {
	return &DuplicateChecker{workspace: workspace, logger: logger, metrics: metrics}
}

// Lookup returns the existing page titled exactly name. Errors are returned
// as-is so callers that write to the workspace can refuse to guess.
func (d *DuplicateChecker) Lookup(ctx context.Context, name string) (domain.PageRef, bool, error) {
	if d.workspace == nil {
		return domain.PageRef{}, false, domain.NotConfiguredError("Configuration Notion manquante")
	}
	return d.workspace.FindPageByTitle(ctx, name)
}

// Exists reports whether a page titled name exists. Any failure, including a
// missing workspace, is reported as false.
func (d *DuplicateChecker) Exists(ctx context.Context, name string) bool {
	if d.workspace == nil {
		return false
	}
	_, found, err := d.workspace.FindPageByTitle(ctx, name)
	if err != nil {
		d.logger.Warn("duplicate check failed, assuming not exported", "name", name, "error", err)
		d.metrics.DuplicateCheckDegraded.Inc()
		return false
	}
	return found
}
