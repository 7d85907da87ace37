package prospect

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/couchcryptid/pro-finder-service/internal/domain"
	"github.com/couchcryptid/pro-finder-service/internal/observability"
)

const prospectSheetTitle = "Liste Prospects"

// sheetHeaders is the fixed header row of exported spreadsheets.
var sheetHeaders = []string{
	"ID",
	"Nom Entreprise",
	"Adresse Complète",
	"Téléphone",
	"Site Web",
	"Type d'établissement",
	"Note Google",
	"Nombre d'avis",
	"Horaires d'ouverture",
	"Email (à compléter)",
	"Statut Contact",
	"Notes/Commentaires",
}

var (
	headerStyle = domain.CellStyle{
		Background:          domain.Color{Red: 0.2, Green: 0.2, Blue: 0.2},
		Foreground:          domain.Color{Red: 1, Green: 1, Blue: 1},
		Bold:                true,
		HorizontalAlignment: "CENTER",
	}
	dataStyle = domain.CellStyle{
		Background:        domain.Color{Red: 1, Green: 1, Blue: 1},
		Foreground:        domain.Color{},
		VerticalAlignment: "MIDDLE",
		Wrap:              true,
	}
)

// SpreadsheetExporter publishes a batch of records as a new shared spreadsheet.
type SpreadsheetExporter struct {
	sheets  Spreadsheets
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewSpreadsheetExporter creates an exporter backed by sheets.
func NewSpreadsheetExporter(sheets Spreadsheets, logger *slog.Logger, metrics *observability.Metrics) *SpreadsheetExporter {
	return &SpreadsheetExporter{sheets: sheets, logger: logger, metrics: metrics}
}

// ExportBatch creates Prospection_<title>_<ddMMyyyy>, fills and formats it,
// opens it to anyone with the link and returns its URL. Any failing step
// fails the whole export without reporting how far it got.
func (e *SpreadsheetExporter) ExportBatch(ctx context.Context, records []domain.BusinessRecord, title string) (string, error) {
	if len(records) == 0 {
		return "", errNoResultsSelected
	}

	url, step, err := e.export(ctx, records, title)
	if err != nil {
		e.metrics.SpreadsheetStepFailures.WithLabelValues(step).Inc()
		e.logger.Error("spreadsheet export failed", "title", title, "step", step, "records", len(records), "error", err)
		return "", domain.ExportError("spreadsheet export", err)
	}
	return url, nil
}

// export runs every step in order. On failure it returns the failing step name.
func (e *SpreadsheetExporter) export(ctx context.Context, records []domain.BusinessRecord, title string) (string, string, error) {
	name := fmt.Sprintf("Prospection_%s_%s", title, clock.Now().Format("02012006"))

	ref, err := e.sheets.CreateSpreadsheet(ctx, name)
	if err != nil {
		return "", "create", err
	}
	if err := e.sheets.RenameSheet(ctx, ref, prospectSheetTitle); err != nil {
		return "", "rename", err
	}

	columns := int64(len(sheetHeaders))
	if err := e.sheets.AppendRow(ctx, ref, sheetHeaders); err != nil {
		return "", "header", err
	}
	header := domain.CellRange{StartRow: 0, EndRow: 1, StartColumn: 0, EndColumn: columns}
	if err := e.sheets.FormatRange(ctx, ref, header, headerStyle); err != nil {
		return "", "format_header", err
	}

	for _, rec := range records {
		if err := e.sheets.AppendRow(ctx, ref, sheetRow(rec)); err != nil {
			return "", "append", fmt.Errorf("row %s: %w", rec.ID, err)
		}
	}

	lastRow := int64(len(records)) + 1
	body := domain.CellRange{StartRow: 1, EndRow: lastRow, StartColumn: 0, EndColumn: columns}
	if err := e.sheets.FormatRange(ctx, ref, body, dataStyle); err != nil {
		return "", "format_rows", err
	}
	if err := e.sheets.FreezeRows(ctx, ref, 1); err != nil {
		return "", "freeze", err
	}
	table := domain.CellRange{StartRow: 0, EndRow: lastRow, StartColumn: 0, EndColumn: columns}
	if err := e.sheets.SetBasicFilter(ctx, ref, table); err != nil {
		return "", "filter", err
	}
	if err := e.sheets.AutoResizeColumns(ctx, ref, 0, columns); err != nil {
		return "", "resize", err
	}
	if err := e.sheets.ShareWithAnyone(ctx, ref); err != nil {
		return "", "share", err
	}

	e.logger.Info("spreadsheet exported", "spreadsheet_id", ref.ID, "rows", len(records))
	return ref.URL, "", nil
}

// sheetRow stringifies a record in header order.
func sheetRow(rec domain.BusinessRecord) []string {
	return []string{
		rec.ID,
		rec.Name,
		rec.Address,
		rec.Phone,
		rec.Website,
		rec.Keyword,
		rec.Rating.String(),
		rec.TotalRatings.String(),
		strings.Join(rec.OpeningHours, "\n"),
		"",
		contactStatusToReach,
		rec.BusinessStatus,
	}
}
