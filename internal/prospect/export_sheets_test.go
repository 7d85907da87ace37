package prospect

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/pro-finder-service/internal/domain"
)

func TestExportBatch_Sequence(t *testing.T) {
	SetClock(clockwork.NewFakeClockAt(time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)))
	t.Cleanup(func() { SetClock(nil) })

	sheets := newFakeSheets()
	e := NewSpreadsheetExporter(sheets, discardLogger(), testMetrics())

	records := []domain.BusinessRecord{acmeRecord(), {ID: "p2", Name: "Globex"}}
	url, err := e.ExportBatch(context.Background(), records, "Recherche spa - Arlon")
	require.NoError(t, err)

	assert.Equal(t, sheets.ref.URL, url)
	assert.Equal(t, "Prospection_Recherche spa - Arlon_14032026", sheets.title)
	assert.Equal(t, []string{
		"create",
		"rename:Liste Prospects",
		"append",
		"format",
		"append",
		"append",
		"format",
		"freeze:1",
		"filter",
		"resize:0-12",
		"share",
	}, sheets.calls)

	require.Len(t, sheets.rows, 3)
	assert.Equal(t, sheetHeaders, sheets.rows[0])
	assert.Equal(t, []domain.CellStyle{headerStyle, dataStyle}, sheets.formats)
	assert.Equal(t, []domain.CellRange{
		{StartRow: 0, EndRow: 1, StartColumn: 0, EndColumn: 12},
		{StartRow: 1, EndRow: 3, StartColumn: 0, EndColumn: 12},
		{StartRow: 0, EndRow: 3, StartColumn: 0, EndColumn: 12},
	}, sheets.ranges)
}

func TestSheetRow(t *testing.T) {
	rec := acmeRecord()
	rec.Keyword = "boulangerie"
	rec.Phone = "063 22 33 44"
	rec.OpeningHours = []string{"lundi: 07:00–18:00", "mardi: Fermé"}

	assert.Equal(t, []string{
		"p1",
		"Acme",
		"1 Rue X",
		"063 22 33 44",
		"w",
		"boulangerie",
		"4.5",
		"10",
		"lundi: 07:00–18:00\nmardi: Fermé",
		"",
		"À contacter",
		"OPERATIONAL",
	}, sheetRow(rec))
}

func TestExportBatch_StepFailure(t *testing.T) {
	tests := []struct {
		failOn   string
		wantStep string
	}{
		{"create", "create"},
		{"append", "header"},
		{"filter", "filter"},
		{"share", "share"},
	}

	for _, tt := range tests {
		t.Run(tt.failOn, func(t *testing.T) {
			sheets := newFakeSheets()
			sheets.failOn = tt.failOn
			metrics := testMetrics()
			e := NewSpreadsheetExporter(sheets, discardLogger(), metrics)

			url, err := e.ExportBatch(context.Background(), []domain.BusinessRecord{acmeRecord()}, "Recherche spa - Arlon")

			require.Error(t, err)
			assert.Empty(t, url)
			assert.Equal(t, domain.KindExportFailed, domain.KindOf(err))
			assert.Equal(t, tt.failOn, sheets.calls[len(sheets.calls)-1], "no step runs after a failure")
			assert.InDelta(t, 1, testutil.ToFloat64(metrics.SpreadsheetStepFailures.WithLabelValues(tt.wantStep)), 0)
		})
	}
}

func TestExportBatch_RowFailureHidesProgress(t *testing.T) {
	sheets := newFakeSheets()
	sheets.failAppendAt = 3
	metrics := testMetrics()
	e := NewSpreadsheetExporter(sheets, discardLogger(), metrics)

	records := []domain.BusinessRecord{acmeRecord(), {ID: "p2", Name: "Globex"}, {ID: "p3", Name: "Initech"}}
	_, err := e.ExportBatch(context.Background(), records, "Recherche spa - Arlon")

	require.Error(t, err)
	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.KindExportFailed, de.Kind)
	assert.Equal(t, "export failed", de.Message)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.SpreadsheetStepFailures.WithLabelValues("append")), 0)
	assert.NotContains(t, sheets.calls, "share")
}

func TestExportBatch_Empty(t *testing.T) {
	sheets := newFakeSheets()
	e := NewSpreadsheetExporter(sheets, discardLogger(), testMetrics())

	_, err := e.ExportBatch(context.Background(), nil, "x")

	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.Empty(t, sheets.calls)
}
