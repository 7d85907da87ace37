package prospect

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/pro-finder-service/internal/domain"
)

func newTestWorkspaceExporter(ws *fakeWorkspace) *WorkspaceExporter {
	metrics := testMetrics()
	return NewWorkspaceExporter(ws, NewDuplicateChecker(ws, discardLogger(), metrics), "BE", discardLogger(), metrics)
}

func TestExportOne_SecondExportIsSkipped(t *testing.T) {
	ws := newFakeWorkspace()
	e := newTestWorkspaceExporter(ws)
	rec := domain.BusinessRecord{ID: "p1", Name: "Boulangerie Dupont", Keyword: "boulangerie"}

	first, err := e.ExportOne(context.Background(), rec)
	require.NoError(t, err)
	assert.False(t, first.Skipped)

	second, err := e.ExportOne(context.Background(), rec)
	require.NoError(t, err)
	assert.True(t, second.Skipped)
	assert.Equal(t, first.Page, second.Page)

	assert.Len(t, ws.created, 1)
}

func TestExportOne_PageContent(t *testing.T) {
	SetClock(clockwork.NewFakeClockAt(time.Date(2026, 3, 14, 15, 30, 0, 0, time.UTC)))
	t.Cleanup(func() { SetClock(nil) })

	ws := newFakeWorkspace()
	e := newTestWorkspaceExporter(ws)
	rec := domain.BusinessRecord{
		ID:      "p1",
		Name:    "Chez Luigi",
		Address: "Grand-Rue 1, 6700 Arlon",
		Phone:   "063 22 33 44",
		Website: " https://luigi.example ",
		Keyword: "Pizzeria",
	}

	_, err := e.ExportOne(context.Background(), rec)
	require.NoError(t, err)
	require.Len(t, ws.created, 1)

	assert.Equal(t, domain.WorkspacePage{
		Title:         "Chez Luigi",
		Completeness:  "Informations complètes",
		LastContact:   time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		ContactStatus: "À contacter",
		Category:      "Restauration",
		Address:       "Grand-Rue 1, 6700 Arlon",
		Phone:         "+32 63 22 33 44",
		Website:       "https://luigi.example",
		Source:        "Pro Finder",
		Glyph:         "🍽️",
	}, ws.created[0])
}

func TestExportOne_IncompleteRecordDefaults(t *testing.T) {
	ws := newFakeWorkspace()
	e := newTestWorkspaceExporter(ws)

	_, err := e.ExportOne(context.Background(), domain.BusinessRecord{ID: "p1", Keyword: "xyz-unknown"})
	require.NoError(t, err)
	require.Len(t, ws.created, 1)

	page := ws.created[0]
	assert.Equal(t, "Sans nom", page.Title)
	assert.Equal(t, "Non renseignée", page.Address)
	assert.Equal(t, "Informations incomplètes", page.Completeness)
	assert.Equal(t, domain.OtherCategory, page.Category)
	assert.Equal(t, domain.DefaultGlyph, page.Glyph)
	assert.Empty(t, page.Phone)
	assert.Empty(t, page.Website)
}

func TestExportOne_LookupFailureCreatesNothing(t *testing.T) {
	ws := newFakeWorkspace()
	ws.findErr = errors.New("rate limited")
	e := newTestWorkspaceExporter(ws)

	_, err := e.ExportOne(context.Background(), domain.BusinessRecord{ID: "p1", Name: "Acme"})

	require.Error(t, err)
	assert.Empty(t, ws.created)
}

func TestExportMany_ContinuesPastFailures(t *testing.T) {
	ws := newFakeWorkspace()
	ws.pages["Existing"] = domain.PageRef{ID: "old"}
	ws.createErr["Broken"] = errors.New("validation_error")
	e := newTestWorkspaceExporter(ws)

	records := []domain.BusinessRecord{
		{ID: "p1", Name: "Existing"},
		{ID: "p2", Name: "Broken"},
		{ID: "p3", Name: "Fresh"},
		{ID: "p4", Name: "Fresh"},
	}
	metrics := e.metrics
	created := e.ExportMany(context.Background(), records, "coiffeur")

	require.Len(t, created, 1)
	assert.Equal(t, "p3", created[0].ID)
	require.Len(t, ws.created, 1)
	assert.Equal(t, "Fresh", ws.created[0].Title)
	assert.Equal(t, "Beauté & Bien-être", ws.created[0].Category)

	assert.InDelta(t, 1, testutil.ToFloat64(metrics.WorkspacePages.WithLabelValues("created")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(metrics.WorkspacePages.WithLabelValues("skipped")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.WorkspacePages.WithLabelValues("error")), 0)
}

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"national mobile", "0471 12 34 56", "+32 471 12 34 56"},
		{"already international", "+32 63 22 33 44", "+32 63 22 33 44"},
		{"empty", "  ", ""},
		{"unparseable kept", " call us ", "call us"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatPhone(tt.input, "BE"))
		})
	}
}
