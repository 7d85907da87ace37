package prospect

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/couchcryptid/pro-finder-service/internal/domain"
	"github.com/couchcryptid/pro-finder-service/internal/observability"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMetrics() *observability.Metrics {
	return observability.NewMetricsForTesting()
}

// --- places ---

type fakePlaces struct {
	mu sync.Mutex

	geocodeResult domain.Coordinates
	geocodeFound  bool
	geocodeErr    error
	geocodeCalls  []string

	pages      []domain.NearbyPage
	nearbyErr  error
	nearbyReqs []domain.NearbyRequest

	details     map[string]domain.RawPlaceDetails
	detailsErr  map[string]error
	detailsReqs []string
}

func (f *fakePlaces) Geocode(_ context.Context, address string) (domain.Coordinates, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.geocodeCalls = append(f.geocodeCalls, address)
	return f.geocodeResult, f.geocodeFound, f.geocodeErr
}

func (f *fakePlaces) NearbySearch(_ context.Context, req domain.NearbyRequest) (domain.NearbyPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nearbyReqs = append(f.nearbyReqs, req)
	if f.nearbyErr != nil {
		return domain.NearbyPage{}, f.nearbyErr
	}
	i := len(f.nearbyReqs) - 1
	if i >= len(f.pages) {
		return domain.NearbyPage{}, fmt.Errorf("unexpected page request %d", i+1)
	}
	return f.pages[i], nil
}

func (f *fakePlaces) PlaceDetails(_ context.Context, placeID string) (domain.RawPlaceDetails, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.detailsReqs = append(f.detailsReqs, placeID)
	if err := f.detailsErr[placeID]; err != nil {
		return domain.RawPlaceDetails{}, err
	}
	if d, ok := f.details[placeID]; ok {
		return d, nil
	}
	return domain.RawPlaceDetails{Name: "Business " + placeID}, nil
}

func (f *fakePlaces) nearbyCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.nearbyReqs)
}

func (f *fakePlaces) pageTokens() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	tokens := make([]string, len(f.nearbyReqs))
	for i, r := range f.nearbyReqs {
		tokens[i] = r.PageToken
	}
	return tokens
}

// --- workspace ---

type fakeWorkspace struct {
	mu sync.Mutex

	pages     map[string]domain.PageRef
	findErr   error
	createErr map[string]error
	created   []domain.WorkspacePage
	queries   []string

	info    domain.DatabaseInfo
	infoErr error
}

func newFakeWorkspace() *fakeWorkspace {
	return &fakeWorkspace{pages: map[string]domain.PageRef{}, createErr: map[string]error{}}
}

func (f *fakeWorkspace) FindPageByTitle(_ context.Context, title string) (domain.PageRef, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, title)
	if f.findErr != nil {
		return domain.PageRef{}, false, f.findErr
	}
	ref, ok := f.pages[title]
	return ref, ok, nil
}

func (f *fakeWorkspace) CreatePage(_ context.Context, page domain.WorkspacePage) (domain.PageRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.createErr[page.Title]; err != nil {
		return domain.PageRef{}, err
	}
	f.created = append(f.created, page)
	ref := domain.PageRef{ID: fmt.Sprintf("page-%d", len(f.created))}
	f.pages[page.Title] = ref
	return ref, nil
}

func (f *fakeWorkspace) DescribeDatabase(_ context.Context) (domain.DatabaseInfo, error) {
	return f.info, f.infoErr
}

// --- spreadsheets ---

type fakeSheets struct {
	calls   []string
	rows    [][]string
	formats []domain.CellStyle
	ranges  []domain.CellRange
	title   string
	failOn  string
	// failAppendAt fails the n-th AppendRow call, header included.
	failAppendAt int
	appends      int
	ref     domain.SpreadsheetRef
}

func newFakeSheets() *fakeSheets {
	return &fakeSheets{ref: domain.SpreadsheetRef{ID: "sheet-1", URL: "https://docs.google.com/spreadsheets/d/sheet-1"}}
}

func (f *fakeSheets) step(name string) error {
	f.calls = append(f.calls, name)
	if f.failOn == name {
		return fmt.Errorf("%s: boom", name)
	}
	return nil
}

func (f *fakeSheets) CreateSpreadsheet(_ context.Context, title string) (domain.SpreadsheetRef, error) {
	f.title = title
	if err := f.step("create"); err != nil {
		return domain.SpreadsheetRef{}, err
	}
	return f.ref, nil
}

func (f *fakeSheets) RenameSheet(_ context.Context, _ domain.SpreadsheetRef, title string) error {
	return f.step("rename:" + title)
}

func (f *fakeSheets) AppendRow(_ context.Context, _ domain.SpreadsheetRef, row []string) error {
	if err := f.step("append"); err != nil {
		return err
	}
	f.appends++
	if f.appends == f.failAppendAt {
		return errors.New("googleapi: Error 429: quota")
	}
	f.rows = append(f.rows, row)
	return nil
}

func (f *fakeSheets) FormatRange(_ context.Context, _ domain.SpreadsheetRef, r domain.CellRange, style domain.CellStyle) error {
	f.formats = append(f.formats, style)
	f.ranges = append(f.ranges, r)
	return f.step("format")
}

func (f *fakeSheets) FreezeRows(_ context.Context, _ domain.SpreadsheetRef, rows int64) error {
	return f.step(fmt.Sprintf("freeze:%d", rows))
}

func (f *fakeSheets) SetBasicFilter(_ context.Context, _ domain.SpreadsheetRef, r domain.CellRange) error {
	f.ranges = append(f.ranges, r)
	return f.step("filter")
}

func (f *fakeSheets) AutoResizeColumns(_ context.Context, _ domain.SpreadsheetRef, start, end int64) error {
	return f.step(fmt.Sprintf("resize:%d-%d", start, end))
}

func (f *fakeSheets) ShareWithAnyone(_ context.Context, _ domain.SpreadsheetRef) error {
	return f.step("share")
}

// --- events ---

type fakeEvents struct {
	events []domain.ExportEvent
	err    error
}

func (f *fakeEvents) Publish(_ context.Context, event domain.ExportEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}
