package prospect

import (
	"context"

	"github.com/couchcryptid/pro-finder-service/internal/domain"
)

// PlacesProvider geocodes locations and lists nearby businesses.
type PlacesProvider interface {
	// Geocode returns the first match for address; found is false when the
	// provider has no result.
	Geocode(ctx context.Context, address string) (coords domain.Coordinates, found bool, err error)

	// NearbySearch fetches a single page of results.
	NearbySearch(ctx context.Context, req domain.NearbyRequest) (domain.NearbyPage, error)

	// PlaceDetails fetches the fields in domain.PlaceDetailFields for one place.
	PlaceDetails(ctx context.Context, placeID string) (domain.RawPlaceDetails, error)
}

// Workspace is the structured database that tracks exported prospects.
type Workspace interface {
	FindPageByTitle(ctx context.Context, title string) (domain.PageRef, bool, error)
	CreatePage(ctx context.Context, page domain.WorkspacePage) (domain.PageRef, error)
	DescribeDatabase(ctx context.Context) (domain.DatabaseInfo, error)
}

// Spreadsheets creates and lays out shared prospect spreadsheets.
type Spreadsheets interface {
	CreateSpreadsheet(ctx context.Context, title string) (domain.SpreadsheetRef, error)
	RenameSheet(ctx context.Context, ref domain.SpreadsheetRef, title string) error
	AppendRow(ctx context.Context, ref domain.SpreadsheetRef, row []string) error
	FormatRange(ctx context.Context, ref domain.SpreadsheetRef, r domain.CellRange, style domain.CellStyle) error
	FreezeRows(ctx context.Context, ref domain.SpreadsheetRef, rows int64) error
	SetBasicFilter(ctx context.Context, ref domain.SpreadsheetRef, r domain.CellRange) error
	AutoResizeColumns(ctx context.Context, ref domain.SpreadsheetRef, start, end int64) error
	ShareWithAnyone(ctx context.Context, ref domain.SpreadsheetRef) error
}

// EventPublisher records completed exports.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.ExportEvent) error
}
