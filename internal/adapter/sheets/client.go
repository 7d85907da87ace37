package sheets

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/couchcryptid/pro-finder-service/internal/domain"
	"github.com/couchcryptid/pro-finder-service/internal/observability"
)

const formatFields = "userEnteredFormat(backgroundColor,textFormat,horizontalAlignment,verticalAlignment,wrapStrategy)"

// Client implements prospect.Spreadsheets with the Sheets and Drive APIs.
type Client struct {
	sheets  *sheetsapi.Service
	drive   *drive.Service
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewServices builds Sheets and Drive services from a service account key.
func NewServices(ctx context.Context, credentialsJSON []byte, opts ...option.ClientOption) (*sheetsapi.Service, *drive.Service, error) {
	creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, sheetsapi.SpreadsheetsScope, drive.DriveScope)
	if err != nil {
		return nil, nil, fmt.Errorf("parse google credentials: %w", err)
	}
	opts = append([]option.ClientOption{option.WithCredentials(creds)}, opts...)

	s, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("create sheets service: %w", err)
	}
	d, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("create drive service: %w", err)
	}
	return s, d, nil
}

// NewClient wraps already-authenticated services.
func NewClient(s *sheetsapi.Service, d *drive.Service, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{sheets: s, drive: d, logger: logger, metrics: metrics}
}

// CreateSpreadsheet creates an empty spreadsheet and returns its id, URL and
// the id of its first sheet.
func (c *Client) CreateSpreadsheet(ctx context.Context, title string) (domain.SpreadsheetRef, error) {
	ss, err := c.sheets.Spreadsheets.Create(&sheetsapi.Spreadsheet{
		Properties: &sheetsapi.SpreadsheetProperties{Title: title},
	}).Context(ctx).Do()
	c.observe("create", err)
	if err != nil {
		return domain.SpreadsheetRef{}, fmt.Errorf("create spreadsheet %q: %w", title, err)
	}

	ref := domain.SpreadsheetRef{ID: ss.SpreadsheetId, URL: ss.SpreadsheetUrl}
	if len(ss.Sheets) > 0 && ss.Sheets[0].Properties != nil {
		ref.SheetID = ss.Sheets[0].Properties.SheetId
	}
	c.logger.Debug("spreadsheet created", "spreadsheet_id", ref.ID, "title", title)
	return ref, nil
}

// RenameSheet sets the title of the first sheet.
func (c *Client) RenameSheet(ctx context.Context, ref domain.SpreadsheetRef, title string) error {
	return c.batchUpdate(ctx, ref, "rename", &sheetsapi.Request{
		UpdateSheetProperties: &sheetsapi.UpdateSheetPropertiesRequest{
			Properties: &sheetsapi.SheetProperties{
				SheetId:         ref.SheetID,
				Title:           title,
				ForceSendFields: []string{"SheetId"},
			},
			Fields: "title",
		},
	})
}

// AppendRow appends one row of raw (unparsed) values after the last row.
func (c *Client) AppendRow(ctx context.Context, ref domain.SpreadsheetRef, row []string) error {
	values := make([]any, len(row))
	for i, v := range row {
		values[i] = v
	}

	_, err := c.sheets.Spreadsheets.Values.Append(ref.ID, "A1", &sheetsapi.ValueRange{
		Values: [][]any{values},
	}).ValueInputOption("RAW").Context(ctx).Do()
	c.observe("append", err)
	if err != nil {
		return fmt.Errorf("append row: %w", err)
	}
	return nil
}

// FormatRange applies style to every cell in r.
func (c *Client) FormatRange(ctx context.Context, ref domain.SpreadsheetRef, r domain.CellRange, style domain.CellStyle) error {
	format := &sheetsapi.CellFormat{
		BackgroundColor: color(style.Background),
		TextFormat: &sheetsapi.TextFormat{
			ForegroundColor: color(style.Foreground),
			Bold:            style.Bold,
		},
		HorizontalAlignment: style.HorizontalAlignment,
		VerticalAlignment:   style.VerticalAlignment,
	}
	if style.Wrap {
		format.WrapStrategy = "WRAP"
	}

	return c.batchUpdate(ctx, ref, "format", &sheetsapi.Request{
		RepeatCell: &sheetsapi.RepeatCellRequest{
			Range:  gridRange(ref, r),
			Cell:   &sheetsapi.CellData{UserEnteredFormat: format},
			Fields: formatFields,
		},
	})
}

// FreezeRows freezes the first rows rows.
func (c *Client) FreezeRows(ctx context.Context, ref domain.SpreadsheetRef, rows int64) error {
	return c.batchUpdate(ctx, ref, "freeze", &sheetsapi.Request{
		UpdateSheetProperties: &sheetsapi.UpdateSheetPropertiesRequest{
			Properties: &sheetsapi.SheetProperties{
				SheetId:         ref.SheetID,
				GridProperties:  &sheetsapi.GridProperties{FrozenRowCount: rows},
				ForceSendFields: []string{"SheetId"},
			},
			Fields: "gridProperties.frozenRowCount",
		},
	})
}

// SetBasicFilter enables the filter controls over r.
func (c *Client) SetBasicFilter(ctx context.Context, ref domain.SpreadsheetRef, r domain.CellRange) error {
	return c.batchUpdate(ctx, ref, "filter", &sheetsapi.Request{
		SetBasicFilter: &sheetsapi.SetBasicFilterRequest{
			Filter: &sheetsapi.BasicFilter{Range: gridRange(ref, r)},
		},
	})
}

// AutoResizeColumns fits columns [start, end) to their content.
func (c *Client) AutoResizeColumns(ctx context.Context, ref domain.SpreadsheetRef, start, end int64) error {
	return c.batchUpdate(ctx, ref, "resize", &sheetsapi.Request{
		AutoResizeDimensions: &sheetsapi.AutoResizeDimensionsRequest{
			Dimensions: &sheetsapi.DimensionRange{
				SheetId:         ref.SheetID,
				Dimension:       "COLUMNS",
				StartIndex:      start,
				EndIndex:        end,
				ForceSendFields: []string{"SheetId", "StartIndex"},
			},
		},
	})
}

// ShareWithAnyone grants read access to anyone with the link.
func (c *Client) ShareWithAnyone(ctx context.Context, ref domain.SpreadsheetRef) error {
	_, err := c.drive.Permissions.Create(ref.ID, &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}).Context(ctx).Do()
	c.observe("share", err)
	if err != nil {
		return fmt.Errorf("share spreadsheet: %w", err)
	}
	return nil
}

func (c *Client) batchUpdate(ctx context.Context, ref domain.SpreadsheetRef, method string, req *sheetsapi.Request) error {
	_, err := c.sheets.Spreadsheets.BatchUpdate(ref.ID, &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{req},
	}).Context(ctx).Do()
	c.observe(method, err)
	if err != nil {
		return fmt.Errorf("%s: %w", method, err)
	}
	return nil
}

func (c *Client) observe(method string, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.metrics.SpreadsheetRequests.WithLabelValues(method, outcome).Inc()
}

func gridRange(ref domain.SpreadsheetRef, r domain.CellRange) *sheetsapi.GridRange {
	return &sheetsapi.GridRange{
		SheetId:          ref.SheetID,
		StartRowIndex:    r.StartRow,
		EndRowIndex:      r.EndRow,
		StartColumnIndex: r.StartColumn,
		EndColumnIndex:   r.EndColumn,
		ForceSendFields:  []string{"SheetId", "StartRowIndex", "StartColumnIndex"},
	}
}

func color(c domain.Color) *sheetsapi.Color {
	return &sheetsapi.Color{
		Red:             c.Red,
		Green:           c.Green,
		Blue:            c.Blue,
		ForceSendFields: []string{"Red", "Green", "Blue"},
	}
}
