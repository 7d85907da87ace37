package domain

import "time"

// PageRef identifies a page in the workspace database.
type PageRef struct {
	ID  string `json:"id"`
	URL string `json:"url,omitempty"`
}

// WorkspacePage is the content of one prospect page. Empty Phone and Website
// are left unset on the page.
type WorkspacePage struct {
	Title         string
	Completeness  string
	LastContact   time.Time
	ContactStatus string
	Category      string
	Address       string
	Phone         string
	Website       string
	Source        string
	Glyph         string
}

// DatabaseInfo describes the workspace database for connectivity probes.
type DatabaseInfo struct {
	Title      string   `json:"title"`
	ID         string   `json:"id"`
	Properties []string `json:"properties"`
}

// SpreadsheetRef identifies a created spreadsheet and its first sheet.
type SpreadsheetRef struct {
	ID      string
	URL     string
	SheetID int64
}

// CellRange is a zero-based, end-exclusive grid range on one sheet.
type CellRange struct {
	StartRow    int64
	EndRow      int64
	StartColumn int64
	EndColumn   int64
}

// Color is an RGB triple with components in [0,1].
type Color struct {
	Red, Green, Blue float64
}

// CellStyle is the subset of cell formatting the spreadsheet exporter applies.
type CellStyle struct {
	Background          Color
	Foreground          Color
	Bold                bool
	HorizontalAlignment string // "LEFT", "CENTER", "RIGHT" or empty
	VerticalAlignment   string // "TOP", "MIDDLE", "BOTTOM" or empty
	Wrap                bool
}

// ExportFile is a downloadable export.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ExportEvent records one completed export batch.
type ExportEvent struct {
	ID         string    `json:"id"`
	Target     string    `json:"target"`
	Keyword    string    `json:"keyword"`
	Count      int       `json:"count"`
	PlaceIDs   []string  `json:"place_ids"`
	ExportedAt time.Time `json:"exported_at"`
}

// Export targets.
const (
	TargetCSV       = "csv"
	TargetXLSX      = "xlsx"
	TargetWorkspace = "notion"
	TargetSheets    = "sheets"
)
