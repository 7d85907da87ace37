package prospect

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/couchcryptid/pro-finder-service/internal/domain"
)

const (
	csvContentType  = "text/csv; charset=utf-8"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	xlsxSheetName   = "Résultats"
	utf8BOM         = "\ufeff"
)

// fileHeaders is the fixed column order of downloadable exports.
var fileHeaders = []string{
	"Nom",
	"Adresse",
	"Téléphone",
	"Site Web",
	"Note Google",
	"Nombre d'avis",
	"Statut",
	"Mot-clé recherché",
}

var errNoResultsSelected = domain.ValidationError("Aucun résultat sélectionné")

// fileRow renders one record; the keyword column always comes from the
// export request, never from the record.
func fileRow(rec domain.BusinessRecord, keyword string) []string {
	return []string{
		rec.Name,
		rec.Address,
		rec.Phone,
		rec.Website,
		rec.Rating.String(),
		rec.TotalRatings.String(),
		rec.BusinessStatus,
		keyword,
	}
}

// CSV serializes records with French headers. The output starts with a UTF-8
// byte-order mark so spreadsheet tools detect the encoding.
func CSV(records []domain.BusinessRecord, keyword string) ([]byte, error) {
	if len(records) == 0 {
		return nil, errNoResultsSelected
	}

	var buf bytes.Buffer
	buf.WriteString(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(fileHeaders); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, rec := range records {
		if err := w.Write(fileRow(rec, keyword)); err != nil {
			return nil, fmt.Errorf("write csv row %s: %w", rec.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// XLSX writes the same table as CSV into a workbook with a bold, frozen header.
func XLSX(records []domain.BusinessRecord, keyword string) ([]byte, error) {
	if len(records) == 0 {
		return nil, errNoResultsSelected
	}

	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck // in-memory workbook

	if err := f.SetSheetName("Sheet1", xlsxSheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := writeXLSXRow(f, 1, fileHeaders); err != nil {
		return nil, err
	}
	for i, rec := range records {
		if err := writeXLSXRow(f, i+2, fileRow(rec, keyword)); err != nil {
			return nil, err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(fileHeaders), 1)
	if err := f.SetCellStyle(xlsxSheetName, "A1", lastHeader, bold); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}
	if err := f.SetPanes(xlsxSheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeXLSXRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	vals := make([]any, len(values))
	for i, v := range values {
		vals[i] = v
	}
	if err := f.SetSheetRow(xlsxSheetName, cell, &vals); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

// exportFileName builds recherche_<keyword>_<yyyyMMdd_HHmmss>.<ext>.
func exportFileName(keyword, ext string) string {
	return fmt.Sprintf("recherche_%s_%s.%s", strings.TrimSpace(keyword), clock.Now().Format("20060102_150405"), ext)
}
