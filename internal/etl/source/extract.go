package source

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"birthday_notifier/internal/domain/person"
)

// Errors surfaced by the extraction stage. These are the only fatal errors in
// the pipeline; everything downstream recovers row by row.
var (
	ErrSourceNotFound    = fmt.Errorf("source file not found")
	ErrUnsupportedFormat = fmt.Errorf("unsupported source format")
	ErrParse             = fmt.Errorf("malformed source file")
)

// Format identifies a supported source file format.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
)

// DetectFormat infers the source format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx", ".xls":
		return FormatExcel, nil
	default:
		return "", fmt.Errorf("%w: extension %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Extract loads the file at path into a table, inferring the format from the
// file extension.
func Extract(path string) (person.Table, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return person.Table{}, err
	}
	return ExtractAs(path, format)
}

// ExtractAs loads the file at path as the given format, overriding extension
// based inference.
func ExtractAs(path string, format Format) (person.Table, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return person.Table{}, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}

	switch format {
	case FormatCSV:
		return extractCSV(path)
	case FormatExcel:
		return extractExcel(path)
	default:
		return person.Table{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func extractCSV(path string) (person.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return person.Table{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return person.Table{}, fmt.Errorf("%w: reading csv %s: %w", ErrParse, path, err)
	}
	return tableFromRows(rows, path)
}

func extractExcel(path string) (person.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return person.Table{}, fmt.Errorf("%w: opening workbook %s: %w", ErrParse, path, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return person.Table{}, fmt.Errorf("%w: workbook %s has no sheets", ErrParse, path)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return person.Table{}, fmt.Errorf("%w: reading sheet %q of %s: %w", ErrParse, sheet, path, err)
	}
	return tableFromRows(rows, path)
}

// tableFromRows converts raw header+data rows into a typed table. The
// name/email/dob columns are located case-insensitively; any other column is
// preserved as a pass-through field.
func tableFromRows(rows [][]string, path string) (person.Table, error) {
	if len(rows) == 0 {
		return person.Table{}, fmt.Errorf("%w: %s has no header row", ErrParse, path)
	}

	header := rows[0]
	columns := make([]string, len(header))
	nameIdx, emailIdx, dobIdx := -1, -1, -1
	for i, h := range header {
		h = strings.TrimSpace(h)
		columns[i] = h
		// Recognized columns are stored under their canonical lowercase name.
		switch strings.ToLower(h) {
		case person.ColumnName:
			nameIdx = i
			columns[i] = person.ColumnName
		case person.ColumnEmail:
			emailIdx = i
			columns[i] = person.ColumnEmail
		case person.ColumnDOB:
			dobIdx = i
			columns[i] = person.ColumnDOB
		}
	}

	table := person.Table{Columns: columns, Rows: make([]person.Record, 0, len(rows)-1)}
	for _, row := range rows[1:] {
		cell := func(idx int) string {
			if idx < 0 || idx >= len(row) {
				return ""
			}
			return row[idx]
		}

		rec := person.Record{
			Name:  cell(nameIdx),
			Email: cell(emailIdx),
			DOB:   cell(dobIdx),
		}
		for i, col := range columns {
			if i == nameIdx || i == emailIdx || i == dobIdx {
				continue
			}
			if i < len(row) {
				if rec.Extra == nil {
					rec.Extra = make(map[string]string)
				}
				rec.Extra[col] = row[i]
			}
		}
		table.Rows = append(table.Rows, rec)
	}

	return table, nil
}
