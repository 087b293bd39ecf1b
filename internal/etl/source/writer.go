package source

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"birthday_notifier/internal/domain/person"
)

// Derived columns appended when writing a cleaned table.
var derivedColumns = []string{"dob_parsed", "birth_month", "birth_day"}

// WriteCSV writes the table, derived columns included, as CSV. Parent
// directories are created as needed.
func WriteCSV(t person.Table, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory for %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	for _, row := range outputRows(t) {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}

// WriteExcel writes the table, derived columns included, as an XLSX workbook.
// Parent directories are created as needed.
func WriteExcel(t person.Table, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output directory for %s: %w", path, err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range outputRows(t) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("addressing row %d of %s: %w", i+1, path, err)
		}
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("writing row %d of %s: %w", i+1, path, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

// outputRows renders the table as a header row plus one row per record, with
// source columns first and derived columns appended.
func outputRows(t person.Table) [][]string {
	header := append(append([]string{}, t.Columns...), derivedColumns...)
	rows := [][]string{header}

	for _, r := range t.Rows {
		row := make([]string, 0, len(header))
		for _, col := range t.Columns {
			switch col {
			case person.ColumnName:
				row = append(row, r.Name)
			case person.ColumnEmail:
				row = append(row, r.Email)
			case person.ColumnDOB:
				row = append(row, r.DOB)
			default:
				row = append(row, r.Extra[col])
			}
		}
		if r.Birthdate.Valid {
			row = append(row,
				r.Birthdate.Time.Format("2006-01-02"),
				strconv.Itoa(int(r.Birthdate.Month())),
				strconv.Itoa(r.Birthdate.Day()),
			)
		} else {
			row = append(row, "", "", "")
		}
		rows = append(rows, row)
	}
	return rows
}
