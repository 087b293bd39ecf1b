package source

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"birthday_notifier/internal/domain/person"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path   string
		format Format
		ok     bool
	}{
		{"birthdays.csv", FormatCSV, true},
		{"birthdays.CSV", FormatCSV, true},
		{"birthdays.xlsx", FormatExcel, true},
		{"birthdays.xls", FormatExcel, true},
		{"birthdays.json", "", false},
		{"birthdays", "", false},
	}

	for _, tc := range tests {
		got, err := DetectFormat(tc.path)
		if tc.ok {
			require.NoError(t, err, tc.path)
			assert.Equal(t, tc.format, got, tc.path)
		} else {
			assert.True(t, errors.Is(err, ErrUnsupportedFormat), tc.path)
		}
	}
}

func TestExtractMissingFile(t *testing.T) {
	_, err := Extract(filepath.Join(t.TempDir(), "nope.csv"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSourceNotFound))
}

func TestExtractUnsupportedExtension(t *testing.T) {
	path := writeFile(t, "birthdays.json", `{}`)

	_, err := Extract(path)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestExtractCSV(t *testing.T) {
	path := writeFile(t, "birthdays.csv",
		"Name,Email,DOB,city\njohn doe,john@example.com,1990-01-15,Pune\n")

	table, err := Extract(path)

	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	// Recognized headers are canonicalized regardless of case.
	assert.Equal(t, []string{"name", "email", "dob", "city"}, table.Columns)
	assert.Equal(t, "john doe", table.Rows[0].Name)
	assert.Equal(t, "john@example.com", table.Rows[0].Email)
	assert.Equal(t, "1990-01-15", table.Rows[0].DOB)
	assert.Equal(t, "Pune", table.Rows[0].Extra["city"])
}

func TestExtractCSVMissingColumnYieldsEmptyFields(t *testing.T) {
	path := writeFile(t, "birthdays.csv", "name,email\njohn,john@example.com\n")

	table, err := Extract(path)

	require.NoError(t, err)
	assert.False(t, table.HasColumn(person.ColumnDOB))
	assert.Empty(t, table.Rows[0].DOB)
}

func TestExtractMalformedCSV(t *testing.T) {
	path := writeFile(t, "birthdays.csv", "name,email,dob\n\"unterminated,a@b.com,1990-01-15\n")

	_, err := Extract(path)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParse))
	// The underlying parse error stays on the chain alongside the sentinel.
	assert.True(t, errors.Is(err, csv.ErrQuote))
}

func TestExtractEmptyCSV(t *testing.T) {
	path := writeFile(t, "birthdays.csv", "")

	_, err := Extract(path)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParse))
}

func TestExtractAsOverridesExtension(t *testing.T) {
	// CSV content under a non-.csv name: inference would refuse it, the
	// explicit format override reads it.
	path := writeFile(t, "birthdays.dat",
		"name,email,dob\njohn doe,john@example.com,1990-01-15\n")

	_, err := Extract(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	table, err := ExtractAs(path, FormatCSV)
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())
	assert.Equal(t, "john doe", table.Rows[0].Name)
	assert.Equal(t, "1990-01-15", table.Rows[0].DOB)
}

func TestExtractAsUnknownFormat(t *testing.T) {
	path := writeFile(t, "birthdays.csv", "name,email,dob\n")

	_, err := ExtractAs(path, Format("parquet"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestExtractMalformedWorkbook(t *testing.T) {
	path := writeFile(t, "birthdays.xlsx", "this is not a zip archive")

	_, err := Extract(path)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrParse))
}

func TestWriteCSVRoundTrip(t *testing.T) {
	table := person.Table{
		Columns: []string{person.ColumnName, person.ColumnEmail, person.ColumnDOB, "city"},
		Rows: []person.Record{
			{
				Name:      "John Doe",
				Email:     "john@example.com",
				DOB:       "1990-01-15",
				Birthdate: person.Birthdate{Time: time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC), Valid: true},
				Extra:     map[string]string{"city": "Pune"},
			},
		},
	}
	path := filepath.Join(t.TempDir(), "processed", "cleaned.csv")

	require.NoError(t, WriteCSV(table, path))

	got, err := Extract(path)
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())
	assert.Equal(t,
		[]string{"name", "email", "dob", "city", "dob_parsed", "birth_month", "birth_day"},
		got.Columns)
	assert.Equal(t, "John Doe", got.Rows[0].Name)
	assert.Equal(t, "Pune", got.Rows[0].Extra["city"])
	assert.Equal(t, "1990-01-15", got.Rows[0].Extra["dob_parsed"])
	assert.Equal(t, "1", got.Rows[0].Extra["birth_month"])
	assert.Equal(t, "15", got.Rows[0].Extra["birth_day"])
}

func TestWriteExcelRoundTrip(t *testing.T) {
	table := person.Table{
		Columns: []string{person.ColumnName, person.ColumnEmail, person.ColumnDOB},
		Rows: []person.Record{
			{
				Name:      "Bob Johnson",
				Email:     "bob@test.com",
				DOB:       "1992-12-11",
				Birthdate: person.Birthdate{Time: time.Date(1992, 12, 11, 0, 0, 0, 0, time.UTC), Valid: true},
			},
		},
	}
	path := filepath.Join(t.TempDir(), "processed", "cleaned.xlsx")

	require.NoError(t, WriteExcel(table, path))

	got, err := Extract(path)
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())
	assert.Equal(t, "Bob Johnson", got.Rows[0].Name)
	assert.Equal(t, "bob@test.com", got.Rows[0].Email)
	assert.Equal(t, "12", got.Rows[0].Extra["birth_month"])
}
