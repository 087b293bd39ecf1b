package person

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCleaner(opts CleanOptions) *Cleaner {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewCleaner(log, opts)
}

func testTable(rows ...Record) Table {
	return Table{Columns: []string{ColumnName, ColumnEmail, ColumnDOB}, Rows: rows}
}

func TestTrimWhitespace(t *testing.T) {
	table := testTable(Record{
		Name:  "  john doe  ",
		Email: " john@example.com ",
		DOB:   " 1990-01-15\t",
		Extra: map[string]string{"city": " Pune "},
	})

	got := TrimWhitespace(table)

	assert.Equal(t, "john doe", got.Rows[0].Name)
	assert.Equal(t, "john@example.com", got.Rows[0].Email)
	assert.Equal(t, "1990-01-15", got.Rows[0].DOB)
	assert.Equal(t, "Pune", got.Rows[0].Extra["city"])
}

func TestRejectIncomplete(t *testing.T) {
	table := testTable(
		Record{Name: "John", Email: "john@example.com", DOB: "1990-01-15"},
		Record{Name: "", Email: "jane@example.com", DOB: "1985-05-20"},
		Record{Name: "Bob", Email: "", DOB: "1992-12-11"},
		Record{Name: "Amy", Email: "amy@example.com", DOB: ""},
	)

	got, dropped := RejectIncomplete(table)

	assert.Equal(t, 3, dropped)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "John", got.Rows[0].Name)
}

func TestNormalizeNames(t *testing.T) {
	table := testTable(
		Record{Name: "john doe"},
		Record{Name: "JANE SMITH"},
		Record{Name: "bOb jOhNsOn"},
	)

	got := NormalizeNames(table)

	assert.Equal(t, "John Doe", got.Rows[0].Name)
	assert.Equal(t, "Jane Smith", got.Rows[1].Name)
	assert.Equal(t, "Bob Johnson", got.Rows[2].Name)
}

func TestParseBirthdate(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		valid bool
		month time.Month
		day   int
	}{
		{name: "iso", raw: "1990-01-15", valid: true, month: time.January, day: 15},
		{name: "day slash month", raw: "20/05/1985", valid: true, month: time.May, day: 20},
		{name: "month slash day", raw: "05/20/1985", valid: true, month: time.May, day: 20},
		{name: "day dash month", raw: "15-01-1990", valid: true, month: time.January, day: 15},
		{name: "month dash day", raw: "01-15-1990", valid: true, month: time.January, day: 15},
		{name: "ambiguous resolves day first", raw: "01/02/2024", valid: true, month: time.February, day: 1},
		{name: "fallback year slash", raw: "1985/05/20", valid: true, month: time.May, day: 20},
		{name: "fallback long month", raw: "January 15, 1990", valid: true, month: time.January, day: 15},
		{name: "garbage", raw: "not a date", valid: false},
		{name: "out of range day", raw: "1990-02-30", valid: false},
		{name: "empty", raw: "", valid: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseBirthdate(tc.raw)
			require.Equal(t, tc.valid, got.Valid)
			if tc.valid {
				assert.Equal(t, tc.month, got.Month())
				assert.Equal(t, tc.day, got.Day())
			}
		})
	}
}

func TestParseBirthdatesCountsFailures(t *testing.T) {
	table := testTable(
		Record{DOB: "1990-01-15"},
		Record{DOB: "nonsense"},
	)

	got, failures := ParseBirthdates(table)

	assert.Equal(t, 1, failures)
	assert.True(t, got.Rows[0].Birthdate.Valid)
	assert.False(t, got.Rows[1].Birthdate.Valid)
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("a.b@sub.example.com"))
	assert.True(t, ValidEmail("john_doe+tag@example.co"))
	assert.False(t, ValidEmail("bad-email"))
	assert.False(t, ValidEmail("a@b"))
	assert.False(t, ValidEmail("@example.com"))
	assert.False(t, ValidEmail("john@example.c"))
}

func TestValidateEmailsDropMode(t *testing.T) {
	table := testTable(
		Record{Name: "John", Email: "john@example.com"},
		Record{Name: "Jane", Email: "invalid-email"},
	)

	got, invalid := ValidateEmails(table, true)

	assert.Equal(t, 1, invalid)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "John", got.Rows[0].Name)
}

func TestValidateEmailsMarkMode(t *testing.T) {
	table := testTable(
		Record{Name: "John", Email: "john@example.com"},
		Record{Name: "Jane", Email: "invalid-email"},
	)

	got, invalid := ValidateEmails(table, false)

	assert.Equal(t, 1, invalid)
	require.Len(t, got.Rows, 2)
	assert.True(t, got.Rows[0].EmailValid)
	assert.False(t, got.Rows[1].EmailValid)
}

func TestDeduplicateFirstWins(t *testing.T) {
	table := testTable(
		Record{Name: "John", Email: "shared@example.com"},
		Record{Name: "Jane", Email: "shared@example.com"},
		Record{Name: "Bob", Email: "bob@test.com"},
	)

	got, dropped := Deduplicate(table)

	assert.Equal(t, 1, dropped)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "John", got.Rows[0].Name)
	assert.Equal(t, "Bob", got.Rows[1].Name)
}

func TestDeduplicateIsCaseSensitive(t *testing.T) {
	table := testTable(
		Record{Name: "John", Email: "John@example.com"},
		Record{Name: "Johnny", Email: "john@example.com"},
	)

	got, dropped := Deduplicate(table)

	assert.Equal(t, 0, dropped)
	assert.Len(t, got.Rows, 2)
}

func TestDropUnparsedDates(t *testing.T) {
	table := testTable(
		Record{Name: "John", Birthdate: Birthdate{Time: time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC), Valid: true}},
		Record{Name: "Jane"},
	)

	got, dropped := DropUnparsedDates(table)

	assert.Equal(t, 1, dropped)
	require.Len(t, got.Rows, 1)
	assert.Equal(t, "John", got.Rows[0].Name)
}

func TestCleanEndToEnd(t *testing.T) {
	table := testTable(
		Record{Name: "  john doe  ", Email: "john@example.com", DOB: "1990-01-15"},
		Record{Name: "JANE SMITH", Email: "invalid-email", DOB: "1985/05/20"},
		Record{Name: "Bob Johnson", Email: "bob@test.com", DOB: "1992-12-11"},
	)

	cleaned, stats := testCleaner(CleanOptions{DropInvalidEmails: true}).Clean(table)

	assert.Equal(t, 3, stats.Input)
	assert.Equal(t, 1, stats.InvalidEmails)
	assert.Equal(t, 2, stats.Output)
	require.Len(t, cleaned.Rows, 2)
	assert.Equal(t, "John Doe", cleaned.Rows[0].Name)
	assert.Equal(t, "Bob Johnson", cleaned.Rows[1].Name)
	assert.Equal(t, time.January, cleaned.Rows[0].Birthdate.Month())
	assert.Equal(t, 15, cleaned.Rows[0].Birthdate.Day())
	assert.Equal(t, time.December, cleaned.Rows[1].Birthdate.Month())
	assert.Equal(t, 11, cleaned.Rows[1].Birthdate.Day())
}

func TestCleanIsIdempotent(t *testing.T) {
	table := testTable(
		Record{Name: "  john doe  ", Email: "john@example.com", DOB: "1990-01-15"},
		Record{Name: "JANE SMITH", Email: "invalid-email", DOB: "1985/05/20"},
		Record{Name: "dupe", Email: "john@example.com", DOB: "1991-02-02"},
		Record{Name: "Bob Johnson", Email: "bob@test.com", DOB: "bad date"},
	)

	cleaner := testCleaner(CleanOptions{DropInvalidEmails: true})
	once, _ := cleaner.Clean(table)
	twice, stats := cleaner.Clean(once)

	assert.Equal(t, once.Len(), twice.Len())
	assert.Zero(t, stats.Incomplete)
	assert.Zero(t, stats.InvalidEmails)
	assert.Zero(t, stats.Duplicates)
	assert.Zero(t, stats.UnparsedDates)
	assert.Equal(t, once.Rows, twice.Rows)
}

func TestCleanMissingColumnDoesNotPanic(t *testing.T) {
	table := Table{
		Columns: []string{ColumnName, ColumnEmail},
		Rows: []Record{
			{Name: "John", Email: "john@example.com"},
		},
	}

	cleaned, stats := testCleaner(CleanOptions{DropInvalidEmails: true}).Clean(table)

	// dob is absent for every row, so every row is rejected as incomplete.
	assert.Equal(t, 1, stats.Incomplete)
	assert.Zero(t, cleaned.Len())
}
