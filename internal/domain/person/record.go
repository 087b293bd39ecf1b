package person

import (
	"time"
)

// Column names the pipeline requires in every source file.
const (
	ColumnName  = "name"
	ColumnEmail = "email"
	ColumnDOB   = "dob"
)

// Birthdate is an optional parsed date of birth. Valid is false when the raw
// dob string could not be parsed by any supported format.
type Birthdate struct {
	Time  time.Time
	Valid bool
}

// Month returns the calendar month of the birthdate. Only meaningful when Valid.
func (b Birthdate) Month() time.Month {
	return b.Time.Month()
}

// Day returns the day of the month of the birthdate. Only meaningful when Valid.
func (b Birthdate) Day() int {
	return b.Time.Day()
}

// Record represents one person's entry from the source file.
type Record struct {
	Name  string
	Email string
	DOB   string // raw date-of-birth string as read from the source

	// Derived fields, populated by the cleaner.
	Birthdate  Birthdate
	EmailValid bool // only meaningful when emails are validated in mark mode

	// Extra holds pass-through columns beyond name/email/dob, keyed by the
	// source header name.
	Extra map[string]string
}

// Table is an ordered set of records sharing a common column schema.
// Columns preserves the source header order for pass-through writing.
type Table struct {
	Columns []string
	Rows    []Record
}

// HasColumn reports whether the table schema contains the given column.
func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Len returns the number of rows in the table.
func (t Table) Len() int {
	return len(t.Rows)
}
