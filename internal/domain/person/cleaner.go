package person

import (
	"regexp"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// emailPattern accepts local-parts of letters, digits and ._%+-, one or more
// dot-separated domain labels, and a top-level label of at least two letters.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// birthdateLayouts are tried in order; the first successful parse wins.
// Day-first layouts come before month-first, so an ambiguous value such as
// "01/02/2024" parses as 1 February. See ParseBirthdate.
var birthdateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"02-01-2006",
	"01-02-2006",
}

// fallbackLayouts are a permissive second pass for values none of the strict
// layouts accept.
var fallbackLayouts = []string{
	"2006/01/02",
	"2006.01.02",
	"02.01.2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	time.RFC3339,
}

// CleanOptions controls caller-selectable cleaning behavior.
type CleanOptions struct {
	// DropInvalidEmails drops records failing email validation when true;
	// otherwise records are kept and marked via Record.EmailValid.
	DropInvalidEmails bool
}

// CleanStats reports how many rows each cleaning stage removed.
type CleanStats struct {
	Input         int
	Incomplete    int
	InvalidEmails int // only counts drops in drop mode; in mark mode it counts marks
	Duplicates    int
	UnparsedDates int
	Output        int
}

// Cleaner applies the fixed sequence of cleaning stages to a table.
type Cleaner struct {
	opts   CleanOptions
	logger *logrus.Logger
}

func NewCleaner(logger *logrus.Logger, opts CleanOptions) *Cleaner {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Cleaner{opts: opts, logger: logger}
}

// Clean runs all cleaning stages in order and returns the surviving table
// together with per-stage removal counts. Row-level problems never abort the
// run; rows are dropped and counted instead. Clean is idempotent: running it
// on its own output removes nothing further.
func (c *Cleaner) Clean(t Table) (Table, CleanStats) {
	stats := CleanStats{Input: t.Len()}

	for _, col := range []string{ColumnName, ColumnEmail, ColumnDOB} {
		if !t.HasColumn(col) {
			c.logger.Warnf("Column '%s' not found in source table; values treated as missing.", col)
		}
	}

	c.logger.Debug("Trimming whitespace from string fields.")
	t = TrimWhitespace(t)

	t, dropped := RejectIncomplete(t)
	stats.Incomplete = dropped
	if dropped > 0 {
		c.logger.Warnf("Dropped %d rows with missing critical fields.", dropped)
	}

	c.logger.Debug("Standardizing name casing.")
	t = NormalizeNames(t)

	t, failures := ParseBirthdates(t)
	if failures > 0 {
		c.logger.Warnf("Failed to parse %d dates.", failures)
	}

	t, invalid := ValidateEmails(t, c.opts.DropInvalidEmails)
	stats.InvalidEmails = invalid
	if invalid > 0 {
		if c.opts.DropInvalidEmails {
			c.logger.Infof("Dropped %d rows with invalid email addresses.", invalid)
		} else {
			c.logger.Infof("Marked %d rows with invalid email addresses.", invalid)
		}
	}

	t, dupes := Deduplicate(t)
	stats.Duplicates = dupes
	if dupes > 0 {
		c.logger.Infof("Removed %d duplicate rows.", dupes)
	}

	t, unparsed := DropUnparsedDates(t)
	stats.UnparsedDates = unparsed
	if unparsed > 0 {
		c.logger.Warnf("Dropped %d rows with unparseable dates.", unparsed)
	}

	stats.Output = t.Len()
	c.logger.Infof("Cleaning complete. Final record count: %d", stats.Output)
	return t, stats
}

// TrimWhitespace strips leading and trailing whitespace from every
// string-valued field, pass-through columns included.
func TrimWhitespace(t Table) Table {
	rows := make([]Record, 0, len(t.Rows))
	for _, r := range t.Rows {
		r.Name = strings.TrimSpace(r.Name)
		r.Email = strings.TrimSpace(r.Email)
		r.DOB = strings.TrimSpace(r.DOB)
		if len(r.Extra) > 0 {
			extra := make(map[string]string, len(r.Extra))
			for k, v := range r.Extra {
				extra[k] = strings.TrimSpace(v)
			}
			r.Extra = extra
		}
		rows = append(rows, r)
	}
	t.Rows = rows
	return t
}

// RejectIncomplete drops records missing name, email or dob and returns the
// number of dropped rows.
func RejectIncomplete(t Table) (Table, int) {
	rows := make([]Record, 0, len(t.Rows))
	for _, r := range t.Rows {
		if r.Name == "" || r.Email == "" || r.DOB == "" {
			continue
		}
		rows = append(rows, r)
	}
	dropped := len(t.Rows) - len(rows)
	t.Rows = rows
	return t, dropped
}

// NormalizeNames converts names to title case.
func NormalizeNames(t Table) Table {
	caser := cases.Title(language.English)
	rows := make([]Record, 0, len(t.Rows))
	for _, r := range t.Rows {
		r.Name = caser.String(r.Name)
		rows = append(rows, r)
	}
	t.Rows = rows
	return t
}

// ParseBirthdate parses a raw date-of-birth string, trying each strict layout
// in order and falling back to a permissive set when none match. Ambiguous
// numeric dates resolve day-first because the day-first layouts are tried
// before the month-first ones; "01/02/2024" is 1 February, not 2 January.
// This mirrors the historical behavior of the pipeline and is a documented
// limitation, not a guarantee about the intent of the source data.
func ParseBirthdate(raw string) Birthdate {
	if raw == "" {
		return Birthdate{}
	}
	for _, layout := range birthdateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return Birthdate{Time: ts, Valid: true}
		}
	}
	for _, layout := range fallbackLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return Birthdate{Time: ts, Valid: true}
		}
	}
	return Birthdate{}
}

// ParseBirthdates parses the dob of every record, marking the parsed value
// absent on failure rather than erroring. Returns the number of failures.
func ParseBirthdates(t Table) (Table, int) {
	failures := 0
	rows := make([]Record, 0, len(t.Rows))
	for _, r := range t.Rows {
		r.Birthdate = ParseBirthdate(r.DOB)
		if !r.Birthdate.Valid {
			failures++
		}
		rows = append(rows, r)
	}
	t.Rows = rows
	return t, failures
}

// ValidEmail reports whether the address satisfies the syntactic email pattern.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidateEmails checks every record's email against the syntactic pattern.
// In drop mode invalid records are removed; otherwise they are kept with
// EmailValid set accordingly. Returns the number of invalid emails found.
func ValidateEmails(t Table, drop bool) (Table, int) {
	invalid := 0
	rows := make([]Record, 0, len(t.Rows))
	for _, r := range t.Rows {
		ok := ValidEmail(r.Email)
		if !ok {
			invalid++
			if drop {
				continue
			}
		}
		r.EmailValid = ok
		rows = append(rows, r)
	}
	t.Rows = rows
	return t, invalid
}

// Deduplicate keeps only the first record per unique email (case-sensitive
// exact match) and returns the number of dropped duplicates.
func Deduplicate(t Table) (Table, int) {
	seen := make(map[string]bool, len(t.Rows))
	rows := make([]Record, 0, len(t.Rows))
	for _, r := range t.Rows {
		if seen[r.Email] {
			continue
		}
		seen[r.Email] = true
		rows = append(rows, r)
	}
	dropped := len(t.Rows) - len(rows)
	t.Rows = rows
	return t, dropped
}

// DropUnparsedDates removes records whose birthdate could not be parsed and
// returns the number of dropped rows.
func DropUnparsedDates(t Table) (Table, int) {
	rows := make([]Record, 0, len(t.Rows))
	for _, r := range t.Rows {
		if !r.Birthdate.Valid {
			continue
		}
		rows = append(rows, r)
	}
	dropped := len(t.Rows) - len(rows)
	t.Rows = rows
	return t, dropped
}
