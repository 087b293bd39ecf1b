package person

import (
	"time"

	"birthday_notifier/internal/domain/notification"
)

// Match returns the recipients whose birth month and day equal those of the
// given run date, in table row order. The result is empty, never nil, when
// nobody matches. Records without a parsed birthdate never match.
func Match(t Table, today time.Time) []notification.Recipient {
	matches := make([]notification.Recipient, 0)
	for _, r := range t.Rows {
		if !r.Birthdate.Valid {
			continue
		}
		if r.Birthdate.Month() == today.Month() && r.Birthdate.Day() == today.Day() {
			matches = append(matches, notification.Recipient{Name: r.Name, Email: r.Email})
		}
	}
	return matches
}
