package run

import (
	"fmt"
	"strings"
	"time"

	"birthday_notifier/internal/domain/notification"
)

// Report captures the outcome of one pipeline run: how many records each
// stage produced and the delivery result.
type Report struct {
	ID        int64
	RunDate   time.Time
	Extracted int
	Cleaned   int
	Matched   int
	Matches   []notification.Recipient
	Delivery  notification.DeliveryResult
	DryRun    bool
	CreatedAt time.Time
}

// Summary formats the report as a human-readable multi-line string. Pure
// formatting; zero values for any stage are fine.
func (r *Report) Summary() string {
	var b strings.Builder
	divider := strings.Repeat("=", 60)

	fmt.Fprintln(&b, divider)
	fmt.Fprintf(&b, "BIRTHDAY PIPELINE SUMMARY - %s\n", r.RunDate.Format("2006-01-02"))
	fmt.Fprintln(&b, divider)
	fmt.Fprintf(&b, "Records extracted:      %d\n", r.Extracted)
	fmt.Fprintf(&b, "Records after cleaning: %d\n", r.Cleaned)
	fmt.Fprintf(&b, "Birthdays today:        %d\n", r.Matched)
	for _, m := range r.Matches {
		fmt.Fprintf(&b, "  - %s (%s)\n", m.Name, m.Email)
	}
	if r.Matched == 0 {
		fmt.Fprintln(&b, "No birthdays today. No emails to send.")
	} else if r.DryRun {
		fmt.Fprintln(&b, "Delivery skipped: transport credentials not configured.")
	}
	fmt.Fprintf(&b, "Emails sent: %d success, %d failed\n", r.Delivery.Success, r.Delivery.Failed)
	fmt.Fprintln(&b, divider)

	return b.String()
}
