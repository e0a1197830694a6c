package returns

import (
	"fmt"
	"time"
)

// commitmentLayouts covers the ISO-8601 shapes the loan service has been
// seen serving: offset-qualified, naive (taken as UTC), with and without
// fractional seconds, and bare dates.
var commitmentLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseCommitment parses a commitment timestamp from its wire form. A naive
// value is interpreted as UTC; an offset-qualified one is converted to UTC.
// Failure is caller-visible, never a silent default.
func ParseCommitment(s string) (time.Time, error) {
	for _, layout := range commitmentLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrMalformedTimestamp(fmt.Sprintf("cannot parse commitment timestamp %q", s))
}

// IsOverdue reports whether now is strictly past the committed return
// instant. Both sides are normalized to UTC; equal instants are not overdue.
func IsOverdue(commitment, now time.Time) bool {
	return now.UTC().After(commitment.UTC())
}
