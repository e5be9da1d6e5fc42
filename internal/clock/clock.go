// Package clock resolves "now" against the configured local timezone.
// Timestamps are stored in UTC; the local zone is only used for display.
package clock

import (
	"fmt"
	"time"
)

// DisplayFormat is the layout used for event and record timestamps.
const DisplayFormat = "2006-01-02 15:04"

// Clock stamps and formats times in a configured zone.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// New returns a Clock for the given timezone identifier (e.g.
// "America/New_York"). An empty identifier resolves to UTC.
func New(tz string) (*Clock, error) {
	if tz == "" {
		return &Clock{loc: time.UTC, now: time.Now}, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("resolve timezone %q: %w", tz, err)
	}
	return &Clock{loc: loc, now: time.Now}, nil
}

// Fixed returns a Clock frozen at t, for tests.
func Fixed(t time.Time, loc *time.Location) *Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &Clock{loc: loc, now: func() time.Time { return t }}
}

// Now returns the current time in UTC.
func (c *Clock) Now() time.Time {
	return c.now().UTC()
}

// Local converts t into the configured zone.
func (c *Clock) Local(t time.Time) time.Time {
	return t.In(c.loc)
}

// Format renders t in the configured zone, or "-" for the zero time.
func (c *Clock) Format(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(c.loc).Format(DisplayFormat)
}

// DaysSince returns the age of t as "Nd".
func (c *Clock) DaysSince(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	days := int(c.Now().Sub(t).Hours() / 24)
	return fmt.Sprintf("%dd", days)
}

// FormatElapsed renders a duration with hours+minutes precision, e.g. "52h 17m".
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", h, m)
}
