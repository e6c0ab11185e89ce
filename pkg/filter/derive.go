package filter

import (
	"fmt"
	"time"

	"github.com/byxorna/cafes/pkg/types/v1"
)

// Clock supplies "now" to the derived display fields so they can be pinned
// in tests.
type Clock func() time.Time

// SystemClock reads the wall clock.
func SystemClock() time.Time { return time.Now() }

// TimeOfDayAt buckets the hour of t: before noon is morning, before 17:00 is
// afternoon, anything later is evening.
func TimeOfDayAt(t time.Time) v1.TimeOfDay {
	switch h := t.Hour(); {
	case h < 12:
		return v1.Morning
	case h < 17:
		return v1.Afternoon
	default:
		return v1.Evening
	}
}

// CrowdLabel is how busy the cafe usually is at the time of day of now, or
// "unknown" when the cafe has no crowd data.
func CrowdLabel(c *v1.Cafe, now time.Time) v1.CrowdLevel {
	if c.Crowd == nil {
		return v1.CrowdUnknown
	}
	return c.Crowd.At(TimeOfDayAt(now))
}

// IsOpenAt reports whether now falls inside the opening hours. A closing hour
// earlier than the opening hour wraps past midnight.
func IsOpenAt(c *v1.Cafe, now time.Time) bool {
	h := now.Hour()
	opening, closing := c.OpenHours.Open, c.OpenHours.Close
	if closing < opening {
		return h >= opening || h < closing
	}
	return h >= opening && h < closing
}

// HoursLabel renders the opening hours, e.g. "8:00 - 23:00".
func HoursLabel(c *v1.Cafe) string {
	return fmt.Sprintf("%d:00 - %d:00", c.OpenHours.Open, c.OpenHours.Close)
}

// ResultsLabel is the results counter text, e.g. "1 cafe found".
func ResultsLabel(count int) string {
	if count == 1 {
		return "1 cafe found"
	}
	return fmt.Sprintf("%d cafes found", count)
}
