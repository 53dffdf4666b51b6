package engine

import (
	"time"

	"github.com/tartampluch/go-dateentry/internal/datefield"
)

// Clock abstracts time.Now() to allow deterministic testing.
// It stamps exported calendars and decides what "today" is in birthday mode.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Today returns the local calendar date of c.
func Today(c Clock) datefield.Date {
	return datefield.DateOf(c.Now())
}
