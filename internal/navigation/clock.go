package navigation

import "time"

// Clock supplies the reference "now" at the edges of the program.
// Core functions take the time as a parameter; only the CLI, server and
// TUI hold a Clock.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in a fixed location.
// The zero value uses time.Local.
type SystemClock struct {
	Location *time.Location
}

// Now returns the current time in the clock's location.
func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}
