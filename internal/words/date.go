package words

import (
	"regexp"
	"time"
)

// DateLayout is the time layout of a record date (YYYYMMDD).
const DateLayout = "20060102"

// DisplayLayout renders a date the way the word page headline does.
const DisplayLayout = "Monday, January 2, 2006"

var dateSlugPattern = regexp.MustCompile(`^[0-9]{8}$`)

// IsDateSlug reports whether s is exactly eight ASCII digits.
// It does not check that s is a real calendar date.
func IsDateSlug(s string) bool {
	return dateSlugPattern.MatchString(s)
}

// ParseDate parses a YYYYMMDD string as midnight in loc.
// A nil loc means time.Local.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateLayout, s, loc)
}

// FormatDate renders t's calendar day as YYYYMMDD in t's location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DisplayDate renders a YYYYMMDD date in DisplayLayout. A date that does
// not parse is returned unchanged.
func DisplayDate(s string) string {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return s
	}
	return t.Format(DisplayLayout)
}
