package repository

import (
	"fmt"
	"time"
)

// ParseDate parses a stored date column in "2006-01-02" or RFC3339 format.
// The result is midnight of that day in loc, matching how the resolver keys
// snapshots by local calendar date.
func ParseDate(str string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation("2006-01-02", str, loc)
	if err != nil {
		t, err = time.Parse(time.RFC3339, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
		}
		y, m, d := t.Date()
		t = time.Date(y, m, d, 0, 0, 0, 0, loc)
	}
	return t, nil
}
