package request

import (
	"fmt"
	"strings"
	"time"

	"github.com/ndewijer/import-cost-engine/internal/apperrors"
)

// ParseDateParam parses a {date} path parameter. A plain YYYY-MM-DD is read
// in loc; a full timestamp is converted to loc before its day is taken.
func ParseDateParam(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: empty", apperrors.ErrInvalidDate)
	}

	if t, err := time.ParseInLocation("2006-01-02", raw, loc); err == nil {
		return t, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05.000Z07:00"} {
		if t, err := time.Parse(layout, raw); err == nil {
			y, m, d := t.In(loc).Date()
			return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: cannot parse %q", apperrors.ErrInvalidDate, raw)
}
