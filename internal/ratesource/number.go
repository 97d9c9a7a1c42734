package ratesource

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ParseDecimal parses a number as published by the rate source.
// Comma and dot are both accepted as the decimal separator and any kind of
// whitespace (including non-breaking spaces) is treated as a thousands
// separator. When both separators appear, the last one is the decimal point.
func ParseDecimal(raw string) (float64, error) {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '"' || r == '\'' {
			return -1
		}
		return r
	}, raw)
	if s == "" {
		return 0, fmt.Errorf("empty number %q", raw)
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		if strings.Count(s, ",") > 1 {
			return 0, fmt.Errorf("ambiguous number %q", raw)
		}
		s = strings.Replace(s, ",", ".", 1)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse number %q: %w", raw, err)
	}
	return v, nil
}
