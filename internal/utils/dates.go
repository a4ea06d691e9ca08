package utils

import (
	"fmt"
	"time"
)

// dateLayouts are the accepted wire formats for date parameters, tried in
// order. Plain dates parse to midnight UTC.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseDateParam parses a date query parameter.
func ParseDateParam(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected RFC3339 or YYYY-MM-DD", s)
}

// ParseOptionalDateParam parses a date query parameter, treating the empty
// string as absent.
func ParseOptionalDateParam(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseDateParam(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
