package utils

import (
	"fmt"
	"strings"
	"time"
)

const dateOnly = "2006-01-02"

// ParseDate accepts an RFC 3339 timestamp or a plain YYYY-MM-DD date.
// Results are always in UTC.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(dateOnly, value); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: expected RFC 3339 or YYYY-MM-DD", value)
}
