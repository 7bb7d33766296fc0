package services

import (
	"regexp"
	"time"
)

// A leading # followed by exactly 3 or exactly 6 hex digits, case-insensitive
var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func ValidHexColor(color string) bool {
	return hexColorRe.MatchString(color)
}

// Accepted input layouts, tried in order. Zone-less inputs are read as UTC,
// so a date-only value canonicalizes to midnight UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func ParseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidDate
}
