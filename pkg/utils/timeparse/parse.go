// ABOUTME: Time parsing utilities for flexible date/time parsing
// ABOUTME: Handles ISO dates from the document store and dates typed by authors

package timeparse

import (
	"strings"
	"time"
)

// Formats tried in order; the store's own ISO forms come first
var timeFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"January 2, 2006 15:04",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	time.RFC1123Z,
	time.RFC1123,
}

// ParseFlexibleTime attempts to parse a time string using various formats.
// It returns the zero time when nothing matches.
func ParseFlexibleTime(timeStr string) time.Time {
	timeStr = strings.TrimSpace(timeStr)
	if timeStr == "" {
		return time.Time{}
	}

	for _, format := range timeFormats {
		if t, err := time.Parse(format, timeStr); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ParsePtr parses timeStr and returns nil when it is empty or unparseable
func ParsePtr(timeStr string) *time.Time {
	t := ParseFlexibleTime(timeStr)
	if t.IsZero() {
		return nil
	}
	return &t
}

// ParseWithDefault attempts to parse a time string, returning a default if parsing fails
func ParseWithDefault(timeStr string, defaultTime time.Time) time.Time {
	if parsed := ParseFlexibleTime(timeStr); !parsed.IsZero() {
		return parsed
	}
	return defaultTime
}
