// ABOUTME: Utility functions for parsing numbers from strings
// ABOUTME: Provides safe parsing with default values for author-typed input

package parse

import (
	"regexp"
	"strconv"
	"strings"
)

var leadingNumber = regexp.MustCompile(`-?\d[\d,]*(?:\.\d+)?`)

// IntOrZero safely parses an integer from a string, returning 0 if parsing fails
func IntOrZero(s string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(s))
	return v
}

// IntOrDefault parses an integer, returning def if parsing fails
func IntOrDefault(s string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return v
}

// LooseInt extracts the first number embedded in free text such as
// "1,200 seats" or "approx. 40". Fractions are truncated.
func LooseInt(s string) (int, bool) {
	m := leadingNumber.FindString(s)
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(m, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}
