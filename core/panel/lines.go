package panel

import (
	"regexp"
	"strings"
)

var (
	listMarker = regexp.MustCompile(`^\s*(?:[-*•]\s+|\d+[.)]\s+)`)
	httpURL    = regexp.MustCompile(`https?://[^\s<>"'()\[\]]+`)
)

// stripListMarker removes a leading "- ", "* ", "• ", "1. " or "1) " prefix
func stripListMarker(line string) string {
	return listMarker.ReplaceAllString(line, "")
}

// splitKeyValue splits a metadata line on its first colon. The key is
// lower-cased with spaces, underscores and hyphens removed.
func splitKeyValue(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(stripListMarker(line))
	i := strings.Index(line, ":")
	if i <= 0 {
		return "", "", false
	}

	key = strings.ToLower(strings.TrimSpace(line[:i]))
	key = strings.NewReplacer(" ", "", "_", "", "-", "").Replace(key)
	if key == "" {
		return "", "", false
	}
	return key, strings.TrimSpace(line[i+1:]), true
}

// firstURL returns the first http(s) URL embedded in s
func firstURL(s string) (string, bool) {
	u := httpURL.FindString(s)
	if u == "" {
		return "", false
	}
	return strings.TrimRight(u, ".,;:!?"), true
}

// textLines splits text into trimmed, non-empty lines
func textLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
