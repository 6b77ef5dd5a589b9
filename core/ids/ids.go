// ABOUTME: Identifier normalization for documents of the external store
// ABOUTME: Accepts hyphenated UUIDs, 32-character ids and document URLs

// Package ids converts between the store's canonical 36-character hyphenated
// identifiers, the 32-character form used by internal routes, and the URLs
// authors paste into documents.
package ids

import (
	"net/url"
	"regexp"
	"strings"

	coreerrors "blockpress-api/core/errors"
)

const (
	hyphenated = `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`
	compact    = `[0-9a-fA-F]{32}`
)

var (
	exactID    = regexp.MustCompile(`^(?:` + hyphenated + `|` + compact + `)$`)
	trailingID = regexp.MustCompile(`(?:^|[^0-9a-fA-F])(` + hyphenated + `|` + compact + `)$`)
	// bare internal path, e.g. "/3f1a...f8", "/3f1a...f8#block" or "/3f1a...f8?pvs=4"
	internalPath = regexp.MustCompile(`^/(` + hyphenated + `|` + compact + `)(?:[?#].*)?$`)
)

// IsPageID reports whether s is exactly an identifier in either form
func IsPageID(s string) bool {
	return exactID.MatchString(strings.TrimSpace(s))
}

// Compact returns the 32-character lower-case form of an identifier.
// It does not validate its input.
func Compact(id string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(id), "-", ""))
}

// Canonical returns the 36-character hyphenated lower-case form of a valid
// identifier in either form
func Canonical(id string) (string, error) {
	c := Compact(id)
	if len(c) != 32 || !exactID.MatchString(c) {
		return "", &coreerrors.InvalidReferenceError{Reference: id, Reason: "not a 32-character hexadecimal identifier"}
	}
	return c[0:8] + "-" + c[8:12] + "-" + c[12:16] + "-" + c[16:20] + "-" + c[20:32], nil
}

// Normalize extracts an identifier from a bare id, a slugged id
// ("Title-<id>") or a document URL and returns it in canonical form
func Normalize(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", &coreerrors.InvalidReferenceError{Reference: ref, Reason: "empty reference"}
	}

	for _, candidate := range candidates(ref) {
		if m := trailingID.FindStringSubmatch(candidate); m != nil {
			return Canonical(m[1])
		}
	}
	return "", &coreerrors.InvalidReferenceError{Reference: ref, Reason: "no document identifier found"}
}

// candidates lists the strings that may end with an identifier, most
// specific first
func candidates(ref string) []string {
	u, err := url.Parse(ref)
	if err != nil || (u.Scheme == "" && u.Host == "") {
		return []string{strings.Trim(ref, "/")}
	}

	var out []string
	q := u.Query()
	for _, key := range []string{"p", "id", "pageId"} {
		if v := q.Get(key); v != "" {
			out = append(out, v)
		}
	}
	path := strings.Trim(u.Path, "/")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[i+1:]
	}
	return append(out, path)
}

// InternalTarget reports whether href is a bare path pointing at another
// document of the store, and returns that document's compact identifier
func InternalTarget(href string) (string, bool) {
	m := internalPath.FindStringSubmatch(strings.TrimSpace(href))
	if m == nil {
		return "", false
	}
	return Compact(m[1]), true
}

// ViewerRoute builds the application route that renders the given document
func ViewerRoute(prefix, id string) string {
	if prefix == "" {
		prefix = DefaultViewerRoute
	}
	return prefix + "?id=" + url.QueryEscape(Compact(id))
}

// DefaultViewerRoute is the route used when none is configured
const DefaultViewerRoute = "/viewer"
