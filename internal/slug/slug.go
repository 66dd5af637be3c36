// Package slug derives URL-safe identifiers from note titles and paths.
package slug

import "strings"

// Encode maps a reference title or a slash-separated relative path to its
// URL form: spaces and path separators become hyphens, letters are
// lowercased. The same input always yields the same slug, so it is safe
// to use both for output file names and in-text link targets.
func Encode(s string) string {
	r := strings.NewReplacer(" ", "-", "/", "-", "\\", "-")
	return strings.ToLower(r.Replace(s))
}
