package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/starford/ehwaz/internal/slug"
)

const (
	// truncationMarker ends a note's exported body; everything after it
	// is dropped, even inside a code fence.
	truncationMarker = "=== end ==="
	fenceMarker      = "```"
)

// assetCopyFunc copies a referenced asset; name is the text inside the
// brackets, slugName its destination slug.
type assetCopyFunc func(name, slugName string) error

// rewriteBody streams body lines to w, rewriting double-bracket
// references outside code fences and copying referenced image assets.
//
// The fence state is a single boolean: an opening line (trimmed prefix
// "```") never closes its own fence, and a line trimming to exactly
// "```" inside a fence closes it. Nesting is deliberately not tracked.
func rewriteBody(lines []string, w io.Writer, copyAsset assetCopyFunc) error {
	inFence := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == truncationMarker {
			break
		}
		if !inFence && strings.HasPrefix(trimmed, fenceMarker) {
			inFence = true
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
			continue
		}
		if inFence {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
			if trimmed == fenceMarker {
				inFence = false
			}
			continue
		}
		if err := rewriteLine(line, w, copyAsset); err != nil {
			return err
		}
	}
	return nil
}

// rewriteLine scans one prose line left to right for [[...]] references.
//
//	[[Some Title]]  → [Some Title](/posts/some-title/)
//	[[some-img.png]] → [some-img.png](/assets/some-img.png), copying the file
//	[[   ]]          → emitted literally
//
// An unmatched opener passes the rest of the line through verbatim.
func rewriteLine(line string, w io.Writer, copyAsset assetCopyFunc) error {
	rest := line
	for {
		start := strings.Index(rest, "[[")
		if start < 0 {
			break
		}
		end := strings.Index(rest[start+2:], "]]")
		if end < 0 {
			break
		}
		if _, err := io.WriteString(w, rest[:start]); err != nil {
			return err
		}

		inner := rest[start+2 : start+2+end]
		switch {
		case strings.HasSuffix(inner, ".png") || strings.HasSuffix(inner, ".jpg"):
			slugName := slug.Encode(inner)
			if err := copyAsset(inner, slugName); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, "[%s](/assets/%s)", slugName, slugName); err != nil {
				return err
			}
		case strings.TrimSpace(inner) != "":
			if _, err := fmt.Fprintf(w, "[%s](/posts/%s/)", inner, slug.Encode(inner)); err != nil {
				return err
			}
		default:
			// Empty reference is literal text, not a link.
			if _, err := fmt.Fprintf(w, "[[%s]]", inner); err != nil {
				return err
			}
		}
		rest = rest[start+2+end+2:]
	}
	_, err := fmt.Fprintln(w, rest)
	return err
}
