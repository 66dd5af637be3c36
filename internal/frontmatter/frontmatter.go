// Package frontmatter parses and renders the minimal YAML-like property
// block at the top of a note.
//
// The parser is a deliberate subset: scalar values, inline bracket lists,
// and hyphen-continuation lists. It reads line by line and never rejects
// input; notes in the wild carry arbitrary front matter.
package frontmatter

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

// Kind discriminates the two value shapes a property can take.
type Kind int

const (
	// KindScalar is a single string value.
	KindScalar Kind = iota
	// KindList is an ordered sequence of string items.
	KindList
)

// Value is one front-matter entry: either a scalar or a list.
type Value struct {
	Kind  Kind
	Str   string
	Items []string
}

// Scalar constructs a scalar Value.
func Scalar(s string) Value {
	return Value{Kind: KindScalar, Str: s}
}

// List constructs a list Value.
func List(items ...string) Value {
	return Value{Kind: KindList, Items: items}
}

// Props maps property names to values. Keys are case-sensitive.
type Props map[string]Value

// Delim is the front-matter block delimiter line.
const Delim = "---"

// Parse reads a front-matter block from the start of lines.
//
// Leading blank lines are skipped. If the next line does not trim to the
// delimiter, or the accumulated block is empty, Parse returns (nil, body)
// meaning "no front matter". Otherwise it consumes lines up to and
// including the closing delimiter (an unterminated block is accepted and
// consumes the rest of the input) and returns the properties plus the
// index of the first body line.
func Parse(lines []string) (Props, int) {
	i := 0
	for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
		i++
	}
	if i >= len(lines) || strings.TrimSpace(lines[i]) != Delim {
		return nil, i
	}
	i++

	props := Props{}
	// listKey is the target of an open hyphen-continuation, or "" when no
	// continuation is active. It is threaded explicitly through each
	// classification step rather than hidden in the loop.
	listKey := ""
	for ; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == Delim {
			i++
			break
		}
		listKey = classify(props, listKey, lines[i])
	}

	if len(props) == 0 {
		return nil, i
	}
	return props, i
}

// classify folds one block line into props and returns the new
// continuation key.
func classify(props Props, listKey, line string) string {
	if pos := strings.Index(line, ":"); pos >= 0 {
		key := strings.TrimSpace(line[:pos])
		val := strings.TrimSpace(line[pos+1:])
		switch {
		case key != "" && val != "":
			if items, ok := splitInlineList(val); ok {
				props[key] = List(items...)
			} else {
				props[key] = Scalar(val)
			}
			return ""
		case key != "":
			// Empty value opens a hyphen-continuation list.
			props[key] = List()
			return key
		default:
			// Colon with no key: malformed, ends any continuation.
			return ""
		}
	}

	if pos := strings.Index(line, "-"); pos >= 0 {
		if strings.TrimSpace(line[:pos]) != "" || listKey == "" {
			return listKey
		}
		val := strings.TrimSpace(line[pos+1:])
		if val == "" {
			return listKey
		}
		if v, ok := props[listKey]; ok && v.Kind == KindList {
			v.Items = append(v.Items, val)
			props[listKey] = v
		}
	}
	return listKey
}

// splitInlineList parses a bracketed value like [a, b, "c d"]. A value is a
// list only when it both starts with "[" and ends with "]"; anything else
// stays scalar. Items are comma-split with surrounding quotes stripped.
func splitInlineList(val string) ([]string, bool) {
	if !strings.HasPrefix(val, "[") || !strings.HasSuffix(val, "]") {
		return nil, false
	}
	parts := strings.Split(val[1:len(val)-1], ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		items = append(items, strings.Trim(strings.TrimSpace(p), `"'`))
	}
	return items, true
}

// Render writes the block, delimiters included, with keys in lexicographic
// order so output is reproducible. Scalars render as "key: value"; lists
// as a bare "key:" header followed by one " - item" line per item.
func (p Props) Render(w io.Writer) error {
	if _, err := fmt.Fprintln(w, Delim); err != nil {
		return err
	}
	for _, key := range slices.Sorted(maps.Keys(p)) {
		v := p[key]
		switch v.Kind {
		case KindScalar:
			if _, err := fmt.Fprintf(w, "%s: %s\n", key, v.Str); err != nil {
				return err
			}
		case KindList:
			if _, err := fmt.Fprintf(w, "%s:\n", key); err != nil {
				return err
			}
			for _, item := range v.Items {
				if _, err := fmt.Fprintf(w, " - %s\n", item); err != nil {
					return err
				}
			}
		}
	}
	_, err := fmt.Fprintln(w, Delim)
	return err
}
