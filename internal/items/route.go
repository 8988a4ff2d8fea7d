package items

import (
	"net/url"
	"strings"
)

// DefaultMount is the location the items screen lives under.
const DefaultMount = "/items"

// Pattern is a route template such as "/items/:id". Segments starting with
// ':' capture one path segment. Matching is exact on segment count and
// tolerates a trailing slash.
type Pattern struct {
	raw      string
	segments []string
}

// ParsePattern compiles a route template.
func ParsePattern(raw string) Pattern {
	return Pattern{raw: raw, segments: splitPath(raw)}
}

func (p Pattern) String() string {
	return p.raw
}

// Match returns the captured parameters when location matches. Query and
// fragment are ignored; parameter values are unescaped.
func (p Pattern) Match(location string) (map[string]string, bool) {
	segs := splitPath(stripQuery(location))
	if len(segs) != len(p.segments) {
		return nil, false
	}
	params := map[string]string{}
	for i, want := range p.segments {
		got := segs[i]
		if name, ok := strings.CutPrefix(want, ":"); ok {
			value, err := url.PathUnescape(got)
			if err != nil || value == "" {
				return nil, false
			}
			params[name] = value
			continue
		}
		if want != got {
			return nil, false
		}
	}
	return params, true
}

// ResolveSelection derives the selected item id from a location. It is pure:
// the same location always yields the same answer.
func ResolveSelection(location string, pattern Pattern) (string, bool) {
	params, ok := pattern.Match(location)
	if !ok {
		return "", false
	}
	id, ok := params["id"]
	return id, ok
}

// Mount is where the screen is rooted, e.g. "/items".
type Mount struct {
	Base string
}

// NewMount normalises base to a leading slash and no trailing slash.
func NewMount(base string) Mount {
	segs := splitPath(base)
	if len(segs) == 0 {
		return Mount{Base: "/"}
	}
	return Mount{Base: "/" + strings.Join(segs, "/")}
}

// ItemPath builds the location that selects id.
func (m Mount) ItemPath(id string) string {
	return strings.TrimRight(m.Base, "/") + "/" + url.PathEscape(id)
}

// Pattern returns the detail route under this mount.
func (m Mount) Pattern() Pattern {
	return ParsePattern(strings.TrimRight(m.Base, "/") + "/:id")
}

// Navigator owns the current location. Navigate replaces it; the screen
// re-reads Location after every dispatch.
type Navigator interface {
	Location() string
	Navigate(path string)
}

// History is an in-memory Navigator with a back stack.
type History struct {
	entries []string
}

// NewHistory starts a history at location.
func NewHistory(location string) *History {
	return &History{entries: []string{location}}
}

// Location returns the current entry.
func (h *History) Location() string {
	return h.entries[len(h.entries)-1]
}

// Navigate pushes path unless it is already current.
func (h *History) Navigate(path string) {
	if path == h.Location() {
		return
	}
	h.entries = append(h.entries, path)
}

// Back pops one entry. It reports false at the start of history.
func (h *History) Back() bool {
	if len(h.entries) < 2 {
		return false
	}
	h.entries = h.entries[:len(h.entries)-1]
	return true
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

func splitPath(p string) []string {
	var out []string
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			out = append(out, seg)
		}
	}
	return out
}

func stripQuery(location string) string {
	if i := strings.IndexAny(location, "?#"); i >= 0 {
		return location[:i]
	}
	return location
}
