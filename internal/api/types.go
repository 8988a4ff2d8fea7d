package api

import (
	"fmt"
	"strings"
)

// --- API Response Envelope ---

type apiResponse[T any] struct {
	Data  T       `json:"data"`
	Error *apiErr `json:"error,omitempty"`
}

type apiErr struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// QueryParams is a set of query string values; empty values are skipped.
type QueryParams map[string]string

// --- Items ---

// ItemHeader is the list projection of an item.
type ItemHeader struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	NumTags int    `json:"numTags"`
}

// Tag is a label attached to an item.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ItemDetail is the full item, fetched when an item is opened.
type ItemDetail struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Tags        []Tag  `json:"tags"`
}

// Header projects the detail to its list row.
func (d ItemDetail) Header() ItemHeader {
	return ItemHeader{ID: d.ID, Name: d.Name, NumTags: len(d.Tags)}
}

// Input converts the detail to an edit payload.
func (d ItemDetail) Input() ItemInput {
	tags := make([]string, 0, len(d.Tags))
	for _, t := range d.Tags {
		tags = append(tags, t.Name)
	}
	return ItemInput{Name: d.Name, Description: d.Description, Tags: tags}
}

// ItemInput is the payload for creating or updating an item.
type ItemInput struct {
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Tags        []string `json:"tags" yaml:"tags"`
}

// Header projects the input to the list row it produces for id.
func (in ItemInput) Header(id string) ItemHeader {
	return ItemHeader{ID: id, Name: in.Name, NumTags: len(in.Tags)}
}

// Normalize trims fields and drops blank or repeated tags.
func (in ItemInput) Normalize() ItemInput {
	out := ItemInput{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Tags:        []string{},
	}
	seen := map[string]bool{}
	for _, raw := range in.Tags {
		tag := strings.TrimSpace(raw)
		key := strings.ToLower(tag)
		if tag == "" || seen[key] {
			continue
		}
		seen[key] = true
		out.Tags = append(out.Tags, tag)
	}
	return out
}

// Validate rejects payloads the server would refuse.
func (in ItemInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return errorf(KindValidation, "name is required")
	}
	return nil
}

// SearchKind selects which field a search filters on.
type SearchKind int

const (
	SearchByName SearchKind = iota
	SearchByTag
)

var searchKindNames = []string{"name", "tag"}

func (k SearchKind) String() string {
	if int(k) >= 0 && int(k) < len(searchKindNames) {
		return searchKindNames[k]
	}
	return "unknown"
}

// Next cycles to the following search kind.
func (k SearchKind) Next() SearchKind {
	return SearchKind((int(k) + 1) % len(searchKindNames))
}

// ParseSearchKind maps "name" or "tag" to a SearchKind.
func ParseSearchKind(raw string) (SearchKind, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	for i, name := range searchKindNames {
		if value == name {
			return SearchKind(i), nil
		}
	}
	return SearchByName, fmt.Errorf("unknown search kind %q (want name or tag)", raw)
}
