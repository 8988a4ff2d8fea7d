package items

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/gravitrone/itemdeck/cli/internal/api"
)

// DefaultLocale is used when no locale is configured or the configured one is invalid.
const DefaultLocale = "en"

// Orderer sorts item headers by name with locale-aware collation.
// A Collator is not safe for concurrent use; neither is an Orderer.
type Orderer struct {
	locale language.Tag
	col    *collate.Collator
}

// NewOrderer builds an orderer for a BCP 47 locale such as "en" or "de-CH".
func NewOrderer(locale string) *Orderer {
	tag, err := language.Parse(locale)
	if err != nil || locale == "" {
		tag = language.MustParse(DefaultLocale)
	}
	return &Orderer{locale: tag, col: collate.New(tag)}
}

// Locale reports the collation locale in use.
func (o *Orderer) Locale() string {
	return o.locale.String()
}

// Compare returns -1, 0 or 1 like strings.Compare, but collated.
func (o *Orderer) Compare(a, b string) int {
	return o.col.CompareString(a, b)
}

// Order returns a new slice with duplicate ids removed (first occurrence wins)
// and the rest stably sorted by name.
func (o *Orderer) Order(items []api.ItemHeader) []api.ItemHeader {
	out := make([]api.ItemHeader, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return o.col.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out
}

// Sorted reports whether items are ordered and duplicate-free.
func (o *Orderer) Sorted(items []api.ItemHeader) bool {
	seen := make(map[string]bool, len(items))
	for i, item := range items {
		if seen[item.ID] {
			return false
		}
		seen[item.ID] = true
		if i > 0 && o.col.CompareString(items[i-1].Name, item.Name) > 0 {
			return false
		}
	}
	return true
}
