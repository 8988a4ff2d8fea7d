package items

import (
	"fmt"
	"strings"

	"github.com/gravitrone/itemdeck/cli/internal/api"
)

// Query is an active search filter.
type Query struct {
	Kind api.SearchKind
	Text string
}

func (q Query) String() string {
	return fmt.Sprintf("%s:%q", q.Kind, q.Text)
}

// Ticket identifies one list request. Only the most recently issued ticket
// may change the store; results for older tickets are dropped.
type Ticket struct {
	Seq    uint64
	Search *Query
}

// IsSearch reports whether the ticket belongs to a search request.
func (t Ticket) IsSearch() bool {
	return t.Search != nil
}

// Lister is the read side of the gateway the store needs.
type Lister interface {
	ListItems() ([]api.ItemHeader, error)
	SearchItems(kind api.SearchKind, text string) ([]api.ItemHeader, error)
}

// Store holds the item list: the full base snapshot plus an optional search
// overlay. The overlay, when present, is what gets rendered.
type Store struct {
	order   *Orderer
	base    []api.ItemHeader
	overlay []api.ItemHeader
	query   *Query
	stale   bool
	loaded  bool
	seq     uint64
	pending uint64
}

// NewStore returns an empty store that needs its first load.
func NewStore(order *Orderer) *Store {
	if order == nil {
		order = NewOrderer(DefaultLocale)
	}
	return &Store{order: order, base: []api.ItemHeader{}, stale: true}
}

// Rendered returns a copy of the snapshot currently shown.
func (s *Store) Rendered() []api.ItemHeader {
	src := s.base
	if s.query != nil {
		src = s.overlay
	}
	out := make([]api.ItemHeader, len(src))
	copy(out, src)
	return out
}

// Base returns a copy of the last full snapshot.
func (s *Store) Base() []api.ItemHeader {
	out := make([]api.ItemHeader, len(s.base))
	copy(out, s.base)
	return out
}

// Searching returns the active query, if any.
func (s *Store) Searching() (Query, bool) {
	if s.query == nil {
		return Query{}, false
	}
	return *s.query, true
}

// Loading reports whether the latest issued list request is still outstanding.
func (s *Store) Loading() bool {
	return s.pending != 0
}

// Loaded reports whether a full load has ever succeeded.
func (s *Store) Loaded() bool {
	return s.loaded
}

// NeedsReload reports whether the store was invalidated and no reload has
// been issued since.
func (s *Store) NeedsReload() bool {
	return s.stale
}

// BeginLoad issues a ticket for a full reload.
func (s *Store) BeginLoad() Ticket {
	s.seq++
	s.pending = s.seq
	s.stale = false
	return Ticket{Seq: s.seq}
}

// BeginSearch issues a ticket for a filtered query.
func (s *Store) BeginSearch(kind api.SearchKind, text string) Ticket {
	s.seq++
	s.pending = s.seq
	q := Query{Kind: kind, Text: strings.TrimSpace(text)}
	return Ticket{Seq: s.seq, Search: &q}
}

// BeginReset drops the overlay and issues a ticket for a full reload.
func (s *Store) BeginReset() Ticket {
	s.exitOverlay()
	return s.BeginLoad()
}

// Complete applies the result for ticket t. It returns false when t was
// superseded by a newer request, in which case the result and its error are
// dropped. A failed request leaves the snapshots untouched.
func (s *Store) Complete(t Ticket, items []api.ItemHeader, err error) (bool, error) {
	if t.Seq != s.seq {
		return false, nil
	}
	s.pending = 0
	if err != nil {
		return true, err
	}

	ordered := s.order.Order(items)
	if t.Search != nil {
		q := *t.Search
		s.query = &q
		s.overlay = ordered
		return true, nil
	}
	s.base = ordered
	s.loaded = true
	s.exitOverlay()
	return true, nil
}

// ApplyLocalUpdate replaces the entry with the same id in the rendered
// snapshot, and in the base snapshot when an overlay is showing, then
// re-sorts. Ids not present are ignored; the entry set never grows.
func (s *Store) ApplyLocalUpdate(item api.ItemHeader) bool {
	patched := replaceByID(s.base, item)
	if s.query != nil {
		patched = replaceByID(s.overlay, item) || patched
		s.overlay = s.order.Order(s.overlay)
	}
	s.base = s.order.Order(s.base)
	return patched
}

// Invalidate marks the store stale and leaves search mode. The next
// pipeline pass issues a full reload.
func (s *Store) Invalidate() {
	s.exitOverlay()
	s.stale = true
}

// LoadAll fetches the full list synchronously.
func (s *Store) LoadAll(gw Lister) error {
	t := s.BeginLoad()
	items, err := gw.ListItems()
	if _, err := s.Complete(t, items, err); err != nil {
		return fmt.Errorf("load items: %w", err)
	}
	return nil
}

// ApplySearch runs a filtered query synchronously.
func (s *Store) ApplySearch(gw Lister, kind api.SearchKind, text string) error {
	t := s.BeginSearch(kind, text)
	items, err := gw.SearchItems(kind, t.Search.Text)
	if _, err := s.Complete(t, items, err); err != nil {
		return fmt.Errorf("search items: %w", err)
	}
	return nil
}

// ResetSearch drops the overlay and reloads the full list synchronously.
func (s *Store) ResetSearch(gw Lister) error {
	s.exitOverlay()
	return s.LoadAll(gw)
}

func (s *Store) exitOverlay() {
	s.query = nil
	s.overlay = nil
}

func replaceByID(items []api.ItemHeader, item api.ItemHeader) bool {
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = item
			return true
		}
	}
	return false
}
