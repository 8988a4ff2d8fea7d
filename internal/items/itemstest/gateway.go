// Package itemstest provides an in-memory items backend for tests.
package itemstest

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/gravitrone/itemdeck/cli/internal/api"
)

// Operation names accepted by FailNext and Calls.
const (
	OpList   = "list"
	OpSearch = "search"
	OpGet    = "get"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Gateway is a fake backend. Items are listed in insertion order so callers
// see unsorted data, like a real server.
type Gateway struct {
	mu       sync.Mutex
	items    map[string]*api.ItemDetail
	order    []string
	tags     map[string]string
	calls    map[string]int
	failures map[string][]error
}

// New returns a gateway holding items.
func New(items ...api.ItemDetail) *Gateway {
	g := &Gateway{
		items:    map[string]*api.ItemDetail{},
		tags:     map[string]string{},
		calls:    map[string]int{},
		failures: map[string][]error{},
	}
	for _, item := range items {
		g.Put(item)
	}
	return g
}

// Put stores item as-is, replacing any item with the same id.
func (g *Gateway) Put(item api.ItemDetail) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if item.Tags == nil {
		item.Tags = []api.Tag{}
	}
	if _, ok := g.items[item.ID]; !ok {
		g.order = append(g.order, item.ID)
	}
	g.items[item.ID] = &item
}

// Seed creates an item with a generated id and returns the id.
func (g *Gateway) Seed(name string, tags ...string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.insert(api.ItemInput{Name: name, Tags: tags})
}

// Remove deletes an item behind the client's back.
func (g *Gateway) Remove(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.remove(id)
}

// FailNext makes the next call of op return err.
func (g *Gateway) FailNext(op string, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failures[op] = append(g.failures[op], err)
}

// Calls returns how many times op ran.
func (g *Gateway) Calls(op string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls[op]
}

// Len returns the number of stored items.
func (g *Gateway) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.order)
}

// Find returns the id of the first item named name.
func (g *Gateway) Find(name string) (string, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, id := range g.order {
		if g.items[id].Name == name {
			return id, true
		}
	}
	return "", false
}

func (g *Gateway) ListItems() ([]api.ItemHeader, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.enter(OpList); err != nil {
		return nil, err
	}
	out := make([]api.ItemHeader, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.items[id].Header())
	}
	return out, nil
}

func (g *Gateway) SearchItems(kind api.SearchKind, text string) ([]api.ItemHeader, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.enter(OpSearch); err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(text))
	out := []api.ItemHeader{}
	for _, id := range g.order {
		item := g.items[id]
		if matches(item, kind, needle) {
			out = append(out, item.Header())
		}
	}
	return out, nil
}

func (g *Gateway) GetItem(id string) (*api.ItemDetail, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.enter(OpGet); err != nil {
		return nil, err
	}
	item, ok := g.items[id]
	if !ok {
		return nil, notFound()
	}
	out := *item
	out.Tags = append([]api.Tag{}, item.Tags...)
	return &out, nil
}

func (g *Gateway) CreateItem(input api.ItemInput) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.enter(OpCreate); err != nil {
		return err
	}
	if err := input.Validate(); err != nil {
		return err
	}
	g.insert(input)
	return nil
}

func (g *Gateway) UpdateItem(id string, input api.ItemInput) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.enter(OpUpdate); err != nil {
		return err
	}
	item, ok := g.items[id]
	if !ok {
		return notFound()
	}
	item.Name = input.Name
	item.Description = input.Description
	item.Tags = g.tagsFor(input.Tags)
	return nil
}

func (g *Gateway) DeleteItem(id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.enter(OpDelete); err != nil {
		return err
	}
	if _, ok := g.items[id]; !ok {
		return notFound()
	}
	g.remove(id)
	return nil
}

func (g *Gateway) enter(op string) error {
	g.calls[op]++
	queued := g.failures[op]
	if len(queued) == 0 {
		return nil
	}
	g.failures[op] = queued[1:]
	return queued[0]
}

func (g *Gateway) insert(input api.ItemInput) string {
	id := uuid.NewString()
	g.items[id] = &api.ItemDetail{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		Tags:        g.tagsFor(input.Tags),
	}
	g.order = append(g.order, id)
	return id
}

func (g *Gateway) remove(id string) {
	delete(g.items, id)
	for i, existing := range g.order {
		if existing == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			return
		}
	}
}

func (g *Gateway) tagsFor(names []string) []api.Tag {
	out := make([]api.Tag, 0, len(names))
	for _, name := range names {
		key := strings.ToLower(name)
		id, ok := g.tags[key]
		if !ok {
			id = uuid.NewString()
			g.tags[key] = id
		}
		out = append(out, api.Tag{ID: id, Name: name})
	}
	return out
}

func matches(item *api.ItemDetail, kind api.SearchKind, needle string) bool {
	if kind == api.SearchByTag {
		for _, tag := range item.Tags {
			if strings.Contains(strings.ToLower(tag.Name), needle) {
				return true
			}
		}
		return false
	}
	return strings.Contains(strings.ToLower(item.Name), needle)
}

func notFound() error {
	return &api.Error{Kind: api.KindNotFound, Status: 404, Code: "NOT_FOUND", Message: "item not found"}
}
