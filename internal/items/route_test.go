package items

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSelection(t *testing.T) {
	pattern := ParsePattern("/items/:id")
	cases := []struct {
		location string
		id       string
		ok       bool
	}{
		{"/items/42", "42", true},
		{"/items/42/", "42", true},
		{"/items/a%20b", "a b", true},
		{"/items/42?tab=tags", "42", true},
		{"/items/42#top", "42", true},
		{"/items", "", false},
		{"/items/", "", false},
		{"/items/42/edit", "", false},
		{"/other/42", "", false},
		{"/items/%zz", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.location, func(t *testing.T) {
			id, ok := ResolveSelection(tc.location, pattern)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.id, id)
		})
	}
}

func TestResolveSelectionIsPure(t *testing.T) {
	pattern := ParsePattern("/items/:id")
	a, okA := ResolveSelection("/items/7", pattern)
	b, okB := ResolveSelection("/items/7", pattern)
	assert.Equal(t, a, b)
	assert.Equal(t, okA, okB)
}

func TestPatternWithoutIDParam(t *testing.T) {
	pattern := ParsePattern("/items/:key")
	_, ok := pattern.Match("/items/7")
	require.True(t, ok)
	_, ok = ResolveSelection("/items/7", pattern)
	assert.False(t, ok)
}

func TestMountNormalisesAndRoundTrips(t *testing.T) {
	m := NewMount("admin/items/")
	assert.Equal(t, "/admin/items", m.Base)
	assert.Equal(t, "/admin/items/:id", m.Pattern().String())

	path := m.ItemPath("a/b c")
	assert.Equal(t, "/admin/items/a%2Fb%20c", path)
	id, ok := ResolveSelection(path, m.Pattern())
	require.True(t, ok)
	assert.Equal(t, "a/b c", id)

	assert.Equal(t, "/", NewMount("").Base)
	assert.Equal(t, "/x", NewMount("").ItemPath("x"))
}

func TestHistory(t *testing.T) {
	h := NewHistory("/items")
	h.Navigate("/items/1")
	h.Navigate("/items/1")
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, "/items/1", h.Location())

	assert.True(t, h.Back())
	assert.Equal(t, "/items", h.Location())
	assert.False(t, h.Back())
}
