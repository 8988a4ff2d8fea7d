package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func keysOf(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = string(rune('a' + i))
	}
	return out
}

func TestListNewListClampsPageSize(t *testing.T) {
	assert.Equal(t, 10, NewList(10).PageSize)
	assert.Equal(t, 1, NewList(0).PageSize)
}

func TestListDownScrollsPage(t *testing.T) {
	list := NewList(3)
	list.SetKeys(keysOf(5), "")

	list.Down()
	list.Down()
	assert.Equal(t, 2, list.Cursor)
	assert.Equal(t, 0, list.Offset)

	list.Down()
	assert.Equal(t, 3, list.Cursor)
	assert.Equal(t, 1, list.Offset)

	list.Down()
	list.Down()
	assert.Equal(t, 4, list.Cursor)
	assert.Equal(t, 2, list.Offset)
}

func TestListUpScrollsPage(t *testing.T) {
	list := NewList(3)
	list.SetKeys(keysOf(5), "e")
	assert.Equal(t, 4, list.Cursor)
	assert.Equal(t, 2, list.Offset)

	list.Up()
	list.Up()
	assert.Equal(t, 2, list.Cursor)
	assert.Equal(t, 2, list.Offset)

	list.Up()
	assert.Equal(t, 1, list.Cursor)
	assert.Equal(t, 1, list.Offset)

	list.Up()
	list.Up()
	assert.Equal(t, 0, list.Cursor)
	assert.Equal(t, 0, list.Offset)
}

func TestListSetKeysKeepsFocusedKey(t *testing.T) {
	list := NewList(5)
	list.SetKeys([]string{"x", "y", "z"}, "")
	list.Down()

	list.SetKeys([]string{"w", "x", "y", "z"}, "y")
	key, ok := list.Current()
	assert.True(t, ok)
	assert.Equal(t, "y", key)
	assert.Equal(t, 2, list.Cursor)
}

func TestListSetKeysClampsWhenKeyGone(t *testing.T) {
	list := NewList(5)
	list.SetKeys(keysOf(4), "d")

	list.SetKeys([]string{"a", "b"}, "d")
	assert.Equal(t, 1, list.Cursor)

	list.SetKeys(nil, "")
	_, ok := list.Current()
	assert.False(t, ok)
	assert.Equal(t, 0, list.Cursor)
}

func TestListWindow(t *testing.T) {
	list := NewList(3)
	list.SetKeys(keysOf(5), "")

	start, end := list.Window()
	assert.Equal(t, 0, start)
	assert.Equal(t, 3, end)

	list.Focus("e")
	start, end = list.Window()
	assert.Equal(t, 2, start)
	assert.Equal(t, 5, end)

	empty := NewList(3)
	start, end = empty.Window()
	assert.Equal(t, start, end)
}

func TestListResizeKeepsCursorVisible(t *testing.T) {
	list := NewList(10)
	list.SetKeys(keysOf(20), "p")
	assert.Equal(t, 15, list.Cursor)

	list.Resize(4)
	start, end := list.Window()
	assert.True(t, start <= list.Cursor && list.Cursor < end)
	assert.True(t, list.IsSelected(15))
	assert.Equal(t, 20, list.Len())
}

func TestListFocusUnknownKey(t *testing.T) {
	list := NewList(3)
	list.SetKeys(keysOf(3), "b")
	assert.False(t, list.Focus("zz"))
	assert.False(t, list.Focus(""))
	assert.Equal(t, 1, list.Cursor)
}
