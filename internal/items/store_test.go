package items

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/itemdeck/cli/internal/api"
	"github.com/gravitrone/itemdeck/cli/internal/items/itemstest"
)

func seededGateway() *itemstest.Gateway {
	return itemstest.New(
		api.ItemDetail{ID: "1", Name: "Charlie", Tags: []api.Tag{{ID: "t1", Name: "red"}}},
		api.ItemDetail{ID: "2", Name: "alpha"},
		api.ItemDetail{ID: "3", Name: "Bravo", Tags: []api.Tag{{ID: "t1", Name: "red"}, {ID: "t2", Name: "blue"}}},
	)
}

func TestNewStoreNeedsFirstLoad(t *testing.T) {
	s := NewStore(nil)
	assert.True(t, s.NeedsReload())
	assert.False(t, s.Loading())
	assert.False(t, s.Loaded())
	assert.Empty(t, s.Rendered())
}

func TestStoreLoadAllSorts(t *testing.T) {
	s := NewStore(nil)
	require.NoError(t, s.LoadAll(seededGateway()))

	assert.Equal(t, []string{"alpha", "Bravo", "Charlie"}, names(s.Rendered()))
	assert.False(t, s.NeedsReload())
	assert.False(t, s.Loading())
	assert.True(t, s.Loaded())
}

func TestStoreLoadFailureKeepsSnapshot(t *testing.T) {
	gw := seededGateway()
	s := NewStore(nil)
	require.NoError(t, s.LoadAll(gw))

	gw.FailNext(itemstest.OpList, errors.New("boom"))
	err := s.LoadAll(gw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load items")
	assert.Len(t, s.Rendered(), 3)
	assert.False(t, s.Loading())
}

func TestStoreSearchOverlaysWithoutTouchingBase(t *testing.T) {
	gw := seededGateway()
	s := NewStore(nil)
	require.NoError(t, s.LoadAll(gw))

	require.NoError(t, s.ApplySearch(gw, api.SearchByTag, " red "))
	assert.Equal(t, []string{"Bravo", "Charlie"}, names(s.Rendered()))
	assert.Len(t, s.Base(), 3)
	q, ok := s.Searching()
	require.True(t, ok)
	assert.Equal(t, Query{Kind: api.SearchByTag, Text: "red"}, q)

	require.NoError(t, s.ResetSearch(gw))
	_, ok = s.Searching()
	assert.False(t, ok)
	assert.Len(t, s.Rendered(), 3)
	assert.Equal(t, 2, gw.Calls(itemstest.OpList))
}

func TestStoreSearchFailureKeepsPreviousView(t *testing.T) {
	gw := seededGateway()
	s := NewStore(nil)
	require.NoError(t, s.LoadAll(gw))

	gw.FailNext(itemstest.OpSearch, errors.New("boom"))
	require.Error(t, s.ApplySearch(gw, api.SearchByName, "a"))
	_, ok := s.Searching()
	assert.False(t, ok)
	assert.Len(t, s.Rendered(), 3)
}

func TestStoreDropsSupersededResponses(t *testing.T) {
	s := NewStore(nil)
	load := s.BeginLoad()
	search := s.BeginSearch(api.SearchByName, "b")
	assert.True(t, s.Loading())

	applied, err := s.Complete(search, []api.ItemHeader{{ID: "3", Name: "Bravo"}}, nil)
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = s.Complete(load, []api.ItemHeader{{ID: "1", Name: "Charlie"}, {ID: "3", Name: "Bravo"}}, nil)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, []string{"Bravo"}, names(s.Rendered()))
}

func TestStoreLateSearchCannotOverrideReset(t *testing.T) {
	s := NewStore(nil)
	search := s.BeginSearch(api.SearchByName, "b")
	reset := s.BeginReset()

	applied, _ := s.Complete(reset, []api.ItemHeader{{ID: "1", Name: "Charlie"}, {ID: "3", Name: "Bravo"}}, nil)
	assert.True(t, applied)
	applied, _ = s.Complete(search, []api.ItemHeader{{ID: "3", Name: "Bravo"}}, nil)
	assert.False(t, applied)

	_, searching := s.Searching()
	assert.False(t, searching)
	assert.Len(t, s.Rendered(), 2)
}

func TestStoreSupersededErrorIsDropped(t *testing.T) {
	s := NewStore(nil)
	old := s.BeginLoad()
	s.BeginLoad()

	applied, err := s.Complete(old, nil, errors.New("late failure"))
	assert.False(t, applied)
	assert.NoError(t, err)
	assert.True(t, s.Loading())
}

func TestStoreApplyLocalUpdateResorts(t *testing.T) {
	s := NewStore(nil)
	require.NoError(t, s.LoadAll(seededGateway()))

	ok := s.ApplyLocalUpdate(api.ItemHeader{ID: "2", Name: "Zulu", NumTags: 4})
	assert.True(t, ok)
	got := s.Rendered()
	assert.Equal(t, []string{"Bravo", "Charlie", "Zulu"}, names(got))
	assert.Equal(t, 4, got[2].NumTags)
	assert.False(t, s.NeedsReload())
}

func TestStoreApplyLocalUpdateIgnoresUnknownID(t *testing.T) {
	s := NewStore(nil)
	require.NoError(t, s.LoadAll(seededGateway()))

	assert.False(t, s.ApplyLocalUpdate(api.ItemHeader{ID: "99", Name: "Ghost"}))
	assert.Len(t, s.Rendered(), 3)
}

func TestStoreApplyLocalUpdateInsideSearch(t *testing.T) {
	gw := seededGateway()
	s := NewStore(nil)
	require.NoError(t, s.LoadAll(gw))
	require.NoError(t, s.ApplySearch(gw, api.SearchByTag, "red"))

	s.ApplyLocalUpdate(api.ItemHeader{ID: "3", Name: "Delta", NumTags: 2})
	assert.Equal(t, []string{"Charlie", "Delta"}, names(s.Rendered()))
	assert.Equal(t, []string{"alpha", "Charlie", "Delta"}, names(s.Base()))
	_, searching := s.Searching()
	assert.True(t, searching)
}

func TestStoreInvalidateLeavesSearch(t *testing.T) {
	gw := seededGateway()
	s := NewStore(nil)
	require.NoError(t, s.LoadAll(gw))
	require.NoError(t, s.ApplySearch(gw, api.SearchByName, "alpha"))

	s.Invalidate()
	assert.True(t, s.NeedsReload())
	_, searching := s.Searching()
	assert.False(t, searching)

	t1 := s.BeginLoad()
	assert.False(t, s.NeedsReload())
	assert.False(t, t1.IsSearch())
}

func TestStoreRenderedIsACopy(t *testing.T) {
	s := NewStore(nil)
	require.NoError(t, s.LoadAll(seededGateway()))
	got := s.Rendered()
	got[0].Name = "mutated"
	assert.Equal(t, "alpha", s.Rendered()[0].Name)
}
