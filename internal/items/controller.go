package items

import (
	"errors"
	"fmt"

	"github.com/gravitrone/itemdeck/cli/internal/api"
)

// ErrNotPermitted is returned for intents the current mode does not allow.
var ErrNotPermitted = errors.New("not permitted")

// Mode is the detail panel state.
type Mode int

const (
	ModeIdle Mode = iota
	ModeViewing
	ModeEditing
	ModeAdding
)

func (m Mode) String() string {
	switch m {
	case ModeViewing:
		return "viewing"
	case ModeEditing:
		return "editing"
	case ModeAdding:
		return "adding"
	}
	return "idle"
}

// DetailStatus tracks the fetch of the selected item.
type DetailStatus int

const (
	DetailNone DetailStatus = iota
	DetailLoading
	DetailReady
	DetailInvalid
	DetailFailed
)

// Controller is the detail/edit/add state machine. It never performs I/O;
// every transition returns the effects it wants carried out.
type Controller struct {
	mount    Mount
	mode     Mode
	subject  string
	detail   *api.ItemDetail
	status   DetailStatus
	err      error
	token    uint64
	draft    api.ItemInput
	form     uint64
	saving   bool
	deleting bool
}

// NewController returns an idle controller for the given mount.
func NewController(mount Mount) *Controller {
	return &Controller{mount: mount}
}

// Mode returns the current panel state.
func (c *Controller) Mode() Mode { return c.mode }

// Subject returns the id the controller is synced to, or "".
func (c *Controller) Subject() string { return c.subject }

// Detail returns the loaded detail. It may be kept while a refetch runs.
func (c *Controller) Detail() *api.ItemDetail { return c.detail }

// DetailStatus returns the state of the detail fetch.
func (c *Controller) DetailStatus() DetailStatus { return c.status }

// DetailErr returns the error of a failed or invalid detail fetch.
func (c *Controller) DetailErr() error { return c.err }

// Draft returns the contents of the open form.
func (c *Controller) Draft() api.ItemInput { return c.draft }

// Saving reports whether the open form has a write in flight.
func (c *Controller) Saving() bool { return c.saving }

// Deleting reports whether a delete of the subject is in flight.
func (c *Controller) Deleting() bool { return c.deleting }

// FormOpen reports whether an edit or add form is showing.
func (c *Controller) FormOpen() bool {
	return c.mode == ModeEditing || c.mode == ModeAdding
}

// Sync aligns the controller with the selection derived from the location.
// A changed selection discards any open edit and starts a detail fetch.
// An open add form survives the selection being cleared.
func (c *Controller) Sync(id string, ok bool) []Effect {
	if !ok {
		id = ""
	}
	if id == c.subject {
		return nil
	}
	c.subject = id
	c.saving = false
	c.deleting = false

	if id == "" {
		if c.mode != ModeAdding {
			c.mode = ModeIdle
			c.draft = api.ItemInput{}
		}
		c.clearDetail()
		return nil
	}
	c.mode = ModeViewing
	c.draft = api.ItemInput{}
	return []Effect{c.fetch(false)}
}

// DetailFetched applies a detail response. Responses for an item that is no
// longer selected, or for a superseded fetch, are ignored.
func (c *Controller) DetailFetched(ev DetailFetched) ([]Effect, bool) {
	if ev.ID != c.subject || ev.Token != c.token {
		return nil, false
	}
	if ev.Err != nil {
		c.detail = nil
		c.err = ev.Err
		if api.IsNotFound(ev.Err) {
			c.status = DetailInvalid
			return nil, true
		}
		c.status = DetailFailed
		return []Effect{Notify{Level: LevelError, Text: fmt.Sprintf("Could not load item: %v", ev.Err)}}, true
	}
	c.detail = ev.Detail
	c.status = DetailReady
	c.err = nil
	return nil, true
}

// Add enters the add form from Idle or Viewing.
func (c *Controller) Add() error {
	if c.mode != ModeIdle && c.mode != ModeViewing {
		return fmt.Errorf("add while %s: %w", c.mode, ErrNotPermitted)
	}
	c.mode = ModeAdding
	c.draft = api.ItemInput{Tags: []string{}}
	c.saving = false
	c.form++
	return nil
}

// Edit enters the edit form for the loaded detail.
func (c *Controller) Edit() error {
	if c.mode != ModeViewing || c.status != DetailReady || c.detail == nil || c.detail.ID != c.subject {
		return fmt.Errorf("edit while %s: %w", c.mode, ErrNotPermitted)
	}
	c.mode = ModeEditing
	c.draft = c.detail.Input()
	c.saving = false
	c.form++
	return nil
}

// SetDraft replaces the form contents.
func (c *Controller) SetDraft(in api.ItemInput) error {
	if !c.FormOpen() {
		return fmt.Errorf("edit draft while %s: %w", c.mode, ErrNotPermitted)
	}
	c.draft = in
	return nil
}

// Cancel closes an open form. It is a no-op outside Editing and Adding.
func (c *Controller) Cancel() {
	switch c.mode {
	case ModeEditing:
		c.mode = ModeViewing
	case ModeAdding:
		if c.subject != "" {
			c.mode = ModeViewing
		} else {
			c.mode = ModeIdle
		}
	default:
		return
	}
	c.draft = api.ItemInput{}
	c.saving = false
}

// Save validates in and emits the matching write request.
func (c *Controller) Save(in api.ItemInput) ([]Effect, error) {
	if !c.FormOpen() {
		return nil, fmt.Errorf("save while %s: %w", c.mode, ErrNotPermitted)
	}
	if c.saving {
		return nil, fmt.Errorf("save already in progress: %w", ErrNotPermitted)
	}
	in = in.Normalize()
	c.draft = in
	if err := in.Validate(); err != nil {
		return nil, err
	}
	c.saving = true
	if c.mode == ModeEditing {
		return []Effect{UpdateItem{ID: c.subject, Input: in, Form: c.form}}, nil
	}
	return []Effect{CreateItem{Input: in, Form: c.form}}, nil
}

// owns reports whether a write completion belongs to the form showing now.
// A form closed and reopened since the save started is a different form.
func (c *Controller) owns(mode Mode, form uint64) bool {
	return c.mode == mode && c.saving && c.form == form
}

// ItemSaved handles an update completion. The list is patched in place
// without a reload; the detail is refetched if the item is still selected.
// Only the form that issued the save is closed.
func (c *Controller) ItemSaved(ev ItemSaved) []Effect {
	current := ev.ID == c.subject
	owned := current && c.owns(ModeEditing, ev.Form)
	if ev.Err != nil {
		if owned {
			c.saving = false
		}
		return []Effect{Notify{Level: LevelError, Text: fmt.Sprintf("Save failed: %v", ev.Err)}}
	}

	effects := []Effect{patchList{Header: ev.Input.Header(ev.ID)}}
	if current {
		if owned {
			c.mode = ModeViewing
			c.draft = api.ItemInput{}
			c.saving = false
		}
		if c.mode == ModeViewing {
			effects = append(effects, c.fetch(true))
		}
	}
	return append(effects, Notify{Level: LevelSuccess, Text: "Item saved"})
}

// ItemCreated handles a create completion. Creation always forces a full
// reload, leaving any search. A newer add form is left open.
func (c *Controller) ItemCreated(ev ItemCreated) []Effect {
	owned := c.owns(ModeAdding, ev.Form)
	if ev.Err != nil {
		if owned {
			c.saving = false
		}
		return []Effect{Notify{Level: LevelError, Text: fmt.Sprintf("Create failed: %v", ev.Err)}}
	}
	if owned {
		c.saving = false
		c.draft = api.ItemInput{}
		if c.subject != "" {
			c.mode = ModeViewing
		} else {
			c.mode = ModeIdle
		}
	}
	return []Effect{invalidateList{}, Notify{Level: LevelSuccess, Text: "Item created"}}
}

// Delete removes the item being viewed. It is refused while a form is open.
func (c *Controller) Delete() ([]Effect, error) {
	if c.mode != ModeViewing || c.subject == "" {
		return nil, fmt.Errorf("delete while %s: %w", c.mode, ErrNotPermitted)
	}
	if c.deleting {
		return nil, fmt.Errorf("delete already in progress: %w", ErrNotPermitted)
	}
	c.deleting = true
	return []Effect{DeleteItem{ID: c.subject}}, nil
}

// ItemDeleted handles a delete completion. A deleted selection leaves the
// detail pane and navigates back to the mount root. An add form opened
// while the delete ran stays open.
func (c *Controller) ItemDeleted(ev ItemDeleted) []Effect {
	current := ev.ID == c.subject
	if current {
		c.deleting = false
	}
	if ev.Err != nil {
		return []Effect{Notify{Level: LevelError, Text: fmt.Sprintf("Delete failed: %v", ev.Err)}}
	}

	effects := []Effect{invalidateList{}}
	if current {
		if c.mode != ModeAdding {
			c.mode = ModeIdle
			c.draft = api.ItemInput{}
		}
		c.clearDetail()
		effects = append(effects, navigateTo{Path: c.mount.Base})
	}
	return append(effects, Notify{Level: LevelSuccess, Text: "Item deleted"})
}

func (c *Controller) fetch(keep bool) FetchDetail {
	c.token++
	c.status = DetailLoading
	c.err = nil
	if !keep {
		c.detail = nil
	}
	return FetchDetail{ID: c.subject, Token: c.token}
}

func (c *Controller) clearDetail() {
	c.detail = nil
	c.status = DetailNone
	c.err = nil
	c.token++
}
