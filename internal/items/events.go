package items

import "github.com/gravitrone/itemdeck/cli/internal/api"

// Event is anything the screen reacts to: user intents and request completions.
type Event interface {
	isEvent()
}

// Init starts the screen. Create opens the add form immediately.
type Init struct {
	Create bool
}

// Refresh discards any search and reloads the full list.
type Refresh struct{}

// Search filters the list. Blank text behaves like ResetSearch.
type Search struct {
	Kind api.SearchKind
	Text string
}

// ResetSearch drops the search overlay and reloads the full list.
type ResetSearch struct{}

// Navigate moves the navigator to Path.
type Navigate struct {
	Path string
}

// Select navigates to the item's location.
type Select struct {
	ID string
}

// Deselect navigates back to the mount root.
type Deselect struct{}

// StartAdd opens the add form.
type StartAdd struct{}

// StartEdit opens the edit form for the selected item.
type StartEdit struct{}

// EditDraft replaces the form draft.
type EditDraft struct {
	Input api.ItemInput
}

// Cancel closes the open form without saving.
type Cancel struct{}

// Save submits the open form.
type Save struct {
	Input api.ItemInput
}

// Delete removes the selected item.
type Delete struct{}

// ListLoaded completes a LoadList request.
type ListLoaded struct {
	Ticket Ticket
	Items  []api.ItemHeader
	Err    error
}

// DetailFetched completes a FetchDetail request.
type DetailFetched struct {
	ID     string
	Token  uint64
	Detail *api.ItemDetail
	Err    error
}

// ItemSaved completes an UpdateItem request. Form is copied from the request.
type ItemSaved struct {
	ID    string
	Input api.ItemInput
	Form  uint64
	Err   error
}

// ItemCreated completes a CreateItem request.
type ItemCreated struct {
	Input api.ItemInput
	Form  uint64
	Err   error
}

// ItemDeleted completes a DeleteItem request.
type ItemDeleted struct {
	ID  string
	Err error
}

func (Init) isEvent()          {}
func (Refresh) isEvent()       {}
func (Search) isEvent()        {}
func (ResetSearch) isEvent()   {}
func (Navigate) isEvent()      {}
func (Select) isEvent()        {}
func (Deselect) isEvent()      {}
func (StartAdd) isEvent()      {}
func (StartEdit) isEvent()     {}
func (EditDraft) isEvent()     {}
func (Cancel) isEvent()        {}
func (Save) isEvent()          {}
func (Delete) isEvent()        {}
func (ListLoaded) isEvent()    {}
func (DetailFetched) isEvent() {}
func (ItemSaved) isEvent()     {}
func (ItemCreated) isEvent()   {}
func (ItemDeleted) isEvent()   {}

// Effect is an output of Dispatch. Requests must be performed against a
// Gateway and their completion dispatched back; Notify is shown to the user.
type Effect interface {
	isEffect()
}

// Request is an effect that talks to the backend.
type Request interface {
	Effect
	isRequest()
}

// LoadList fetches the full list or a search, depending on the ticket.
type LoadList struct {
	Ticket Ticket
}

// FetchDetail loads one item for the detail pane.
type FetchDetail struct {
	ID    string
	Token uint64
}

// UpdateItem persists an edit. Form identifies the form that saved it.
type UpdateItem struct {
	ID    string
	Input api.ItemInput
	Form  uint64
}

// CreateItem persists a new item.
type CreateItem struct {
	Input api.ItemInput
	Form  uint64
}

// DeleteItem removes an item.
type DeleteItem struct {
	ID string
}

// Level is the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notify is a user-visible message.
type Notify struct {
	Level Level
	Text  string
}

// patchList, invalidateList and navigateTo are consumed inside Dispatch.
type patchList struct {
	Header api.ItemHeader
}

type invalidateList struct{}

type navigateTo struct {
	Path string
}

func (LoadList) isEffect()       {}
func (FetchDetail) isEffect()    {}
func (UpdateItem) isEffect()     {}
func (CreateItem) isEffect()     {}
func (DeleteItem) isEffect()     {}
func (Notify) isEffect()         {}
func (patchList) isEffect()      {}
func (invalidateList) isEffect() {}
func (navigateTo) isEffect()     {}

func (LoadList) isRequest()    {}
func (FetchDetail) isRequest() {}
func (UpdateItem) isRequest()  {}
func (CreateItem) isRequest()  {}
func (DeleteItem) isRequest()  {}
