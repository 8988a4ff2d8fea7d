package items

import "github.com/gravitrone/itemdeck/cli/internal/api"

// Gateway is the backend the screen talks to. *api.Client implements it.
type Gateway interface {
	Lister
	GetItem(id string) (*api.ItemDetail, error)
	CreateItem(input api.ItemInput) error
	UpdateItem(id string, input api.ItemInput) error
	DeleteItem(id string) error
}

var _ Gateway = (*api.Client)(nil)

// Perform executes one request and returns its completion event. It returns
// nil for effects that are not requests.
func Perform(gw Gateway, eff Effect) Event {
	switch r := eff.(type) {
	case LoadList:
		var (
			items []api.ItemHeader
			err   error
		)
		if r.Ticket.Search != nil {
			items, err = gw.SearchItems(r.Ticket.Search.Kind, r.Ticket.Search.Text)
		} else {
			items, err = gw.ListItems()
		}
		return ListLoaded{Ticket: r.Ticket, Items: items, Err: err}
	case FetchDetail:
		detail, err := gw.GetItem(r.ID)
		return DetailFetched{ID: r.ID, Token: r.Token, Detail: detail, Err: err}
	case UpdateItem:
		return ItemSaved{ID: r.ID, Input: r.Input, Form: r.Form, Err: gw.UpdateItem(r.ID, r.Input)}
	case CreateItem:
		return ItemCreated{Input: r.Input, Form: r.Form, Err: gw.CreateItem(r.Input)}
	case DeleteItem:
		return ItemDeleted{ID: r.ID, Err: gw.DeleteItem(r.ID)}
	}
	return nil
}

// Drive dispatches ev and performs every resulting request in order until
// the screen is quiet. It returns the notifications raised along the way.
func Drive(gw Gateway, s *Screen, ev Event) []Notify {
	var notes []Notify
	queue := []Event{ev}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		for _, eff := range s.Dispatch(next) {
			if n, ok := eff.(Notify); ok {
				notes = append(notes, n)
				continue
			}
			if done := Perform(gw, eff); done != nil {
				queue = append(queue, done)
			}
		}
	}
	return notes
}

// Requests filters effects down to backend requests.
func Requests(effects []Effect) []Request {
	var out []Request
	for _, eff := range effects {
		if r, ok := eff.(Request); ok {
			out = append(out, r)
		}
	}
	return out
}

// Notifications filters effects down to user messages.
func Notifications(effects []Effect) []Notify {
	var out []Notify
	for _, eff := range effects {
		if n, ok := eff.(Notify); ok {
			out = append(out, n)
		}
	}
	return out
}
