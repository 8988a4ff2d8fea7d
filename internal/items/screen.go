package items

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gravitrone/itemdeck/cli/internal/api"
)

// Screen wires the list store, the detail controller and the navigator into
// one event -> state -> effects pipeline. It is not safe for concurrent use.
type Screen struct {
	store   *Store
	ctl     *Controller
	nav     Navigator
	mount   Mount
	pattern Pattern
	log     *slog.Logger
}

// Option configures a Screen.
type Option func(*Screen)

// WithMount roots the screen somewhere other than DefaultMount.
func WithMount(base string) Option {
	return func(s *Screen) {
		s.mount = NewMount(base)
	}
}

// WithLocale sets the collation locale for list ordering.
func WithLocale(locale string) Option {
	return func(s *Screen) {
		s.store = NewStore(NewOrderer(locale))
	}
}

// WithLogger sends debug traces to l.
func WithLogger(l *slog.Logger) Option {
	return func(s *Screen) {
		if l != nil {
			s.log = l
		}
	}
}

// NewScreen builds a screen driven by nav.
func NewScreen(nav Navigator, opts ...Option) *Screen {
	s := &Screen{
		nav:   nav,
		mount: NewMount(DefaultMount),
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = NewStore(nil)
	}
	s.pattern = s.mount.Pattern()
	s.ctl = NewController(s.mount)
	return s
}

// Selection resolves the selected id from the navigator's location.
func (s *Screen) Selection() (string, bool) {
	return ResolveSelection(s.nav.Location(), s.pattern)
}

// The accessors below read through to the screen state.
func (s *Screen) Mount() Mount               { return s.mount }
func (s *Screen) Location() string           { return s.nav.Location() }
func (s *Screen) Items() []api.ItemHeader    { return s.store.Rendered() }
func (s *Screen) Loading() bool              { return s.store.Loading() }
func (s *Screen) Searching() (Query, bool)   { return s.store.Searching() }
func (s *Screen) Mode() Mode                 { return s.ctl.Mode() }
func (s *Screen) Detail() *api.ItemDetail    { return s.ctl.Detail() }
func (s *Screen) DetailStatus() DetailStatus { return s.ctl.DetailStatus() }
func (s *Screen) DetailErr() error           { return s.ctl.DetailErr() }
func (s *Screen) Draft() api.ItemInput       { return s.ctl.Draft() }
func (s *Screen) Saving() bool               { return s.ctl.Saving() }
func (s *Screen) Deleting() bool             { return s.ctl.Deleting() }
func (s *Screen) FormOpen() bool             { return s.ctl.FormOpen() }

// Dispatch applies ev and returns the effects the host must carry out:
// Requests to perform (dispatching their completion back) and Notify
// messages to show. List patches, invalidation and navigation are applied
// before Dispatch returns, and the selection is re-derived afterwards.
func (s *Screen) Dispatch(ev Event) []Effect {
	s.log.Debug("dispatch", "event", fmt.Sprintf("%T", ev), "location", s.nav.Location(), "mode", s.ctl.Mode().String())

	var effects []Effect
	switch e := ev.(type) {
	case Init:
		effects = s.ctl.Sync(s.Selection())
		if e.Create {
			effects = append(effects, s.refuse(s.ctl.Add())...)
		}
	case Refresh:
		s.store.Invalidate()
	case Search:
		text := strings.TrimSpace(e.Text)
		if text == "" {
			effects = append(effects, LoadList{Ticket: s.store.BeginReset()})
			break
		}
		effects = append(effects, LoadList{Ticket: s.store.BeginSearch(e.Kind, text)})
	case ResetSearch:
		effects = append(effects, LoadList{Ticket: s.store.BeginReset()})
	case Navigate:
		s.nav.Navigate(e.Path)
	case Select:
		if s.ctl.Mode() == ModeAdding {
			effects = append(effects, s.refuse(fmt.Errorf("select while adding: %w", ErrNotPermitted))...)
			break
		}
		s.nav.Navigate(s.mount.ItemPath(e.ID))
	case Deselect:
		s.nav.Navigate(s.mount.Base)
	case StartAdd:
		effects = append(effects, s.refuse(s.ctl.Add())...)
	case StartEdit:
		effects = append(effects, s.refuse(s.ctl.Edit())...)
	case EditDraft:
		effects = append(effects, s.refuse(s.ctl.SetDraft(e.Input))...)
	case Cancel:
		s.ctl.Cancel()
	case Save:
		out, err := s.ctl.Save(e.Input)
		effects = append(effects, out...)
		effects = append(effects, s.refuse(err)...)
	case Delete:
		out, err := s.ctl.Delete()
		effects = append(effects, out...)
		effects = append(effects, s.refuse(err)...)
	case ListLoaded:
		applied, err := s.store.Complete(e.Ticket, e.Items, e.Err)
		if !applied {
			s.log.Debug("list response superseded", "seq", e.Ticket.Seq)
			break
		}
		if err != nil {
			verb := "load"
			if e.Ticket.IsSearch() {
				verb = "search"
			}
			effects = append(effects, Notify{Level: LevelError, Text: fmt.Sprintf("Could not %s items: %v", verb, err)})
		}
	case DetailFetched:
		out, applied := s.ctl.DetailFetched(e)
		if !applied {
			s.log.Debug("detail response discarded", "id", e.ID, "token", e.Token)
		}
		effects = append(effects, out...)
	case ItemSaved:
		effects = s.ctl.ItemSaved(e)
	case ItemCreated:
		effects = s.ctl.ItemCreated(e)
	case ItemDeleted:
		effects = s.ctl.ItemDeleted(e)
	default:
		s.log.Warn("unhandled event", "event", fmt.Sprintf("%T", ev))
	}

	out := s.apply(effects)
	out = append(out, s.apply(s.ctl.Sync(s.Selection()))...)
	if s.store.NeedsReload() {
		out = append(out, LoadList{Ticket: s.store.BeginLoad()})
	}
	return out
}

// apply consumes list and navigation effects and passes the rest through.
func (s *Screen) apply(effects []Effect) []Effect {
	var out []Effect
	for _, eff := range effects {
		switch e := eff.(type) {
		case patchList:
			if !s.store.ApplyLocalUpdate(e.Header) {
				s.log.Debug("patched item not in list", "id", e.Header.ID)
			}
		case invalidateList:
			s.store.Invalidate()
		case navigateTo:
			s.nav.Navigate(e.Path)
		default:
			out = append(out, eff)
		}
	}
	return out
}

func (s *Screen) refuse(err error) []Effect {
	if err == nil {
		return nil
	}
	if errors.Is(err, api.ErrValidation) {
		return []Effect{Notify{Level: LevelError, Text: err.Error()}}
	}
	s.log.Debug("intent refused", "err", err)
	return []Effect{Notify{Level: LevelWarning, Text: refusalText(err)}}
}

func refusalText(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ":"); i > 0 {
		msg = msg[:i]
	}
	return "Cannot " + msg
}
