package api

import (
	"errors"
	"fmt"
)

// ErrorKind classifies gateway failures.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNetwork
	KindNotFound
	KindValidation
)

func (k ErrorKind) String() string {
	switch k {
	case KindNetwork:
		return "network failure"
	case KindNotFound:
		return "not found"
	case KindValidation:
		return "validation failure"
	}
	return "unknown"
}

// Sentinels for errors.Is. Any *Error of the same kind matches.
var (
	ErrNetwork    = &Error{Kind: KindNetwork}
	ErrNotFound   = &Error{Kind: KindNotFound}
	ErrValidation = &Error{Kind: KindValidation}
)

// Error is returned by every Client call that fails.
type Error struct {
	Kind    ErrorKind
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	switch {
	case e.Code != "" && msg != "":
		msg = fmt.Sprintf("%s: %s", e.Code, msg)
	case e.Code != "":
		msg = e.Code
	case msg == "" && e.Status > 0:
		msg = fmt.Sprintf("HTTP %d", e.Status)
	case msg == "":
		msg = e.Kind.String()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches sentinels by kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Status == 0 && t.Message == "" && t.Code == ""
}

// KindOf reports the kind of err, KindUnknown for foreign errors.
func KindOf(err error) ErrorKind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether err means the item no longer exists.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
