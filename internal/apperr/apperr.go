package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error into the small closed set that is allowed to
// reach API clients. Everything that cannot be classified is internal.
type Kind int

const (
	// KindInternal covers programming errors and unexpected failures.
	KindInternal Kind = iota
	// KindValidation covers bad input: malformed requests, unsupported
	// providers, missing configuration.
	KindValidation
	// KindUpstream covers failures of external collaborators: the LLM
	// provider, the vector index, search and financial-data APIs.
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUpstream:
		return "upstream"
	default:
		return "internal"
	}
}

// Error carries a kind alongside the wrapped cause. The message is safe to
// return to clients; the cause is for logs only.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error of the given kind with no underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap annotates err with a kind and a client-safe message.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from an error chain. Unclassified errors are
// reported as internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Public returns the client-safe message for an error chain. For
// unclassified errors it falls back to a generic message so raw internals
// never leak to callers.
func Public(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal server error"
}
