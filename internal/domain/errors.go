package domain

import "errors"

// Error kinds. Every error returned by the booking core wraps exactly one of them.
var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
	ErrHotelMismatch     = errors.New("hotel mismatch")
	ErrUnavailable       = errors.New("unavailable")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrInternal          = errors.New("internal error")
)

// ErrorKind is a closed set of failure categories
type ErrorKind string

const (
	KindValidation        ErrorKind = "validation"
	KindNotFound          ErrorKind = "not_found"
	KindHotelMismatch     ErrorKind = "hotel_mismatch"
	KindUnavailable       ErrorKind = "unavailable"
	KindInsufficientFunds ErrorKind = "insufficient_funds"
	KindInvalidTransition ErrorKind = "invalid_transition"
	KindInternal          ErrorKind = "internal"
)

var kinds = []struct {
	err  error
	kind ErrorKind
}{
	{ErrValidation, KindValidation},
	{ErrNotFound, KindNotFound},
	{ErrHotelMismatch, KindHotelMismatch},
	{ErrUnavailable, KindUnavailable},
	{ErrInsufficientFunds, KindInsufficientFunds},
	{ErrInvalidTransition, KindInvalidTransition},
	{ErrInternal, KindInternal},
}

// KindOf returns the kind wrapped by err. Unclassified errors are internal; nil has no kind.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return KindInternal
}
