package common

import (
	"errors"
	"fmt"
)

// Common application errors
var (
	ErrNotFound     = errors.New("record not found")
	ErrCorrupt      = errors.New("record data is corrupt")
	ErrInvalidInput = errors.New("invalid input")
	ErrConstraint   = errors.New("constraint violation")
	ErrStorage      = errors.New("storage error")
)

// TransportError is a failure talking to the inference endpoint: an unreachable
// host, a non-2xx reply, or a failed auth exchange. It is never downgraded to a
// fallback candidate; malformed *content* of a 2xx reply is handled elsewhere.
type TransportError struct {
	Op     string // "auth" | "completion"
	Status int    // 0 when the request never got a response
	Body   string
	Cause  error
}

func (e *TransportError) Error() string {
	switch {
	case e.Status != 0 && e.Body != "":
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Body)
	case e.Status != 0:
		return fmt.Sprintf("%s: status %d", e.Op, e.Status)
	case e.Cause != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Cause)
	}
	return e.Op + ": transport error"
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// WrapError annotates err with a message, preserving the chain.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
