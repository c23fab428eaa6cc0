package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/civitas/civitas-reader/internal/model"
)

// ErrMalformed is wrapped by errors for bodies that do not match the expected shape
var ErrMalformed = errors.New("catalog: malformed response")

// FetchError describes a failed catalog call
type FetchError struct {
	Kind   model.ErrorKind
	Op     string // API path
	Status int    // HTTP status, zero when no response was received
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("catalog: %s: %s (status %d): %v", e.Op, e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("catalog: %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// KindOf returns the error kind carried by err. Context cancellation and
// deadline errors count as network unavailability.
func KindOf(err error) model.ErrorKind {
	if err == nil {
		return model.ErrorKindNone
	}
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return model.ErrorKindNetworkUnavailable
	}
	if errors.Is(err, ErrMalformed) {
		return model.ErrorKindMalformed
	}
	return model.ErrorKindServerError
}

func networkError(op string, err error) *FetchError {
	return &FetchError{Kind: model.ErrorKindNetworkUnavailable, Op: op, Err: err}
}

func statusError(op string, status int, body string) *FetchError {
	return &FetchError{Kind: model.ErrorKindServerError, Op: op, Status: status, Err: fmt.Errorf("unexpected status: %s", body)}
}

func malformedError(op string, status int, cause error) *FetchError {
	err := ErrMalformed
	if cause != nil {
		err = fmt.Errorf("%w: %v", ErrMalformed, cause)
	}
	return &FetchError{Kind: model.ErrorKindMalformed, Op: op, Status: status, Err: err}
}
