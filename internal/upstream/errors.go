// Package upstream defines the error taxonomy shared by the external API clients.
package upstream

import (
	"errors"
	"fmt"
)

// Sentinel errors for upstream failure kinds.
var (
	ErrAuth     = errors.New("authentication failed")
	ErrUpstream = errors.New("upstream request failed")
	ErrParse    = errors.New("malformed upstream response")
)

// Error provides context for a failed upstream call.
type Error struct {
	Source string // Upstream name (e.g., "igdb", "bgg")
	Op     string // Operation that failed (e.g., "fetch games")
	Err    error  // Underlying error, wrapping one of the sentinels
}

func (e *Error) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s %s: %v", e.Source, e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Wrap classifies err under kind. A nil err yields nil.
func Wrap(kind error, source, op string, err error) error {
	if err == nil {
		return nil
	}
	var ue *Error
	if errors.As(err, &ue) && errors.Is(err, kind) {
		return err
	}
	return &Error{Source: source, Op: op, Err: fmt.Errorf("%w: %v", kind, err)}
}

// StatusError reports a non-2xx upstream response.
func StatusError(source, op, status string) error {
	return &Error{Source: source, Op: op, Err: fmt.Errorf("%w: unexpected status: %s", ErrUpstream, status)}
}
