package pbp

import (
	"errors"
	"fmt"
)

// ErrEmptyEvents is returned by Resample when there is no event to carry forward.
var ErrEmptyEvents = errors.New("empty event sequence")

// MalformedClockError reports a clock token that is not "<minutes>:<seconds>".
type MalformedClockError struct {
	Token  string
	Reason string
}

func (e *MalformedClockError) Error() string {
	return fmt.Sprintf("malformed clock %q: %s", e.Token, e.Reason)
}

// TokenFormatError reports a cell that looked like a score or a clock reading
// but could not be parsed. Extraction records it and moves on.
type TokenFormatError struct {
	Token string
	Kind  TokenKind
	Err   error
}

func (e *TokenFormatError) Error() string {
	return fmt.Sprintf("bad %s token %q: %v", e.Kind, e.Token, e.Err)
}

func (e *TokenFormatError) Unwrap() error {
	return e.Err
}
