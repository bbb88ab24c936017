package quiz

import (
	"errors"
	"fmt"
)

// ErrAgentNotFound is returned when the agent lookup has no such agent.
// It is the only failure the engines surface for a well-formed request.
var ErrAgentNotFound = errors.New("agent not found")

// ErrInvalidCount is returned when the requested question count is out of range.
var ErrInvalidCount = errors.New("invalid question count")

// ParseError reports model output that could not be decoded into the
// expected top-level shape.
type ParseError struct {
	Expected string // "array" or "object"
	Content  string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse model output as %s: %v", e.Expected, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
