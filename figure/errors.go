package figure

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidValue is matched by every *ValueError.
	ErrInvalidValue = errors.New("invalid value")
	// ErrPrecondition is returned when a stage runs before the ones it builds on.
	ErrPrecondition = errors.New("drawing stage out of order")
	// ErrHeightUnresolved is returned for the height of an Auto box not yet drawn.
	ErrHeightUnresolved = errors.New("height is only available after drawing")
	// ErrAlreadyDrawn is returned by a second call to Draw.
	ErrAlreadyDrawn = errors.New("figure already drawn")
)

// ValueError reports a rejected parameter. It matches ErrInvalidValue with errors.Is.
type ValueError struct {
	Param  string
	Value  any
	Reason string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Param, e.Value, e.Reason)
}

func (e *ValueError) Unwrap() error { return ErrInvalidValue }

func invalid(param string, value any, format string, args ...any) error {
	return &ValueError{Param: param, Value: value, Reason: fmt.Sprintf(format, args...)}
}

func stageError(stage, requires string) error {
	return fmt.Errorf("%w: %s requires %s to be drawn first", ErrPrecondition, stage, requires)
}
