package approxmc

import "github.com/pkg/errors"

var (
	// ErrDependencyUnavailable is returned when the selected counting engine cannot be used on this machine
	ErrDependencyUnavailable = errors.New("model counting engine is unavailable")
	ErrMalformedOption       = errors.New("malformed option")
	// ErrInvariantViolation signals a logic inconsistency such as a reversed projection range. The option parser
	// returns it and the command line panics on it.
	ErrInvariantViolation = errors.New("invariant violation")
	ErrInvalidState       = errors.New("counter is closed")
	ErrOutOfRange         = errors.New("value out of range")
)
