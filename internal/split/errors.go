package split

import "errors"

var (
	// ErrInvalidDimension reports a non-finite or negative size or delta.
	ErrInvalidDimension = errors.New("invalid dimension")

	// ErrProtocolViolation reports a Move, End or Cancel delivered without an
	// active gesture. Controllers recover from it by ignoring the event.
	ErrProtocolViolation = errors.New("gesture protocol violation")

	// ErrNotInitialized is returned for events delivered before Initialize.
	ErrNotInitialized = errors.New("controller not initialized")

	// ErrAlreadyInitialized is returned by a second call to Initialize.
	ErrAlreadyInitialized = errors.New("controller already initialized")
)
