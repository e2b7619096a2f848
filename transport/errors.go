package transport

import "errors"

// Transaction failure kinds. Callers distinguish them with errors.Is;
// decode failures pass through from the protocol package unchanged.
var (
	ErrWrite   = errors.New("command write failed")
	ErrTimeout = errors.New("feedback deadline exceeded")
	ErrFraming = errors.New("feedback header not found")
)
