package protocol

import "errors"

// Decode failure kinds. Callers distinguish them with errors.Is.
var (
	ErrTooShort  = errors.New("feedback frame too short")
	ErrBadHeader = errors.New("feedback header mismatch")
	ErrChecksum  = errors.New("feedback checksum mismatch")
)
