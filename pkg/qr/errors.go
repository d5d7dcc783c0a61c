package qr

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
var (
	// ErrPayloadEncoding is returned when a payload is not valid UTF-8.
	ErrPayloadEncoding = errors.New("qr: payload is not valid UTF-8")

	// ErrUnknownBackend is returned for an unrecognized decoder name.
	ErrUnknownBackend = errors.New("qr: unknown decoder backend")

	// ErrUnknownPolicy is returned for an unrecognized payload policy name.
	ErrUnknownPolicy = errors.New("qr: unknown payload policy")
)

// PayloadDecodeError reports a payload that could not be turned into text.
type PayloadDecodeError struct {
	// Payload is the raw message.
	Payload []byte

	// Offset is the index of the first invalid byte.
	Offset int
}

// Error implements the error interface.
func (e *PayloadDecodeError) Error() string {
	if e.Offset < 0 || e.Offset >= len(e.Payload) {
		return fmt.Sprintf("%v (offset %d of %d)", ErrPayloadEncoding, e.Offset, len(e.Payload))
	}
	return fmt.Sprintf("%v (invalid byte 0x%02x at offset %d of %d)",
		ErrPayloadEncoding, e.Payload[e.Offset], e.Offset, len(e.Payload))
}

// Unwrap returns ErrPayloadEncoding.
func (e *PayloadDecodeError) Unwrap() error {
	return ErrPayloadEncoding
}

// BackendError reports an unrecognized decoder backend.
type BackendError struct {
	Name string
}

// Error implements the error interface.
func (e *BackendError) Error() string {
	return fmt.Sprintf("%v: %q (want one of %v)", ErrUnknownBackend, e.Name, Backends())
}

// Unwrap returns ErrUnknownBackend.
func (e *BackendError) Unwrap() error {
	return ErrUnknownBackend
}

// DecodeError wraps a failure inside a decoding engine.
type DecodeError struct {
	Backend string
	Err     error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("qr [%s]: %v", e.Backend, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

func wrapError(backend string, err error) error {
	if err == nil {
		return nil
	}
	return &DecodeError{Backend: backend, Err: err}
}
