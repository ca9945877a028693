package directmail

import (
	"errors"
	"fmt"
)

// Sentinel errors for DirectMail operations.
var (
	// Configuration errors.
	ErrInvalidConfig = errors.New("directmail: invalid configuration")
	ErrUnknownRegion = errors.New("directmail: unknown region")

	// Message errors.
	ErrMissingSender = errors.New("directmail: no sender address")

	// Delivery errors.
	ErrSigning   = errors.New("directmail: signing failed")
	ErrTransport = errors.New("directmail: transport failed")
)

// APIError is returned when the DirectMail API answers with a non-2xx status.
// It matches ErrTransport with errors.Is.
type APIError struct {
	StatusCode int
	RequestID  string
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("directmail: api error: status %d", e.StatusCode)
	if e.Code != "" {
		msg += ", code " + e.Code
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.RequestID != "" {
		msg += " (request id " + e.RequestID + ")"
	}
	return msg
}

func (e *APIError) Unwrap() error {
	return ErrTransport
}
