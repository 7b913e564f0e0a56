package contact

import (
	"errors"
	"fmt"
)

var (
	// ErrApplication marks a response that arrived with a non-2xx status.
	ErrApplication = errors.New("contact: endpoint rejected submission")
	// ErrTransport marks a request that never completed a round trip.
	ErrTransport = errors.New("contact: request did not complete")
)

// ApplicationError is returned when the endpoint answered with a non-success status.
type ApplicationError struct {
	StatusCode int
}

func (e *ApplicationError) Error() string {
	return fmt.Sprintf("contact: endpoint returned status %d", e.StatusCode)
}

// Is reports ErrApplication as a match.
func (e *ApplicationError) Is(target error) bool {
	return target == ErrApplication
}

// TransportError wraps a network-level failure.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("contact: transport failure: %v", e.Err)
}

// Is reports ErrTransport as a match.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Outcome is the classification of a settled attempt.
type Outcome string

const (
	OutcomeSuccess          Outcome = "success"
	OutcomeApplicationError Outcome = "application_error"
	OutcomeTransportError   Outcome = "transport_error"
)

// Classify maps a Submit error to an Outcome. Any error that is not an
// application error counts as a transport failure.
func Classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, ErrApplication):
		return OutcomeApplicationError
	default:
		return OutcomeTransportError
	}
}
