package types

import (
	"errors"
	"fmt"
)

var (
	ErrUnrecognizedPeriod = errors.New("could not parse the requested period")
	ErrInvalidRange       = errors.New("range end date is before the start date")
	ErrMissingCredential  = errors.New("ANTHROPIC_ADMIN_KEY not found in environment or ~/.env")
	ErrInvalidCredential  = errors.New("the admin API key was rejected by the service")
	ErrNetwork            = errors.New("could not reach the cost report service")
)

// APIError represents a non-success response from the cost report endpoint.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.Status, e.Message)
}
