package relay

import (
	"errors"
	"fmt"
)

var (
	// ErrEndpointNotFound is matched by every *EndpointNotFoundError through errors.Is.
	ErrEndpointNotFound = errors.New("endpoint not found")

	// ErrMissingField is matched by every *MissingFieldError through errors.Is.
	ErrMissingField = errors.New("missing field")
)

// EndpointNotFoundError reports that no endpoint of an allocation offered the wanted connection type.
type EndpointNotFoundError struct {
	ConnectionType string

	// Amount of endpoints that were searched.
	Candidates int
}

func (e *EndpointNotFoundError) Error() string {
	return fmt.Sprintf("endpoint for connection type %q not found among %d candidates", e.ConnectionType, e.Candidates)
}

func (e *EndpointNotFoundError) Is(target error) bool {
	return target == ErrEndpointNotFound
}

// MissingFieldError reports that an allocation lacks a field that the requested role needs.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("allocation is missing %s", e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField
}
