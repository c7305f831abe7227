package services

import (
	"errors"
	"fmt"
)

// Domain error kinds. Controllers match with errors.Is / errors.As and map
// them to HTTP responses; the services only ever add context on top of these,
// never mask them.
var (
	// ErrNotFound reports an unknown appointment, payment or gateway order id.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateOrder reports that a payment already occupies the
	// appointment's single payment slot.
	ErrDuplicateOrder = errors.New("payment already exists for appointment")
	// ErrInvalidTransition reports a status change not permitted from the
	// entity's current state.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// ValidationError reports a malformed or missing booking field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// GatewayError wraps a transport failure or an explicit decline from the
// payment gateway.
type GatewayError struct {
	Op  string
	Err error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway: %s: %v", e.Op, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
