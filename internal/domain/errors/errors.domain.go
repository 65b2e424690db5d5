// internal/domain/errors/errors.domain.go
package errors

import "errors"

// Standard Sentinel Errors
// These let the transport layer map internal failures to status codes
// (e.g. ErrShipmentNotFound -> 404) without the domain knowing about
// HTTP at all.

var (
	// Lookup errors
	ErrShipmentNotFound = errors.New("shipment not found")

	// Creation errors
	ErrValidation          = errors.New("invalid shipment input")
	ErrTrackingNumberTaken = errors.New("tracking number already exists")

	// Authentication errors
	ErrUnauthorized = errors.New("unauthorized access")

	// System errors
	ErrInternal = errors.New("internal server error")
)
