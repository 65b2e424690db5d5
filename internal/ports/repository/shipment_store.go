package repository

import (
	"context"

	"github.com/TradeLite0/logistics-v2-api/internal/domain/shipment"
	"github.com/google/uuid"
)

// ShipmentFilter restricts which shipments List returns. Nil fields
// mean "no restriction". It is computed by the visibility policy from
// the caller's principal, never supplied by the caller directly.
type ShipmentFilter struct {
	CompanyID *uuid.UUID
	DriverID  *uuid.UUID
}

// ShipmentStore defines the persistence interface for shipment rows.
type ShipmentStore interface {
	// Create inserts a new shipment. Returns ErrTrackingNumberTaken if
	// the tracking number collides with any ever issued; the store's
	// uniqueness constraint is the source of truth, the generator only
	// minimizes the odds.
	Create(ctx context.Context, s *shipment.Shipment) error

	// Get returns the shipment by internal id, or ErrShipmentNotFound.
	Get(ctx context.Context, id uuid.UUID) (shipment.Shipment, error)

	// GetByTrackingNumber returns the shipment by its public tracking
	// number, or ErrShipmentNotFound. Used by the unauthenticated
	// tracking lookup.
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (shipment.Shipment, error)

	// List returns shipments matching the filter, newest first
	// (created_at descending).
	List(ctx context.Context, filter ShipmentFilter) ([]shipment.Shipment, error)

	// UpdateStatus sets status/current_location and bumps updated_at.
	// Returns the updated row, or ErrShipmentNotFound.
	UpdateStatus(ctx context.Context, id uuid.UUID, status shipment.ShipmentStatus, location *string) (shipment.Shipment, error)
}
