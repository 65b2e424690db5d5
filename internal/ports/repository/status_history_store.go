package repository

import (
	"context"

	"github.com/TradeLite0/logistics-v2-api/internal/domain/shipment"
	"github.com/google/uuid"
)

// StatusHistoryStore owns the append-only status ledger.
type StatusHistoryStore interface {
	// Append is "Write Only". History is never updated or deleted by
	// the application.
	Append(ctx context.Context, event *shipment.StatusEvent) error

	// ListFor returns the full history for a shipment in chronological
	// order (created_at ascending) - history reads as a narrative,
	// oldest first, the inverse of shipment listing.
	ListFor(ctx context.Context, shipmentID uuid.UUID) ([]shipment.StatusEvent, error)
}
