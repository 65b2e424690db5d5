package notify

import (
	"context"

	"github.com/TradeLite0/logistics-v2-api/internal/domain/shipment"
)

// Notifier is the outward push/alert sink telling a customer their
// shipment moved. It is fire-and-forget from the orchestrator's point
// of view: a delivery failure must never roll back or fail the status
// update that triggered it.
type Notifier interface {
	StatusChanged(ctx context.Context, s shipment.Shipment, event shipment.StatusEvent) error
}
