package shipment

import (
	"time"

	"github.com/google/uuid"
)

// StatusEvent is one immutable entry in a shipment's status history.
// It answers: what happened to the shipment, where, when, and who
// recorded it.
//
// Events are write-only and append-only. They are never updated or
// deleted, and the chronological sequence for a shipment is its audit
// trail: the last event's status/location always match the shipment
// row's current status/current_location.
type StatusEvent struct {
	ID         uuid.UUID
	ShipmentID uuid.UUID
	Status     ShipmentStatus
	Location   *string
	Notes      *string
	UpdatedBy  uuid.UUID // acting principal
	CreatedAt  time.Time
}
