package shipment

import (
	"time"

	"github.com/google/uuid"
)

// ShipmentStatus is the lifecycle state recorded for a shipment.
// The engine records whatever status a caller supplies; the const set
// below is the known vocabulary, not an enforced transition graph.
// Validation of legal transitions is a policy concern upstream.
type ShipmentStatus string

const (
	StatusReceived       ShipmentStatus = "received"
	StatusInTransit      ShipmentStatus = "in_transit"
	StatusOutForDelivery ShipmentStatus = "out_for_delivery"
	StatusDelivered      ShipmentStatus = "delivered"
	StatusCancelled      ShipmentStatus = "cancelled"
	StatusReturned       ShipmentStatus = "returned"
)

// Known reports whether s belongs to the standard status vocabulary.
func (s ShipmentStatus) Known() bool {
	switch s {
	case StatusReceived, StatusInTransit, StatusOutForDelivery,
		StatusDelivered, StatusCancelled, StatusReturned:
		return true
	}
	return false
}

// Shipment is the persisted shipment record.
// TrackingNumber is the public identifier and is unique across all time,
// never reused even after deletion. CompanyID is set at creation and
// never changes. UpdatedAt advances only on status/location mutation.
type Shipment struct {
	ID              uuid.UUID
	TrackingNumber  string
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string // optional
	Origin          string
	Destination     string
	ServiceType     string
	Weight          float64 // kg, must be positive
	Cost            float64 // must be non-negative
	Status          ShipmentStatus
	CompanyID       uuid.UUID
	DriverID        *uuid.UUID // nil until a driver is assigned
	CurrentLocation *string
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
