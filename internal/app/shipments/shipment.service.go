// internal/app/shipments/shipment.service.go
package shipments

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	domainErrors "github.com/TradeLite0/logistics-v2-api/internal/domain/errors"
	"github.com/TradeLite0/logistics-v2-api/internal/domain/policy"
	"github.com/TradeLite0/logistics-v2-api/internal/domain/principal"
	"github.com/TradeLite0/logistics-v2-api/internal/domain/shipment"
	"github.com/TradeLite0/logistics-v2-api/internal/ports/notify"
	"github.com/TradeLite0/logistics-v2-api/internal/ports/repository"
	"github.com/TradeLite0/logistics-v2-api/pkg/kafka"
	"github.com/google/uuid"
)

// NumberGenerator produces candidate tracking numbers. Satisfied by
// tracking.Generator; tests inject deterministic ones.
type NumberGenerator interface {
	Next() string
}

// maxTrackingAttempts bounds the regenerate-and-retry loop when the
// store reports a tracking number collision. Three candidates from a
// nanosecond-timestamped generator colliding in a row means something
// is wrong; surface the conflict instead of looping.
const maxTrackingAttempts = 3

// Service is the lifecycle orchestrator. It composes the tracking
// number generator, the shipment store and the status history ledger
// into the five shipment operations, keeping every paired write (row +
// history event) inside one storage transaction.
//
// Producer and notifier are optional: nil disables event publishing /
// push notifications, everything else behaves identically.
type Service struct {
	store    repository.ShipmentStore
	history  repository.StatusHistoryStore
	tx       repository.TxManager
	tracker  NumberGenerator
	producer kafka.Publisher
	notifier notify.Notifier
}

func NewService(
	store repository.ShipmentStore,
	history repository.StatusHistoryStore,
	tx repository.TxManager,
	tracker NumberGenerator,
	producer kafka.Publisher,
	notifier notify.Notifier,
) *Service {
	return &Service{
		store:    store,
		history:  history,
		tx:       tx,
		tracker:  tracker,
		producer: producer,
		notifier: notifier,
	}
}

// CreateParams is the caller-supplied shipment draft. The id, tracking
// number, status and timestamps are assigned here, never by callers.
type CreateParams struct {
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	Origin        string
	Destination   string
	ServiceType   string
	Weight        float64
	Cost          float64
	DriverID      *uuid.UUID
	Notes         *string
}

// Detail is a shipment together with its full chronological history.
type Detail struct {
	Shipment shipment.Shipment
	History  []shipment.StatusEvent
}

// CreateShipment validates the draft, issues a tracking number and
// writes the shipment row plus its initial "received" history event as
// one transaction. The shipment only exists once both are committed.
//
// On a tracking number collision the whole transaction is retried with
// a fresh candidate, up to maxTrackingAttempts; the draft itself is
// never silently altered between attempts.
func (s *Service) CreateShipment(ctx context.Context, actor principal.Principal, params CreateParams) (Detail, error) {
	if err := validateCreate(params); err != nil {
		return Detail{}, err
	}

	now := time.Now().UTC()
	sh := shipment.Shipment{
		ID:            uuid.New(),
		CustomerName:  params.CustomerName,
		CustomerPhone: params.CustomerPhone,
		CustomerEmail: params.CustomerEmail,
		Origin:        params.Origin,
		Destination:   params.Destination,
		ServiceType:   params.ServiceType,
		Weight:        params.Weight,
		Cost:          params.Cost,
		Status:        shipment.StatusReceived,
		CompanyID:     actor.ID,
		DriverID:      params.DriverID,
		Notes:         params.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	initial := shipment.StatusEvent{
		ID:         uuid.New(),
		ShipmentID: sh.ID,
		Status:     shipment.StatusReceived,
		Notes:      params.Notes,
		UpdatedBy:  actor.ID,
		CreatedAt:  now,
	}

	var lastErr error
	for attempt := 0; attempt < maxTrackingAttempts; attempt++ {
		sh.TrackingNumber = s.tracker.Next()

		err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
			if err := s.store.Create(ctx, &sh); err != nil {
				return err
			}
			return s.history.Append(ctx, &initial)
		})
		if err == nil {
			lastErr = nil
			break
		}
		lastErr = err
		if !errors.Is(err, domainErrors.ErrTrackingNumberTaken) {
			return Detail{}, fmt.Errorf("failed to create shipment: %w", err)
		}
		// collision: regenerate and retry
	}
	if lastErr != nil {
		return Detail{}, fmt.Errorf("failed to create shipment after %d attempts: %w", maxTrackingAttempts, lastErr)
	}

	s.publish("shipment.created", sh)

	return Detail{Shipment: sh, History: []shipment.StatusEvent{initial}}, nil
}

// ListShipments returns the shipments the actor is allowed to see,
// newest first. The visibility policy, not the caller, decides the
// filter.
func (s *Service) ListShipments(ctx context.Context, actor principal.Principal) ([]shipment.Shipment, error) {
	filter := policy.VisibilityFor(actor)
	result, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list shipments: %w", err)
	}
	return result, nil
}

// GetShipment fetches one shipment with its ordered history. Any
// authenticated caller may fetch any shipment by id.
func (s *Service) GetShipment(ctx context.Context, id uuid.UUID) (Detail, error) {
	sh, err := s.store.Get(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	history, err := s.history.ListFor(ctx, id)
	if err != nil {
		return Detail{}, fmt.Errorf("failed to load status history: %w", err)
	}
	return Detail{Shipment: sh, History: history}, nil
}

// TrackShipment is the public lookup by tracking number. No principal
// required; an unknown number is a plain not-found with no side
// effects.
func (s *Service) TrackShipment(ctx context.Context, trackingNumber string) (Detail, error) {
	sh, err := s.store.GetByTrackingNumber(ctx, trackingNumber)
	if err != nil {
		return Detail{}, err
	}
	history, err := s.history.ListFor(ctx, sh.ID)
	if err != nil {
		return Detail{}, fmt.Errorf("failed to load status history: %w", err)
	}
	return Detail{Shipment: sh, History: history}, nil
}

// UpdateShipmentStatus records a status transition: the shipment row
// update and the history append commit together or not at all. The
// engine trusts the supplied status value; transition legality is a
// caller concern.
//
// Customer notification and event publishing happen after commit,
// fire-and-forget: their failures are logged, never propagated, and
// never roll back the update.
func (s *Service) UpdateShipmentStatus(ctx context.Context, actor principal.Principal, id uuid.UUID, status shipment.ShipmentStatus, location, notes *string) (shipment.Shipment, error) {
	if status == "" {
		return shipment.Shipment{}, fmt.Errorf("%w: status is required", domainErrors.ErrValidation)
	}

	event := shipment.StatusEvent{
		ID:         uuid.New(),
		ShipmentID: id,
		Status:     status,
		Location:   location,
		Notes:      notes,
		UpdatedBy:  actor.ID,
		CreatedAt:  time.Now().UTC(),
	}

	var updated shipment.Shipment
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.store.UpdateStatus(ctx, id, status, location)
		if err != nil {
			return err
		}
		return s.history.Append(ctx, &event)
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrShipmentNotFound) {
			return shipment.Shipment{}, err
		}
		return shipment.Shipment{}, fmt.Errorf("failed to update shipment status: %w", err)
	}

	s.publish("shipment.status_updated", updated)
	if s.notifier != nil {
		// detached from the request context so a cancelled request does
		// not drop the customer alert
		go func() {
			if err := s.notifier.StatusChanged(context.Background(), updated, event); err != nil {
				log.Printf("push notification failed for shipment %s: %v", updated.ID, err)
			}
		}()
	}

	return updated, nil
}

// publish emits a domain event to kafka fire-and-forget.
func (s *Service) publish(eventType string, sh shipment.Shipment) {
	if s.producer == nil {
		return
	}
	event := map[string]interface{}{
		"event":   eventType,
		"payload": sh,
	}
	go func() {
		if err := s.producer.Publish(context.Background(), sh.ID.String(), event); err != nil {
			log.Printf("failed to publish %s for shipment %s: %v", eventType, sh.ID, err)
		}
	}()
}

func validateCreate(p CreateParams) error {
	switch {
	case p.CustomerName == "":
		return fmt.Errorf("%w: customer_name is required", domainErrors.ErrValidation)
	case p.CustomerPhone == "":
		return fmt.Errorf("%w: customer_phone is required", domainErrors.ErrValidation)
	case p.Origin == "":
		return fmt.Errorf("%w: origin is required", domainErrors.ErrValidation)
	case p.Destination == "":
		return fmt.Errorf("%w: destination is required", domainErrors.ErrValidation)
	case p.ServiceType == "":
		return fmt.Errorf("%w: service_type is required", domainErrors.ErrValidation)
	case p.Weight <= 0:
		return fmt.Errorf("%w: weight must be positive", domainErrors.ErrValidation)
	case p.Cost < 0:
		return fmt.Errorf("%w: cost must be non-negative", domainErrors.ErrValidation)
	}
	return nil
}
