// internal/infra/memory/store.memory.go
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/TradeLite0/logistics-v2-api/internal/domain/errors"
	"github.com/TradeLite0/logistics-v2-api/internal/domain/shipment"
	"github.com/TradeLite0/logistics-v2-api/internal/ports/repository"
	"github.com/google/uuid"
)

// Store is an in-memory implementation of both ShipmentStore and
// StatusHistoryStore. It backs the dev mode and the lifecycle tests;
// production runs on the postgres implementation.
type Store struct {
	mu         sync.RWMutex
	shipments  map[uuid.UUID]shipment.Shipment
	byTracking map[string]uuid.UUID
	events     map[uuid.UUID][]shipment.StatusEvent
	issued     map[string]bool // every tracking number ever seen; never reused
}

func NewStore() *Store {
	return &Store{
		shipments:  make(map[uuid.UUID]shipment.Shipment),
		byTracking: make(map[string]uuid.UUID),
		events:     make(map[uuid.UUID][]shipment.StatusEvent),
		issued:     make(map[string]bool),
	}
}

func (s *Store) Create(ctx context.Context, sh *shipment.Shipment) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.issued[sh.TrackingNumber] {
		return domainErrors.ErrTrackingNumberTaken
	}
	s.issued[sh.TrackingNumber] = true
	s.byTracking[sh.TrackingNumber] = sh.ID
	s.shipments[sh.ID] = *sh
	return nil
}

func (s *Store) Get(ctx context.Context, id uuid.UUID) (shipment.Shipment, error) {
	select {
	case <-ctx.Done():
		return shipment.Shipment{}, ctx.Err()
	default:
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	sh, ok := s.shipments[id]
	if !ok {
		return shipment.Shipment{}, domainErrors.ErrShipmentNotFound
	}
	return sh, nil
}

func (s *Store) GetByTrackingNumber(ctx context.Context, trackingNumber string) (shipment.Shipment, error) {
	select {
	case <-ctx.Done():
		return shipment.Shipment{}, ctx.Err()
	default:
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byTracking[trackingNumber]
	if !ok {
		return shipment.Shipment{}, domainErrors.ErrShipmentNotFound
	}
	return s.shipments[id], nil
}

func (s *Store) List(ctx context.Context, filter repository.ShipmentFilter) ([]shipment.Shipment, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []shipment.Shipment
	for _, sh := range s.shipments {
		if filter.CompanyID != nil && sh.CompanyID != *filter.CompanyID {
			continue
		}
		if filter.DriverID != nil && (sh.DriverID == nil || *sh.DriverID != *filter.DriverID) {
			continue
		}
		result = append(result, sh)
	}
	// newest first, matching the postgres ORDER BY created_at DESC
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status shipment.ShipmentStatus, location *string) (shipment.Shipment, error) {
	select {
	case <-ctx.Done():
		return shipment.Shipment{}, ctx.Err()
	default:
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sh, ok := s.shipments[id]
	if !ok {
		return shipment.Shipment{}, domainErrors.ErrShipmentNotFound
	}
	sh.Status = status
	if location != nil {
		sh.CurrentLocation = location
	}
	sh.UpdatedAt = time.Now().UTC()
	s.shipments[id] = sh
	return sh, nil
}

func (s *Store) Append(ctx context.Context, event *shipment.StatusEvent) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.ShipmentID] = append(s.events[event.ShipmentID], *event)
	return nil
}

func (s *Store) ListFor(ctx context.Context, shipmentID uuid.UUID) ([]shipment.StatusEvent, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.events[shipmentID]
	result := make([]shipment.StatusEvent, len(stored))
	copy(result, stored)
	// chronological: oldest first, ties keep append order
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}
