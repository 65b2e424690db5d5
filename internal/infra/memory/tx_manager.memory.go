// internal/infra/memory/tx_manager.memory.go
package memory

import (
	"context"
	"sync"

	"github.com/TradeLite0/logistics-v2-api/internal/domain/shipment"
	"github.com/google/uuid"
)

// TxManager gives the in-memory store the same all-or-nothing
// semantics a postgres transaction provides: it snapshots the maps
// before running fn and restores them if fn fails. Transactions are
// serialized, which is stricter than postgres but fine for dev/tests.
type TxManager struct {
	txMu  sync.Mutex
	store *Store
}

func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

func (tm *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tm.txMu.Lock()
	defer tm.txMu.Unlock()

	before := tm.store.snapshot()
	if err := fn(ctx); err != nil {
		tm.store.restore(before)
		return err
	}
	return nil
}

type storeState struct {
	shipments  map[uuid.UUID]shipment.Shipment
	byTracking map[string]uuid.UUID
	events     map[uuid.UUID][]shipment.StatusEvent
	issued     map[string]bool
}

func (s *Store) snapshot() storeState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := storeState{
		shipments:  make(map[uuid.UUID]shipment.Shipment, len(s.shipments)),
		byTracking: make(map[string]uuid.UUID, len(s.byTracking)),
		events:     make(map[uuid.UUID][]shipment.StatusEvent, len(s.events)),
		issued:     make(map[string]bool, len(s.issued)),
	}
	for k, v := range s.shipments {
		st.shipments[k] = v
	}
	for k, v := range s.byTracking {
		st.byTracking[k] = v
	}
	for k, v := range s.events {
		evs := make([]shipment.StatusEvent, len(v))
		copy(evs, v)
		st.events[k] = evs
	}
	for k, v := range s.issued {
		st.issued[k] = v
	}
	return st
}

func (s *Store) restore(st storeState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shipments = st.shipments
	s.byTracking = st.byTracking
	s.events = st.events
	s.issued = st.issued
}
