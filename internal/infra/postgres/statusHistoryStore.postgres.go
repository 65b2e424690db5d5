// internal/infra/postgres/statusHistoryStore.postgres.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/TradeLite0/logistics-v2-api/internal/domain/shipment"
	"github.com/TradeLite0/logistics-v2-api/internal/ports/repository"
	"github.com/google/uuid"
)

var _ repository.StatusHistoryStore = (*StatusHistoryStore)(nil)

// StatusHistoryStore persists the append-only status ledger. There is
// deliberately no update or delete here.
type StatusHistoryStore struct {
	db *sql.DB
}

func NewStatusHistoryStore(db *sql.DB) *StatusHistoryStore {
	return &StatusHistoryStore{db: db}
}

func (s *StatusHistoryStore) Append(ctx context.Context, event *shipment.StatusEvent) error {
	query := `
        INSERT INTO status_history (id, shipment_id, status, location, notes, updated_by, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := q(ctx, s.db).ExecContext(ctx, query,
		event.ID,
		event.ShipmentID,
		string(event.Status),
		nullString(event.Location),
		nullString(event.Notes),
		event.UpdatedBy,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append status event: %w", err)
	}
	return nil
}

func (s *StatusHistoryStore) ListFor(ctx context.Context, shipmentID uuid.UUID) ([]shipment.StatusEvent, error) {
	query := `
        SELECT id, shipment_id, status, location, notes, updated_by, created_at
        FROM status_history
        WHERE shipment_id = $1
        ORDER BY created_at ASC`

	rows, err := q(ctx, s.db).QueryContext(ctx, query, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query status history: %w", err)
	}
	defer rows.Close()

	var events []shipment.StatusEvent
	for rows.Next() {
		var ev shipment.StatusEvent
		var status string
		var location, notes sql.NullString

		if err := rows.Scan(
			&ev.ID,
			&ev.ShipmentID,
			&status,
			&location,
			&notes,
			&ev.UpdatedBy,
			&ev.CreatedAt,
		); err != nil {
			return nil, err
		}
		ev.Status = shipment.ShipmentStatus(status)
		if location.Valid {
			v := location.String
			ev.Location = &v
		}
		if notes.Valid {
			v := notes.String
			ev.Notes = &v
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
