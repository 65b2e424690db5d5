// internal/infra/postgres/shipmentStore.postgres.go
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	domainErrors "github.com/TradeLite0/logistics-v2-api/internal/domain/errors"
	"github.com/TradeLite0/logistics-v2-api/internal/domain/shipment"
	"github.com/TradeLite0/logistics-v2-api/internal/ports/repository"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Ensure ShipmentStore implements the interface at compile time
var _ repository.ShipmentStore = (*ShipmentStore)(nil)

type ShipmentStore struct {
	db *sql.DB
}

func NewShipmentStore(db *sql.DB) *ShipmentStore {
	return &ShipmentStore{db: db}
}

const shipmentColumns = `id, tracking_number, customer_name, customer_phone, customer_email,
	origin, destination, service_type, weight, cost, status,
	company_id, driver_id, current_location, notes, created_at, updated_at`

func (s *ShipmentStore) Create(ctx context.Context, sh *shipment.Shipment) error {
	query := `
        INSERT INTO shipments (` + shipmentColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err := q(ctx, s.db).ExecContext(ctx, query,
		sh.ID,
		sh.TrackingNumber,
		sh.CustomerName,
		sh.CustomerPhone,
		nullString(strOrNil(sh.CustomerEmail)),
		sh.Origin,
		sh.Destination,
		sh.ServiceType,
		sh.Weight,
		sh.Cost,
		string(sh.Status),
		sh.CompanyID,
		nullUUID(sh.DriverID),
		nullString(sh.CurrentLocation),
		nullString(sh.Notes),
		sh.CreatedAt,
		sh.UpdatedAt,
	)
	if err != nil {
		// unique_violation on the tracking number index means the
		// generator produced a duplicate; the caller regenerates.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return domainErrors.ErrTrackingNumberTaken
		}
		return fmt.Errorf("failed to insert shipment: %w", err)
	}
	return nil
}

func (s *ShipmentStore) Get(ctx context.Context, id uuid.UUID) (shipment.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE id = $1`
	return s.scanOne(q(ctx, s.db).QueryRowContext(ctx, query, id))
}

func (s *ShipmentStore) GetByTrackingNumber(ctx context.Context, trackingNumber string) (shipment.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE tracking_number = $1`
	return s.scanOne(q(ctx, s.db).QueryRowContext(ctx, query, trackingNumber))
}

func (s *ShipmentStore) List(ctx context.Context, filter repository.ShipmentFilter) ([]shipment.Shipment, error) {
	query := `
        SELECT ` + shipmentColumns + `
        FROM shipments
        WHERE ($1::uuid IS NULL OR company_id = $1)
          AND ($2::uuid IS NULL OR driver_id = $2)
        ORDER BY created_at DESC`

	rows, err := q(ctx, s.db).QueryContext(ctx, query, nullUUID(filter.CompanyID), nullUUID(filter.DriverID))
	if err != nil {
		return nil, fmt.Errorf("failed to query shipments: %w", err)
	}
	defer rows.Close()

	var shipments []shipment.Shipment
	for rows.Next() {
		sh, err := scanShipment(rows.Scan)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return shipments, nil
}

func (s *ShipmentStore) UpdateStatus(ctx context.Context, id uuid.UUID, status shipment.ShipmentStatus, location *string) (shipment.Shipment, error) {
	query := `
        UPDATE shipments
        SET status = $2,
            current_location = COALESCE($3, current_location),
            updated_at = now()
        WHERE id = $1
        RETURNING ` + shipmentColumns

	return s.scanOne(q(ctx, s.db).QueryRowContext(ctx, query, id, string(status), nullString(location)))
}

func (s *ShipmentStore) scanOne(row *sql.Row) (shipment.Shipment, error) {
	sh, err := scanShipment(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return shipment.Shipment{}, domainErrors.ErrShipmentNotFound
	}
	return sh, err
}

// scanShipment reads one row through either sql.Row.Scan or
// sql.Rows.Scan, mapping NULLs back to the optional fields.
func scanShipment(scan func(dest ...any) error) (shipment.Shipment, error) {
	var sh shipment.Shipment
	var email, location, notes sql.NullString
	var driverID uuid.NullUUID
	var status string

	err := scan(
		&sh.ID,
		&sh.TrackingNumber,
		&sh.CustomerName,
		&sh.CustomerPhone,
		&email,
		&sh.Origin,
		&sh.Destination,
		&sh.ServiceType,
		&sh.Weight,
		&sh.Cost,
		&status,
		&sh.CompanyID,
		&driverID,
		&location,
		&notes,
		&sh.CreatedAt,
		&sh.UpdatedAt,
	)
	if err != nil {
		return shipment.Shipment{}, err
	}

	sh.Status = shipment.ShipmentStatus(status)
	sh.CustomerEmail = email.String
	if driverID.Valid {
		id := driverID.UUID
		sh.DriverID = &id
	}
	if location.Valid {
		v := location.String
		sh.CurrentLocation = &v
	}
	if notes.Valid {
		v := notes.String
		sh.Notes = &v
	}
	return sh, nil
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func nullUUID(p *uuid.UUID) uuid.NullUUID {
	if p == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *p, Valid: true}
}

func strOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
