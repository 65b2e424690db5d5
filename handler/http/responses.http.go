// handler/http/responses.http.go
package httpServer

import (
	"time"

	"github.com/TradeLite0/logistics-v2-api/internal/app/shipments"
	"github.com/TradeLite0/logistics-v2-api/internal/domain/shipment"
)

// Response DTOs keep the wire contract independent from the domain
// structs; renaming a domain field must never silently change the API.

type shipmentResponse struct {
	ID              string    `json:"id"`
	TrackingNumber  string    `json:"tracking_number"`
	CustomerName    string    `json:"customer_name"`
	CustomerPhone   string    `json:"customer_phone"`
	CustomerEmail   string    `json:"customer_email,omitempty"`
	Origin          string    `json:"origin"`
	Destination     string    `json:"destination"`
	ServiceType     string    `json:"service_type"`
	Weight          float64   `json:"weight"`
	Cost            float64   `json:"cost"`
	Status          string    `json:"status"`
	CompanyID       string    `json:"company_id"`
	DriverID        *string   `json:"driver_id,omitempty"`
	CurrentLocation *string   `json:"current_location,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type statusEventResponse struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Location  *string   `json:"location,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	UpdatedBy string    `json:"updated_by"`
	CreatedAt time.Time `json:"created_at"`
}

type detailResponse struct {
	Shipment shipmentResponse      `json:"shipment"`
	History  []statusEventResponse `json:"history"`
}

func toShipmentResponse(sh shipment.Shipment) shipmentResponse {
	resp := shipmentResponse{
		ID:              sh.ID.String(),
		TrackingNumber:  sh.TrackingNumber,
		CustomerName:    sh.CustomerName,
		CustomerPhone:   sh.CustomerPhone,
		CustomerEmail:   sh.CustomerEmail,
		Origin:          sh.Origin,
		Destination:     sh.Destination,
		ServiceType:     sh.ServiceType,
		Weight:          sh.Weight,
		Cost:            sh.Cost,
		Status:          string(sh.Status),
		CompanyID:       sh.CompanyID.String(),
		CurrentLocation: sh.CurrentLocation,
		Notes:           sh.Notes,
		CreatedAt:       sh.CreatedAt,
		UpdatedAt:       sh.UpdatedAt,
	}
	if sh.DriverID != nil {
		id := sh.DriverID.String()
		resp.DriverID = &id
	}
	return resp
}

func toDetailResponse(d shipments.Detail) detailResponse {
	history := make([]statusEventResponse, len(d.History))
	for i, ev := range d.History {
		history[i] = statusEventResponse{
			ID:        ev.ID.String(),
			Status:    string(ev.Status),
			Location:  ev.Location,
			Notes:     ev.Notes,
			UpdatedBy: ev.UpdatedBy.String(),
			CreatedAt: ev.CreatedAt,
		}
	}
	return detailResponse{Shipment: toShipmentResponse(d.Shipment), History: history}
}
