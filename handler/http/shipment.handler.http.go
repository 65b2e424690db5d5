// handler/http/shipment.handler.http.go
package httpServer

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/TradeLite0/logistics-v2-api/internal/app/httperror"
	"github.com/TradeLite0/logistics-v2-api/internal/app/shipments"
	"github.com/TradeLite0/logistics-v2-api/internal/domain/shipment"
	"github.com/TradeLite0/logistics-v2-api/internal/ports/crypto"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// Server exposes the lifecycle service over HTTP. It holds a reference
// to the business logic and the token verifier; everything else is
// routing and JSON shuffling.
type Server struct {
	service  *shipments.Service
	verifier crypto.TokenVerifier
}

func NewServer(service *shipments.Service, verifier crypto.TokenVerifier) *Server {
	return &Server{service: service, verifier: verifier}
}

// Router builds the chi router. The public tracking lookup sits
// outside the authenticated group; everything else requires a bearer
// token.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/v1/track/{trackingNumber}", s.handleTrack)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)
		r.Post("/v1/shipments", s.handleCreate)
		r.Get("/v1/shipments", s.handleList)
		r.Get("/v1/shipments/{id}", s.handleGet)
		r.Post("/v1/shipments/{id}/status", s.handleUpdateStatus)
	})

	return r
}

type createShipmentRequest struct {
	CustomerName  string  `json:"customer_name"`
	CustomerPhone string  `json:"customer_phone"`
	CustomerEmail string  `json:"customer_email,omitempty"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	ServiceType   string  `json:"service_type"`
	Weight        float64 `json:"weight"`
	Cost          float64 `json:"cost"`
	DriverID      *string `json:"driver_id,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

type updateStatusRequest struct {
	Status   string  `json:"status"`
	Location *string `json:"location,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	actor, ok := principalFrom(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	var req createShipmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	params := shipments.CreateParams{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Origin:        req.Origin,
		Destination:   req.Destination,
		ServiceType:   req.ServiceType,
		Weight:        req.Weight,
		Cost:          req.Cost,
		Notes:         req.Notes,
	}
	if req.DriverID != nil {
		driverID, err := uuid.Parse(*req.DriverID)
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "driver_id is not a valid uuid")
			return
		}
		params.DriverID = &driverID
	}

	detail, err := s.service.CreateShipment(r.Context(), actor, params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDetailResponse(detail))
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	actor, ok := principalFrom(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	result, err := s.service.ListShipments(r.Context(), actor)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := make([]shipmentResponse, len(result))
	for i, sh := range result {
		resp[i] = toShipmentResponse(sh)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "id is not a valid uuid")
		return
	}

	detail, err := s.service.GetShipment(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDetailResponse(detail))
}

func (s *Server) handleTrack(w http.ResponseWriter, r *http.Request) {
	trackingNumber := chi.URLParam(r, "trackingNumber")

	detail, err := s.service.TrackShipment(r.Context(), trackingNumber)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDetailResponse(detail))
}

func (s *Server) handleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := principalFrom(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "id is not a valid uuid")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	updated, err := s.service.UpdateShipmentStatus(
		r.Context(), actor, id,
		shipment.ShipmentStatus(req.Status), req.Location, req.Notes,
	)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toShipmentResponse(updated))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status, msg := httperror.Map(err)
	if status == http.StatusInternalServerError {
		// opaque to the caller, detailed in the log
		log.Printf("request failed: %v", err)
	}
	writeErrorMessage(w, status, msg)
}

func writeErrorMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
