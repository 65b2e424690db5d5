package httperror

import (
	stdErrors "errors"
	"net/http"

	domainErr "github.com/TradeLite0/logistics-v2-api/internal/domain/errors"
)

// Map translates a domain error into the HTTP status and caller-safe
// message for it.
//
// Why app layer and not transport? The domain should not know about
// HTTP status codes, and the transport should not contain business
// rules. The application layer is where domain errors become
// transport-safe ones. Anything unrecognized collapses to an opaque
// 500: store internals never leak to callers, they go to the log.
func Map(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusOK, ""
	case stdErrors.Is(err, domainErr.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case stdErrors.Is(err, domainErr.ErrShipmentNotFound):
		return http.StatusNotFound, "shipment not found"
	case stdErrors.Is(err, domainErr.ErrTrackingNumberTaken):
		// only reaches callers after the bounded retry loop is exhausted
		return http.StatusConflict, "could not allocate a unique tracking number"
	case stdErrors.Is(err, domainErr.ErrUnauthorized):
		return http.StatusUnauthorized, "missing or invalid credentials"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
