package httperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	domainErr "github.com/TradeLite0/logistics-v2-api/internal/domain/errors"
)

func TestMap(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
	}{
		{nil, http.StatusOK},
		{domainErr.ErrValidation, http.StatusBadRequest},
		{fmt.Errorf("%w: weight must be positive", domainErr.ErrValidation), http.StatusBadRequest},
		{domainErr.ErrShipmentNotFound, http.StatusNotFound},
		{domainErr.ErrTrackingNumberTaken, http.StatusConflict},
		{domainErr.ErrUnauthorized, http.StatusUnauthorized},
		{errors.New("pq: connection refused"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		status, _ := Map(tc.err)
		if status != tc.wantStatus {
			t.Errorf("Map(%v) = %d, want %d", tc.err, status, tc.wantStatus)
		}
	}
}

func TestMapHidesInternals(t *testing.T) {
	_, msg := Map(errors.New("pq: password authentication failed for user postgres"))
	if msg != "internal error" {
		t.Fatalf("internal error detail leaked to caller: %q", msg)
	}
}
