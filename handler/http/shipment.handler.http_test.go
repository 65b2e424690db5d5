package httpServer

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/TradeLite0/logistics-v2-api/internal/app/shipments"
	"github.com/TradeLite0/logistics-v2-api/internal/infra/jwtauth"
	"github.com/TradeLite0/logistics-v2-api/internal/infra/memory"
	"github.com/TradeLite0/logistics-v2-api/internal/tracking"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const testSecret = "handler-test-secret"

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mem := memory.NewStore()
	svc := shipments.NewService(mem, mem, memory.NewTxManager(mem), tracking.NewGenerator(), nil, nil)
	srv := httptest.NewServer(NewServer(svc, jwtauth.NewVerifier(testSecret)).Router())
	t.Cleanup(srv.Close)
	return srv
}

func bearerToken(t *testing.T, id uuid.UUID, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  id.String(),
		"role": role,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

func doJSON(t *testing.T, method, url, token string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func TestAuthenticatedRoutesRejectMissingToken(t *testing.T) {
	srv := newTestServer(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodPost, "/v1/shipments"},
		{http.MethodGet, "/v1/shipments"},
		{http.MethodGet, "/v1/shipments/" + uuid.NewString()},
		{http.MethodPost, "/v1/shipments/" + uuid.NewString() + "/status"},
	} {
		resp, _ := doJSON(t, route.method, srv.URL+route.path, "", nil)
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s %s without token: got %d, want 401", route.method, route.path, resp.StatusCode)
		}
	}
}

func TestTrackIsPublic(t *testing.T) {
	srv := newTestServer(t)

	// unknown number, no token: a clean 404, not a 401
	resp, body := doJSON(t, http.MethodGet, srv.URL+"/v1/track/NONEXISTENT", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("track unknown number: got %d, want 404 (body %v)", resp.StatusCode, body)
	}
}

func TestShipmentLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	company := uuid.New()
	token := bearerToken(t, company, "company")

	// create
	resp, created := doJSON(t, http.MethodPost, srv.URL+"/v1/shipments", token, map[string]any{
		"customer_name":  "Alice",
		"customer_phone": "+20100000001",
		"origin":         "Cairo",
		"destination":    "Giza",
		"service_type":   "express",
		"weight":         2.5,
		"cost":           50.0,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: got %d, want 201 (body %v)", resp.StatusCode, created)
	}
	sh := created["shipment"].(map[string]any)
	if sh["status"] != "received" {
		t.Errorf("created status = %v, want received", sh["status"])
	}
	trackingNumber, _ := sh["tracking_number"].(string)
	if !strings.HasPrefix(trackingNumber, tracking.Prefix) {
		t.Errorf("tracking number %q missing %s prefix", trackingNumber, tracking.Prefix)
	}
	if history := created["history"].([]any); len(history) != 1 {
		t.Errorf("history length after create = %d, want 1", len(history))
	}
	id := sh["id"].(string)

	// public tracking lookup sees the same shipment
	resp, tracked := doJSON(t, http.MethodGet, srv.URL+"/v1/track/"+trackingNumber, "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("track: got %d, want 200", resp.StatusCode)
	}
	if tracked["shipment"].(map[string]any)["id"] != id {
		t.Errorf("tracking lookup returned a different shipment")
	}

	// update status
	resp, updated := doJSON(t, http.MethodPost, srv.URL+"/v1/shipments/"+id+"/status", token, map[string]any{
		"status":   "delivered",
		"location": "Giza Depot",
		"notes":    "left at door",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status: got %d, want 200 (body %v)", resp.StatusCode, updated)
	}
	if updated["status"] != "delivered" {
		t.Errorf("updated status = %v, want delivered", updated["status"])
	}
	if updated["current_location"] != "Giza Depot" {
		t.Errorf("current_location = %v, want Giza Depot", updated["current_location"])
	}

	// get shows the grown history
	resp, fetched := doJSON(t, http.MethodGet, srv.URL+"/v1/shipments/"+id, token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get: got %d, want 200", resp.StatusCode)
	}
	history := fetched["history"].([]any)
	if len(history) != 2 {
		t.Fatalf("history length after update = %d, want 2", len(history))
	}
	last := history[1].(map[string]any)
	if last["status"] != "delivered" || last["location"] != "Giza Depot" || last["notes"] != "left at door" {
		t.Errorf("last history event does not match the update: %v", last)
	}
}

func TestCreateShipmentValidationOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	token := bearerToken(t, uuid.New(), "company")

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/v1/shipments", token, map[string]any{
		"customer_name": "Bob",
		// everything else missing
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("got %d, want 400 (body %v)", resp.StatusCode, body)
	}
	if msg, _ := body["error"].(string); msg == "" {
		t.Errorf("validation failure should carry an error message")
	}
}

func TestListScopedByRoleOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	companyA := uuid.New()
	companyB := uuid.New()

	for _, token := range []string{
		bearerToken(t, companyA, "company"),
		bearerToken(t, companyB, "company"),
	} {
		resp, body := doJSON(t, http.MethodPost, srv.URL+"/v1/shipments", token, map[string]any{
			"customer_name":  "Carol",
			"customer_phone": "+20100000002",
			"origin":         "Cairo",
			"destination":    "Alexandria",
			"service_type":   "standard",
			"weight":         1.0,
			"cost":           20.0,
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create: got %d (body %v)", resp.StatusCode, body)
		}
	}

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/v1/shipments", nil)
	req.Header.Set("Authorization", "Bearer "+bearerToken(t, companyA, "company"))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	defer resp.Body.Close()

	var list []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("company A sees %d shipments, want 1", len(list))
	}
	if got := list[0]["company_id"]; got != companyA.String() {
		t.Errorf("company A saw shipment owned by %v", got)
	}
}

func TestInvalidIDIsBadRequest(t *testing.T) {
	srv := newTestServer(t)
	token := bearerToken(t, uuid.New(), "company")

	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/v1/shipments/not-a-uuid", token, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", resp.StatusCode)
	}
}
