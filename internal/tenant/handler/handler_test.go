package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"daybound/internal/platform/middleware"
	"daybound/internal/tenant/service"
	"daybound/internal/tenant/store"
)

const adminToken = "secret-token"

func TestAdminTokenRequired(t *testing.T) {
	router := newTenantRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/admin/tenants/"+uuid.New().String(), nil)
	// No admin token header set
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 when admin token missing, got %d", rec.Code)
	}
}

func TestTenantAdminFlow(t *testing.T) {
	router := newTenantRouter(t)

	tenantResp := createTenantViaAPI(t, router, "Coastal Clinic", "Australia/Brisbane")
	if tenantResp.TenantID.IsNil() {
		t.Fatalf("expected tenant_id in response")
	}
	if tenantResp.Timezone != "Australia/Brisbane" {
		t.Fatalf("expected timezone in response, got %q", tenantResp.Timezone)
	}

	getRec := doAdmin(t, router, http.MethodGet, "/admin/tenants/"+tenantResp.TenantID.String(), nil)
	if getRec.Code != http.StatusOK {
		t.Fatalf("expected 200 fetching tenant, got %d", getRec.Code)
	}

	updateBody, _ := json.Marshal(map[string]string{"timezone": "Asia/Kolkata"})
	updateRec := doAdmin(t, router, http.MethodPut, "/admin/tenants/"+tenantResp.TenantID.String()+"/timezone", updateBody)
	if updateRec.Code != http.StatusOK {
		t.Fatalf("expected 200 updating timezone, got %d", updateRec.Code)
	}
	var updated TenantResponse
	if err := json.NewDecoder(updateRec.Body).Decode(&updated); err != nil {
		t.Fatalf("failed to decode update response: %v", err)
	}
	if updated.Timezone != "Asia/Kolkata" {
		t.Fatalf("expected updated timezone, got %q", updated.Timezone)
	}

	deactivateRec := doAdmin(t, router, http.MethodPost, "/admin/tenants/"+tenantResp.TenantID.String()+"/deactivate", nil)
	if deactivateRec.Code != http.StatusOK {
		t.Fatalf("expected 200 deactivating tenant, got %d", deactivateRec.Code)
	}

	// A second deactivation conflicts with the status transition rules.
	conflictRec := doAdmin(t, router, http.MethodPost, "/admin/tenants/"+tenantResp.TenantID.String()+"/deactivate", nil)
	if conflictRec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on repeated deactivation, got %d", conflictRec.Code)
	}

	reactivateRec := doAdmin(t, router, http.MethodPost, "/admin/tenants/"+tenantResp.TenantID.String()+"/reactivate", nil)
	if reactivateRec.Code != http.StatusOK {
		t.Fatalf("expected 200 reactivating tenant, got %d", reactivateRec.Code)
	}
}

func TestCreateAPIKeyViaHandler(t *testing.T) {
	router := newTenantRouter(t)
	tenantResp := createTenantViaAPI(t, router, "Northside", "America/New_York")

	keyBody, _ := json.Marshal(map[string]string{"label": "ehr-sync"})
	keyRec := doAdmin(t, router, http.MethodPost, "/admin/tenants/"+tenantResp.TenantID.String()+"/api-keys", keyBody)
	if keyRec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating api key, got %d", keyRec.Code)
	}

	var keyResp struct {
		ID     uuid.UUID `json:"id"`
		Label  string    `json:"label"`
		Secret string    `json:"secret"`
	}
	if err := json.NewDecoder(keyRec.Body).Decode(&keyResp); err != nil {
		t.Fatalf("failed to decode api key response: %v", err)
	}
	if keyResp.ID == uuid.Nil || keyResp.Secret == "" {
		t.Fatalf("expected key id and secret in response")
	}

	listRec := doAdmin(t, router, http.MethodGet, "/admin/tenants/"+tenantResp.TenantID.String()+"/api-keys", nil)
	if listRec.Code != http.StatusOK {
		t.Fatalf("expected 200 listing api keys, got %d", listRec.Code)
	}
	var listResp []struct {
		ID     uuid.UUID `json:"id"`
		Secret string    `json:"secret"`
	}
	if err := json.NewDecoder(listRec.Body).Decode(&listResp); err != nil {
		t.Fatalf("failed to decode api key list: %v", err)
	}
	if len(listResp) != 1 || listResp[0].ID != keyResp.ID {
		t.Fatalf("expected the created key in the list")
	}
	if listResp[0].Secret != "" {
		t.Fatalf("secret must not appear outside the creation response")
	}
}

func TestValidationErrorsViaHandler(t *testing.T) {
	router := newTenantRouter(t)

	badTimezone, _ := json.Marshal(map[string]string{"name": "Clinic", "timezone": "Mars/Olympus"})
	rec := doAdmin(t, router, http.MethodPost, "/admin/tenants", badTimezone)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown timezone, got %d", rec.Code)
	}

	rec = doAdmin(t, router, http.MethodGet, "/admin/tenants/not-a-uuid", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed tenant id, got %d", rec.Code)
	}

	rec = doAdmin(t, router, http.MethodGet, "/admin/tenants/"+uuid.New().String(), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown tenant, got %d", rec.Code)
	}
}

func createTenantViaAPI(t *testing.T, router http.Handler, name, tz string) TenantResponse {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"name": name, "timezone": tz})
	rec := doAdmin(t, router, http.MethodPost, "/admin/tenants", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creating tenant, got %d", rec.Code)
	}
	var resp TenantResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode tenant response: %v", err)
	}
	return resp
}

func doAdmin(t *testing.T, router http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("X-Admin-Token", adminToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func newTenantRouter(t *testing.T) http.Handler {
	t.Helper()
	tenants := store.NewInMemory()
	svc := service.New(tenants)
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	h := New(svc, logger)
	r := chi.NewRouter()
	r.Use(middleware.RequireAdminToken(adminToken, logger))
	h.Register(r)
	return r
}
