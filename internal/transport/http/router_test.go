package httptransport

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"daybound/internal/filter"
	filterhandler "daybound/internal/filter/handler"
	"daybound/internal/session"
	"daybound/internal/tenant"
	"daybound/internal/tenant/store"
	id "daybound/pkg/domain"
	"daybound/pkg/testutil"
)

const (
	testAdminToken = "admin-token"
	testSigningKey = "signing-key"
)

type routerFixture struct {
	router   http.Handler
	sessions *session.Manager
	tenants  *store.InMemory
}

func newRouterFixture(t *testing.T, health ...HealthCheck) *routerFixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	tenants := store.NewInMemory()
	sessions := session.NewManager(testSigningKey)

	tenantSvc := tenant.NewService(tenants)
	filterSvc := filter.New(tenants, filter.WithLogger(logger))

	router := NewRouter(Dependencies{
		Logger:        logger,
		Sessions:      sessions,
		AdminToken:    testAdminToken,
		TenantHandler: tenant.NewHandler(tenantSvc, logger),
		FilterHandler: filterhandler.New(filterSvc, logger),
		HealthChecks:  health,
	})
	return &routerFixture{router: router, sessions: sessions, tenants: tenants}
}

func TestHealthz(t *testing.T) {
	testutil.Given(t, "a healthy and an unhealthy dependency", func(t *testing.T) {
		healthy := newRouterFixture(t, HealthCheck{
			Name:  "redis",
			Check: func(context.Context) error { return nil },
		})
		degraded := newRouterFixture(t, HealthCheck{
			Name:  "postgres",
			Check: func(context.Context) error { return errors.New("connection refused") },
		})

		testutil.Then(t, "healthz reflects each state", func(t *testing.T) {
			rr := testutil.DoRequest(healthy.router, testutil.NewRequest(t, http.MethodGet, "/healthz"))
			testutil.AssertStatus(t, rr, http.StatusOK)

			rr = testutil.DoRequest(degraded.router, testutil.NewRequest(t, http.MethodGet, "/healthz"))
			testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
		})
	})
}

func TestMetricsEndpointExposed(t *testing.T) {
	f := newRouterFixture(t)
	rr := testutil.DoRequest(f.router, testutil.NewRequest(t, http.MethodGet, "/metrics"))
	testutil.AssertStatus(t, rr, http.StatusOK)
}

func TestEndToEndDateRangeFlow(t *testing.T) {
	f := newRouterFixture(t)

	// Onboard a tenant through the admin API.
	createReq := testutil.NewJSONRequest(t, http.MethodPost, "/admin/tenants", map[string]string{
		"name":     "Coastal Clinic",
		"timezone": "Australia/Brisbane",
	})
	createReq.Header.Set("X-Admin-Token", testAdminToken)
	rr := testutil.DoRequest(f.router, createReq)
	testutil.AssertStatus(t, rr, http.StatusCreated)

	created := testutil.UnmarshalResponse[struct {
		TenantID id.TenantID `json:"tenant_id"`
	}](t, rr)
	require.False(t, created.TenantID.IsNil())

	// A clinic user resolves a local date filter through the session API.
	token, err := f.sessions.Issue(created.TenantID, id.NewUserID(), time.Hour)
	require.NoError(t, err)

	filterReq := testutil.NewRequest(t, http.MethodGet, "/v1/filters/date-range?from=2026-01-30&to=2026-01-31")
	filterReq.Header.Set("Authorization", "Bearer "+token)
	rr = testutil.DoRequest(f.router, filterReq)
	testutil.AssertStatus(t, rr, http.StatusOK)

	resolved := testutil.UnmarshalResponse[filterhandler.DateRangeResponse](t, rr)
	assert.Equal(t, "2026-01-29T14:00:00.000Z", resolved.CreatedFromUTC)
	assert.Equal(t, "2026-01-31T13:59:59.999Z", resolved.CreatedToUTC)
	assert.Equal(t, "Australia/Brisbane", resolved.Timezone)
}

func TestRouteGuards(t *testing.T) {
	f := newRouterFixture(t)

	testutil.When(t, "the admin token is missing", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/admin/tenants", map[string]string{"name": "X", "timezone": "UTC"})
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusForbidden)
	})

	testutil.When(t, "the session token is missing", func(t *testing.T) {
		req := testutil.NewRequest(t, http.MethodGet, "/v1/filters/date-range?from=2026-01-30&to=2026-01-31")
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
		testutil.AssertErrorCode(t, rr, "unauthorized")
	})

	testutil.When(t, "the session token is garbage", func(t *testing.T) {
		req := testutil.NewRequest(t, http.MethodGet, "/v1/filters/date-range?from=2026-01-30&to=2026-01-31")
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})
}
