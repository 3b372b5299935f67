package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit_ProtectedRoutes_RequireAuth(t *testing.T) {
	routes := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/users/logout"},
		{http.MethodPost, "/api/users/logout/all"},
		{http.MethodGet, "/api/users/me"},
		{http.MethodPatch, "/api/users/me"},
		{http.MethodDelete, "/api/users/me"},
		{http.MethodGet, "/api/users/" + bobID},
		{http.MethodPost, "/api/users/" + bobID + "/follow"},
		{http.MethodDelete, "/api/users/" + bobID + "/follow"},
		{http.MethodPut, "/api/admin/users/" + bobID + "/type"},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			ts := newTestServer(t)

			rr := ts.do(rt.method, rt.path, "", false)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func TestInit_UnknownRoutes_Return404(t *testing.T) {
	ts := newTestServer(t)

	for _, path := range []string{"/", "/api", "/api/user/register", "/api/users/me/extra"} {
		rr := ts.do(http.MethodGet, path, "", false)
		assert.Equal(t, http.StatusNotFound, rr.Code, path)
	}
}

func TestInit_WrongMethod_Returns404NotMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/users/register"},
		{http.MethodPut, "/api/users/login"},
		{http.MethodPost, "/api/version"},
	} {
		rr := ts.do(tc.method, tc.path, "", false)
		assert.Equal(t, http.StatusNotFound, rr.Code, tc.method+" "+tc.path)
	}
}

func TestInit_TraceIDHeader_AlwaysSet(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.do(http.MethodGet, "/api/users/me", "", false)

	assert.NotEmpty(t, rr.Header().Get("X-Trace-ID"))
}

func TestInit_TraceIDHeader_EchoedFromRequest(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	req.Header.Set("X-Trace-ID", "my-trace")
	rr := httptest.NewRecorder()
	ts.router.ServeHTTP(rr, req)

	assert.Equal(t, "my-trace", rr.Header().Get("X-Trace-ID"))
}

func TestInit_MetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.do(http.MethodGet, "/metrics", "", false)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "shelf_auth_")
}
