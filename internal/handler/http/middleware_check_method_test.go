// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

// buildRouter creates a minimal chi.Mux with a set of routes for tests.
// It intentionally does not use Handler.Init() to avoid service/logger setup.
func buildRouter() *chi.Mux {
	router := chi.NewRouter()

	router.Get("/api/users/me", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("me"))
	})
	router.Patch("/api/users/me", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Post("/api/users/{id}/follow", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	router.Delete("/api/users/{id}/follow", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

func TestCheckHTTPMethod_TableTest(t *testing.T) {
	router := buildRouter()

	tests := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		{"GET me passes through", http.MethodGet, "/api/users/me", http.StatusOK},
		{"PATCH me passes through", http.MethodPatch, "/api/users/me", http.StatusOK},
		{"POST follow with param passes through", http.MethodPost, "/api/users/42/follow", http.StatusNoContent},
		{"DELETE follow with param passes through", http.MethodDelete, "/api/users/42/follow", http.StatusNoContent},

		{"PUT me is hidden", http.MethodPut, "/api/users/me", http.StatusNotFound},
		{"GET follow with param is hidden", http.MethodGet, "/api/users/42/follow", http.StatusNotFound},
		{"PATCH follow with param is hidden", http.MethodPatch, "/api/users/42/follow", http.StatusNotFound},

		{"unknown route", http.MethodGet, "/api/nonexistent", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.NotEqual(t, http.StatusMethodNotAllowed, rr.Code)
		})
	}
}

func TestCheckHTTPMethod_PassThroughBody(t *testing.T) {
	router := buildRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "me", rr.Body.String())
}

func TestCheckHTTPMethod_ConcurrentRequests(t *testing.T) {
	router := buildRouter()
	const n = 50
	done := make(chan int, n)

	for i := 0; i < n; i++ {
		go func(i int) {
			method := http.MethodGet
			if i%2 == 1 {
				method = http.MethodPut
			}
			req := httptest.NewRequest(method, "/api/users/me", nil)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			done <- rr.Code
		}(i)
	}

	for i := 0; i < n; i++ {
		code := <-done
		assert.True(t, code == http.StatusOK || code == http.StatusNotFound,
			"unexpected status code: %d", code)
	}
}
