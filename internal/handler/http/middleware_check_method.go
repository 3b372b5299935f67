// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-shelf-auth/internal/utils"
	"github.com/MKhiriev/go-shelf-auth/models"
	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod returns an [http.HandlerFunc] that is intended to be
// registered as the router's MethodNotAllowed handler via
// [chi.Mux.MethodNotAllowed].
//
// Chi responds with 405 whenever a path matches a registered route but the
// method is not handled. This handler answers 404 instead, so a caller using
// an unsupported method learns nothing about which routes exist. Parameterised
// patterns such as /api/users/{id} are resolved with [chi.Mux.Match].
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		if !router.Match(chi.NewRouteContext(), r.Method, r.URL.Path) {
			_, _ = utils.WriteJSON(w, models.ErrorResponse{Error: http.StatusText(http.StatusNotFound)}, http.StatusNotFound)
			return
		}

		// The method is registered, delegate to the router's normal pipeline.
		router.ServeHTTP(w, r)
	}
}
