// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/lumina/internal/logger"
	"github.com/MKhiriev/lumina/internal/utils"
	"github.com/MKhiriev/lumina/models"
	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod returns the router's MethodNotAllowed handler.
//
// A request whose path matches a registered route but whose method does not
// is answered with 404, so unsupported methods do not reveal which routes
// exist. The methods that are registered for the path are logged at debug
// level.
//
// Usage:
//
//	router := chi.NewRouter()
//	// ... register routes ...
//	router.MethodNotAllowed(CheckHTTPMethod(router))
func CheckHTTPMethod(router chi.Routes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger.FromRequest(r).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Strs("registered", registeredMethods(router, r.URL.Path)).
			Msg("method is not registered for route")

		notFound(w, r)
	}
}

// registeredMethods walks every route, including mounted sub-routers, and
// collects the methods whose full pattern equals path exactly.
func registeredMethods(router chi.Routes, path string) []string {
	var methods []string
	_ = chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if route == path {
			methods = append(methods, method)
		}
		return nil
	})
	return methods
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	utils.WriteJSON(w, models.ErrorResponse{Message: http.StatusText(http.StatusNotFound)}, http.StatusNotFound)
}
