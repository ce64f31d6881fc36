// Copyright 2026 The Accessgate Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/accessgate/accessgate/internal/audit"
	"github.com/accessgate/accessgate/internal/guard"
	"github.com/accessgate/accessgate/internal/routes"
)

// RevocationStore is the credential-clearing side channel consulted before
// and written after guard decisions. Optional.
type RevocationStore interface {
	IsRevoked(ctx context.Context, credential string) (bool, error)
	Revoke(ctx context.Context, credential string, ttl time.Duration) error
}

// Handler bundles the guard and its collaborators for the HTTP edge.
type Handler struct {
	guard       *guard.Guard
	table       *routes.Table
	revocations RevocationStore
	auditLogger audit.Logger
	validate    *validator.Validate
	loginURL    string
}

// NewHandler creates a new HTTP handler
func NewHandler(g *guard.Guard, table *routes.Table, revocations RevocationStore, auditLogger audit.Logger, loginURL string) *Handler {
	return &Handler{
		guard:       g,
		table:       table,
		revocations: revocations,
		auditLogger: auditLogger,
		validate:    validator.New(),
		loginURL:    loginURL,
	}
}

// NewRouter builds the chi router for the access-decision service.
func NewRouter(h *Handler, rateLimiter *RateLimiter) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RateLimitMiddleware(rateLimiter))
	r.Use(func(handler http.Handler) http.Handler {
		return otelhttp.NewHandler(handler, "http_request",
			otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}),
		)
	})
	r.Use(LoggingMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/health", h.HealthCheck)

	r.Route("/v1/access", func(r chi.Router) {
		// The decision API the layout wrapper and edge filter call.
		r.Post("/check", h.CheckAccess)

		// Operator surfaces sit behind the guard itself.
		r.Group(func(r chi.Router) {
			r.Use(h.RequireAccess)
			r.Get("/routes", h.ListRoutes)
		})
	})

	return r
}

// CheckRequest is the decision API request body.
type CheckRequest struct {
	Path  string `json:"path" validate:"required"`
	Token string `json:"token"`
}

// CheckAccess evaluates one navigation and returns the decision. The decision
// is data, not a transport error: denials still answer 200.
func (h *Handler) CheckAccess(w http.ResponseWriter, r *http.Request) {
	var req CheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "path is required")
		return
	}

	decision := h.guard.Check(r.Context(), req.Path, req.Token)
	respondJSON(w, http.StatusOK, decision)
}

// ListRoutes dumps the route-permission table for operator debugging.
func (h *Handler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	entries := make([]map[string]string, 0, h.table.Len())
	for _, path := range h.table.Paths() {
		req, _ := h.table.Requirement(path)
		entries = append(entries, map[string]string{
			"path":     path,
			"resource": req.Resource,
			"action":   req.Action,
		})
	}
	respondJSON(w, http.StatusOK, map[string]any{"routes": entries})
}

// HealthCheck responds with service health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}
