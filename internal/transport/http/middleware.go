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
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/accessgate/accessgate/internal/audit"
	"github.com/accessgate/accessgate/internal/guard"
	"github.com/accessgate/accessgate/internal/observability/logger"
)

// CookieName is the fallback credential carrier for browser navigations that
// cannot set an Authorization header.
const CookieName = "accessgate_token"

// LoggingMiddleware logs HTTP requests
func LoggingMiddleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				slog.InfoContext(r.Context(), "http_request",
					logger.RequestID(middleware.GetReqID(r.Context())),
					logger.Method(r.Method),
					logger.Path(r.URL.Path),
					logger.RemoteAddr(r.RemoteAddr),
					logger.StatusCode(ww.Status()),
					logger.Duration(time.Since(start).Milliseconds()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// RequireAccess runs the guard on every request in the group and releases the
// handler only on an Allowed decision.
//
// Unauthenticated decisions clear the credential (revocation list) and answer
// 401 with a login redirect hint tagged with the denial reason; every other
// denial answers 403 in place with the decision context, leaving the
// credential intact.
func (h *Handler) RequireAccess(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := credentialFromRequest(r)

		if token != "" && h.revocations != nil {
			revoked, err := h.revocations.IsRevoked(r.Context(), token)
			if err != nil {
				slog.ErrorContext(r.Context(), "revocation check failed", logger.Error(err))
			} else if revoked {
				h.auditCredential(r, audit.TypeCredentialRejected)
				h.respondUnauthenticated(w, r, guard.ReasonNotAuthenticated)
				return
			}
		}

		decision := h.guard.Check(r.Context(), r.URL.Path, token)

		switch decision.Outcome {
		case guard.Allowed:
			ctx := context.WithValue(r.Context(), decisionKey, decision)
			ctx = context.WithValue(ctx, principalKey, decision.Principal)
			next.ServeHTTP(w, r.WithContext(ctx))

		case guard.Unauthenticated:
			if token != "" && h.revocations != nil {
				if err := h.revocations.Revoke(r.Context(), token, time.Hour); err != nil {
					slog.ErrorContext(r.Context(), "credential revocation failed", logger.Error(err))
				} else {
					h.auditCredential(r, audit.TypeCredentialRevoked)
				}
			}
			h.respondUnauthenticated(w, r, decision.Reason)

		default:
			respondJSON(w, http.StatusForbidden, map[string]any{
				"error":    "access denied",
				"decision": decision,
			})
		}
	})
}

func (h *Handler) respondUnauthenticated(w http.ResponseWriter, r *http.Request, reason string) {
	redirect := h.loginURL
	if reason != "" {
		redirect += "?reason=" + url.QueryEscape(reason)
	}
	respondJSON(w, http.StatusUnauthorized, map[string]string{
		"error":    "not authenticated",
		"reason":   reason,
		"redirect": redirect,
	})
}

func (h *Handler) auditCredential(r *http.Request, eventType string) {
	if h.auditLogger == nil {
		return
	}
	h.auditLogger.Log(r.Context(), audit.Event{
		Type:      eventType,
		Path:      r.URL.Path,
		IPAddress: getClientIP(r),
		UserAgent: r.UserAgent(),
	})
}

// credentialFromRequest extracts the bearer credential from the
// Authorization header, falling back to the session cookie.
func credentialFromRequest(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		if strings.HasPrefix(auth, "Bearer ") {
			return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		}
	}
	if cookie, err := r.Cookie(CookieName); err == nil {
		return cookie.Value
	}
	return ""
}
