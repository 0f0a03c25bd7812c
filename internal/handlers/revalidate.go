// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"landingpress/internal/cache"
	"landingpress/internal/revalidate"
	"landingpress/internal/slug"
)

// Revalidate serves the cache-invalidation endpoint: callers present a
// shared secret and a slug, and the cached copy of that page is
// dropped.
type Revalidate struct {
	secret       string
	contentCache *cache.ContentCache
}

// NewRevalidate creates the revalidation handler.
func NewRevalidate(secret string, contentCache *cache.ContentCache) *Revalidate {
	return &Revalidate{secret: secret, contentCache: contentCache}
}

// Handle processes one revalidation request.
func (h *Revalidate) Handle(w http.ResponseWriter, r *http.Request) {
	if h.secret == "" {
		writeJSON(w, http.StatusInternalServerError, revalidate.Response{
			OK: false, Error: "revalidation is not configured",
		})
		return
	}

	supplied := r.Header.Get(revalidate.SecretHeader())
	if len(supplied) != len(h.secret) ||
		subtle.ConstantTimeCompare([]byte(supplied), []byte(h.secret)) != 1 {
		writeJSON(w, http.StatusUnauthorized, revalidate.Response{OK: false, Error: "unauthorized"})
		return
	}

	var req revalidate.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, revalidate.Response{OK: false, Error: "body must be JSON with a slug"})
		return
	}

	if err := slug.Validate(req.Slug); err != nil {
		writeJSON(w, http.StatusBadRequest, revalidate.Response{OK: false, Error: err.Error()})
		return
	}

	h.contentCache.Invalidate(r.Context(), req.Slug)
	writeJSON(w, http.StatusOK, revalidate.Response{
		OK:   true,
		Slug: req.Slug,
		Path: "/p/" + req.Slug,
	})
}
