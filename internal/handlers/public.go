// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"landingpress/internal/cache"
	"landingpress/internal/slug"
	"landingpress/internal/store"
)

// Public serves the published content read path. It checks the Redis
// content cache before hitting the database, and fills the cache on
// miss. This is a thin read surface: rendering happens elsewhere.
type Public struct {
	pages        *store.PageStore
	contentCache *cache.ContentCache
}

// NewPublic creates the public handler group.
func NewPublic(pages *store.PageStore, contentCache *cache.ContentCache) *Public {
	return &Public{pages: pages, contentCache: contentCache}
}

// Page returns the published NormalizedContent for a slug, or 404.
func (p *Public) Page(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	pageSlug := chi.URLParam(r, "slug")
	if err := slug.Validate(pageSlug); err != nil {
		notFound(w)
		return
	}

	if cached, ok := p.contentCache.Get(ctx, pageSlug); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(cached)
		return
	}

	page, err := p.pages.FindPublished(ctx, pageSlug)
	if err != nil {
		slog.Error("page lookup failed", "slug", pageSlug, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}
	if page == nil {
		notFound(w)
		return
	}

	body, err := json.Marshal(page.Content.Normalized)
	if err != nil {
		slog.Error("page encode failed", "slug", pageSlug, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
		return
	}

	p.contentCache.Set(ctx, pageSlug, body)
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

func notFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "page not found"})
}
