// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"database/sql"
	"net/http"

	"github.com/redis/go-redis/v9"
)

// Health reports process liveness plus dependency reachability.
type Health struct {
	db    *sql.DB
	redis *redis.Client
}

// NewHealth creates the health handler.
func NewHealth(db *sql.DB, redisClient *redis.Client) *Health {
	return &Health{db: db, redis: redisClient}
}

// Handle answers the health check. Dependency problems are reported in
// the body but do not change the status code; the process itself is up.
func (h *Health) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dbStatus := "ok"
	if err := h.db.PingContext(ctx); err != nil {
		dbStatus = "down"
	}

	cacheStatus := "ok"
	if err := h.redis.Ping(ctx).Err(); err != nil {
		cacheStatus = "down"
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"db":     dbStatus,
		"cache":  cacheStatus,
	})
}
