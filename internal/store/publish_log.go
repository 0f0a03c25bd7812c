// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// publish_log.go records publish outcomes and degraded side effects in
// the database so operators can query them instead of grepping logs.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

// Audit actions recorded per publish attempt.
const (
	ActionPublished        = "published"
	ActionNoop             = "noop"
	ActionRevalidateFailed = "revalidate_failed"
	ActionAnalyticsFailed  = "analytics_failed"
)

// PublishLogStore handles publish audit log operations.
type PublishLogStore struct {
	db *sql.DB
}

// NewPublishLogStore creates a PublishLogStore.
func NewPublishLogStore(db *sql.DB) *PublishLogStore {
	return &PublishLogStore{db: db}
}

// Record stores one publish outcome. Logging is best-effort: a failure
// here is logged and swallowed, it never fails the publish.
func (s *PublishLogStore) Record(slug, action, contentSha, detail string) {
	_, err := s.db.Exec(`
		INSERT INTO publish_log (slug, action, content_sha, detail)
		VALUES ($1, $2, $3, $4)
	`, slug, action, contentSha, detail)
	if err != nil {
		slog.Warn("failed to record publish log entry",
			"slug", slug,
			"action", action,
			"error", err,
		)
		return
	}
	slog.Debug("publish log entry recorded", "slug", slug, "action", action)
}

// RecentEntries returns the most recent publish log events, newest
// first, limited to count.
func (s *PublishLogStore) RecentEntries(limit int) ([]PublishLogEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, slug, action, content_sha, detail, recorded_at
		FROM publish_log
		ORDER BY recorded_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query publish log: %w", err)
	}
	defer rows.Close()

	var entries []PublishLogEntry
	for rows.Next() {
		var e PublishLogEntry
		if err := rows.Scan(&e.ID, &e.Slug, &e.Action, &e.ContentSha, &e.Detail, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan publish log: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// PublishLogEntry represents a single publish audit event.
type PublishLogEntry struct {
	ID         int64
	Slug       string
	Action     string
	ContentSha string
	Detail     string
	RecordedAt time.Time
}
