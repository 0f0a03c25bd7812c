// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store contains the PostgreSQL data access layer.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"landingpress/internal/models"
)

// PageStore handles all landing-page database operations.
type PageStore struct {
	db *sql.DB
}

// NewPageStore creates a PageStore with the given database connection.
func NewPageStore(db *sql.DB) *PageStore {
	return &PageStore{db: db}
}

const pageColumns = `id, slug, subdomain, status, content, content_sha,
       buyer_id, seller_id, mmyy, buyer_name, seller_name, version,
       published_at, created_at, updated_at`

// scanPage reads one page row including the JSONB content blob.
func scanPage(row *sql.Row) (*models.Page, error) {
	p := &models.Page{}
	var body []byte
	err := row.Scan(
		&p.ID, &p.Slug, &p.Subdomain, &p.Status, &body, &p.ContentSha,
		&p.BuyerID, &p.SellerID, &p.MMYY, &p.BuyerName, &p.SellerName,
		&p.Version, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(body, &p.Content); err != nil {
		return nil, fmt.Errorf("decode page content: %w", err)
	}
	return p, nil
}

// FindPublished retrieves the currently published page for a slug.
// Returns nil if no published row exists.
func (s *PageStore) FindPublished(ctx context.Context, slug string) (*models.Page, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+pageColumns+`
		FROM pages WHERE slug = $1 AND status = 'published'
	`, slug)
	p, err := scanPage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find published page: %w", err)
	}
	return p, nil
}

// SubdomainConflict returns a non-archived page that claims the same
// subdomain under a different slug, or nil when the subdomain is free.
func (s *PageStore) SubdomainConflict(ctx context.Context, subdomain, slug string) (*models.Page, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+pageColumns+`
		FROM pages
		WHERE subdomain = $1 AND slug <> $2 AND status <> 'archived'
		LIMIT 1
	`, subdomain, slug)
	p, err := scanPage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("subdomain conflict check: %w", err)
	}
	return p, nil
}

// Upsert publishes a page: insert-or-replace keyed on the unique slug.
// The conditional update writes only when the stored content hash
// differs, so a concurrent identical publish degrades to a no-op
// instead of a redundant write. The returned bool reports whether a row
// was actually written.
func (s *PageStore) Upsert(ctx context.Context, p *models.Page) (*models.Page, bool, error) {
	body, err := json.Marshal(p.Content)
	if err != nil {
		return nil, false, fmt.Errorf("encode page content: %w", err)
	}

	now := time.Now()
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO pages (slug, subdomain, status, content, content_sha,
		                   buyer_id, seller_id, mmyy, buyer_name, seller_name,
		                   published_at)
		VALUES ($1, $2, 'published', $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (slug) DO UPDATE SET
			subdomain = EXCLUDED.subdomain,
			status = 'published',
			content = EXCLUDED.content,
			content_sha = EXCLUDED.content_sha,
			buyer_id = EXCLUDED.buyer_id,
			seller_id = EXCLUDED.seller_id,
			mmyy = EXCLUDED.mmyy,
			buyer_name = EXCLUDED.buyer_name,
			seller_name = EXCLUDED.seller_name,
			published_at = EXCLUDED.published_at,
			version = pages.version + 1,
			updated_at = NOW()
		WHERE pages.content_sha IS DISTINCT FROM EXCLUDED.content_sha
		   OR pages.status <> 'published'
		RETURNING `+pageColumns+`
	`, p.Slug, p.Subdomain, body, p.ContentSha,
		p.BuyerID, p.SellerID, p.MMYY, p.BuyerName, p.SellerName, now)

	stored, err := scanPage(row)
	if err == sql.ErrNoRows {
		// Conditional update skipped: a row with this hash is already
		// published. Treat as a lost race to an identical publish.
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("upsert page: %w", err)
	}
	return stored, true, nil
}

// Archive retires a page without deleting its row.
func (s *PageStore) Archive(ctx context.Context, slug string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE pages SET status = 'archived', updated_at = NOW()
		WHERE slug = $1
	`, slug)
	if err != nil {
		return fmt.Errorf("archive page: %w", err)
	}
	return nil
}

// CountPublished returns the number of currently published pages.
func (s *PageStore) CountPublished(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pages WHERE status = 'published'`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count published pages: %w", err)
	}
	return count, nil
}
