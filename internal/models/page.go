// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"landingpress/internal/content"
)

// PageStatus represents the publishing state of a landing page.
type PageStatus string

const (
	PageStatusDraft     PageStatus = "draft"
	PageStatusPublished PageStatus = "published"
	PageStatusArchived  PageStatus = "archived"
)

// Page is one landing page record, keyed by its unique slug. At most
// one row per slug exists; republishing overwrites it (the version
// counter is the only history kept — rollback means republishing the
// old JSON).
type Page struct {
	ID         uuid.UUID  `json:"id"`
	Slug       string     `json:"slug"`
	Subdomain  string     `json:"subdomain,omitempty"`
	Status     PageStatus `json:"status"`
	Content    PageBody   `json:"content"`
	ContentSha string     `json:"content_sha"`
	BuyerID    string     `json:"buyer_id"`
	SellerID   string     `json:"seller_id"`
	MMYY       string     `json:"mmyy"`
	BuyerName  string     `json:"buyer_name,omitempty"`
	SellerName string     `json:"seller_name,omitempty"`
	Version    int        `json:"version"`

	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// PageBody is the JSON blob stored per page: the normalized tree plus
// an optional copy of the original raw input kept for rollback.
type PageBody struct {
	Normalized *content.Normalized `json:"normalized"`
	Original   json.RawMessage     `json:"original,omitempty"`
}

// IsPublished returns true if the page is currently live.
func (p *Page) IsPublished() bool {
	return p.Status == PageStatusPublished
}
