// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package publish implements the publish workflow: authentication,
// metadata validation, tenant/slug checks, throttling, idempotent
// persistence, and the best-effort side effects that follow a write.
package publish

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"landingpress/internal/content"
)

// Meta is the validated tenant/location metadata for a publish call.
type Meta struct {
	PageURLKey string `json:"page_url_key"`
	Subdomain  string `json:"subdomain"`
	BuyerID    string `json:"buyer_id"`
	SellerID   string `json:"seller_id"`
	MMYY       string `json:"mmyy"`
	BuyerName  string `json:"buyer_name"`
	SellerName string `json:"seller_name"`
}

// Slug returns the page key the record is stored under: the explicit
// page_url_key, or the subdomain when only subdomain addressing is used.
func (m *Meta) Slug() string {
	if m.PageURLKey != "" {
		return m.PageURLKey
	}
	return m.Subdomain
}

// metaSchema is the JSON Schema the metadata must satisfy. Identifier
// patterns are deliberately strict: slugs are DNS-safe, tenant IDs are
// bounded identifier strings, and mmyy is a real month tag.
const metaSchema = `{
	"type": "object",
	"properties": {
		"page_url_key": {
			"type": "string",
			"pattern": "^[a-z0-9]+(-[a-z0-9]+)*$",
			"maxLength": 100
		},
		"subdomain": {
			"type": "string",
			"pattern": "^[a-z0-9]+(-[a-z0-9]+)*$",
			"maxLength": 63
		},
		"buyer_id": {
			"type": "string",
			"pattern": "^[a-z0-9][a-z0-9_-]{0,63}$"
		},
		"seller_id": {
			"type": "string",
			"pattern": "^[a-z0-9][a-z0-9_-]{0,63}$"
		},
		"mmyy": {
			"type": "string",
			"pattern": "^(0[1-9]|1[0-2])[0-9]{2}$"
		},
		"buyer_name": {
			"type": "string",
			"maxLength": 120
		},
		"seller_name": {
			"type": "string",
			"maxLength": 120
		}
	},
	"required": ["buyer_id", "seller_id", "mmyy"],
	"anyOf": [
		{"required": ["page_url_key"]},
		{"required": ["subdomain"]}
	]
}`

// compiledMetaSchema is built once at startup; the schema is a string
// literal, so compilation cannot fail at runtime.
var compiledMetaSchema = gojsonschema.NewStringLoader(metaSchema)

// ParseMeta validates raw metadata against the schema and decodes it.
// Schema violations come back as field-attributed items; the Meta is
// non-nil only when the item list is empty.
func ParseMeta(rawMeta json.RawMessage) (*Meta, []content.Item) {
	result, err := gojsonschema.Validate(compiledMetaSchema, gojsonschema.NewBytesLoader(rawMeta))
	if err != nil {
		return nil, []content.Item{{
			Code:    CodeMeta,
			Message: "metadata must be a JSON object",
		}}
	}

	if !result.Valid() {
		items := make([]content.Item, 0, len(result.Errors()))
		for _, ve := range result.Errors() {
			field := ve.Field()
			if field == "(root)" {
				field = ""
			}
			items = append(items, content.Item{
				Code:    CodeMeta,
				Message: ve.Description(),
				Field:   field,
			})
		}
		return nil, items
	}

	var meta Meta
	if err := json.Unmarshal(rawMeta, &meta); err != nil {
		return nil, []content.Item{{
			Code:    CodeMeta,
			Message: fmt.Sprintf("metadata could not be decoded: %v", err),
		}}
	}
	return &meta, nil
}
