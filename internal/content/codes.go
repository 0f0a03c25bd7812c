// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package content implements the validate/normalize/hash pipeline for
// seller-authored landing pages. Raw JSON is checked against the content
// contract, transformed into the canonical rendering model, and
// fingerprinted with a reproducible SHA-256 digest.
package content

// Blocking error codes. Any error prevents normalization from being
// trusted and blocks publish.
const (
	CodeNormalize  = "E-NORMALIZE"   // input is not a JSON object
	CodeRequired   = "E-REQUIRED"    // mandatory field absent or empty
	CodeMinSection = "E-MIN-SECTION" // no substantive content section
	CodeLimit      = "E-LIMIT"       // field exceeds its hard length limit

	// URL hygiene, one code per link category so failures stay
	// field-attributable.
	CodeURLScheduler = "E-URL-SCHEDULER"
	CodeURLWebsite   = "E-URL-WEBSITE"
	CodeURLReadMore  = "E-URL-READMORE"
	CodeURLDemo      = "E-URL-DEMO"
	CodeURLSocial    = "E-URL-SOCIAL"
)

// Warning codes. Warnings are advisory only and never block publish.
const (
	CodeSoftLength = "W-LENGTH"
	CodeVideoHost  = "W-VIDEO-HOST"
	CodeContrast   = "W-CONTRAST"
)

// Item is a single validation finding. Errors and warnings share the
// shape; the code decides which list an item belongs to.
type Item struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}
