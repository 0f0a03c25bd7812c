// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"encoding/json"
	"strings"
	"unicode/utf8"
)

// seoDescriptionCap is the display cap for the meta description.
// Truncation is a rendering nicety, never a blocking error.
const seoDescriptionCap = 160

// wordBoundaryFloor is how far into the string the last space must fall
// for word-boundary truncation to apply; earlier than that we hard-cut
// rather than lose most of the description.
const wordBoundaryFloor = 0.6

// Result is the validation orchestrator's output. IsValid is true
// exactly when Errors is empty; Normalized and ContentSha are set only
// in that case. A Result is built once per call and never mutated.
type Result struct {
	Normalized *Normalized `json:"normalized"`
	ContentSha string      `json:"contentSha"`
	Errors     []Item      `json:"errors"`
	Warnings   []Item      `json:"warnings"`
	IsValid    bool        `json:"isValid"`
}

// Validator composes the mapper, rule engine, canonicalizer, and hasher
// into the single validation entry point.
type Validator struct {
	limits Limits
}

// NewValidator returns a Validator with the given length policy.
func NewValidator(limits Limits) *Validator {
	return &Validator{limits: limits}
}

// ValidateAndNormalize takes untrusted raw JSON and produces the full
// validation picture: structured errors and warnings, and — when the
// input passes every blocking rule — the normalized tree and its
// content hash. Warnings are computed even on blocking failure.
func (v *Validator) ValidateAndNormalize(rawJSON json.RawMessage) *Result {
	result := &Result{Errors: []Item{}, Warnings: []Item{}}

	raw, ok := decodeObject(rawJSON)
	if !ok {
		result.Errors = append(result.Errors, Item{
			Code:    CodeNormalize,
			Message: "content must be a JSON object",
		})
		return result
	}

	// Blocking rules and warnings both run unconditionally; the rules
	// are independent and order-free, so concatenation is the whole
	// composition.
	result.Errors = append(result.Errors, CheckRequired(raw)...)
	result.Errors = append(result.Errors, CheckLinks(raw)...)
	result.Errors = append(result.Errors, CheckLengths(raw, v.limits)...)

	result.Warnings = append(result.Warnings, CheckSoftLengths(raw, v.limits)...)
	result.Warnings = append(result.Warnings, CheckVideoHost(raw)...)
	result.Warnings = append(result.Warnings, CheckContrast(raw)...)

	if len(result.Errors) > 0 {
		return result
	}

	normalized := Map(raw)

	// Truncation happens before hashing so the digest commits to the
	// publish-ready tree, not a pre-truncation intermediate.
	if normalized.SEO != nil {
		normalized.SEO.Description = TruncateDescription(normalized.SEO.Description, seoDescriptionCap)
	}

	sha, err := Sha(normalized)
	if err != nil {
		result.Errors = append(result.Errors, Item{
			Code:    CodeNormalize,
			Message: "content could not be serialized",
		})
		return result
	}

	result.Normalized = normalized
	result.ContentSha = sha
	result.IsValid = true
	return result
}

// decodeObject rejects any JSON value that is not an object, then
// decodes the object into the Raw shape. Unknown keys are dropped.
func decodeObject(rawJSON json.RawMessage) (*Raw, bool) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(rawJSON, &probe); err != nil || probe == nil {
		return nil, false
	}
	var raw Raw
	if err := json.Unmarshal(rawJSON, &raw); err != nil {
		return nil, false
	}
	return &raw, true
}

// TruncateDescription shortens s to at most cap code points. When the
// cut lands past the word-boundary floor it backs up to the last space
// and appends an ellipsis; otherwise it hard-cuts.
func TruncateDescription(s string, capPoints int) string {
	if utf8.RuneCountInString(s) <= capPoints {
		return s
	}
	runes := []rune(s)
	cut := runes[:capPoints-1]
	if idx := strings.LastIndex(string(cut), " "); idx >= int(float64(capPoints)*wordBoundaryFloor) {
		cut = []rune(strings.TrimRight(string(cut)[:idx], " "))
	}
	return string(cut) + "…"
}
