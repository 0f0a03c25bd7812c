// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation and the strict
// validation applied to page keys and tenant subdomains.
package slug

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxLen bounds page slugs; subdomains are held to the DNS label limit.
const (
	MaxLen          = 100
	MaxSubdomainLen = 63
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, or space.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
	// valid is the strict lowercase-alphanumeric-hyphen pattern; no
	// leading, trailing, or doubled hyphens.
	valid = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// reserved lists system subdomains that no tenant may claim.
var reserved = map[string]bool{
	"www":       true,
	"api":       true,
	"admin":     true,
	"app":       true,
	"mail":      true,
	"staging":   true,
	"cdn":       true,
	"assets":    true,
	"status":    true,
	"docs":      true,
	"blog":      true,
	"help":      true,
	"support":   true,
	"dashboard": true,
}

// Generate creates a URL-friendly slug from the given string.
// Example: "Hello, World! 2026" → "hello-world-2026"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, " ", "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// Validate checks a page slug against the strict pattern and length
// bound. Returns a descriptive error for author-facing messages.
func Validate(s string) error {
	return validate(s, MaxLen)
}

// ValidateSubdomain checks a tenant subdomain: same pattern as a slug,
// DNS label length, and not a reserved system name.
func ValidateSubdomain(s string) error {
	if err := validate(s, MaxSubdomainLen); err != nil {
		return err
	}
	if reserved[s] {
		return fmt.Errorf("subdomain %q is reserved", s)
	}
	return nil
}

func validate(s string, maxLen int) error {
	if s == "" {
		return fmt.Errorf("slug is empty")
	}
	if len(s) > maxLen {
		return fmt.Errorf("slug exceeds %d characters", maxLen)
	}
	if !valid.MatchString(s) {
		return fmt.Errorf("slug must be lowercase letters, digits, and hyphens")
	}
	return nil
}

// IsReserved reports whether a name is on the system blocklist.
func IsReserved(s string) bool {
	return reserved[s]
}
