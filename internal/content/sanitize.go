// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"regexp"
	"strings"
)

// whitespaceRuns matches any run of whitespace, including newlines and
// tabs pasted in from rich-text editors.
var whitespaceRuns = regexp.MustCompile(`\s+`)

// quoteReplacer straightens the curly quotes that word processors insert.
var quoteReplacer = strings.NewReplacer(
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
)

// Sanitize cleans a single text field: trims surrounding whitespace,
// collapses internal whitespace runs to single spaces, and normalizes
// curly quotes to straight quotes. It performs no validation.
func Sanitize(s string) string {
	s = strings.TrimSpace(s)
	s = whitespaceRuns.ReplaceAllString(s, " ")
	return quoteReplacer.Replace(s)
}
