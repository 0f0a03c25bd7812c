// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sha computes the content fingerprint: the lowercase hex SHA-256 of
// the canonical JSON serialization of v. Structurally equal trees hash
// identically regardless of construction order. This is a fingerprint
// and an idempotency key, not a MAC — no secret is involved.
func Sha(v any) (string, error) {
	canonical, err := CanonicalJSON(v)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
