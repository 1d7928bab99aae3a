// Package slugify derives URL-safe slugs and disambiguates collisions.
package slugify

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
	gosimple "github.com/gosimple/slug"
)

const (
	suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	suffixLength   = 6
)

// Make derives a slug from a human-readable name: lowercase, non-alphanumeric
// stripped, whitespace and underscores collapsed to hyphens, trimmed.
func Make(s string) string {
	return gosimple.Make(s)
}

// WithSuffix appends a short random suffix to a slug that collided with an
// existing one. Creates are never rejected for slug collisions; they are
// silently disambiguated, so the final slug is not deterministic in the title.
func WithSuffix(base string) string {
	return base + "-" + gonanoid.MustGenerate(suffixAlphabet, suffixLength)
}
