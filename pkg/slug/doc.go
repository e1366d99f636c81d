// Package slug provides URL-safe identifier generation for tenant provisioning.
//
// The package converts human-readable names into URL-friendly slugs by
// replacing spaces and special characters with hyphens, normalizing common
// Latin diacritics to ASCII, and optionally appending a random suffix to
// resolve uniqueness collisions.
//
// # Usage
//
//	import "github.com/atelierhq/atelier/pkg/slug"
//
//	// Simple slug generation
//	s := slug.Make("Maison Lumière & Co.")
//	// Result: "maison-lumiere-co"
//
//	// Retry with a random suffix after a uniqueness collision
//	s := slug.Make("Maison Lumière & Co.", slug.MaxLength(63), slug.WithSuffix(6))
//	// Result: "maison-lumiere-co-x7g3k2"
//
// # Configuration Options
//
//   - MaxLength: maximum slug length (counts Unicode characters, not bytes)
//   - Lowercase: enable/disable lowercase conversion (default: true)
//   - WithSuffix: append a random alphanumeric suffix to reduce collisions
//
// All functions are safe for concurrent use. The random suffix generation
// uses crypto/rand.
package slug
