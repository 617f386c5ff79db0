// Package id generates prefixed NanoID identifiers.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Well-known prefixes. The prefix makes ids self-describing in logs and keys.
const (
	PrefixProduct  = "prod"
	PrefixFeedback = "fb"
	PrefixServer   = "srv"
)

// Generate returns "prefix-<21 char nanoid>", e.g. "fb-V1StGXR8_Z5jdHi6B-myT".
// NanoIDs are URL-safe and shorter than UUIDs with comparable entropy.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is Generate but panics when the system cannot produce
// secure randomness. Reserved for initialization paths.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("generate id: %v", err))
	}
	return id
}
