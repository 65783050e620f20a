// Package ident allocates and validates the opaque identifiers that name
// movie projects on disk and in the index.
package ident

import (
	"strings"

	"github.com/google/uuid"
)

// New returns a fresh identifier. Identifiers are hex-only (a dashless UUID),
// so they are unique, case-stable, and safe as file names.
func New() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Valid reports whether id is non-empty and contains only characters this
// package emits. Callers must reject invalid ids before joining them into an
// asset path.
func Valid(id string) bool {
	if id == "" || len(id) > 64 {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}
