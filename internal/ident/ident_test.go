package ident_test

import (
	"testing"

	"reelstore/internal/ident"
)

func TestNewProducesValidUniqueIDs(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := ident.New()
		if !ident.Valid(id) {
			t.Fatalf("generated id %q failed validation", id)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = struct{}{}
	}
}

func TestValidRejectsUnsafeIDs(t *testing.T) {
	bad := []string{
		"",
		"../escape",
		"a/b",
		"id with spaces",
		"null\x00byte",
		"extremely-long-" + string(make([]byte, 64)),
	}
	for _, id := range bad {
		if ident.Valid(id) {
			t.Fatalf("expected %q to be rejected", id)
		}
	}

	good := []string{"abc123", "A-B_c9", "0f8e7d6c5b4a"}
	for _, id := range good {
		if !ident.Valid(id) {
			t.Fatalf("expected %q to be accepted", id)
		}
	}
}
