package testsupport

import (
	"testing"

	"reelstore/internal/config"
	"reelstore/internal/logging"
	"reelstore/internal/movies"
)

// MustService builds a movie service over a fresh index store for tests.
func MustService(t testing.TB, cfg *config.Config) *movies.Service {
	t.Helper()

	idx := MustOpenIndex(t, cfg)
	svc, err := movies.NewService(cfg, idx, logging.NewNop())
	if err != nil {
		t.Fatalf("movies.NewService: %v", err)
	}
	return svc
}
