package testsupport

import (
	"path/filepath"
	"testing"

	"reelstore/internal/config"
)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Store.RootDir = filepath.Join(base, "saved")
	cfg.Store.IndexDir = filepath.Join(base, "index")
	cfg.Logging.Dir = ""
	cfg.API.Bind = "127.0.0.1:0"

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	return &cfg
}
