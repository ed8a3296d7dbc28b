// Package testutil builds fully wired servers for tests, backed by a
// throwaway SQLite file.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/deppfellow/adsfsa-app/internal/config"
	"github.com/deppfellow/adsfsa-app/internal/logger"
	"github.com/deppfellow/adsfsa-app/internal/server"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// NewConfig returns the default config pointed at a fresh SQLite file
// inside t.TempDir().
func NewConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.Database.URL = "sqlite:" + filepath.Join(t.TempDir(), "test.db")
	cfg.Primary.Env = "test"
	cfg.Observability.Environment = "test"
	return cfg
}

// NewServer constructs a server with a silent logger. The store is
// closed when the test ends.
func NewServer(t *testing.T, mutate ...func(*config.Config)) *server.Server {
	t.Helper()

	cfg := NewConfig(t)
	for _, fn := range mutate {
		fn(cfg)
	}

	loggerService, err := logger.NewLoggerService(cfg.Observability)
	require.NoError(t, err)

	log := zerolog.Nop()

	s, err := server.New(cfg, &log, loggerService)
	require.NoError(t, err)

	t.Cleanup(s.DB.Close)
	return s
}
