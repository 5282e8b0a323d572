package bootstrap

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/de-tools/dmarc-atlas/pkg/services/config"
	"github.com/de-tools/dmarc-atlas/pkg/store/session"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := Logger(&buf, "warn")
	require.NoError(t, err)

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")

	logger, err = Logger(&buf, "")
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())

	_, err = Logger(&buf, "loud")
	assert.Error(t, err)
}

func TestAPIClient(t *testing.T) {
	ctx := context.Background()
	missing := filepath.Join(t.TempDir(), "missing")

	c, err := APIClient(ctx, &config.Settings{ProfilesPath: missing})
	require.NoError(t, err)
	assert.NotNil(t, c)

	_, err = APIClient(ctx, &config.Settings{ProfilesPath: missing, BaseURL: "not a url"})
	assert.Error(t, err)
}

func TestSessionBackend_Memory(t *testing.T) {
	ctx := context.Background()
	backend, closeFn, err := SessionBackend(ctx, config.SessionSettings{Backend: config.SessionBackendMemory})
	require.NoError(t, err)
	defer func() { assert.NoError(t, closeFn()) }()

	assert.IsType(t, &session.MemoryBackend{}, backend)
}

func TestSessionBackend_Redis(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	backend, closeFn, err := SessionBackend(ctx, config.SessionSettings{
		Backend:  config.SessionBackendRedis,
		RedisURL: "redis://" + mr.Addr(),
		TTL:      time.Hour,
	})
	require.NoError(t, err)
	defer func() { assert.NoError(t, closeFn()) }()

	require.NoError(t, backend.Set(ctx, "k", "v"))
	value, err := backend.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", value)

	_, _, err = SessionBackend(ctx, config.SessionSettings{
		Backend:  config.SessionBackendRedis,
		RedisURL: "://bad",
	})
	assert.Error(t, err)
}
