// Package bootstrap turns loaded settings into the runtime dependencies shared
// by the terminal and the web dashboard.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/de-tools/dmarc-atlas/pkg/services/config"
	"github.com/de-tools/dmarc-atlas/pkg/store/client"
	"github.com/de-tools/dmarc-atlas/pkg/store/duckdb"
	duckdbsession "github.com/de-tools/dmarc-atlas/pkg/store/duckdb/session"
	"github.com/de-tools/dmarc-atlas/pkg/store/session"
	"github.com/rs/zerolog"
)

// Logger builds the process logger at the given level ("info" when empty).
func Logger(w io.Writer, level string) (zerolog.Logger, error) {
	if strings.TrimSpace(level) == "" {
		level = zerolog.InfoLevel.String()
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return zerolog.New(w).With().Timestamp().Logger().Level(lvl), nil
}

// APIClient resolves the selected profile and builds the backend client.
func APIClient(ctx context.Context, settings *config.Settings) (*client.Client, error) {
	profile, err := config.ResolveProfile(ctx, settings)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve API profile: %w", err)
	}

	c, err := client.NewClient(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("profile", profile.String()).Msg("API client ready")
	return c, nil
}

// SessionBackend opens the configured session backend. The returned function
// releases the connections it holds.
func SessionBackend(ctx context.Context, settings config.SessionSettings) (session.Backend, func() error, error) {
	logger := zerolog.Ctx(ctx)

	switch settings.Backend {
	case config.SessionBackendRedis:
		backend, err := session.NewRedisBackend(ctx, settings.RedisURL, settings.TTL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open redis session backend: %w", err)
		}
		logger.Info().Msg("using redis session backend")
		return backend, backend.Close, nil

	case config.SessionBackendDuckDB:
		db, err := duckdb.NewDB(duckdb.Settings{DbPath: settings.DuckDBPath})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create DuckDB instance: %w", err)
		}
		store, err := duckdbsession.NewStore(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to create session store: %w", err)
		}
		logger.Info().Str("path", settings.DuckDBPath).Msg("using duckdb session backend")
		return store, db.Close, nil

	default:
		return session.NewMemoryBackend(), func() error { return nil }, nil
	}
}
