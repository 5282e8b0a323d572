package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/de-tools/dmarc-atlas/pkg/runtime/bootstrap"
	"github.com/de-tools/dmarc-atlas/pkg/runtime/terminal"
	"github.com/de-tools/dmarc-atlas/pkg/services/config"
	"github.com/de-tools/dmarc-atlas/pkg/services/report"
	"github.com/de-tools/dmarc-atlas/pkg/store/session"
	"github.com/de-tools/dmarc-atlas/pkg/util"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	closeSession := func() error { return nil }

	cli := terminal.NewCLI(terminal.Options{
		Bootstrap: func(ctx context.Context, flags terminal.GlobalFlags) (*report.Store, error) {
			store, closeFn, err := newStore(ctx, flags)
			if closeFn != nil {
				closeSession = closeFn
			}
			return store, err
		},
		Output: os.Stdout,
		Logger: &logger,
	})

	err := cli.Execute()
	if closeErr := closeSession(); closeErr != nil {
		logger.Warn().Err(closeErr).Msg("failed to close session storage")
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newStore(ctx context.Context, flags terminal.GlobalFlags) (*report.Store, func() error, error) {
	opts := []config.Option{config.WithDefault("session.backend", config.SessionBackendDuckDB)}
	if home, err := os.UserHomeDir(); err == nil {
		opts = append(opts, config.WithDefault("session.duckdb_path", filepath.Join(home, ".dmarc-atlas.db")))
	}

	settings, err := config.LoadSettings(flags.ConfigPath, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if flags.Profile != "" {
		settings.Profile = flags.Profile
	}

	level, err := zerolog.ParseLevel(settings.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", settings.LogLevel, err)
	}
	zerolog.SetGlobalLevel(level)

	if err := util.SetLocale(settings.Locale); err != nil {
		return nil, nil, err
	}

	apiClient, err := bootstrap.APIClient(ctx, settings)
	if err != nil {
		return nil, nil, err
	}

	backend, closeFn, err := bootstrap.SessionBackend(ctx, settings.Session)
	if err != nil {
		return nil, nil, err
	}

	return report.NewStore(report.Options{
		API:     apiClient,
		Storage: session.NewStorage(backend),
	}), closeFn, nil
}
