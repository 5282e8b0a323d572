package main

import (
	"fmt"
	"os"

	"github.com/de-tools/dmarc-atlas/pkg/handlers/dashboard"
	"github.com/de-tools/dmarc-atlas/pkg/runtime/bootstrap"
	"github.com/de-tools/dmarc-atlas/pkg/server"
	"github.com/de-tools/dmarc-atlas/pkg/services/config"
	"github.com/de-tools/dmarc-atlas/pkg/services/report"
	"github.com/de-tools/dmarc-atlas/pkg/store/session"
	"github.com/de-tools/dmarc-atlas/pkg/util"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	profile string
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for DMARC Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to the settings file (YAML)")
	rootCmd.Flags().StringVarP(&profile, "profile", "p", "", "API profile to use")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	settings, err := config.LoadSettings(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if profile != "" {
		settings.Profile = profile
	}

	logger, err := bootstrap.Logger(os.Stdout, settings.LogLevel)
	if err != nil {
		return err
	}
	ctx := logger.WithContext(cmd.Context())

	if err := util.SetLocale(settings.Locale); err != nil {
		return err
	}

	apiClient, err := bootstrap.APIClient(ctx, settings)
	if err != nil {
		return err
	}

	backend, closeBackend, err := bootstrap.SessionBackend(ctx, settings.Session)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeBackend(); err != nil {
			logger.Error().Err(err).Msg("failed to close session storage")
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := report.NewMetrics(registry)
	storage := session.NewStorage(backend)

	var sessionOpts []dashboard.SessionsOption
	if settings.Session.Backend == config.SessionBackendMemory {
		// in-process state has no TTL and would outlive its evicted session
		sessionOpts = append(sessionOpts, dashboard.OnEvict(func(_ string, store *report.Store) {
			store.ResetRange(ctx)
		}))
	}
	sessions, err := dashboard.NewSessions(settings.Server.CacheSize, func(id string) *report.Store {
		return report.NewStore(report.Options{
			API:     apiClient,
			Storage: storage.WithNamespace(id),
			Metrics: metrics,
		})
	}, sessionOpts...)
	if err != nil {
		return err
	}

	logger.Info().
		Str("session_backend", settings.Session.Backend).
		Int("session_cache", settings.Server.CacheSize).
		Msg("dashboard configured")

	return server.NewWebAPI(logger, server.Config{
		Addr:            settings.Server.Addr,
		ShutdownTimeout: settings.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Sessions: sessions,
			Gatherer: registry,
		},
	}).Start()
}
