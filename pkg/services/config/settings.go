package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	envPrefix = "DMARC_ATLAS"

	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
	SessionBackendDuckDB = "duckdb"
)

type SessionSettings struct {
	Backend    string        `mapstructure:"backend"`
	RedisURL   string        `mapstructure:"redis_url"`
	DuckDBPath string        `mapstructure:"duckdb_path"`
	TTL        time.Duration `mapstructure:"ttl"`
}

type ServerSettings struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CacheSize       int           `mapstructure:"cache_size"`
}

// Settings configure both the terminal and the web dashboard.
type Settings struct {
	ProfilesPath   string          `mapstructure:"profiles_path"`
	Profile        string          `mapstructure:"profile"`
	BaseURL        string          `mapstructure:"base_url"`
	Token          string          `mapstructure:"token"`
	TimeoutSeconds int             `mapstructure:"timeout_seconds"`
	Locale         string          `mapstructure:"locale"`
	LogLevel       string          `mapstructure:"log_level"`
	Session        SessionSettings `mapstructure:"session"`
	Server         ServerSettings  `mapstructure:"server"`
}

func defaultProfilesPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dmarcatlascfg")
}

// Option adjusts the viper instance before settings are read.
type Option func(v *viper.Viper)

// WithDefault overrides the built-in default of key, e.g. to give the terminal
// a persistent session backend.
func WithDefault(key string, value any) Option {
	return func(v *viper.Viper) {
		v.SetDefault(key, value)
	}
}

// LoadSettings reads settings from path (YAML, optional) and DMARC_ATLAS_*
// environment variables, e.g. DMARC_ATLAS_SESSION_BACKEND=redis.
func LoadSettings(path string, opts ...Option) (*Settings, error) {
	v := viper.New()

	v.SetDefault("profiles_path", defaultProfilesPath())
	v.SetDefault("profile", DefaultProfile)
	v.SetDefault("base_url", "")
	v.SetDefault("token", "")
	v.SetDefault("timeout_seconds", 30)
	v.SetDefault("locale", "en")
	v.SetDefault("log_level", "info")
	v.SetDefault("session.backend", SessionBackendMemory)
	v.SetDefault("session.redis_url", "redis://localhost:6379/0")
	v.SetDefault("session.duckdb_path", "dmarc-atlas.db")
	v.SetDefault("session.ttl", 12*time.Hour)
	v.SetDefault("server.addr", "127.0.0.1:8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.cache_size", 1024)

	for _, opt := range opts {
		opt(v)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	if err := settings.validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *Settings) validate() error {
	switch s.Session.Backend {
	case SessionBackendMemory, SessionBackendRedis, SessionBackendDuckDB:
	default:
		return fmt.Errorf("unsupported session backend %q", s.Session.Backend)
	}
	if s.Server.CacheSize <= 0 {
		return fmt.Errorf("server.cache_size must be positive, got %d", s.Server.CacheSize)
	}
	return nil
}
