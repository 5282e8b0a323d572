package config

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/dmarc-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
	"gopkg.in/ini.v1"
)

const DefaultProfile = "default"

// Registry lists the API profiles of an INI profile file:
//
//	[default]
//	base_url = http://127.0.0.1:6767/api
//	token    = ...
//	timeout  = 30s
type Registry interface {
	GetProfiles(ctx context.Context) ([]domain.APIProfile, error)
	GetProfile(ctx context.Context, name string) (domain.APIProfile, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]domain.APIProfile, error) {
	var profiles []domain.APIProfile
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) == 0 {
			continue
		}
		profile, err := profileFromSection(section)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(_ context.Context, name string) (domain.APIProfile, error) {
	if name == "" {
		name = DefaultProfile
	}
	section, err := cr.cfg.GetSection(name)
	if err != nil || len(section.Keys()) == 0 {
		return domain.APIProfile{}, fmt.Errorf("profile %s not found", name)
	}
	return profileFromSection(section)
}

func profileFromSection(section *ini.Section) (domain.APIProfile, error) {
	profile := domain.APIProfile{
		Name:    section.Name(),
		BaseURL: section.Key("base_url").String(),
		Token:   section.Key("token").String(),
	}
	if section.HasKey("timeout") {
		timeout, err := section.Key("timeout").Duration()
		if err != nil {
			return domain.APIProfile{}, fmt.Errorf("profile %s: invalid timeout: %w", section.Name(), err)
		}
		profile.Timeout = timeout
	}
	if profile.BaseURL == "" {
		return domain.APIProfile{}, fmt.Errorf("profile %s: base_url is required", section.Name())
	}
	return profile, nil
}

// ResolveProfile picks the API profile for the given settings. The profile file
// wins when it exists; otherwise the connection settings are used as is and an
// empty base URL leaves the client on its default.
func ResolveProfile(ctx context.Context, s *Settings) (domain.APIProfile, error) {
	if s.ProfilesPath != "" {
		registry, err := NewRegistry(s.ProfilesPath)
		if err == nil {
			return registry.GetProfile(ctx, s.Profile)
		}
		zerolog.Ctx(ctx).Debug().
			Err(err).
			Str("path", s.ProfilesPath).
			Msg("profiles not loaded, using connection settings")
	}

	return domain.APIProfile{
		Name:    DefaultProfile,
		BaseURL: s.BaseURL,
		Token:   s.Token,
		Timeout: time.Duration(s.TimeoutSeconds) * time.Second,
	}, nil
}
