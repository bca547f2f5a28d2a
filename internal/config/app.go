package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/briefbot/pkg/log"
)

type AppConfig struct {
	// ConfigPath holds per-module YAML configs and prompt files.
	ConfigPath string `env:"BRIEFBOT_CONFIG_PATH" envDefault:".briefbot"`
	// CRMDBPath is the sqlite contact database, read-only for this process.
	CRMDBPath string `env:"BRIEFBOT_CRM_DB" envDefault:".briefbot/crm.db"`
	Timezone  string `env:"BRIEFBOT_TZ" envDefault:"America/Los_Angeles"`

	// Pacing between successive outbound calls. Shortening these only
	// risks throttling by the collaborator, never correctness.
	SearchPacing  time.Duration `env:"BRIEFBOT_SEARCH_PACING" envDefault:"1200ms"`
	ContactPacing time.Duration `env:"BRIEFBOT_CONTACT_PACING" envDefault:"1200ms"`
	ChunkPacing   time.Duration `env:"BRIEFBOT_CHUNK_PACING" envDefault:"500ms"`

	// SearchContextTokens caps the compiled search context blob.
	SearchContextTokens int `env:"BRIEFBOT_SEARCH_CONTEXT_TOKENS" envDefault:"12000"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse app config")
	}
	return c
}

func (c AppConfig) GetModuleConfigPath(module string) string {
	return filepath.Join(c.ConfigPath, "configs", module+".yaml")
}

func (c AppConfig) GetBirthdayConfigPath() string {
	return filepath.Join(c.ConfigPath, "configs", "birthdays.yaml")
}

// GetPromptPath resolves a prompt reference from a module config relative
// to the config root.
func (c AppConfig) GetPromptPath(ref string) string {
	if filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(c.ConfigPath, ref)
}

func (c AppConfig) Location(ctx context.Context) *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Str("tz", c.Timezone).Msg("invalid timezone")
	}
	return loc
}
