package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultModel     = "claude-haiku-4-5-20251001"
	DefaultMaxTokens = 4096
	DefaultMinScore  = 30
)

// Run modes for the brief flow.
const (
	ModeDaily  = "daily"
	ModeWeekly = "weekly"
	ModeFlash  = "flash"
)

func ValidMode(mode string) bool {
	return mode == ModeDaily || mode == ModeWeekly || mode == ModeFlash
}

type DestinationConfig struct {
	ChatID   int64 `yaml:"chat_id"`
	ThreadID int   `yaml:"thread_id"`
}

// BriefConfig is one brief module's YAML config (configs/<module>.yaml).
type BriefConfig struct {
	Destination    DestinationConfig `yaml:"destination"`
	Prompts        map[string]string `yaml:"prompts"`
	Searches       []string          `yaml:"searches"`
	SearchesWeekly []string          `yaml:"searches_weekly"`
	Model          string            `yaml:"model"`
	MaxTokens      int               `yaml:"max_tokens"`
}

func LoadBriefConfig(path string) (*BriefConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read module config %s: %w", path, err)
	}
	cfg := &BriefConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse module config %s: %w", path, err)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	return cfg, nil
}

// PromptRef returns the prompt file reference for a mode, falling back to
// the daily prompt when the mode has none configured.
func (c *BriefConfig) PromptRef(mode string) (string, error) {
	if ref, ok := c.Prompts[mode]; ok && ref != "" {
		return ref, nil
	}
	if ref, ok := c.Prompts[ModeDaily]; ok && ref != "" {
		return ref, nil
	}
	return "", fmt.Errorf("no prompt configured for mode %q and no daily fallback", mode)
}

// Queries returns the search query list for a mode: the weekly list for
// weekly runs when present, the standard list otherwise.
func (c *BriefConfig) Queries(mode string) []string {
	if mode == ModeWeekly && len(c.SearchesWeekly) > 0 {
		return c.SearchesWeekly
	}
	return c.Searches
}

// BirthdayConfig is the birthday flow's YAML config (configs/birthdays.yaml).
type BirthdayConfig struct {
	Destination DestinationConfig `yaml:"destination"`
	MinScore    int               `yaml:"min_score"`
	Model       string            `yaml:"model"`
}

func LoadBirthdayConfig(path string) (*BirthdayConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read birthday config %s: %w", path, err)
	}
	cfg := &BirthdayConfig{MinScore: DefaultMinScore}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse birthday config %s: %w", path, err)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return cfg, nil
}
