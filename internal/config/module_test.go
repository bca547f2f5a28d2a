package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadBriefConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stone-news.yaml")
	writeFile(t, path, `
destination:
  chat_id: -100123456
  thread_id: 42
prompts:
  daily: prompts/stone-news-daily.md
  weekly: prompts/stone-news-weekly.md
searches:
  - "stone news today"
  - "quarry industry"
searches_weekly:
  - "stone news this week"
model: claude-haiku-4-5-20251001
max_tokens: 2048
`)

	cfg, err := LoadBriefConfig(path)
	require.NoError(t, err)

	assert.Equal(t, int64(-100123456), cfg.Destination.ChatID)
	assert.Equal(t, 42, cfg.Destination.ThreadID)
	assert.Equal(t, 2048, cfg.MaxTokens)

	ref, err := cfg.PromptRef(ModeWeekly)
	require.NoError(t, err)
	assert.Equal(t, "prompts/stone-news-weekly.md", ref)

	// flash has no prompt of its own, falls back to daily
	ref, err = cfg.PromptRef(ModeFlash)
	require.NoError(t, err)
	assert.Equal(t, "prompts/stone-news-daily.md", ref)

	assert.Equal(t, []string{"stone news this week"}, cfg.Queries(ModeWeekly))
	assert.Equal(t, []string{"stone news today", "quarry industry"}, cfg.Queries(ModeDaily))
	assert.Equal(t, []string{"stone news today", "quarry industry"}, cfg.Queries(ModeFlash))
}

func TestLoadBriefConfig_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "min.yaml")
	writeFile(t, path, `
destination:
  chat_id: 1
prompts:
  daily: prompts/d.md
`)

	cfg, err := LoadBriefConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, DefaultMaxTokens, cfg.MaxTokens)

	// weekly list absent: weekly runs reuse the standard searches
	assert.Equal(t, cfg.Searches, cfg.Queries(ModeWeekly))
}

func TestLoadBriefConfig_MissingFile(t *testing.T) {
	_, err := LoadBriefConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestBriefConfig_PromptRef_NoDailyFallback(t *testing.T) {
	cfg := &BriefConfig{Prompts: map[string]string{}}
	_, err := cfg.PromptRef(ModeFlash)
	require.Error(t, err)
}

func TestLoadBirthdayConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "birthdays.yaml")
	writeFile(t, path, `
destination:
  chat_id: -100987
  thread_id: 7
min_score: 50
`)

	cfg, err := LoadBirthdayConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.MinScore)
	assert.Equal(t, DefaultModel, cfg.Model)
}

func TestLoadBirthdayConfig_DefaultMinScore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "birthdays.yaml")
	writeFile(t, path, `
destination:
  chat_id: 1
`)

	cfg, err := LoadBirthdayConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultMinScore, cfg.MinScore)
}

func TestValidMode(t *testing.T) {
	assert.True(t, ValidMode("daily"))
	assert.True(t, ValidMode("weekly"))
	assert.True(t, ValidMode("flash"))
	assert.False(t, ValidMode("hourly"))
	assert.False(t, ValidMode(""))
}
