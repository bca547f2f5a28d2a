package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// CredentialProvider resolves collaborator secrets from the operator's
// openclaw files with environment-variable fallback. Resolved once at
// process start; never re-read mid-run.
type CredentialProvider struct {
	home string
}

func NewCredentialProvider() *CredentialProvider {
	home, _ := os.UserHomeDir()
	return &CredentialProvider{home: home}
}

// NewCredentialProviderAt roots lookups at dir instead of the real home.
func NewCredentialProviderAt(dir string) *CredentialProvider {
	return &CredentialProvider{home: dir}
}

func (p *CredentialProvider) AnthropicKey() (string, error) {
	path := filepath.Join(p.home, ".openclaw", "agents", "main", "agent", "auth.json")
	var doc struct {
		Anthropic struct {
			Key string `json:"key"`
		} `json:"anthropic"`
	}
	if readJSON(path, &doc) && doc.Anthropic.Key != "" {
		return doc.Anthropic.Key, nil
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return key, nil
	}
	return "", errors.New("no Anthropic API key found")
}

func (p *CredentialProvider) TelegramToken() (string, error) {
	var doc struct {
		Channels struct {
			Telegram struct {
				BotToken string `json:"botToken"`
			} `json:"telegram"`
		} `json:"channels"`
	}
	if readJSON(p.openclawPath(), &doc) && doc.Channels.Telegram.BotToken != "" {
		return doc.Channels.Telegram.BotToken, nil
	}
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		return token, nil
	}
	return "", errors.New("no Telegram bot token found")
}

func (p *CredentialProvider) BraveKey() (string, error) {
	var doc struct {
		Tools struct {
			Web struct {
				Search struct {
					APIKey string `json:"apiKey"`
				} `json:"search"`
			} `json:"web"`
		} `json:"tools"`
	}
	if readJSON(p.openclawPath(), &doc) && doc.Tools.Web.Search.APIKey != "" {
		return doc.Tools.Web.Search.APIKey, nil
	}
	if key := os.Getenv("BRAVE_API_KEY"); key != "" {
		return key, nil
	}
	return "", errors.New("no Brave API key found")
}

func (p *CredentialProvider) openclawPath() string {
	return filepath.Join(p.home, ".openclaw", "openclaw.json")
}

// readJSON reports whether path existed and parsed; a malformed file is
// treated the same as a missing one so the env fallback still applies.
func readJSON(path string, v any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, v) == nil
}
