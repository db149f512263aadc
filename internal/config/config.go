package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Config holds Strava API credentials. Keys not modelled here are kept and
// written back untouched.
type Config struct {
	ClientID     string
	ClientSecret string
	AccessToken  string
	RefreshToken string
	ExpiresAt    int64

	extra           map[string]json.RawMessage
	loaded          map[string]bool
	numericClientID bool
}

var knownKeys = []string{"client_id", "client_secret", "access_token", "refresh_token", "expires_at"}

// Load reads a JSON config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	raw := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}

	cfg := &Config{loaded: make(map[string]bool)}
	fields := map[string]any{
		"client_id":     &cfg.ClientID,
		"client_secret": &cfg.ClientSecret,
		"access_token":  &cfg.AccessToken,
		"refresh_token": &cfg.RefreshToken,
		"expires_at":    &cfg.ExpiresAt,
	}
	for key, dst := range fields {
		val, ok := raw[key]
		if !ok {
			continue
		}
		if key == "client_id" {
			val, cfg.numericClientID = unquoteNumber(val)
		}
		if err := json.Unmarshal(val, dst); err != nil {
			return nil, fmt.Errorf("decode config field %s: %w", key, err)
		}
		cfg.loaded[key] = true
		delete(raw, key)
	}
	cfg.extra = raw

	return cfg, nil
}

// Save writes the config back to path, replacing its contents. Known keys
// absent from the loaded file are only written once they hold a value.
func Save(path string, cfg *Config) error {
	out := make(map[string]any, len(cfg.extra)+len(knownKeys))
	for k, v := range cfg.extra {
		out[k] = v
	}
	put := func(key string, val any, empty bool) {
		if cfg.loaded[key] || !empty {
			out[key] = val
		}
	}

	var clientID any = cfg.ClientID
	if cfg.numericClientID && isDigits(cfg.ClientID) {
		clientID = json.Number(cfg.ClientID)
	}
	put("client_id", clientID, cfg.ClientID == "")
	put("client_secret", cfg.ClientSecret, cfg.ClientSecret == "")
	put("access_token", cfg.AccessToken, cfg.AccessToken == "")
	put("refresh_token", cfg.RefreshToken, cfg.RefreshToken == "")
	put("expires_at", cfg.ExpiresAt, cfg.ExpiresAt == 0)

	data, err := json.MarshalIndent(out, "", "    ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Expiry returns the access token expiry, or the zero time when unknown.
func (c *Config) Expiry() time.Time {
	if c.ExpiresAt <= 0 {
		return time.Time{}
	}
	return time.Unix(c.ExpiresAt, 0)
}

// Validate checks that credentials needed for a token exchange are present.
func (c *Config) Validate() error {
	if c.ClientID == "" || c.ClientSecret == "" {
		return fmt.Errorf("config requires client_id and client_secret")
	}
	if c.AccessToken == "" && c.RefreshToken == "" {
		return fmt.Errorf("config requires access_token or refresh_token")
	}
	return nil
}

// unquoteNumber lets client_id be stored either as a JSON number or string.
func unquoteNumber(val json.RawMessage) (json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(val)
	if isDigits(string(trimmed)) {
		return json.RawMessage(`"` + string(trimmed) + `"`), true
	}
	return val, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
