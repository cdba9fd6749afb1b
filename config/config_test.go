package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Yahoo: YahooConfig{
			ClientID:     "id",
			ClientSecret: "secret",
			GameCode:     "nhl",
		},
		Client: ClientConfig{
			Timeout:      time.Second,
			RequestDelay: time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:   "valid",
			modify: func(*Config) {},
		},
		{
			name:    "missing client id",
			modify:  func(c *Config) { c.Yahoo.ClientID = "" },
			wantErr: "yahoo.client_id is required",
		},
		{
			name:    "placeholder secret",
			modify:  func(c *Config) { c.Yahoo.ClientSecret = "your-client-secret-here" },
			wantErr: "yahoo.client_secret",
		},
		{
			name:    "missing game code",
			modify:  func(c *Config) { c.Yahoo.GameCode = "" },
			wantErr: "yahoo.game_code is required",
		},
		{
			name:    "zero timeout",
			modify:  func(c *Config) { c.Client.Timeout = 0 },
			wantErr: "client.timeout",
		},
		{
			name:    "negative delay",
			modify:  func(c *Config) { c.Client.RequestDelay = -time.Second },
			wantErr: "client.request_delay",
		},
		{
			name:   "zero delay",
			modify: func(c *Config) { c.Client.RequestDelay = 0 },
		},
		{
			name:    "empty filter",
			modify:  func(c *Config) { c.Filter = FilterConfig{"skaters": "  "} },
			wantErr: `filter "skaters"`,
		},
		{
			name:    "invalid level",
			modify:  func(c *Config) { c.Logging.Level = "trace" },
			wantErr: "invalid logging level: trace",
		},
		{
			name:    "invalid format",
			modify:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid logging format: xml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
yahoo:
  client_id: my-id
  client_secret: my-secret
  league_id: "12345"
client:
  request_delay: 250ms
filter:
  available_centers: 'hasPosition("C") && !Owned'
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "my-id", cfg.Yahoo.ClientID)
	assert.Equal(t, "my-secret", cfg.Yahoo.ClientSecret)
	assert.Equal(t, "nhl", cfg.Yahoo.GameCode)
	assert.Equal(t, 12345, cfg.Yahoo.LeagueID)
	assert.Equal(t, ".tokens.json", cfg.Yahoo.TokenFile)
	assert.Equal(t, "https://fantasysports.yahooapis.com/fantasy/v2", cfg.Client.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Client.Timeout)
	assert.Equal(t, 250*time.Millisecond, cfg.Client.RequestDelay)
	assert.Equal(t, 5*time.Minute, cfg.Client.RefreshMargin)
	assert.Equal(t, `hasPosition("C") && !Owned`, cfg.Filter["available_centers"])
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.True(t, cfg.Logging.Color)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, `
yahoo:
  client_id: file-id
  client_secret: file-secret
`)
	t.Setenv("YFANTASY_YAHOO_CLIENT_SECRET", "env-secret")
	t.Setenv("YFANTASY_YAHOO_GAME_CODE", "nfl")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file-id", cfg.Yahoo.ClientID)
	assert.Equal(t, "env-secret", cfg.Yahoo.ClientSecret)
	assert.Equal(t, "nfl", cfg.Yahoo.GameCode)
}

func TestLoadErrors(t *testing.T) {
	t.Run("explicit path missing", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorContains(t, err, "error reading config")
	})

	t.Run("invalid", func(t *testing.T) {
		path := writeConfig(t, "yahoo:\n  client_id: id\n")
		_, err := Load(path)
		assert.ErrorContains(t, err, "invalid configuration")
	})
}
