package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/s0up4200/yfantasy/auth"
	"github.com/s0up4200/yfantasy/yahoo"
)

// EnvPrefix is prepended to environment variable overrides, e.g.
// YFANTASY_YAHOO_CLIENT_SECRET.
const EnvPrefix = "YFANTASY"

// Load loads the configuration from file and the environment.
// A missing config file is not an error when no explicit path is given.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".yfantasy"))
		}
		v.AddConfigPath("/etc/yfantasy/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Yahoo defaults
	v.SetDefault("yahoo.client_id", "")
	v.SetDefault("yahoo.client_secret", "")
	v.SetDefault("yahoo.game_code", "nhl")
	v.SetDefault("yahoo.league_id", 0)
	v.SetDefault("yahoo.token_file", auth.DefaultTokenFile)

	// Transport defaults
	v.SetDefault("client.base_url", yahoo.DefaultBaseURL)
	v.SetDefault("client.timeout", yahoo.DefaultTimeout)
	v.SetDefault("client.request_delay", yahoo.DefaultRequestDelay)
	v.SetDefault("client.refresh_margin", yahoo.DefaultRefreshMargin)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Yahoo.ClientID == "" {
		return fmt.Errorf("yahoo.client_id is required")
	}
	if cfg.Yahoo.ClientSecret == "" || cfg.Yahoo.ClientSecret == "your-client-secret-here" {
		return fmt.Errorf("yahoo.client_secret must be set to a valid secret")
	}
	if cfg.Yahoo.GameCode == "" {
		return fmt.Errorf("yahoo.game_code is required")
	}

	if cfg.Client.Timeout <= 0 {
		return fmt.Errorf("client.timeout must be positive")
	}
	if cfg.Client.RequestDelay < 0 {
		return fmt.Errorf("client.request_delay must not be negative")
	}
	if cfg.Client.RefreshMargin < 0 {
		return fmt.Errorf("client.refresh_margin must not be negative")
	}

	for name, expression := range cfg.Filter {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("filter %q has an empty expression", name)
		}
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
