package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Yahoo   YahooConfig   `mapstructure:"yahoo"`
	Client  ClientConfig  `mapstructure:"client"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// YahooConfig holds the OAuth credentials and the default league scope
type YahooConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	GameCode     string `mapstructure:"game_code"`
	LeagueID     int    `mapstructure:"league_id"`
	TokenFile    string `mapstructure:"token_file"`
}

// ClientConfig tunes the HTTP transport
type ClientConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RequestDelay  time.Duration `mapstructure:"request_delay"`
	RefreshMargin time.Duration `mapstructure:"refresh_margin"`
}

// FilterConfig contains named player filter expressions
type FilterConfig map[string]string

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
