package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Kobis     KobisConfig     `mapstructure:"kobis"`
	Favorites FavoritesConfig `mapstructure:"favorites"`
	Search    SearchConfig    `mapstructure:"search"`
	Filter    FilterConfig    `mapstructure:"filter"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// KobisConfig holds the provider connection details
type KobisConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// FavoritesConfig sets where saved movies are kept
type FavoritesConfig struct {
	Dir string `mapstructure:"dir"`
}

// SearchConfig holds catalog search defaults
type SearchConfig struct {
	PerPage int `mapstructure:"per_page"`
}

// FilterConfig contains named filter expressions
type FilterConfig struct {
	Presets map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
