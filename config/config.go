package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/s0up4200/kobis/kobis"
)

const (
	// EnvPrefix prefixes every environment override
	EnvPrefix = "KOBIS"

	placeholderAPIKey = "your-api-key-here"
	maxPerPage        = 100
)

// Load loads the configuration from file and environment
func Load(configPath string) (*Config, error) {
	return LoadFs(afero.NewOsFs(), configPath)
}

// LoadFs loads the configuration reading files through fs. A missing file
// is only an error when configPath names it explicitly.
func LoadFs(fs afero.Fs, configPath string) (*Config, error) {
	v := viper.New()
	v.SetFs(fs)

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("kobis.api_key", EnvPrefix+"_API_KEY"); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".kobis"))
		}
		v.AddConfigPath("/etc/kobis/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && configPath == "":
			// environment and defaults only
		case configPath != "" && isNotExist(fs, configPath):
			return nil, fmt.Errorf("config file not found: %s", configPath)
		default:
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

func isNotExist(fs afero.Fs, path string) bool {
	_, err := fs.Stat(path)
	return errors.Is(err, os.ErrNotExist)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Provider defaults
	v.SetDefault("kobis.api_key", "")
	v.SetDefault("kobis.base_url", kobis.DefaultBaseURL)
	v.SetDefault("kobis.timeout", kobis.DefaultTimeout)

	// Storage defaults
	v.SetDefault("favorites.dir", DefaultFavoritesDir())

	v.SetDefault("search.per_page", kobis.DefaultPerPage)
	v.SetDefault("filter.presets", map[string]string{})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// DefaultFavoritesDir is ~/.kobis, or .kobis when no home directory exists
func DefaultFavoritesDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".kobis"
	}
	return filepath.Join(home, ".kobis")
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	cfg.Kobis.APIKey = strings.TrimSpace(cfg.Kobis.APIKey)
	if cfg.Kobis.APIKey == "" || cfg.Kobis.APIKey == placeholderAPIKey {
		return fmt.Errorf("kobis.api_key must be set to a valid API key (or set %s_API_KEY)", EnvPrefix)
	}

	if cfg.Kobis.BaseURL == "" {
		return fmt.Errorf("kobis.base_url is required")
	}

	if cfg.Kobis.Timeout <= 0 {
		return fmt.Errorf("kobis.timeout must be positive, got %s", cfg.Kobis.Timeout)
	}

	if cfg.Favorites.Dir == "" {
		return fmt.Errorf("favorites.dir is required")
	}

	if cfg.Search.PerPage < 1 || cfg.Search.PerPage > maxPerPage {
		return fmt.Errorf("search.per_page must be between 1 and %d, got %d", maxPerPage, cfg.Search.PerPage)
	}

	for name, expression := range cfg.Filter.Presets {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("filter preset '%s' has an empty expression", name)
		}
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
