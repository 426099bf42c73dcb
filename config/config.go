package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/s0up4200/cookie/cookie"
)

const appDir = ".cookie"

// Load loads the configuration from file, .env and environment. Without an
// explicit path a missing config file is not an error, so the CLI works
// with COOKIE_KEY alone.
func Load(configPath string) (*Config, error) {
	loadDotEnv()

	v := viper.New()

	// Set default values
	setDefaults(v)

	if err := v.BindEnv("cookie.api_key", "COOKIE_KEY"); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}
	if err := v.BindEnv("cookie.base_url", "COOKIE_BASE_URL"); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, appDir))
		}

		// Check /etc
		v.AddConfigPath("/etc/cookie/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadDotEnv loads the first .env file found. Variables already set in the
// environment are left alone.
func loadDotEnv() {
	for _, path := range envPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

// envPaths returns the locations checked for a .env file, in order
func envPaths() []string {
	var paths []string

	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, appDir, ".env"))
	}

	return paths
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Cookie API defaults
	v.SetDefault("cookie.base_url", cookie.DefaultBaseURL)
	v.SetDefault("cookie.timeout", "30s")
	v.SetDefault("cookie.user_agent", "")

	// Output defaults
	v.SetDefault("output.chart_height", 10)
	v.SetDefault("output.chart_width", 60)
	v.SetDefault("output.color", true)

	// Store defaults
	v.SetDefault("store.path", defaultStorePath())

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

func defaultStorePath() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, appDir, "cookie.db")
	}
	return "cookie.db"
}

// validate checks if the configuration is valid. The API key is not
// required here; the client reports a missing key when it is built.
func validate(cfg *Config) error {
	u, err := url.Parse(cfg.Cookie.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("cookie.base_url must be an absolute URL: %q", cfg.Cookie.BaseURL)
	}

	if cfg.Cookie.Timeout <= 0 {
		return fmt.Errorf("cookie.timeout must be positive: %s", cfg.Cookie.Timeout)
	}

	if cfg.Output.ChartHeight <= 0 {
		return fmt.Errorf("output.chart_height must be positive: %d", cfg.Output.ChartHeight)
	}
	if cfg.Output.ChartWidth < 0 {
		return fmt.Errorf("output.chart_width must not be negative: %d", cfg.Output.ChartWidth)
	}

	if cfg.Store.Path == "" {
		return fmt.Errorf("store.path is required")
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
