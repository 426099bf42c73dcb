package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Cookie  CookieConfig  `mapstructure:"cookie"`
	Output  OutputConfig  `mapstructure:"output"`
	Store   StoreConfig   `mapstructure:"store"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CookieConfig holds Cookie API connection details
type CookieConfig struct {
	APIKey    string        `mapstructure:"api_key"`
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// OutputConfig controls how results are printed
type OutputConfig struct {
	ChartHeight int  `mapstructure:"chart_height"`
	ChartWidth  int  `mapstructure:"chart_width"`
	Color       bool `mapstructure:"color"`
}

// StoreConfig locates the SQLite archive used by export
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// FilterConfig maps filter names to day filter expressions
type FilterConfig map[string]string

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
