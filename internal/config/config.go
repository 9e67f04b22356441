package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Poll     PollConfig     `mapstructure:"poll"`
	UI       UIConfig       `mapstructure:"ui"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// APIConfig holds MLB Stats API client configuration
type APIConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	MaxRetries        int           `mapstructure:"max_retries"`
	RetryDelayBase    time.Duration `mapstructure:"retry_delay_base"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
}

// PollConfig holds polling cadence configuration
type PollConfig struct {
	LiveInterval time.Duration `mapstructure:"live_interval"`
	IdleInterval time.Duration `mapstructure:"idle_interval"`
}

// UIConfig holds dashboard behavior configuration
type UIConfig struct {
	FavoriteTeam    string        `mapstructure:"favorite_team"`
	Timezone        string        `mapstructure:"timezone"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
}

// TelegramConfig holds Telegram scoring alert configuration
type TelegramConfig struct {
	BotToken       string        `mapstructure:"bot_token"`
	ChatID         string        `mapstructure:"chat_id"`
	Enabled        bool          `mapstructure:"enabled"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryDelayBase time.Duration `mapstructure:"retry_delay_base"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// DefaultPath returns the config file looked up when none is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "dugout.toml"
	}
	return filepath.Join(dir, "dugout", "dugout.toml")
}

// Load reads configuration from file and environment variables.
// An empty path skips the file and uses defaults plus environment.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Enable environment variable override, e.g. DUGOUT_UI_FAVORITE_TEAM
	v.SetEnvPrefix("DUGOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.base_url", "https://statsapi.mlb.com")
	v.SetDefault("api.timeout", "10s")
	v.SetDefault("api.max_retries", 3)
	v.SetDefault("api.retry_delay_base", "1s")
	v.SetDefault("api.requests_per_second", 2.0)
	v.SetDefault("api.burst", 3)

	// Poll defaults
	v.SetDefault("poll.live_interval", "10s")
	v.SetDefault("poll.idle_interval", "60s")

	// UI defaults
	v.SetDefault("ui.favorite_team", "")
	v.SetDefault("ui.timezone", "America/New_York")
	v.SetDefault("ui.refresh_interval", "500ms")

	// Telegram defaults
	v.SetDefault("telegram.enabled", false)
	v.SetDefault("telegram.max_retries", 3)
	v.SetDefault("telegram.retry_delay_base", "1s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.file", filepath.Join(os.TempDir(), "dugout.log"))
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_backups", 3)
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	// Validate API config
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.API.Timeout < 1*time.Second {
		return fmt.Errorf("api.timeout must be at least 1 second")
	}
	if c.API.MaxRetries < 1 {
		return fmt.Errorf("api.max_retries must be at least 1")
	}
	if c.API.RequestsPerSecond <= 0 {
		return fmt.Errorf("api.requests_per_second must be positive")
	}
	if c.API.Burst < 1 {
		return fmt.Errorf("api.burst must be at least 1")
	}

	// Validate Poll config
	if c.Poll.LiveInterval < 2*time.Second {
		return fmt.Errorf("poll.live_interval must be at least 2 seconds")
	}
	if c.Poll.IdleInterval < c.Poll.LiveInterval {
		return fmt.Errorf("poll.idle_interval must not be shorter than poll.live_interval")
	}

	// Validate UI config
	if c.UI.RefreshInterval < 100*time.Millisecond {
		return fmt.Errorf("ui.refresh_interval must be at least 100 milliseconds")
	}
	if _, err := time.LoadLocation(c.UI.Timezone); err != nil {
		return fmt.Errorf("ui.timezone is not a valid time zone: %w", err)
	}

	// Validate Telegram config
	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}

	// Validate Logging config
	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}
	if c.Logging.File != "" && c.Logging.MaxSizeMB < 1 {
		return fmt.Errorf("logging.max_size_mb must be at least 1")
	}

	return nil
}

// Location returns the display time zone. Validate guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.UI.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
