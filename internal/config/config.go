// Package config provides configuration management for greet.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the greet application.
type Config struct {
	Server        ServerConfig       `mapstructure:"server"`
	Storage       StorageConfig      `mapstructure:"storage"`
	UI            UIConfig           `mapstructure:"ui"`
	Notifications NotificationConfig `mapstructure:"notifications"`
}

// ServerConfig holds HTTP server and client settings. BaseURL, when set,
// points the CLI at a remote registry instead of local storage.
type ServerConfig struct {
	Addr    string   `mapstructure:"addr"`
	BaseURL string   `mapstructure:"base_url"`
	Timeout Duration `mapstructure:"timeout"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir  string `mapstructure:"data_dir"`
	InMemory bool   `mapstructure:"in_memory"`
}

// UIConfig holds console settings.
type UIConfig struct {
	Plain bool        `mapstructure:"plain"`
	Theme ThemeConfig `mapstructure:"theme"`
}

// ThemeConfig holds prompt styling (colors as hex strings).
type ThemeConfig struct {
	ColorTitle  string `mapstructure:"color_title"`
	ColorAccent string `mapstructure:"color_accent"`
	ColorHelp   string `mapstructure:"color_help"`
}

// NotificationConfig holds desktop notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorTitle:  "#6B7280",
		ColorAccent: "#7C6FE0",
		ColorHelp:   "#95A5A6",
	}
}

// Duration is a wrapper around time.Duration for TOML parsing.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// String returns the string representation of the duration.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:    "localhost:8420",
			BaseURL: "",
			Timeout: Duration(10 * time.Second),
		},
		Storage: StorageConfig{
			DataDir:  "~/.greet",
			InMemory: false,
		},
		UI: UIConfig{
			Plain: false,
			Theme: DefaultThemeConfig(),
		},
		Notifications: NotificationConfig{
			Enabled: true,
		},
	}
}

// Load loads the configuration from the config file.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	setDefaults()

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Expand ~ in data directory
	if cfg.Storage.DataDir == "~/.greet" || cfg.Storage.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.Storage.DataDir = filepath.Join(homeDir, ".greet")
	}

	return &cfg, nil
}

// Save saves the configuration to the config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	viper.Set("server.addr", cfg.Server.Addr)
	viper.Set("server.base_url", cfg.Server.BaseURL)
	viper.Set("server.timeout", cfg.Server.Timeout.String())
	viper.Set("storage.data_dir", cfg.Storage.DataDir)
	viper.Set("storage.in_memory", cfg.Storage.InMemory)
	viper.Set("ui.plain", cfg.UI.Plain)
	viper.Set("ui.theme.color_title", cfg.UI.Theme.ColorTitle)
	viper.Set("ui.theme.color_accent", cfg.UI.Theme.ColorAccent)
	viper.Set("ui.theme.color_help", cfg.UI.Theme.ColorHelp)
	viper.Set("notifications.enabled", cfg.Notifications.Enabled)

	return viper.WriteConfig()
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".greet", "config.toml"), nil
}

// GetDBPath returns the path to the database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "greet.db")
}

// setDefaults sets default values for viper.
func setDefaults() {
	viper.SetDefault("server.addr", "localhost:8420")
	viper.SetDefault("server.base_url", "")
	viper.SetDefault("server.timeout", "10s")
	viper.SetDefault("storage.data_dir", "~/.greet")
	viper.SetDefault("storage.in_memory", false)
	viper.SetDefault("ui.plain", false)
	viper.SetDefault("notifications.enabled", true)

	defaults := DefaultThemeConfig()
	viper.SetDefault("ui.theme.color_title", defaults.ColorTitle)
	viper.SetDefault("ui.theme.color_accent", defaults.ColorAccent)
	viper.SetDefault("ui.theme.color_help", defaults.ColorHelp)
}
