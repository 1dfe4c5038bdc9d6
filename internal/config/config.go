// Package config provides configuration management for Keydoro.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/keydoro/keydoro/internal/domain"
	"github.com/keydoro/keydoro/internal/render"
	"github.com/spf13/viper"
)

// Config holds all configuration for the Keydoro daemon.
type Config struct {
	Defaults      DefaultsConfig     `mapstructure:"defaults"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Theme         ThemeConfig        `mapstructure:"theme"`
}

// DefaultsConfig holds the timer settings applied when a host event
// carries no per-instance settings. Event-supplied settings always win.
type DefaultsConfig struct {
	WorkTime     int  `mapstructure:"work_time"`
	BreakTime    int  `mapstructure:"break_time"`
	NumCycles    int  `mapstructure:"num_cycles"`
	SoundEnabled bool `mapstructure:"sound_enabled"`
}

// RawSettings converts the configured defaults into the raw property
// bag shape the settings resolver consumes.
func (d DefaultsConfig) RawSettings() map[string]any {
	return map[string]any{
		domain.SettingWorkTime:     d.WorkTime,
		domain.SettingBreakTime:    d.BreakTime,
		domain.SettingNumCycles:    d.NumCycles,
		domain.SettingSoundEnabled: d.SoundEnabled,
	}
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// StorageConfig holds history storage settings.
type StorageConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DataDir string `mapstructure:"data_dir"`
}

// ThemeConfig holds the key-face palette.
type ThemeConfig struct {
	Background         string `mapstructure:"background"`
	Text               string `mapstructure:"text"`
	Track              string `mapstructure:"track"`
	DotNeutral         string `mapstructure:"dot_neutral"`
	WorkGradientStart  string `mapstructure:"work_gradient_start"`
	WorkGradientEnd    string `mapstructure:"work_gradient_end"`
	BreakGradientStart string `mapstructure:"break_gradient_start"`
	BreakGradientEnd   string `mapstructure:"break_gradient_end"`
}

// ToRenderTheme converts the theme configuration into a render.Theme,
// falling back to the stock palette for any missing color.
func (t ThemeConfig) ToRenderTheme() render.Theme {
	theme := render.DefaultTheme()
	if t.Background != "" {
		theme.Background = t.Background
	}
	if t.Text != "" {
		theme.Text = t.Text
	}
	if t.Track != "" {
		theme.Track = t.Track
	}
	if t.DotNeutral != "" {
		theme.DotNeutral = t.DotNeutral
	}
	if t.WorkGradientStart != "" {
		theme.WorkGradientStart = t.WorkGradientStart
	}
	if t.WorkGradientEnd != "" {
		theme.WorkGradientEnd = t.WorkGradientEnd
	}
	if t.BreakGradientStart != "" {
		theme.BreakGradientStart = t.BreakGradientStart
	}
	if t.BreakGradientEnd != "" {
		theme.BreakGradientEnd = t.BreakGradientEnd
	}
	return theme
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	stock := render.DefaultTheme()
	return &Config{
		Defaults: DefaultsConfig{
			WorkTime:     domain.DefaultWorkMinutes,
			BreakTime:    domain.DefaultBreakMinutes,
			NumCycles:    domain.DefaultCycleCount,
			SoundEnabled: false,
		},
		Notifications: NotificationConfig{
			Enabled: true,
		},
		Storage: StorageConfig{
			Enabled: true,
			DataDir: "~/.keydoro",
		},
		Theme: ThemeConfig{
			Background:         stock.Background,
			Text:               stock.Text,
			Track:              stock.Track,
			DotNeutral:         stock.DotNeutral,
			WorkGradientStart:  stock.WorkGradientStart,
			WorkGradientEnd:    stock.WorkGradientEnd,
			BreakGradientStart: stock.BreakGradientStart,
			BreakGradientEnd:   stock.BreakGradientEnd,
		},
	}
}

// Load loads the configuration from the config file, creating it with
// defaults on first run.
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

	if cfg.Storage.DataDir == "~/.keydoro" || cfg.Storage.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.Storage.DataDir = filepath.Join(homeDir, ".keydoro")
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

	viper.Set("defaults.work_time", cfg.Defaults.WorkTime)
	viper.Set("defaults.break_time", cfg.Defaults.BreakTime)
	viper.Set("defaults.num_cycles", cfg.Defaults.NumCycles)
	viper.Set("defaults.sound_enabled", cfg.Defaults.SoundEnabled)
	viper.Set("notifications.enabled", cfg.Notifications.Enabled)
	viper.Set("storage.enabled", cfg.Storage.Enabled)
	viper.Set("storage.data_dir", cfg.Storage.DataDir)
	viper.Set("theme.background", cfg.Theme.Background)
	viper.Set("theme.text", cfg.Theme.Text)
	viper.Set("theme.track", cfg.Theme.Track)
	viper.Set("theme.dot_neutral", cfg.Theme.DotNeutral)
	viper.Set("theme.work_gradient_start", cfg.Theme.WorkGradientStart)
	viper.Set("theme.work_gradient_end", cfg.Theme.WorkGradientEnd)
	viper.Set("theme.break_gradient_start", cfg.Theme.BreakGradientStart)
	viper.Set("theme.break_gradient_end", cfg.Theme.BreakGradientEnd)

	return viper.WriteConfig()
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".keydoro", "config.toml"), nil
}

// GetDBPath returns the path to the history database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "keydoro.db")
}

// setDefaults sets default values for viper.
func setDefaults() {
	stock := render.DefaultTheme()
	viper.SetDefault("defaults.work_time", domain.DefaultWorkMinutes)
	viper.SetDefault("defaults.break_time", domain.DefaultBreakMinutes)
	viper.SetDefault("defaults.num_cycles", domain.DefaultCycleCount)
	viper.SetDefault("defaults.sound_enabled", false)
	viper.SetDefault("notifications.enabled", true)
	viper.SetDefault("storage.enabled", true)
	viper.SetDefault("storage.data_dir", "~/.keydoro")
	viper.SetDefault("theme.background", stock.Background)
	viper.SetDefault("theme.text", stock.Text)
	viper.SetDefault("theme.track", stock.Track)
	viper.SetDefault("theme.dot_neutral", stock.DotNeutral)
	viper.SetDefault("theme.work_gradient_start", stock.WorkGradientStart)
	viper.SetDefault("theme.work_gradient_end", stock.WorkGradientEnd)
	viper.SetDefault("theme.break_gradient_start", stock.BreakGradientStart)
	viper.SetDefault("theme.break_gradient_end", stock.BreakGradientEnd)
}
