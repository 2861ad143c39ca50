// Package config provides configuration management for focusdial.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"github.com/xvierd/focusdial/internal/domain"
)

const defaultDataDir = "~/.focusdial"

// Config holds all configuration for the focusdial application.
type Config struct {
	Encoder       EncoderConfig      `mapstructure:"encoder"`
	Motor         MotorConfig        `mapstructure:"motor"`
	Focus         FocusConfig        `mapstructure:"focus"`
	Sound         SoundConfig        `mapstructure:"sound"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Storage       StorageConfig      `mapstructure:"storage"`
}

// EncoderConfig holds input sampling settings.
type EncoderConfig struct {
	PollInterval Duration `mapstructure:"poll_interval"`
	Debounce     Duration `mapstructure:"debounce"`
}

// MotorConfig holds actuator settings. The servo pulse range and the
// encoder direction are wiring properties and live in board.DefaultConfig.
type MotorConfig struct {
	IdleTimeout Duration `mapstructure:"idle_timeout"`
}

// FocusConfig holds the session lengths bound to the three picker anchors.
type FocusConfig struct {
	Short  Duration `mapstructure:"short"`
	Medium Duration `mapstructure:"medium"`
	Long   Duration `mapstructure:"long"`
}

// SoundConfig holds tone settings.
type SoundConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
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
	s := domain.DefaultSettings()
	return &Config{
		Encoder: EncoderConfig{
			PollInterval: Duration(s.PollInterval),
			Debounce:     Duration(s.Debounce),
		},
		Motor: MotorConfig{
			IdleTimeout: Duration(s.MotorIdleTimeout),
		},
		Focus: FocusConfig{
			Short:  Duration(s.FocusShort),
			Medium: Duration(s.FocusMedium),
			Long:   Duration(s.FocusLong),
		},
		Sound: SoundConfig{
			Enabled: true,
		},
		Notifications: NotificationConfig{
			Enabled: true,
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir,
		},
	}
}

// Load loads the configuration from the default config file, creating it
// with defaults on first run.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from configPath.
func LoadFrom(configPath string) (*Config, error) {
	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := SaveTo(configPath, DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	v := newViper(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	dataDir, err := expandHome(cfg.Storage.DataDir)
	if err != nil {
		return nil, err
	}
	cfg.Storage.DataDir = dataDir

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save saves the configuration to the default config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return SaveTo(configPath, cfg)
}

// SaveTo writes the configuration to configPath.
func SaveTo(configPath string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := newViper(configPath)
	v.Set("encoder.poll_interval", cfg.Encoder.PollInterval.String())
	v.Set("encoder.debounce", cfg.Encoder.Debounce.String())
	v.Set("motor.idle_timeout", cfg.Motor.IdleTimeout.String())
	v.Set("focus.short", cfg.Focus.Short.String())
	v.Set("focus.medium", cfg.Focus.Medium.String())
	v.Set("focus.long", cfg.Focus.Long.String())
	v.Set("sound.enabled", cfg.Sound.Enabled)
	v.Set("notifications.enabled", cfg.Notifications.Enabled)
	v.Set("storage.data_dir", cfg.Storage.DataDir)

	return v.WriteConfigAs(configPath)
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".focusdial", "config.toml"), nil
}

// GetDBPath returns the path to the database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "focusdial.db")
}

// GetLogPath returns the path to the simulator log file.
func GetLogPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "focusdial.log")
}

// Validate rejects settings the controller cannot run with.
func (c *Config) Validate() error {
	if c.Encoder.PollInterval <= 0 {
		return fmt.Errorf("encoder.poll_interval must be positive, got %s", c.Encoder.PollInterval)
	}
	if c.Encoder.Debounce < 0 {
		return fmt.Errorf("encoder.debounce must not be negative, got %s", c.Encoder.Debounce)
	}
	if c.Motor.IdleTimeout <= 0 {
		return fmt.Errorf("motor.idle_timeout must be positive, got %s", c.Motor.IdleTimeout)
	}
	for name, d := range map[string]Duration{"short": c.Focus.Short, "medium": c.Focus.Medium, "long": c.Focus.Long} {
		if d <= 0 {
			return fmt.Errorf("focus.%s: %w", name, domain.ErrInvalidFocusLength)
		}
	}
	return nil
}

// ToSettings converts the config to the controller settings.
func (c *Config) ToSettings() domain.Settings {
	return domain.Settings{
		PollInterval:     time.Duration(c.Encoder.PollInterval),
		Debounce:         time.Duration(c.Encoder.Debounce),
		MotorIdleTimeout: time.Duration(c.Motor.IdleTimeout),
		FocusShort:       time.Duration(c.Focus.Short),
		FocusMedium:      time.Duration(c.Focus.Medium),
		FocusLong:        time.Duration(c.Focus.Long),
	}
}

func newViper(configPath string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	setDefaults(v)
	return v
}

// setDefaults sets default values for viper.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("encoder.poll_interval", d.Encoder.PollInterval.String())
	v.SetDefault("encoder.debounce", d.Encoder.Debounce.String())
	v.SetDefault("motor.idle_timeout", d.Motor.IdleTimeout.String())
	v.SetDefault("focus.short", d.Focus.Short.String())
	v.SetDefault("focus.medium", d.Focus.Medium.String())
	v.SetDefault("focus.long", d.Focus.Long.String())
	v.SetDefault("sound.enabled", d.Sound.Enabled)
	v.SetDefault("notifications.enabled", d.Notifications.Enabled)
	v.SetDefault("storage.data_dir", d.Storage.DataDir)
}

func expandHome(dir string) (string, error) {
	if dir == "" {
		dir = defaultDataDir
	}
	if dir != "~" && !strings.HasPrefix(dir, "~/") {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, strings.TrimPrefix(dir, "~")), nil
}
