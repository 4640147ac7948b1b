package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Config represents application configuration
type Config struct {
	Calendar CalendarConfig `mapstructure:"calendar"`
	Watch    WatchConfig    `mapstructure:"watch"`
	Log      LogConfig      `mapstructure:"log"`
	Tray     TrayConfig     `mapstructure:"tray"`
}

// CalendarConfig represents calendar rendering options
type CalendarConfig struct {
	WeekNumbers bool   `mapstructure:"week_numbers"`
	Class       string `mapstructure:"class"`
}

// WatchConfig represents watch mode configuration
type WatchConfig struct {
	Interval string `mapstructure:"interval"` // How often the clock is checked for a date change
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file"` // Empty logs to stderr
	Level string `mapstructure:"level"`
}

// TrayConfig represents system tray configuration
type TrayConfig struct {
	Enabled bool `mapstructure:"enabled"` // Windows only
}

// Load loads configuration from file. An empty configPath searches the
// default locations and falls back to built-in defaults when nothing is found.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, dir := range SearchPaths() {
			v.AddConfigPath(dir)
		}
	}

	// Read environment variables, e.g. STATUS_CALENDAR_CALENDAR_WEEK_NUMBERS
	v.SetEnvPrefix("status_calendar")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// SearchPaths lists the directories searched for config.yaml when no path
// is given. The working directory is never searched: a config.* belonging
// to another tool must not change the payload.
func SearchPaths() []string {
	var paths []string
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "status-calendar"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".status-calendar"))
	}
	return append(paths, "/etc/status-calendar")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("calendar.week_numbers", true)
	v.SetDefault("calendar.class", "date")
	v.SetDefault("watch.interval", "1m")
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("tray.enabled", false)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Calendar.Class == "" {
		return fmt.Errorf("calendar.class must not be empty")
	}

	if c.Watch.Interval != "" {
		interval, err := time.ParseDuration(c.Watch.Interval)
		if err != nil {
			return fmt.Errorf("watch.interval: %w", err)
		}
		if interval <= 0 {
			return fmt.Errorf("watch.interval must be positive")
		}
	}

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	return nil
}

// GetInterval returns watch interval duration
func (c *WatchConfig) GetInterval() time.Duration {
	if c.Interval == "" {
		return time.Minute
	}
	duration, err := time.ParseDuration(c.Interval)
	if err != nil || duration <= 0 {
		return time.Minute
	}
	return duration
}

// GetLevel returns the parsed log level, info when unset or invalid
func (c *LogConfig) GetLevel() zapcore.Level {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return zapcore.InfoLevel
	}
	return level
}
