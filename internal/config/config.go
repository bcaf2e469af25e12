// Package config loads daemon configuration from printd.yaml and
// PRINTD_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the daemon configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Device  DeviceConfig  `mapstructure:"device"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// DeviceConfig holds discovery and printing settings.
type DeviceConfig struct {
	RegistryPath  string        `mapstructure:"registry_path"`
	DefaultPaper  int           `mapstructure:"default_paper"`
	ScanInterval  time.Duration `mapstructure:"scan_interval"`
	ScanOnStartup bool          `mapstructure:"scan_on_startup"`
}

// LoggingConfig holds zap settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// Load reads printd.yaml from configPath (or the default search path
// when empty) and merges PRINTD_* environment variables over it. A
// missing config file is fine; defaults apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("printd")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath(defaultConfigDir())
		v.AddConfigPath("/etc/printd")
	}

	v.SetEnvPrefix("PRINTD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8723)

	v.SetDefault("device.registry_path", filepath.Join(defaultConfigDir(), "registry.json"))
	v.SetDefault("device.default_paper", 58)
	v.SetDefault("device.scan_interval", "10s")
	v.SetDefault("device.scan_on_startup", true)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", cfg.Server.Port)
	}

	switch cfg.Device.DefaultPaper {
	case 58, 80:
	default:
		return fmt.Errorf("device.default_paper must be 58 or 80, got %d", cfg.Device.DefaultPaper)
	}

	switch cfg.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", cfg.Logging.Format)
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	for _, level := range validLevels {
		if cfg.Logging.Level == level {
			return nil
		}
	}
	return fmt.Errorf("logging.level must be one of %v, got %q", validLevels, cfg.Logging.Level)
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func defaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "printd")
}
