package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	Logger  LoggerConfig  `mapstructure:"logger"`
	Monitor MonitorConfig `mapstructure:"monitor"`
	Cache   CacheConfig   `mapstructure:"cache"`
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// ServerConfig holds the optional status API configuration.
type ServerConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    string `mapstructure:"port"`
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Encoding   string `mapstructure:"encoding"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// MonitorConfig holds settings for the polling loop.
type MonitorConfig struct {
	TargetsFile  string        `mapstructure:"targets_file"`
	Interval     time.Duration `mapstructure:"interval"`
	ProbeTimeout time.Duration `mapstructure:"probe_timeout"`
	Title        string        `mapstructure:"title"`
}

// CacheConfig holds settings for the snapshot cache.
type CacheConfig struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

const (
	DefaultInterval     = 30 * time.Second
	DefaultProbeTimeout = 10 * time.Second
	DefaultTargetsFile  = "./rpc.json"
	DefaultTitle        = "RPC test speed bot"
)

// Load reads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("app.name", "rpc-speed-bot")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("server.enabled", false)
	v.SetDefault("server.port", "8080")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")
	v.SetDefault("logger.file", "")
	v.SetDefault("logger.max_size_mb", 10)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age_days", 14)
	v.SetDefault("logger.compress", true)
	v.SetDefault("monitor.targets_file", DefaultTargetsFile)
	v.SetDefault("monitor.interval", DefaultInterval.String())
	v.SetDefault("monitor.probe_timeout", DefaultProbeTimeout.String())
	v.SetDefault("monitor.title", DefaultTitle)
	v.SetDefault("cache.default_expiration", "5m")
	v.SetDefault("cache.cleanup_interval", "10m")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Warning: Config file not found in %s or '.', using defaults/env vars\n", configPath)
	}

	v.SetEnvPrefix("RPC_SPEED_BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Monitor.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c MonitorConfig) validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("monitor.interval must be positive, got %v", c.Interval)
	}
	if c.ProbeTimeout <= 0 {
		return fmt.Errorf("monitor.probe_timeout must be positive, got %v", c.ProbeTimeout)
	}
	if c.ProbeTimeout >= c.Interval {
		return fmt.Errorf("monitor.probe_timeout (%v) must be shorter than monitor.interval (%v)",
			c.ProbeTimeout, c.Interval)
	}
	return nil
}

func (c MonitorConfig) GetInterval() time.Duration {
	return c.Interval
}

func (c MonitorConfig) GetProbeTimeout() time.Duration {
	return c.ProbeTimeout
}

func (c CacheConfig) GetDefaultExpiration() time.Duration {
	return c.DefaultExpiration
}

func (c CacheConfig) GetCleanupInterval() time.Duration {
	return c.CleanupInterval
}
