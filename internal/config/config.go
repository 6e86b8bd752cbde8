package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port                 int      `mapstructure:"port"`
	DatabasePath         string   `mapstructure:"database_path"`
	LogLevel             string   `mapstructure:"log_level"`
	AllowedOrigins       []string `mapstructure:"allowed_origins"`
	RequestTimeoutSec    int      `mapstructure:"request_timeout_sec"`     // HTTP read/write; 0 = server default
	ShutdownTimeoutSec   int      `mapstructure:"shutdown_timeout_sec"`    // Graceful shutdown wait
	TopologyCacheTTLSec  int      `mapstructure:"topology_cache_ttl_sec"`  // Topology cache TTL; 0 = cache disabled
	ApplicationCacheSize int      `mapstructure:"application_cache_size"`  // LRU entries for application metadata
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("/etc/tracewatch/")
	viper.AddConfigPath("$HOME/.tracewatch")
	viper.AddConfigPath(".")

	// Defaults
	viper.SetDefault("port", 8080)
	viper.SetDefault("database_path", "./tracewatch.db")
	viper.SetDefault("log_level", "info")
	viper.SetDefault("allowed_origins", []string{"*"})
	viper.SetDefault("request_timeout_sec", 30)
	viper.SetDefault("shutdown_timeout_sec", 15)
	viper.SetDefault("topology_cache_ttl_sec", 30)
	viper.SetDefault("application_cache_size", 4096)

	// Environment variables
	viper.SetEnvPrefix("TRACEWATCH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found; using defaults and env vars
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
