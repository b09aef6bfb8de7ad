// Package config loads gateway configuration from file, environment
// variables and defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// ServerConfig holds all configuration for the gateway server.
type ServerConfig struct {
	HTTPPort    string `mapstructure:"HTTP_PORT"`
	MongoURI    string `mapstructure:"MONGO_URI"`
	MongoDBName string `mapstructure:"MONGO_DB_NAME"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`
	LogPretty   bool   `mapstructure:"LOG_PRETTY"`

	OtelServiceName string `mapstructure:"OTEL_SERVICE_NAME"`

	// RedisURI enables the distributed token cache when set; empty means
	// the in-memory cache.
	RedisURI string `mapstructure:"REDIS_URI"`

	// TokenTTLHours is the default validity of issued tokens.
	TokenTTLHours int `mapstructure:"TOKEN_TTL_HOURS"`

	// Workdir roots the per-request credential directories.
	Workdir string `mapstructure:"WORKDIR"`

	// EnvironmentTag is attached to every tracked job.
	EnvironmentTag string `mapstructure:"ENVIRONMENT_TAG"`

	// CredentialTimeoutSec bounds the delegated credential fetch.
	CredentialTimeoutSec int `mapstructure:"CREDENTIAL_TIMEOUT_SEC"`
}

// LoadConfig reads configuration from config.yaml (searched in
// /etc/geofront, $HOME/.geofront and the working directory), the
// environment and defaults, in ascending precedence.
func LoadConfig() (*ServerConfig, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/geofront/")
	v.AddConfigPath("$HOME/.geofront")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017/geofront")
	v.SetDefault("MONGO_DB_NAME", "geofront")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", true)
	v.SetDefault("OTEL_SERVICE_NAME", "geofront-gateway")
	v.SetDefault("TOKEN_TTL_HOURS", 1)
	v.SetDefault("WORKDIR", os.TempDir())
	v.SetDefault("ENVIRONMENT_TAG", "dev")
	v.SetDefault("CREDENTIAL_TIMEOUT_SEC", 30)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// No config file is fine; defaults and env vars apply.
	}

	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	return &cfg, nil
}
