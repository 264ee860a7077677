package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/qrstash/qrstash/internal/database"
)

// Config represents the runtime configuration for the QRStash server.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port        int    `mapstructure:"port"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
}

// DatabaseConfig describes the MongoDB connection options.
type DatabaseConfig struct {
	URI            string        `mapstructure:"uri"`
	Name           string        `mapstructure:"name"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

// MongoConfig converts the database section into the connection manager's config.
func (c *Config) MongoConfig() database.Config {
	return database.Config{
		URI:            strings.TrimSpace(c.Database.URI),
		Name:           strings.TrimSpace(c.Database.Name),
		ConnectTimeout: c.Database.ConnectTimeout,
	}
}

// LoadConfig initialises application configuration using Viper with sensible defaults.
// The bare MONGODB_URI and PORT environment variables are honoured alongside
// the QRSTASH_-prefixed forms.
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.NewWithOptions(viper.ExperimentalBindStruct())
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AddConfigPath("./config")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	v.SetEnvPrefix("QRSTASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Conventional bare variables used by existing deployments.
	_ = v.BindEnv("database.uri", "QRSTASH_DATABASE_URI", "MONGODB_URI")
	_ = v.BindEnv("server.port", "QRSTASH_SERVER_PORT", "PORT")
	_ = v.BindEnv("server.environment", "QRSTASH_SERVER_ENVIRONMENT", "NODE_ENV")

	if err := v.ReadInConfig(); err != nil {
		var cfgErr viper.ConfigFileNotFoundError
		if !errors.As(err, &cfgErr) {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config, decodeHook()); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.log_level", "info")

	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "qrstash")
	v.SetDefault("database.connect_timeout", "10s")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.endpoint", "/metrics")
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}
