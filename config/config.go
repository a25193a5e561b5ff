package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"geohash-engine/geohash"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Index  IndexConfig  `mapstructure:"index"`
	Limits LimitsConfig `mapstructure:"limits"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

type RedisConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Addr       string `mapstructure:"addr"`
	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db"`
	TTLSeconds int    `mapstructure:"ttl_seconds"`
}

// IndexConfig selects how stored points are indexed.
type IndexConfig struct {
	Technique  string `mapstructure:"technique"` // geohashing, rtree or quadtree
	Precision  uint   `mapstructure:"precision"`
	MaxRetries int    `mapstructure:"max_retries"`
}

// LimitsConfig bounds the size of enumerated covers served over HTTP.
type LimitsConfig struct {
	MaxCells uint64 `mapstructure:"max_cells"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from defaults, an optional config.yaml and
// GEOHASH_ prefixed environment variables, in increasing priority.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl_seconds", 3600)
	v.SetDefault("index.technique", "geohashing")
	v.SetDefault("index.precision", 9)
	v.SetDefault("index.max_retries", 4)
	v.SetDefault("limits.max_cells", 100000)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	// GEOHASH_REDIS_ADDR → redis.addr
	v.SetEnvPrefix("GEOHASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that configuration values are usable.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		errs = append(errs, "redis.addr is required when redis is enabled")
	}
	if c.Redis.TTLSeconds < 0 {
		errs = append(errs, fmt.Sprintf("redis.ttl_seconds must not be negative, got %d", c.Redis.TTLSeconds))
	}
	switch c.Index.Technique {
	case "geohashing", "rtree", "quadtree":
	default:
		errs = append(errs, fmt.Sprintf("index.technique must be geohashing, rtree or quadtree, got %q", c.Index.Technique))
	}
	if c.Index.Precision == 0 || c.Index.Precision > geohash.MaxPrecision {
		errs = append(errs, fmt.Sprintf("index.precision must be 1-%d, got %d", geohash.MaxPrecision, c.Index.Precision))
	}
	if c.Index.MaxRetries < 0 {
		errs = append(errs, fmt.Sprintf("index.max_retries must not be negative, got %d", c.Index.MaxRetries))
	}
	if c.Limits.MaxCells == 0 {
		errs = append(errs, "limits.max_cells must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(errs, "; "))
	}
	return nil
}
