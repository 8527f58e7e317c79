package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage backends
const (
	RedisBackend    = "redis"
	PostgresBackend = "postgres"
)

// Config is the process configuration. Every key can be set from the
// environment: nested keys join with "_" (redis.host -> REDIS_HOST).
type Config struct {
	ListenAddr      string         `mapstructure:"listen_addr"`
	ShutdownTimeout time.Duration  `mapstructure:"shutdown_timeout"`
	Log             LogConfig      `mapstructure:"log"`
	Store           StoreConfig    `mapstructure:"store"`
	Redis           RedisConfig    `mapstructure:"redis"`
	Postgres        PostgresConfig `mapstructure:"postgres"`
}

// LogConfig selects log level and format
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// StoreConfig selects the storage backend
type StoreConfig struct {
	Backend string `mapstructure:"backend"`
}

// RedisConfig holds the redis connection settings
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// PostgresConfig holds the postgres connection settings
type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	Table    string `mapstructure:"table"`
	SSL      bool   `mapstructure:"ssl"`
}

// SetDefaults registers the default of every key on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("listen_addr", ":8000")
	v.SetDefault("shutdown_timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("store.backend", RedisBackend)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", "5432")
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.db", "home_address")
	v.SetDefault("postgres.table", "home_address")
	v.SetDefault("postgres.ssl", false)
}

// New returns a viper instance with defaults and environment binding in place
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the configuration out of v and validates it
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks if the configuration is usable
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case RedisBackend:
		if c.Redis.Host == "" || c.Redis.Port == "" {
			return &ConfigError{Field: "redis", Message: "host and port are required"}
		}
	case PostgresBackend:
		if c.Postgres.Host == "" || c.Postgres.Port == "" || c.Postgres.DB == "" {
			return &ConfigError{Field: "postgres", Message: "host, port and db are required"}
		}
	default:
		return &ConfigError{Field: "store.backend", Message: "must be " + RedisBackend + " or " + PostgresBackend}
	}

	if c.ListenAddr == "" {
		return &ConfigError{Field: "listen_addr", Message: "must not be empty"}
	}
	if c.ShutdownTimeout <= 0 {
		return &ConfigError{Field: "shutdown_timeout", Message: "must be positive"}
	}

	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
