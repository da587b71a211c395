// Package config loads service configuration from a YAML file and AUTHSVC_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Supported credential store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	envPrefix = "AUTHSVC"

	// MinSecretLength is the minimum accepted HMAC secret length in bytes.
	MinSecretLength = 32

	defaultPort            = "3000"
	defaultLogLevel        = "info"
	defaultDBPath          = "authsvc.db"
	defaultTokenTTL        = time.Hour
	defaultBcryptCost      = 10
	defaultPublicAPIURL    = "https://api.publicapis.org"
	defaultPublicAPITimout = 10 * time.Second
	defaultCacheTTL        = 5 * time.Minute
	defaultShutdownTimeout = 10 * time.Second
)

var (
	ErrMissingSecret = errors.New("auth.secret is required (set AUTHSVC_AUTH_SECRET)")
	ErrShortSecret   = fmt.Errorf("auth.secret must be at least %d bytes", MinSecretLength)
)

// Config is the immutable process configuration.
type Config struct {
	Port      string          `mapstructure:"port"`
	Log       LogConfig       `mapstructure:"log"`
	DB        DBConfig        `mapstructure:"db"`
	Auth      AuthConfig      `mapstructure:"auth"`
	PublicAPI PublicAPIConfig `mapstructure:"publicapi"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Server    ServerConfig    `mapstructure:"server"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type DBConfig struct {
	Driver string `mapstructure:"driver"` // sqlite | postgres
	Path   string `mapstructure:"path"`   // sqlite file
	DSN    string `mapstructure:"dsn"`    // postgres connection string
}

// AuthConfig holds credential and token settings. Changing Secret invalidates every issued token.
type AuthConfig struct {
	Secret     string        `mapstructure:"secret"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
	BcryptCost int           `mapstructure:"bcrypt_cost"`
}

type PublicAPIConfig struct {
	BaseURL            string        `mapstructure:"base_url"`
	Timeout            time.Duration `mapstructure:"timeout"`
	InsecureSkipVerify bool          `mapstructure:"insecure_skip_verify"`
}

// CacheConfig enables the redis cache for upstream entries when RedisURL is set.
type CacheConfig struct {
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type ServerConfig struct {
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Load reads configuration. An empty path looks for config.yml under ./configs;
// a missing file there is not an error and defaults plus environment apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %q: %w", path, err)
		}
	} else {
		v.AddConfigPath("configs") // configs/config.yml
		v.SetConfigName("config")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", defaultPort)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("db.driver", DriverSQLite)
	v.SetDefault("db.path", defaultDBPath)
	v.SetDefault("db.dsn", "")
	v.SetDefault("auth.secret", "")
	v.SetDefault("auth.token_ttl", defaultTokenTTL)
	v.SetDefault("auth.bcrypt_cost", defaultBcryptCost)
	v.SetDefault("publicapi.base_url", defaultPublicAPIURL)
	v.SetDefault("publicapi.timeout", defaultPublicAPITimout)
	v.SetDefault("publicapi.insecure_skip_verify", false)
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.ttl", defaultCacheTTL)
	v.SetDefault("server.shutdown_timeout", defaultShutdownTimeout)
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	switch {
	case c.Auth.Secret == "":
		return ErrMissingSecret
	case len(c.Auth.Secret) < MinSecretLength:
		return ErrShortSecret
	case c.Auth.TokenTTL <= 0:
		return fmt.Errorf("auth.token_ttl must be positive, got %s", c.Auth.TokenTTL)
	}

	switch c.DB.Driver {
	case DriverSQLite:
		if c.DB.Path == "" {
			return errors.New("db.path is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.DB.DSN == "" {
			return errors.New("db.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported db.driver %q", c.DB.Driver)
	}

	if c.PublicAPI.BaseURL == "" {
		return errors.New("publicapi.base_url is required")
	}
	return nil
}
