package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	customerrors "github.com/axellelanca/qrlinks/internal/errors"
	"github.com/axellelanca/qrlinks/internal/shortcode"
)

// Config represents the main structure mapping the entire application configuration.
// This struct uses mapstructure tags to map YAML keys and environment variables to Go fields.
type Config struct {
	// Server configuration section containing HTTP server settings
	Server struct {
		Port            int           `mapstructure:"port"`             // HTTP server port (default: 8080)
		BaseURL         string        `mapstructure:"base_url"`         // Base URL used to build {base_url}/r/{code}
		ReadTimeout     time.Duration `mapstructure:"read_timeout"`     // http.Server read timeout
		WriteTimeout    time.Duration `mapstructure:"write_timeout"`    // http.Server write timeout
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"` // Grace period for in-flight requests and scan drain
	} `mapstructure:"server"`

	// Database configuration section
	Database struct {
		Driver string `mapstructure:"driver"` // "sqlite" or "postgres"
		DSN    string `mapstructure:"dsn"`    // SQLite file name or Postgres connection string
	} `mapstructure:"database"`

	// Redis lookup cache for the redirect path. Empty URL disables the cache.
	Redis struct {
		URL string        `mapstructure:"url"`
		TTL time.Duration `mapstructure:"ttl"`
	} `mapstructure:"redis"`

	// ShortCode configuration passed explicitly to the generator and allocator
	ShortCode struct {
		Alphabet    string `mapstructure:"alphabet"`
		Length      int    `mapstructure:"length"`
		MaxAttempts int    `mapstructure:"max_attempts"`
	} `mapstructure:"shortcode"`

	Redirect struct {
		FallbackPath string `mapstructure:"fallback_path"` // Landing path for not_found / link_disabled
	} `mapstructure:"redirect"`

	// Analytics configuration for asynchronous scan recording
	Analytics struct {
		BufferSize   int           `mapstructure:"buffer_size"`   // Size of the scan event channel buffer
		WorkerCount  int           `mapstructure:"worker_count"`  // Number of worker goroutines writing scans
		WriteTimeout time.Duration `mapstructure:"write_timeout"` // Timeout of each storage write done by a worker
	} `mapstructure:"analytics"`

	Quota struct {
		DefaultLimit int64 `mapstructure:"default_limit"` // Plan limit seeded for owners without a usage row
	} `mapstructure:"quota"`

	Auth struct {
		JWTSecret string        `mapstructure:"jwt_secret"`
		TokenTTL  time.Duration `mapstructure:"token_ttl"`
	} `mapstructure:"auth"`

	// Monitor configuration for destination health checking
	Monitor struct {
		Enabled         bool `mapstructure:"enabled"`
		IntervalMinutes int  `mapstructure:"interval_minutes"` // Interval in minutes between destination checks
	} `mapstructure:"monitor"`

	Log struct {
		Level  string `mapstructure:"level"`  // zerolog level name
		Format string `mapstructure:"format"` // "console" or "json"
	} `mapstructure:"log"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.read_timeout", 5*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "qrlinks.db")
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.ttl", 10*time.Minute)
	v.SetDefault("shortcode.alphabet", shortcode.DefaultAlphabet)
	v.SetDefault("shortcode.length", shortcode.DefaultLength)
	v.SetDefault("shortcode.max_attempts", 5)
	v.SetDefault("redirect.fallback_path", "/link-unavailable")
	v.SetDefault("analytics.buffer_size", 1000)
	v.SetDefault("analytics.worker_count", 5)
	v.SetDefault("analytics.write_timeout", 5*time.Second)
	v.SetDefault("quota.default_limit", 10)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_ttl", 24*time.Hour)
	v.SetDefault("monitor.enabled", false)
	v.SetDefault("monitor.interval_minutes", 5)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// LoadConfig loads the application configuration using Viper.
// A .env file in the working directory is loaded first (missing file is fine), then
// ./configs/config.yaml, then environment variables (server.port -> SERVER_PORT).
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AddConfigPath("./configs")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, customerrors.ErrConfigLoad{Path: "./configs/config.yaml", Reason: err.Error()}
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.Server.BaseURL = strings.TrimRight(cfg.Server.BaseURL, "/")
	return &cfg, nil
}

// Validate rejects configurations the service cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if len(c.ShortCode.Alphabet) < 2 {
		errs = append(errs, errors.New("shortcode.alphabet needs at least 2 symbols"))
	}
	if c.ShortCode.Length < 1 {
		errs = append(errs, errors.New("shortcode.length must be positive"))
	}
	if c.ShortCode.MaxAttempts < 1 {
		errs = append(errs, errors.New("shortcode.max_attempts must be positive"))
	}
	if c.Analytics.WorkerCount < 1 {
		errs = append(errs, errors.New("analytics.worker_count must be positive"))
	}
	if c.Analytics.BufferSize < 0 {
		errs = append(errs, errors.New("analytics.buffer_size must not be negative"))
	}
	if c.Quota.DefaultLimit < 0 {
		errs = append(errs, errors.New("quota.default_limit must not be negative"))
	}
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("database.driver %q is not supported", c.Database.Driver))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("auth.jwt_secret must be set"))
	}
	if !strings.HasPrefix(c.Redirect.FallbackPath, "/") {
		errs = append(errs, errors.New("redirect.fallback_path must start with /"))
	}
	return errors.Join(errs...)
}

// ShortURL formats the public URL of a code.
func (c *Config) ShortURL(code string) string {
	return fmt.Sprintf("%s/r/%s", c.Server.BaseURL, code)
}

// Default returns the configuration made of defaults only.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := fromViper(v)
	if err != nil {
		panic(fmt.Sprintf("default configuration does not decode: %v", err))
	}
	return cfg
}
