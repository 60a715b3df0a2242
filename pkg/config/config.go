package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"FinDash/pkg/logger"
	"FinDash/pkg/util"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string        `yaml:"environment" default:"development" validate:"required"`
	Log         logger.Config `yaml:"log"`
	Dashboard   struct {
		BaseURL         string        `yaml:"base_url" default:"http://localhost:8000" validate:"required,url"`
		Endpoint        string        `yaml:"endpoint" default:"/api/dashboard-data" validate:"required,startswith=/"`
		RefreshInterval time.Duration `yaml:"refresh_interval" default:"60s" validate:"gte=1s"`
		APIInterval     time.Duration `yaml:"api_interval" default:"15s" validate:"gte=1s"`
		RequestTimeout  time.Duration `yaml:"request_timeout" validate:"gte=0"`
		Location        string        `yaml:"location" default:"Local"`
		DiscardStale    bool          `yaml:"discard_stale"`
		Terminal        bool          `yaml:"terminal" default:"true"`
	} `yaml:"dashboard"`
	Server struct {
		Enabled         bool          `yaml:"enabled"`
		Port            int           `yaml:"port" default:"8090" validate:"gte=1,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"5s"`
		SlowThreshold   time.Duration `yaml:"slow_threshold" default:"500ms"`
		RateLimit       struct {
			RPS   float64 `yaml:"rps" default:"20" validate:"gte=0"`
			Burst int     `yaml:"burst" default:"40" validate:"gte=0"`
		} `yaml:"rate_limit"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Kafka struct {
		Enabled      bool          `yaml:"enabled"`
		Brokers      []string      `yaml:"brokers" validate:"required_if=Enabled true"`
		Topic        string        `yaml:"topic" default:"findash.regions"`
		RequiredAcks int           `yaml:"required_acks" default:"1"`
		Compression  string        `yaml:"compression" default:"snappy" validate:"oneof=gzip snappy lz4 zstd"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"5s"`
		Regions      []string      `yaml:"regions" default:"[\"report\"]" validate:"dive,oneof=report countdown"`
		BufferSize   int           `yaml:"buffer_size" default:"16" validate:"gte=1"`
	} `yaml:"kafka"`
	Redis struct {
		Enabled    bool          `yaml:"enabled"`
		Host       string        `yaml:"host" default:"localhost"`
		Port       int           `yaml:"port" default:"6379"`
		Password   string        `yaml:"password"`
		DB         int           `yaml:"db"`
		PoolSize   int           `yaml:"pool_size" default:"4" validate:"gte=1"`
		MinIdle    int           `yaml:"min_idle_conns" default:"1" validate:"gte=0"`
		PoolWait   time.Duration `yaml:"pool_timeout" default:"5s" validate:"gte=0"`
		Prefix     string        `yaml:"prefix" default:"findash"`
		TTL        time.Duration `yaml:"ttl" default:"2m"`
		Regions    []string      `yaml:"regions" default:"[\"report\",\"countdown\"]" validate:"dive,oneof=report countdown"`
		BufferSize int           `yaml:"buffer_size" default:"64" validate:"gte=1"`
	} `yaml:"redis"`
}

var validate = validator.New()

// Load reads and parses a YAML configuration file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}

	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("DASHBOARD_BASE_URL"); v != "" {
		c.Dashboard.BaseURL = v
	}
	c.Dashboard.APIInterval = util.ParseDurationDefault(os.Getenv("DASHBOARD_API_INTERVAL"), c.Dashboard.APIInterval)
	c.Dashboard.RefreshInterval = util.ParseDurationDefault(os.Getenv("DASHBOARD_REFRESH_INTERVAL"), c.Dashboard.RefreshInterval)
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
		c.Kafka.Enabled = true
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		host, port, ok := strings.Cut(v, ":")
		c.Redis.Host = host
		if ok {
			c.Redis.Port = util.ParseIntDefault(port, c.Redis.Port)
		}
		c.Redis.Enabled = true
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("dashboard.location: %w", err)
	}
	return nil
}

// Location resolves the zone the report's timestamps are rendered in.
func (c *Config) Location() (*time.Location, error) {
	switch c.Dashboard.Location {
	case "", "Local":
		return time.Local, nil
	default:
		return time.LoadLocation(c.Dashboard.Location)
	}
}

// DashboardURL is the full collaborator endpoint.
func (c *Config) DashboardURL() string {
	return strings.TrimRight(c.Dashboard.BaseURL, "/") + c.Dashboard.Endpoint
}

// RedisAddr formats host:port for the redis client.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
