// Package config loads server configuration from a YAML file, an optional
// .env file and the environment, in that order of increasing precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/talentgraph/pkg/logging"
	"github.com/dd0wney/talentgraph/pkg/validation"
	"github.com/dd0wney/talentgraph/pkg/visualization"
)

// Config is the full server configuration.
type Config struct {
	Server   ServerConfig               `yaml:"server"`
	Torre    TorreConfig                `yaml:"torre"`
	Sessions SessionConfig              `yaml:"sessions"`
	Layout   visualization.LayoutConfig `yaml:"layout"`
	Log      LogConfig                  `yaml:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
	CORSOrigins     []string      `yaml:"cors_origins"`
}

// TorreConfig configures the upstream client and fetch pacing.
type TorreConfig struct {
	SearchURL       string        `yaml:"search_url"`
	BioURL          string        `yaml:"bio_url"`
	Timeout         time.Duration `yaml:"timeout"`
	RateLimit       float64       `yaml:"rate_limit"`
	Burst           int           `yaml:"burst"`
	FetchInterval   time.Duration `yaml:"fetch_interval"`
	BreakerFailures int           `yaml:"breaker_failures"`
	BreakerTimeout  time.Duration `yaml:"breaker_timeout"`
}

// SessionConfig bounds the per-viewer session store.
type SessionConfig struct {
	MaxSessions int           `yaml:"max_sessions"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxBodyBytes:    1 << 20,
			CORSOrigins:     []string{"*"},
		},
		Torre: TorreConfig{
			SearchURL:       "https://search.torre.co/people/_search",
			BioURL:          "https://bio.torre.co/api/bios/",
			Timeout:         15 * time.Second,
			RateLimit:       5,
			Burst:           1,
			FetchInterval:   300 * time.Millisecond,
			BreakerFailures: 5,
			BreakerTimeout:  30 * time.Second,
		},
		Sessions: SessionConfig{
			MaxSessions: 1000,
			IdleTimeout: 30 * time.Minute,
		},
		Layout: visualization.DefaultLayoutConfig(),
		Log:    LogConfig{Level: "info"},
	}
}

// Load builds a configuration from defaults, the YAML file at path (skipped
// when path is empty), the given .env files and the process environment.
// Missing .env files are ignored.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := cfg.decodeYAML(data); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := loadEnvFiles(envFiles...); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	cfg.Layout = cfg.Layout.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decodeYAML(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func loadEnvFiles(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Validate checks every section and reports all problems at once.
func (c *Config) Validate() error {
	errs := []error{
		validation.NewConfigValidator("Server").
			Required("Addr", c.Server.Addr).
			MinDuration("ReadTimeout", c.Server.ReadTimeout, time.Second).
			MinDuration("WriteTimeout", c.Server.WriteTimeout, time.Second).
			MinDuration("ShutdownTimeout", c.Server.ShutdownTimeout, 0).
			Custom("MaxBodyBytes", func() error {
				if c.Server.MaxBodyBytes < 1024 {
					return fmt.Errorf("value %d must be at least 1024", c.Server.MaxBodyBytes)
				}
				return nil
			}).
			Validate(),
		validation.NewConfigValidator("Torre").
			Required("SearchURL", c.Torre.SearchURL).
			Required("BioURL", c.Torre.BioURL).
			MinDuration("Timeout", c.Torre.Timeout, 100*time.Millisecond).
			PositiveFloat("RateLimit", c.Torre.RateLimit).
			Positive("Burst", c.Torre.Burst).
			MinDuration("FetchInterval", c.Torre.FetchInterval, 0).
			Positive("BreakerFailures", c.Torre.BreakerFailures).
			MinDuration("BreakerTimeout", c.Torre.BreakerTimeout, time.Second).
			Validate(),
		validation.NewConfigValidator("Sessions").
			Positive("MaxSessions", c.Sessions.MaxSessions).
			MinDuration("IdleTimeout", c.Sessions.IdleTimeout, time.Minute).
			Validate(),
		validation.NewConfigValidator("Log").
			OneOf("Level", c.Log.Level, []string{"debug", "info", "warn", "error"}).
			Validate(),
		c.Layout.Validate(),
	}
	return errors.Join(errs...)
}

// LogLevel returns the configured logging level.
func (c *Config) LogLevel() logging.Level {
	return logging.ParseLevel(c.Log.Level)
}
