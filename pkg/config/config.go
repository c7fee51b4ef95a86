// Package config resolves server settings from built-in defaults, an
// optional YAML file and PDM_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
	"liyu1981.xyz/predictive-maintenance/pkg/classifier"
	"liyu1981.xyz/predictive-maintenance/pkg/common"
	"liyu1981.xyz/predictive-maintenance/pkg/pdm"
)

const (
	DefaultConfigPath   = "config.yaml"
	DefaultHttpHostPort = ":1080"
	DefaultDBType       = "file"
	DefaultDBPath       = "data/app.db"
	DefaultModelPath    = "data/model.json"
	DefaultRate         = 10.0
	DefaultBurst        = 20
)

type Config struct {
	HTTP          HostPortConfig `yaml:"http"`
	GRPC          HostPortConfig `yaml:"grpc"` // empty host_port disables gRPC
	DB            DBConfig       `yaml:"db"`
	Limiter       LimiterConfig  `yaml:"limiter"`
	Model         ModelConfig    `yaml:"model"`
	Log           LogConfig      `yaml:"log"`
	RetentionDays int            `yaml:"retention_days"`
}

type HostPortConfig struct {
	HostPort string `yaml:"host_port"`
}

type DBConfig struct {
	// Type is one of: file | memory | postgres | mysql.
	Type string `yaml:"type"`
	Path string `yaml:"path"`
	DSN  string `yaml:"dsn"`
}

type LimiterConfig struct {
	Rate  float64 `yaml:"rate"`
	Burst int     `yaml:"burst"`
	// Overrides pins a client (IP or gRPC peer host) to its own rate/burst.
	Overrides map[string]LimiterOverride `yaml:"overrides"`
}

type LimiterOverride struct {
	Rate  float64 `yaml:"rate"`
	Burst int     `yaml:"burst"`
}

// NewClientLimiters builds the limiter store with every override pinned.
func (l LimiterConfig) NewClientLimiters() *pdm.ClientLimiters {
	limiters := pdm.NewClientLimiters(rate.Limit(l.Rate), l.Burst)
	for clientID, o := range l.Overrides {
		limiters.SetRate(clientID, rate.Limit(o.Rate), o.Burst)
	}
	return limiters
}

type ModelConfig struct {
	Path            string                     `yaml:"path"`
	Watch           bool                       `yaml:"watch"`
	Hyperparameters classifier.Hyperparameters `yaml:"hyperparameters"`
}

type LogConfig struct {
	Dir        string `yaml:"dir"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

func (l LogConfig) Options() common.LogOptions {
	return common.LogOptions{
		Dir:        l.Dir,
		MaxSizeMB:  l.MaxSizeMB,
		MaxBackups: l.MaxBackups,
		MaxAgeDays: l.MaxAgeDays,
	}
}

func Default() *Config {
	return &Config{
		HTTP:          HostPortConfig{HostPort: DefaultHttpHostPort},
		DB:            DBConfig{Type: DefaultDBType, Path: DefaultDBPath},
		Limiter:       LimiterConfig{Rate: DefaultRate, Burst: DefaultBurst},
		Model:         ModelConfig{Path: DefaultModelPath, Hyperparameters: classifier.DefaultHyperparameters()},
		RetentionDays: common.DefaultRetentionDays,
	}
}

// Load reads path over the defaults, then applies the environment. A
// missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	num := func(key string, parse func(string) error) error {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		if err := parse(strings.TrimSpace(v)); err != nil {
			return fmt.Errorf("invalid %s=%q: %w", key, v, err)
		}
		return nil
	}
	integer := func(dst *int) func(string) error {
		return func(s string) error {
			n, err := strconv.Atoi(s)
			*dst = n
			return err
		}
	}

	str(common.EnvKeyPDMHttpHostPort, &c.HTTP.HostPort)
	str(common.EnvKeyPDMGrpcHostPort, &c.GRPC.HostPort)
	str(common.EnvKeyPDMDBType, &c.DB.Type)
	str(common.EnvKeyPDMDbPath, &c.DB.Path)
	str(common.EnvKeyPDMDbDSN, &c.DB.DSN)
	str(common.EnvKeyPDMModelPath, &c.Model.Path)

	return errors.Join(
		num(common.EnvKeyPDMDefaultRate, func(s string) error {
			f, err := strconv.ParseFloat(s, 64)
			c.Limiter.Rate = f
			return err
		}),
		num(common.EnvKeyPDMDefaultBurst, integer(&c.Limiter.Burst)),
		num(common.EnvKeyPDMModelEstimators, integer(&c.Model.Hyperparameters.NEstimators)),
		num(common.EnvKeyPDMModelMaxDepth, integer(&c.Model.Hyperparameters.MaxDepth)),
		num(common.EnvKeyPDMModelWatch, func(s string) error {
			b, err := strconv.ParseBool(s)
			c.Model.Watch = b
			return err
		}),
		num(common.EnvKeyPDMRetentionDays, integer(&c.RetentionDays)),
	)
}

func (c *Config) Validate() error {
	switch c.DB.Type {
	case "file", "memory":
	case "postgres", "mysql":
		if c.DB.DSN == "" {
			return fmt.Errorf("db.dsn is required for db type %q", c.DB.Type)
		}
	default:
		return fmt.Errorf("unknown db type %q", c.DB.Type)
	}
	if c.HTTP.HostPort == "" {
		return errors.New("http.host_port must not be empty")
	}
	if c.Limiter.Rate < 0 {
		return common.NewRangeError("limiter.rate", c.Limiter.Rate, "must be >= 0")
	}
	if c.Limiter.Burst < 0 {
		return common.NewRangeError("limiter.burst", c.Limiter.Burst, "must be >= 0")
	}
	for clientID, o := range c.Limiter.Overrides {
		if o.Rate < 0 || o.Burst < 0 {
			return common.NewRangeError("limiter.overrides."+clientID, o, "rate and burst must be >= 0")
		}
	}
	if c.RetentionDays < 1 {
		return common.NewRangeError("retention_days", c.RetentionDays, "must be >= 1")
	}
	if c.Model.Path == "" {
		return errors.New("model.path must not be empty")
	}
	return c.Model.Hyperparameters.Validate()
}
