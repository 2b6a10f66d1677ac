package app

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"umlwizard/internal/diagram"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Home       string        `yaml:"-"`           // config directory, e.g. $HOME/.umlwizard
	ServiceURL string        `yaml:"service_url"` // diagram service base URL
	Timeout    time.Duration `yaml:"timeout"`     // per-request transport timeout
	Passphrase string        `yaml:"-"`           // seals the session snapshot when set

	Log     LogConfig     `yaml:"log"`
	Breaker BreakerConfig `yaml:"breaker"`
	Serve   ServeConfig   `yaml:"serve"`

	HTTP *http.Client `yaml:"-"` // optional; built from Timeout when nil
}

type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

type BreakerConfig struct {
	MaxFailures uint32        `yaml:"max_failures"`
	Cooldown    time.Duration `yaml:"cooldown"`
}

type ServeConfig struct {
	Addr string `yaml:"addr"`
}

// Environment variables read by ApplyEnv.
const (
	EnvServiceURL = "UMLWIZARD_SERVICE_URL"
	EnvTimeout    = "UMLWIZARD_TIMEOUT"
	EnvPassphrase = "UMLWIZARD_PASSPHRASE"
	EnvLogLevel   = "UMLWIZARD_LOG_LEVEL"
	EnvLogFile    = "UMLWIZARD_LOG_FILE"
	EnvAddr       = "UMLWIZARD_ADDR"
)

// ConfigFilename is looked up in Home when no explicit path is given.
const ConfigFilename = "config.yaml"

// DefaultConfig returns the built-in settings.
func DefaultConfig(home string) Config {
	return Config{
		Home:       home,
		ServiceURL: diagram.DefaultBaseURL,
		Timeout:    2 * time.Minute,
		Log:        LogConfig{Level: "info"},
		Breaker:    BreakerConfig{MaxFailures: 3, Cooldown: 30 * time.Second},
		Serve:      ServeConfig{Addr: ":8080"},
	}
}

// LoadConfig layers defaults, the YAML file, .env and the environment.
// An empty path means Home/config.yaml; a missing file is not an error
// unless the path was given explicitly.
func LoadConfig(home, path string) (Config, error) {
	cfg := DefaultConfig(home)

	explicit := path != ""
	if !explicit {
		path = filepath.Join(home, ConfigFilename)
	}
	if err := cfg.loadFile(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
	}

	// .env next to the working directory, as the services in docker do.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from UMLWIZARD_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvServiceURL); ok && v != "" {
		c.ServiceURL = v
	}
	if v, ok := lookup(EnvTimeout); ok && v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	if v, ok := lookup(EnvPassphrase); ok {
		c.Passphrase = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvLogFile); ok && v != "" {
		c.Log.File = v
	}
	if v, ok := lookup(EnvAddr); ok && v != "" {
		c.Serve.Addr = v
	}
	return nil
}

// parseDuration accepts Go durations and bare seconds.
func parseDuration(s string) (time.Duration, error) {
	if d, err := time.ParseDuration(s); err == nil {
		return d, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return time.Duration(n) * time.Second, nil
}

// Validate rejects settings the app cannot run with.
func (c Config) Validate() error {
	u, err := url.Parse(c.ServiceURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("service url %q must be an absolute http(s) URL", c.ServiceURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("service url %q must use http or https", c.ServiceURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Home == "" {
		return errors.New("home directory not set")
	}
	return nil
}
