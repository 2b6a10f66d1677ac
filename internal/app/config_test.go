package app_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"umlwizard/internal/app"
	"umlwizard/internal/diagram"
)

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	home := t.TempDir()
	cfg, err := app.LoadConfig(home, "")
	require.NoError(t, err)

	assert.Equal(t, home, cfg.Home)
	assert.Equal(t, diagram.DefaultBaseURL, cfg.ServiceURL)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	home := t.TempDir()
	yml := `service_url: http://127.0.0.1:8090
timeout: 45s
log:
  level: debug
breaker:
  max_failures: 5
  cooldown: 1m
serve:
  addr: 127.0.0.1:9000
`
	require.NoError(t, os.WriteFile(filepath.Join(home, app.ConfigFilename), []byte(yml), 0o600))

	cfg, err := app.LoadConfig(home, "")
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8090", cfg.ServiceURL)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, uint32(5), cfg.Breaker.MaxFailures)
	assert.Equal(t, time.Minute, cfg.Breaker.Cooldown)
	assert.Equal(t, "127.0.0.1:9000", cfg.Serve.Addr)
}

func TestLoadConfig_ExplicitMissingFileFails(t *testing.T) {
	_, err := app.LoadConfig(t.TempDir(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	cfg := app.DefaultConfig("/tmp/home")
	err := cfg.ApplyEnv(envMap(map[string]string{
		app.EnvServiceURL: "http://localhost:8090",
		app.EnvTimeout:    "90",
		app.EnvPassphrase: "s3cret",
		app.EnvLogLevel:   "warn",
		app.EnvAddr:       ":9999",
	}))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8090", cfg.ServiceURL)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.Equal(t, "s3cret", cfg.Passphrase)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, ":9999", cfg.Serve.Addr)

	err = cfg.ApplyEnv(envMap(map[string]string{app.EnvTimeout: "soon"}))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	good := app.DefaultConfig("/tmp/home")
	require.NoError(t, good.Validate())

	cases := map[string]func(*app.Config){
		"relative url": func(c *app.Config) { c.ServiceURL = "/uml" },
		"empty url":    func(c *app.Config) { c.ServiceURL = "" },
		"ftp url":      func(c *app.Config) { c.ServiceURL = "ftp://example.com" },
		"zero timeout": func(c *app.Config) { c.Timeout = 0 },
		"missing home": func(c *app.Config) { c.Home = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := app.DefaultConfig("/tmp/home")
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
