package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdirForTest(t, t.TempDir())
	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "flat", cfg.DeductionModel)
	assert.Equal(t, int64(1048576), cfg.MaxBodyBytes)
	assert.Equal(t, 60, cfg.RateLimitPerMinute)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.MetricsEnabled)
	require.NoError(t, cfg.Validate())
}

func TestLoadReadsEnvironment(t *testing.T) {
	chdirForTest(t, t.TempDir())
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("DEDUCTION_MODEL", "Annualized")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "5")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg := Load()
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "annualized", cfg.DeductionModel)
	assert.Equal(t, 5, cfg.RateLimitPerMinute)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoadFileBelowEnvironment(t *testing.T) {
	dir := t.TempDir()
	chdirForTest(t, dir)
	path := filepath.Join(dir, "paycalc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("APP_ADDR: \":7000\"\nLOG_LEVEL: debug\n"), 0o600))
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadFileMissing(t *testing.T) {
	chdirForTest(t, t.TempDir())
	_, err := LoadFile("does-not-exist.yaml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	chdirForTest(t, t.TempDir())
	base := Load()

	cases := map[string]func(*Config){
		"unknown model": func(c *Config) { c.DeductionModel = "progressive" },
		"tiny body":     func(c *Config) { c.MaxBodyBytes = 10 },
		"upload limit":  func(c *Config) { c.MaxUploadBytes = c.MaxBodyBytes - 1 },
		"rate limit":    func(c *Config) { c.RateLimitPerMinute = 0 },
		"import limit":  func(c *Config) { c.ImportRatePerMinute = -1 },
		"shutdown":      func(c *Config) { c.ShutdownTimeout = 0 },
		"missing addr":  func(c *Config) { c.Addr = " " },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := base
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

// chdirForTest mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
