package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleConfig struct {
	Port      int           `env:"SF_TEST_PORT" envDefault:"8080"`
	CookieTTL time.Duration `env:"SF_TEST_COOKIE_TTL" envDefault:"168h"`
	Origins   []string      `env:"SF_TEST_ORIGINS" envSeparator:","`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg sampleConfig
	require.NoError(t, Load(&cfg))
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 7*24*time.Hour, cfg.CookieTTL)
	assert.Empty(t, cfg.Origins)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("SF_TEST_PORT", "9090")
	t.Setenv("SF_TEST_ORIGINS", "https://a.example,https://b.example")

	var cfg sampleConfig
	require.NoError(t, Load(&cfg))
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Origins)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("SF_TEST_PORT", "eighty")

	var cfg sampleConfig
	err := Load(&cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_DotenvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SF_TEST_DOTENV_PORT=7070\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("SF_TEST_DOTENV_PORT") })

	var cfg struct {
		Port int `env:"SF_TEST_DOTENV_PORT" envDefault:"1"`
	}
	require.NoError(t, Load(&cfg, path))
	assert.Equal(t, 7070, cfg.Port)
}

func TestLoad_MissingDotenvIgnored(t *testing.T) {
	var cfg sampleConfig
	require.NoError(t, Load(&cfg, filepath.Join(t.TempDir(), "absent.env")))
	assert.Equal(t, 8080, cfg.Port)
}
