package conf_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lambda-feedback/edgeroute/util/conf"
)

type nestedConfig struct {
	Hostname      string `conf:"hostname"`
	DefaultObject string `conf:"default_object"`
}

type testConfig struct {
	LogLevel string       `conf:"log_level"`
	Port     int          `conf:"port"`
	Nested   nestedConfig `conf:"nested"`
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := conf.Parse[testConfig](conf.ParseOptions{
		Defaults: conf.DefaultConfig{
			"log_level":             "info",
			"nested.default_object": "/index.html",
		},
		EnvPrefix: "EDGETEST_",
	})
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "/index.html", cfg.Nested.DefaultObject)
}

func TestParse_Env(t *testing.T) {
	t.Setenv("EDGETEST_LOG_LEVEL", "debug")
	t.Setenv("EDGETEST_PORT", "9000")
	t.Setenv("EDGETEST_NESTED__HOSTNAME", "example.org")

	cfg, err := conf.Parse[testConfig](conf.ParseOptions{
		Defaults:  conf.DefaultConfig{"log_level": "info"},
		EnvPrefix: "EDGETEST_",
	})
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "example.org", cfg.Nested.Hostname)
}

func TestParse_JSONFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "config.json")
	data := `{"log_level":"warn","nested":{"hostname":"example.org"}}`
	require.NoError(t, os.WriteFile(name, []byte(data), 0o600))

	cfg, err := conf.Parse[testConfig](conf.ParseOptions{
		FileName:  name,
		EnvPrefix: "EDGETEST_",
	})
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "example.org", cfg.Nested.Hostname)
}

func TestParse_DotenvFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "edge.env")
	data := "LOG_LEVEL=error\nNESTED__DEFAULT_OBJECT=/main.html\n"
	require.NoError(t, os.WriteFile(name, []byte(data), 0o600))

	cfg, err := conf.Parse[testConfig](conf.ParseOptions{
		FileName:  name,
		EnvPrefix: "EDGETEST_",
	})
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "/main.html", cfg.Nested.DefaultObject)
}

func TestParse_MissingFile(t *testing.T) {
	_, err := conf.Parse[testConfig](conf.ParseOptions{
		FileName:  filepath.Join(t.TempDir(), "missing.json"),
		EnvPrefix: "EDGETEST_",
	})
	assert.Error(t, err)
}
