package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	require.NoError(t, err)
	assert.Equal(t, defaultPort, cfg.Port)
	assert.Equal(t, ":4000", cfg.Addr())
	assert.Equal(t, seedSourceBuiltin, cfg.Seed.Source)
	assert.Equal(t, idStrategyUUID, cfg.IDs)
	assert.Equal(t, "cards.json", cfg.Seed.S3.Key)
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Setenv("PORT", "")
	path := writeConfig(t, `
port: 8081
ids: sequence
static_dir: ./static
seed:
  source: S3
  s3:
    endpoint: http://localhost:9000
    bucket: helpcenter
    use_path_style: true
log:
  level: debug
  format: json
`)
	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, idStrategySequence, cfg.IDs)
	assert.Equal(t, "./static", cfg.StaticDir)
	assert.Equal(t, seedSourceS3, cfg.Seed.Source)
	assert.Equal(t, "helpcenter", cfg.Seed.S3.Bucket)
	assert.Equal(t, "cards.json", cfg.Seed.S3.Key)
	assert.True(t, cfg.Seed.S3.UsePathStyle)
	assert.Equal(t, LogConfig{Level: "debug", Format: "json"}, cfg.Log)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "5050")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "json")
	cfg, err := loadConfig(writeConfig(t, "port: 8081\n"))
	require.NoError(t, err)
	assert.Equal(t, 5050, cfg.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Setenv("PORT", "")
	cases := map[string]string{
		"malformed yaml":    "port: [",
		"port range":        "port: 70000\n",
		"id strategy":       "ids: time\n",
		"seed source":       "seed:\n  source: redis\n",
		"seed file":         "seed:\n  source: file\n",
		"s3 without bucket": "seed:\n  source: s3\n  s3:\n    endpoint: http://x\n",
		"log level":         "log:\n  level: loud\n",
		"log format":        "log:\n  format: xml\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfigBadPortEnv(t *testing.T) {
	t.Setenv("PORT", "http")
	_, err := loadConfig(filepath.Join(t.TempDir(), "absent.yml"))
	assert.ErrorContains(t, err, "invalid PORT")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := newLogger(LogConfig{Level: "warn", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "id", "7")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"id":"7"`)

	_, err = newLogger(LogConfig{Level: "info", Format: "xml"}, &buf)
	assert.Error(t, err)
}
