package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_CreatesFromEmbeddedAsset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", DefaultFileName)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.FileExists(t, path)

	assert.Equal(t, "en", cfg.DefaultLanguage)
	assert.Equal(t, "txt", cfg.TranscriptFormat)
	assert.True(t, cfg.Timestamps)
	assert.Equal(t, 15*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "https://www.youtube.com", cfg.Fetch.BaseURL)
	assert.Equal(t, "127.0.0.1:8787", cfg.Server.Addr)
	assert.Equal(t, CurrentConfigVersion, cfg.ConfigVersion)
	assert.Equal(t, path, cfg.Path())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	content := strings.Join([]string{
		"default_language: fr",
		"transcript_format: MD",
		"prefetch_concurrency: 0",
		"fetch:",
		"  timeout: 3s",
		"  base_url: http://127.0.0.1:9999/",
		"config_version: 1",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "fr", cfg.DefaultLanguage)
	assert.Equal(t, "md", cfg.TranscriptFormat)
	assert.Equal(t, 1, cfg.PrefetchConcurrency)
	assert.Equal(t, 3*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "http://127.0.0.1:9999", cfg.Fetch.BaseURL)
	// champs absents : valeurs par défaut
	assert.Equal(t, int64(10_000_000), cfg.Fetch.MaxBytes)
	assert.True(t, cfg.SaveInSubdir)
}

func TestLoad_MigratesUnversionedFileWithBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("default_language: de\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, CurrentConfigVersion, cfg.ConfigVersion)
	assert.Equal(t, "de", cfg.DefaultLanguage)

	backups, err := filepath.Glob(path + ".bak.*")
	require.NoError(t, err)
	assert.Len(t, backups, 1)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "config_version: 1")
	assert.Contains(t, string(data), "default_language: de")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "default_language: [oops"},
		{"bad language", "default_language: not a language\nconfig_version: 1"},
		{"bad format", "transcript_format: srt\nconfig_version: 1"},
		{"bad addr", "server:\n  addr: nope\nconfig_version: 1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), DefaultFileName)
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvCookie, "SID=xyz")
	t.Setenv(EnvDefaultLanguage, "es")
	t.Setenv(EnvLogLevel, "DEBUG")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, "SID=xyz", cfg.Fetch.Cookie)
	assert.Equal(t, "es", cfg.DefaultLanguage)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte(EnvCookie+"=FROM_FILE\n"), 0o644))

	t.Setenv(EnvCookie, "")
	os.Unsetenv(EnvCookie)
	require.NoError(t, LoadDotEnv(envPath, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "FROM_FILE", os.Getenv(EnvCookie))
}
