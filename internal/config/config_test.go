package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearConfigEnv unsets all config env vars so tests start clean.
func clearConfigEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"WIKI_BASE_URL",
		"WIKI_SPACE",
		"WIKI_PARENT_PAGE_ID",
		"WIKI_LOGIN",
		"WIKI_API_TOKEN",
		"PUBLISH_DIR",
		"IMAGE_DIR",
		"TITLE_SUFFIX",
		"WORKERS",
		"ENABLE_WATCH",
		"ENVIRONMENT",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

// setRequiredEnv sets the minimum env vars for a valid config.
func setRequiredEnv(t *testing.T, publishDir string) {
	t.Helper()
	t.Setenv("WIKI_BASE_URL", "https://wiki.example.com/rest/api/")
	t.Setenv("WIKI_SPACE", "DOCS")
	t.Setenv("WIKI_PARENT_PAGE_ID", "12345")
	t.Setenv("WIKI_LOGIN", "bot@example.com")
	t.Setenv("WIKI_API_TOKEN", "token123")
	t.Setenv("PUBLISH_DIR", publishDir)
}

func TestLoad_Minimal(t *testing.T) {
	clearConfigEnv(t)
	dir := t.TempDir()
	setRequiredEnv(t, dir)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://wiki.example.com/rest/api/", cfg.WikiBaseURL)
	assert.Equal(t, "DOCS", cfg.WikiSpace)
	assert.Equal(t, "12345", cfg.WikiParentPageID)
	assert.Equal(t, "bot@example.com", cfg.Login)
	assert.Equal(t, "token123", cfg.APIToken)
	assert.Equal(t, dir, cfg.PublishDir)
}

func TestLoad_Defaults(t *testing.T) {
	clearConfigEnv(t)
	setRequiredEnv(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "(autogenerated)", cfg.TitleSuffix)
	assert.Equal(t, 4, cfg.Workers)
	assert.False(t, cfg.EnableWatch)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_MissingRequired(t *testing.T) {
	required := []string{
		"WIKI_BASE_URL",
		"WIKI_SPACE",
		"WIKI_PARENT_PAGE_ID",
		"WIKI_LOGIN",
		"WIKI_API_TOKEN",
		"PUBLISH_DIR",
	}

	for _, key := range required {
		t.Run(key, func(t *testing.T) {
			clearConfigEnv(t)
			setRequiredEnv(t, t.TempDir())
			t.Setenv(key, "")
			os.Unsetenv(key)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestLoad_EmptySuffixRejected(t *testing.T) {
	clearConfigEnv(t)
	setRequiredEnv(t, t.TempDir())
	t.Setenv("TITLE_SUFFIX", " ")

	// A single space is a non-empty suffix, so this is allowed.
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, " ", cfg.TitleSuffix)
}

func TestLoad_InvalidWorkers(t *testing.T) {
	clearConfigEnv(t)
	setRequiredEnv(t, t.TempDir())
	t.Setenv("WORKERS", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WORKERS")
}

func TestLoad_ResolvesRelativePublishDir(t *testing.T) {
	clearConfigEnv(t)
	setRequiredEnv(t, ".")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(cfg.PublishDir))
}

func TestLoad_AppendsBaseURLSlash(t *testing.T) {
	clearConfigEnv(t)
	setRequiredEnv(t, t.TempDir())
	t.Setenv("WIKI_BASE_URL", "https://wiki.example.com/rest/api")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://wiki.example.com/rest/api/", cfg.WikiBaseURL)
}

func TestLoad_Production(t *testing.T) {
	clearConfigEnv(t)
	setRequiredEnv(t, t.TempDir())
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}
