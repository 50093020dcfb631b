package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all environment-based configuration for wiki-publish.
type Config struct {
	// Page-store connection settings (all required).
	WikiBaseURL      string `env:"WIKI_BASE_URL"`
	WikiSpace        string `env:"WIKI_SPACE"`
	WikiParentPageID string `env:"WIKI_PARENT_PAGE_ID"`

	// Basic-auth credentials for the page-store API.
	Login    string `env:"WIKI_LOGIN"`
	APIToken string `env:"WIKI_API_TOKEN"`

	// Local root of the markdown tree to publish.
	PublishDir string `env:"PUBLISH_DIR"`

	// Directory holding image files referenced by markdown documents.
	// Optional; when empty, image references are rewritten but nothing
	// is attached.
	ImageDir string `env:"IMAGE_DIR"`

	// TitleSuffix marks every page this tool manages. It scopes remote
	// searches to self-managed pages and is stripped back off during
	// orphan reconciliation.
	TitleSuffix string `env:"TITLE_SUFFIX" envDefault:"(autogenerated)"`

	// Workers is the size of the bounded pool used for file upserts.
	Workers int `env:"WORKERS" envDefault:"4"`

	// EnableWatch keeps the process running and republishes the tree
	// after local changes settle.
	EnableWatch bool `env:"ENABLE_WATCH" envDefault:"false"`

	// Environment controls log format.
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
}

// warnInsecureEnvFile checks whether the .env file (if present) has
// overly permissive permissions. On Unix systems, group or world
// readable files risk exposing credentials to other users.
func warnInsecureEnvFile() {
	if runtime.GOOS == "windows" {
		return
	}

	info, err := os.Stat(".env")
	if err != nil {
		return // file does not exist, nothing to check
	}

	mode := info.Mode().Perm()
	if mode&0o077 != 0 {
		log.Printf("WARNING: .env file has insecure permissions %04o; recommended 0600", mode)
	}
}

// Load reads configuration from environment variables.
// It first attempts to load a .env file if present, then parses env vars.
func Load() (*Config, error) {
	_ = godotenv.Load()

	warnInsecureEnvFile()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	// Resolve PublishDir to an absolute path at startup. Canonical titles
	// are computed relative to it, and filepath.Rel only behaves reliably
	// when both arguments are absolute.
	absDir, err := filepath.Abs(cfg.PublishDir)
	if err != nil {
		return nil, fmt.Errorf("resolving publish dir to absolute path: %w", err)
	}

	cfg.PublishDir = absDir

	if cfg.ImageDir != "" {
		absImg, err := filepath.Abs(cfg.ImageDir)
		if err != nil {
			return nil, fmt.Errorf("resolving image dir to absolute path: %w", err)
		}

		cfg.ImageDir = absImg
	}

	// The client joins endpoint paths onto the base URL directly.
	if !strings.HasSuffix(cfg.WikiBaseURL, "/") {
		cfg.WikiBaseURL += "/"
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.WikiBaseURL == "" {
		return fmt.Errorf("WIKI_BASE_URL is required")
	}

	if c.WikiSpace == "" {
		return fmt.Errorf("WIKI_SPACE is required")
	}

	if c.WikiParentPageID == "" {
		return fmt.Errorf("WIKI_PARENT_PAGE_ID is required")
	}

	if c.Login == "" {
		return fmt.Errorf("WIKI_LOGIN is required")
	}

	if c.APIToken == "" {
		return fmt.Errorf("WIKI_API_TOKEN is required")
	}

	if c.PublishDir == "" {
		return fmt.Errorf("PUBLISH_DIR is required")
	}

	if c.TitleSuffix == "" {
		return fmt.Errorf("TITLE_SUFFIX must not be empty: reconciliation needs it to tell managed pages apart")
	}

	if c.Workers < 1 {
		return fmt.Errorf("WORKERS must be at least 1, got %d", c.Workers)
	}

	return nil
}

// IsProduction returns true when the environment is set to production.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
