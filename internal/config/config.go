// Package config loads the application configuration from environment
// variables.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/cdtdelta/lastseen/internal/sources"
)

// Config holds all application configuration.
type Config struct {
	LogLevel string
	Home     string

	// Artifact path overrides; empty means the locator default.
	RecentDir string
	WtmpPath  string
	BtmpPath  string

	ArchiveDriver string
	ArchiveDSN    string
}

// Load reads configuration from environment variables with defaults.
// A .env file in the working directory is folded in first when
// present; a missing file is fine.
func Load() *Config {
	godotenv.Load()

	home := getEnv("LASTSEEN_HOME", "")
	if home == "" {
		if h, err := os.UserHomeDir(); err == nil {
			home = h
		}
	}

	return &Config{
		LogLevel:      getEnv("LASTSEEN_LOG_LEVEL", "info"),
		Home:          home,
		RecentDir:     getEnv("LASTSEEN_RECENT_DIR", ""),
		WtmpPath:      getEnv("LASTSEEN_WTMP", ""),
		BtmpPath:      getEnv("LASTSEEN_BTMP", ""),
		ArchiveDriver: getEnv("LASTSEEN_ARCHIVE_DRIVER", "sqlite"),
		ArchiveDSN: getEnv("LASTSEEN_ARCHIVE_DSN",
			filepath.Join(home, ".local", "share", "lastseen", "archive.db")),
	}
}

// LocatorOptions converts the configured path overrides into locator
// options, skipping the ones left at their defaults.
func (c *Config) LocatorOptions() []sources.Option {
	var opts []sources.Option
	if c.RecentDir != "" {
		opts = append(opts, sources.WithRecentDir(c.RecentDir))
	}
	if c.WtmpPath != "" {
		opts = append(opts, sources.WithWtmp(c.WtmpPath))
	}
	if c.BtmpPath != "" {
		opts = append(opts, sources.WithBtmp(c.BtmpPath))
	}
	return opts
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
