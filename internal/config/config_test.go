package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LASTSEEN_HOME", "/home/alice")

	cfg := Load()
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %s", cfg.LogLevel)
	}
	if cfg.Home != "/home/alice" {
		t.Errorf("expected home /home/alice, got %s", cfg.Home)
	}
	if cfg.ArchiveDriver != "sqlite" {
		t.Errorf("expected default driver sqlite, got %s", cfg.ArchiveDriver)
	}
	if want := "/home/alice/.local/share/lastseen/archive.db"; cfg.ArchiveDSN != want {
		t.Errorf("expected default DSN %s, got %s", want, cfg.ArchiveDSN)
	}
	if len(cfg.LocatorOptions()) != 0 {
		t.Errorf("expected no locator overrides, got %d", len(cfg.LocatorOptions()))
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LASTSEEN_HOME", "/home/alice")
	t.Setenv("LASTSEEN_LOG_LEVEL", "debug")
	t.Setenv("LASTSEEN_WTMP", "/tmp/wtmp")
	t.Setenv("LASTSEEN_BTMP", "/tmp/btmp")
	t.Setenv("LASTSEEN_RECENT_DIR", "/tmp/recent")
	t.Setenv("LASTSEEN_ARCHIVE_DRIVER", "postgres")
	t.Setenv("LASTSEEN_ARCHIVE_DSN", "postgres://localhost/lastseen")

	cfg := Load()
	if cfg.LogLevel != "debug" {
		t.Errorf("expected log level debug, got %s", cfg.LogLevel)
	}
	if cfg.ArchiveDriver != "postgres" {
		t.Errorf("expected driver postgres, got %s", cfg.ArchiveDriver)
	}
	if cfg.ArchiveDSN != "postgres://localhost/lastseen" {
		t.Errorf("expected DSN postgres://localhost/lastseen, got %s", cfg.ArchiveDSN)
	}
	if got := len(cfg.LocatorOptions()); got != 3 {
		t.Errorf("expected 3 locator overrides, got %d", got)
	}
}
