package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pomoterm/internal/platform/config"
)

func TestNewRequiresDataDir(t *testing.T) {
	t.Parallel()
	if _, err := config.New(""); err == nil {
		t.Fatalf("expected error for empty data dir")
	}
}

func TestMissingSettingsFileYieldsDefaults(t *testing.T) {
	t.Parallel()
	cfg, err := config.New(t.TempDir())
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.Settings != config.DefaultSettings() {
		t.Fatalf("expected default settings, got %+v", cfg.Settings)
	}
	if filepath.Base(cfg.SessionsPath) != "sessions.json" {
		t.Fatalf("unexpected sessions path %s", cfg.SessionsPath)
	}
}

func TestSettingsFileOverridesDefaults(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	raw := "work_seconds: 10\nbreak_seconds: 10\ntrash_retention_days: 7\npage_size: 3\n"
	if err := os.WriteFile(filepath.Join(dir, "settings.yaml"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	want := config.Settings{WorkSeconds: 10, BreakSeconds: 10, TrashRetentionDays: 7, PageSize: 3}
	if cfg.Settings != want {
		t.Fatalf("expected %+v, got %+v", want, cfg.Settings)
	}
}

func TestPartialSettingsKeepRemainingDefaults(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "settings.yaml"), []byte("work_seconds: 1200\n"), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	cfg, err := config.New(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.Settings.WorkSeconds != 1200 {
		t.Fatalf("expected override, got %d", cfg.Settings.WorkSeconds)
	}
	if cfg.Settings.PageSize != config.DefaultSettings().PageSize {
		t.Fatalf("expected default page size, got %d", cfg.Settings.PageSize)
	}
}

func TestInvalidSettingsRejected(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"zero work duration": "work_seconds: 0\n",
		"negative retention": "trash_retention_days: -1\n",
		"zero page size":     "page_size: 0\n",
		"malformed yaml":     "work_seconds: [\n",
	}
	for name, raw := range cases {
		raw := raw
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, "settings.yaml"), []byte(raw), 0o644); err != nil {
				t.Fatalf("write settings: %v", err)
			}
			if _, err := config.New(dir); err == nil {
				t.Fatalf("expected error for %q", strings.TrimSpace(raw))
			}
		})
	}
}
