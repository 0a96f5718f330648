package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings are the user-tunable knobs read from settings.yaml in the data
// directory. A missing file yields the defaults; an unreadable or invalid
// file is an error rather than a silent fallback.
type Settings struct {
	WorkSeconds        int `yaml:"work_seconds"`
	BreakSeconds       int `yaml:"break_seconds"`
	TrashRetentionDays int `yaml:"trash_retention_days"`
	PageSize           int `yaml:"page_size"`
}

func DefaultSettings() Settings {
	return Settings{
		WorkSeconds:        25 * 60,
		BreakSeconds:       5 * 60,
		TrashRetentionDays: 30,
		PageSize:           5,
	}
}

func (s Settings) Validate() error {
	if s.WorkSeconds < 1 {
		return fmt.Errorf("work_seconds must be at least 1, got %d", s.WorkSeconds)
	}
	if s.BreakSeconds < 1 {
		return fmt.Errorf("break_seconds must be at least 1, got %d", s.BreakSeconds)
	}
	if s.TrashRetentionDays < 0 {
		return fmt.Errorf("trash_retention_days must not be negative, got %d", s.TrashRetentionDays)
	}
	if s.PageSize < 1 {
		return fmt.Errorf("page_size must be at least 1, got %d", s.PageSize)
	}
	return nil
}

type Config struct {
	DataDir      string
	SessionsPath string
	TasksPath    string
	MessagesPath string
	StateDir     string
	DBPath       string
	PluginsPath  string
	Settings     Settings
}

func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data directory is required")
	}
	settings, err := loadSettings(filepath.Join(dataDir, "settings.yaml"))
	if err != nil {
		return Config{}, err
	}
	return Config{
		DataDir:      dataDir,
		SessionsPath: filepath.Join(dataDir, "sessions.json"),
		TasksPath:    filepath.Join(dataDir, "tasks.json"),
		MessagesPath: filepath.Join(dataDir, "messages.json"),
		StateDir:     filepath.Join(dataDir, "state"),
		DBPath:       filepath.Join(dataDir, "history.db"),
		PluginsPath:  filepath.Join(dataDir, "plugins"),
		Settings:     settings,
	}, nil
}

// DefaultDataDir is the fallback for the --data flag: the platform config
// directory, or the working directory when that cannot be resolved.
func DefaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, "pomoterm")
}

func loadSettings(path string) (Settings, error) {
	settings := DefaultSettings()
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(raw, &settings); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, fmt.Errorf("settings %s: %w", path, err)
	}
	return settings, nil
}
