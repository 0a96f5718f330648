package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrPluginDisabled   = errors.New("notifier plugin is disabled")
	ErrChecksumMismatch = errors.New("notifier plugin checksum mismatch")
	ErrPluginTimeout    = errors.New("notifier plugin timeout")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// Manifest describes one installed notifier plugin binary.
type Manifest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Binary  string `json:"binary"`
	SHA256  string `json:"sha256"`
	Enabled bool   `json:"enabled"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("plugin name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("plugin version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("plugin binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("plugin sha256 must be lowercase 64-char hex")
	}
	return nil
}

// Metadata is what a running plugin reports about itself.
type Metadata struct {
	Name    string
	Version string
}

// Notification is one message to deliver.
type Notification struct {
	Title string
	Body  string
}

func (n Notification) Validate() error {
	if strings.TrimSpace(n.Title) == "" {
		return fmt.Errorf("notification title is required")
	}
	if strings.TrimSpace(n.Body) == "" {
		return fmt.Errorf("notification body is required")
	}
	return nil
}

// DesktopTarget names the built-in desktop channel in delivery reports.
const DesktopTarget = "desktop"

// Delivery is one channel's outcome. A failed channel never blocks the
// others.
type Delivery struct {
	Target    string
	Delivered bool
	Error     string
}
