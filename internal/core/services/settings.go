package services

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/sectrack/internal/core/ports/driven"
)

// Config keys read by ParseSettings.
const (
	KeySecurityLabel = "sync.security_label"
	KeyDataDir       = "storage.data_dir"
	KeyOutputFormat  = "output.format"
)

// DefaultOutputFormat picks text or JSON from the output stream.
const DefaultOutputFormat = "auto"

// Settings holds the application settings outside the GitHub connection.
type Settings struct {
	// SecurityLabel is the label that marks a pull request relevant.
	SecurityLabel string

	// DataDir is where the state database lives. Empty selects the
	// store's default location.
	DataDir string

	// OutputFormat is auto, json or text.
	OutputFormat string
}

// ParseSettings reads settings from the config store, applying defaults.
// A leading "~/" in DataDir is expanded to the home directory.
func ParseSettings(cfg driven.ConfigStore) *Settings {
	s := &Settings{
		SecurityLabel: DefaultSecurityLabel,
		OutputFormat:  DefaultOutputFormat,
	}
	if cfg == nil {
		return s
	}

	// The label is matched exactly, so only an unset value falls back.
	if label := cfg.GetString(KeySecurityLabel); label != "" {
		s.SecurityLabel = label
	}
	if format := strings.TrimSpace(cfg.GetString(KeyOutputFormat)); format != "" {
		s.OutputFormat = strings.ToLower(format)
	}
	s.DataDir = expandHome(strings.TrimSpace(cfg.GetString(KeyDataDir)))

	return s
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
