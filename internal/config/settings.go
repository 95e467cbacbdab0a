// Package config persists the user's defaults between runs: author details,
// preferred license and the optional custom template folder.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/pymaker/pymaker/internal/utils"
	"github.com/pymaker/pymaker/pkg/scaffold"
)

// SettingsFilename is the settings file name under the config directory.
const SettingsFilename = "settings.toml"

// Settings are the persisted user defaults. They reach the generation
// pipeline only as already-resolved ProjectValues fields.
type Settings struct {
	AuthorName         string `toml:"author_name"`
	AuthorEmail        string `toml:"author_email"`
	DefaultLicense     string `toml:"default_license"`
	UseDefaultTemplate bool   `toml:"use_default_template"`
	TemplateFolder     string `toml:"template_folder"`

	path string
}

// DefaultDir returns the per-user configuration directory (~/.pymaker).
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".pymaker"), nil
}

// Load reads the settings file under dir, creating it with defaults when it
// does not exist yet. An empty dir selects the default directory.
func Load(dir string) (*Settings, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return nil, err
		}
	}

	settings := &Settings{
		DefaultLicense:     scaffold.LicenseNone,
		UseDefaultTemplate: true,
		path:               filepath.Join(dir, SettingsFilename),
	}

	if !utils.FileExists(settings.path) {
		if err := settings.Save(); err != nil {
			return nil, err
		}
		return settings, nil
	}

	if _, err := toml.DecodeFile(settings.path, settings); err != nil {
		return nil, fmt.Errorf("cannot parse settings file %s: %w", settings.path, err)
	}
	return settings, nil
}

// Save writes the settings back to their file, creating the directory when
// needed.
func (s *Settings) Save() error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s); err != nil {
		return fmt.Errorf("cannot encode settings: %w", err)
	}
	if err := utils.WriteFile(s.path, buf.Bytes()); err != nil {
		return fmt.Errorf("cannot write settings file %s: %w", s.path, err)
	}
	return nil
}

// Path returns the backing file path.
func (s *Settings) Path() string { return s.path }

// Set updates a settings key by its toml name.
func (s *Settings) Set(key, value string) error {
	switch key {
	case "author_name":
		s.AuthorName = value
	case "author_email":
		s.AuthorEmail = value
	case "default_license":
		if !scaffold.ValidLicense(value) {
			return utils.NewValidationError(key, fmt.Sprintf("unknown license %q", value))
		}
		s.DefaultLicense = value
	case "use_default_template":
		s.UseDefaultTemplate = value == "true"
	case "template_folder":
		s.TemplateFolder = value
	default:
		return utils.NewValidationError(key, "unknown settings key")
	}
	return s.Save()
}

// Items returns the settings as ordered key/value pairs for display.
func (s *Settings) Items() [][2]string {
	return [][2]string{
		{"author_name", s.AuthorName},
		{"author_email", s.AuthorEmail},
		{"default_license", s.DefaultLicense},
		{"use_default_template", fmt.Sprintf("%t", s.UseDefaultTemplate)},
		{"template_folder", s.TemplateFolder},
	}
}
