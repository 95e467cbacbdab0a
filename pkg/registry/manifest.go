// Package registry fetches and caches custom template sets from git
// repositories or local paths, so a settings template_folder can point at
// either.
package registry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/pymaker/pymaker/pkg/scaffold"
)

// TemplateManifest is the optional pymaker-template.toml a template set may
// carry. The file itself is never copied into generated projects.
type TemplateManifest struct {
	Template TemplateInfo `toml:"template"`
}

// TemplateInfo describes a template set.
type TemplateInfo struct {
	Name        string `toml:"name"`
	Version     string `toml:"version"`
	Description string `toml:"description"`
	Author      string `toml:"author"`

	Files FileConfig `toml:"files"`
}

// FileConfig holds glob patterns of template paths to exclude from
// enumeration.
type FileConfig struct {
	Exclude []string `toml:"exclude"`
}

// ParseManifest reads and parses a pymaker-template.toml file.
func ParseManifest(path string) (*TemplateManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return ParseManifestData(data)
}

// ParseManifestData parses manifest content from bytes.
func ParseManifestData(data []byte) (*TemplateManifest, error) {
	var manifest TemplateManifest
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &manifest, nil
}

// LoadManifest returns the manifest of the template set in dir, or nil when
// the set does not carry one. A present but unparsable manifest is an error.
func LoadManifest(dir string) (*TemplateManifest, error) {
	path := filepath.Join(dir, scaffold.ManifestFilename)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to check manifest: %w", err)
	}
	return ParseManifest(path)
}

// Validate checks the manifest's required fields.
func (m *TemplateManifest) Validate() error {
	if m.Template.Name == "" {
		return fmt.Errorf("template name is required")
	}
	return nil
}
