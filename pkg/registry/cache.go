package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pymaker/pymaker/pkg/scaffold"
)

const (
	// VersionLatest names the cache slot for the default branch.
	VersionLatest = "latest"
)

// CachedTemplate is a template set stored in the local cache.
type CachedTemplate struct {
	Name        string            // from the manifest, or the source leaf name
	Source      string            // e.g. "github.com/user/repo"
	Version     string            // tag or "latest"
	Description string            // from the manifest, may be empty
	LocalPath   string            // absolute path in the cache
	Manifest    *TemplateManifest // nil when the set carries no manifest
}

// CacheManager handles local storage of fetched template sets.
type CacheManager struct {
	BaseDir string // root cache directory, e.g. ~/.pymaker/templates
}

// NewCacheManager creates a cache manager rooted at baseDir, defaulting to
// ~/.pymaker/templates.
func NewCacheManager(baseDir string) (*CacheManager, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		baseDir = filepath.Join(home, ".pymaker", "templates")
	}

	if err := os.MkdirAll(baseDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", baseDir, err)
	}
	return &CacheManager{BaseDir: baseDir}, nil
}

// GetPath returns the cache slot for a source and version, e.g.
// ~/.pymaker/templates/github.com/user/repo/v1.0.0.
func (c *CacheManager) GetPath(source, version string) string {
	if version == "" {
		version = VersionLatest
	}
	source = filepath.Clean(source)
	source = strings.TrimPrefix(source, "/")
	source = strings.TrimPrefix(source, "\\")

	return filepath.Join(c.BaseDir, source, version)
}

// List returns every template set in the cache, sorted by name. Cache slots
// are the directories that directly contain template entries; a slot is
// recognized by holding either a manifest or the placeholder application
// folder.
func (c *CacheManager) List() ([]CachedTemplate, error) {
	var templates []CachedTemplate

	err := filepath.Walk(c.BaseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if strings.HasPrefix(info.Name(), ".") && path != c.BaseDir {
			return filepath.SkipDir
		}

		if !c.isSlot(path) {
			return nil
		}

		relPath, err := filepath.Rel(c.BaseDir, path)
		if err != nil || relPath == "." {
			return nil
		}

		// expected layout: source/version
		version := filepath.Base(relPath)
		source := filepath.ToSlash(filepath.Dir(relPath))

		cached := CachedTemplate{
			Name:      filepath.Base(source),
			Source:    source,
			Version:   version,
			LocalPath: path,
		}
		if manifest, err := LoadManifest(path); err == nil && manifest != nil {
			cached.Name = manifest.Template.Name
			cached.Description = manifest.Template.Description
			cached.Manifest = manifest
		}

		templates = append(templates, cached)
		return filepath.SkipDir
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk cache directory: %w", err)
	}

	sort.Slice(templates, func(i, j int) bool {
		return templates[i].Name < templates[j].Name
	})
	return templates, nil
}

func (c *CacheManager) isSlot(dir string) bool {
	if _, err := os.Stat(filepath.Join(dir, scaffold.ManifestFilename)); err == nil {
		return true
	}
	info, err := os.Stat(filepath.Join(dir, scaffold.PlaceholderDir))
	return err == nil && info.IsDir()
}

// Remove deletes a template set from the cache. With an empty version every
// cached version of the source is removed.
func (c *CacheManager) Remove(source, version string) error {
	path := c.GetPath(source, version)
	if version == "" {
		// GetPath appended /latest; strip it to drop all versions
		path = filepath.Dir(path)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("template not found: %s", path)
	}
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to remove template %s: %w", path, err)
	}
	return nil
}

// Clear removes every cached template set.
func (c *CacheManager) Clear() error {
	if err := os.RemoveAll(c.BaseDir); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return os.MkdirAll(c.BaseDir, 0o750)
}
