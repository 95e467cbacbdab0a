package registry

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

const (
	FetcherTypeGit   = "git"
	FetcherTypeLocal = "local"
)

// Resolver turns a template reference into a cached template, fetching on a
// cache miss.
type Resolver struct {
	cache    *CacheManager
	fetchers map[string]Fetcher
}

// NewResolver creates a resolver over a cache.
func NewResolver(cache *CacheManager) *Resolver {
	return &Resolver{
		cache: cache,
		fetchers: map[string]Fetcher{
			FetcherTypeGit:   &GitFetcher{},
			FetcherTypeLocal: &LocalFetcher{},
		},
	}
}

// Resolve locates a template set, fetching it if necessary. Source can be:
//   - a git URL: github.com/user/repo or https://github.com/user/repo
//   - a versioned ref: github.com/user/repo@v1.0.0
//   - a local path: ./my-template or /abs/path/to/template
func (r *Resolver) Resolve(ctx context.Context, sourceRef string) (*CachedTemplate, error) {
	source, version := parseSourceRef(sourceRef)
	isLocal := isLocalPath(source)

	fetcherType := FetcherTypeGit
	cacheKey := source
	if isLocal {
		fetcherType = FetcherTypeLocal
		if abs, err := filepath.Abs(source); err == nil {
			source = abs
		}
		cacheKey = "local/" + filepath.Base(source)
	}

	destPath := r.cache.GetPath(cacheKey, version)

	if r.cache.isSlot(destPath) {
		return r.loadFromCache(destPath, cacheKey, version)
	}

	fetcher := r.fetchers[fetcherType]
	if err := fetcher.Fetch(ctx, source, version, destPath); err != nil {
		return nil, fmt.Errorf("failed to fetch template: %w", err)
	}
	return r.loadFromCache(destPath, cacheKey, version)
}

func (r *Resolver) loadFromCache(path, source, version string) (*CachedTemplate, error) {
	cached := &CachedTemplate{
		Name:      filepath.Base(source),
		Source:    source,
		Version:   version,
		LocalPath: path,
	}

	manifest, err := LoadManifest(path)
	if err != nil {
		return nil, fmt.Errorf("invalid template manifest: %w", err)
	}
	if manifest != nil {
		if err := manifest.Validate(); err != nil {
			return nil, fmt.Errorf("invalid template manifest: %w", err)
		}
		cached.Name = manifest.Template.Name
		cached.Description = manifest.Template.Description
		cached.Manifest = manifest
	}
	return cached, nil
}

// parseSourceRef splits "source@version"; a trailing @tag is a version, a
// leading git@host is auth and left alone.
func parseSourceRef(ref string) (string, string) {
	lastIdx := strings.LastIndex(ref, "@")
	if lastIdx > 0 && !strings.Contains(ref[lastIdx:], ":") {
		return ref[:lastIdx], ref[lastIdx+1:]
	}
	return ref, VersionLatest
}

func isLocalPath(s string) bool {
	if strings.Contains(s, "://") || strings.HasPrefix(s, "git@") {
		return false
	}
	return strings.HasPrefix(s, ".") ||
		filepath.IsAbs(s) ||
		!strings.Contains(s, ".")
}
