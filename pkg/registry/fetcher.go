package registry

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Fetcher downloads a template set into a destination directory.
type Fetcher interface {
	// Fetch downloads the template from source/version to dest.
	Fetch(ctx context.Context, source, version, dest string) error
}

// GitFetcher downloads template sets from git repositories.
type GitFetcher struct{}

// Fetch implements Fetcher for git repositories, shallow-cloning either a
// specific tag or the default branch.
func (f *GitFetcher) Fetch(ctx context.Context, source, version, dest string) error {
	// go-git refuses to clone into an existing directory
	if err := os.RemoveAll(dest); err != nil {
		return fmt.Errorf("failed to clear destination: %w", err)
	}

	url := source
	if !strings.Contains(url, "://") && !strings.HasPrefix(url, "git@") {
		url = "https://" + url
	}

	cloneOpts := &git.CloneOptions{
		URL:   url,
		Depth: 1,
		Tags:  git.NoTags,
	}
	if version != "" && version != VersionLatest {
		cloneOpts.ReferenceName = plumbing.ReferenceName("refs/tags/" + version)
		cloneOpts.SingleBranch = true
	}

	if _, err := git.PlainCloneContext(ctx, dest, false, cloneOpts); err != nil {
		return fmt.Errorf("git clone failed for %s@%s: %w", url, version, err)
	}

	// the cached copy is a plain file tree, history is not needed
	if err := os.RemoveAll(filepath.Join(dest, ".git")); err != nil {
		return fmt.Errorf("failed to remove .git directory: %w", err)
	}
	return nil
}

// LocalFetcher copies template sets from a local path. Version is ignored.
type LocalFetcher struct{}

// Fetch implements Fetcher for local directories.
func (f *LocalFetcher) Fetch(ctx context.Context, source, version, dest string) error {
	info, err := os.Stat(source)
	if err != nil {
		return fmt.Errorf("local source not found: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("local source %s is not a directory", source)
	}

	if err := os.RemoveAll(dest); err != nil {
		return fmt.Errorf("failed to clear destination: %w", err)
	}
	return copyDir(source, dest)
}

// copyDir recursively copies a directory tree, preserving file modes.
func copyDir(src, dst string) error {
	src = filepath.Clean(src)
	dst = filepath.Clean(dst)

	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		dstPath := filepath.Join(dst, relPath)

		if info.IsDir() {
			return os.MkdirAll(dstPath, info.Mode())
		}
		if err := copyFile(path, dstPath, info.Mode()); err != nil {
			return fmt.Errorf("failed to copy file %s: %w", path, err)
		}
		return nil
	})
}

func copyFile(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return os.Chmod(dst, mode)
}
