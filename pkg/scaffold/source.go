package scaffold

import (
	"io/fs"
	"os"
	"path"
	"strings"
)

// TemplateSuffix marks files that pass through the renderer. The suffix is
// stripped from the destination name.
const TemplateSuffix = ".tmpl"

// ManifestFilename is the optional manifest a custom template source may
// carry. It describes the template and is never copied into a project.
const ManifestFilename = "pymaker-template.toml"

// Names excluded from enumeration in every source.
var skipNames = map[string]bool{
	".git":        true,
	"__pycache__": true,
}

// LicensesDir is the bundled license directory. It is enumerated by the
// license emitter, never by the default source, and only the default source
// skips it; a custom source may ship a licenses folder of its own.
const LicensesDir = "licenses"

// EntryKind classifies a template source entry.
type EntryKind int

const (
	KindDir      EntryKind = iota // created, never rendered
	KindStatic                    // copied byte-for-byte
	KindTemplate                  // rendered, suffix stripped
)

// Entry is one enumerated template source entry.
type Entry struct {
	// Path is the slash-separated path relative to the source root.
	Path string
	Kind EntryKind
}

// Dest returns the destination path relative to the project root, with the
// template suffix stripped for template entries.
func (e Entry) Dest() string {
	if e.Kind == KindTemplate {
		return strings.TrimSuffix(e.Path, TemplateSuffix)
	}
	return e.Path
}

// Source is a readable tree of template entries. The default source is the
// bundled embed.FS; custom sources are user directories or fetched template
// repositories.
type Source struct {
	Name    string
	fsys    fs.FS
	exclude []string
	// rootSkips holds root-level directory names to leave out of the
	// enumeration. Only the bundled default source sets it.
	rootSkips []string
}

// NewSource wraps an fs.FS as a template source. exclude holds path globs
// (from a template manifest) whose matches are skipped.
func NewSource(name string, fsys fs.FS, exclude ...string) *Source {
	return &Source{Name: name, fsys: fsys, exclude: exclude}
}

// NewDirSource opens a custom template source rooted at an on-disk
// directory. A missing or unreadable root yields SourceUnavailableError.
func NewDirSource(root string, exclude ...string) (*Source, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, &SourceUnavailableError{Root: root, Err: err}
	}
	if !info.IsDir() {
		return nil, &SourceUnavailableError{Root: root, Err: fs.ErrInvalid}
	}
	return NewSource(root, os.DirFS(root), exclude...), nil
}

// Classify tags a single entry by name.
func Classify(name string, isDir bool) EntryKind {
	switch {
	case isDir:
		return KindDir
	case strings.HasSuffix(name, TemplateSuffix):
		return KindTemplate
	default:
		return KindStatic
	}
}

// ListEntries walks the source and returns its entries in lexical order, so
// a parent directory always precedes the entries below it.
func (s *Source) ListEntries() ([]Entry, error) {
	var entries []Entry
	err := fs.WalkDir(s.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p == "." {
			return nil
		}
		if skipNames[d.Name()] || d.Name() == ManifestFilename {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() && s.skippedRoot(p) {
			return fs.SkipDir
		}
		if s.excluded(p) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		entries = append(entries, Entry{Path: p, Kind: Classify(d.Name(), d.IsDir())})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// ReadFile reads a file entry's bytes.
func (s *Source) ReadFile(p string) ([]byte, error) {
	return fs.ReadFile(s.fsys, p)
}

// skippedRoot reports whether p is a skipped root-level directory. Nested
// directories with the same name are enumerated as usual.
func (s *Source) skippedRoot(p string) bool {
	for _, name := range s.rootSkips {
		if p == name {
			return true
		}
	}
	return false
}

func (s *Source) excluded(p string) bool {
	for _, glob := range s.exclude {
		if ok, _ := path.Match(glob, p); ok {
			return true
		}
	}
	return false
}
