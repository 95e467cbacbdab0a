package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Well-known option flag names.
const (
	OptionTest           = "test"
	OptionGit            = "git"
	OptionAcceptDefaults = "accept_defaults"
	OptionDocs           = "docs"
)

// Layout constants every bundled or custom template set must honor.
const (
	// PlaceholderDir is the application folder every template produces; the
	// restructuring step renames or removes it.
	PlaceholderDir = "app"
	// EntryPointFile is the file hoisted to the project root in standalone
	// mode.
	EntryPointFile = "main.py"
	// TestsDir is removed when the test option is off.
	TestsDir = "tests"
)

// Engine orchestrates a single generation run: validate the target, create
// it, execute the merged write plan, emit the license and restructure the
// tree. It owns the target directory for the duration of the run and never
// retries or rolls back; a failed run may leave a partial tree behind.
type Engine struct {
	values   *ProjectValues
	options  map[string]bool
	sources  []*Source
	renderer *Renderer
	workDir  string
	log      zerolog.Logger
}

// NewEngine builds an engine over the bundled default source. values must
// already be validated and is treated as read-only.
func NewEngine(values *ProjectValues, options map[string]bool, workDir string, log zerolog.Logger) *Engine {
	if options == nil {
		options = map[string]bool{}
	}
	return &Engine{
		values:   values,
		options:  options,
		sources:  []*Source{DefaultSource()},
		renderer: NewRenderer(),
		workDir:  workDir,
		log:      log,
	}
}

// AddSource appends a custom source. Later sources win when they produce the
// same destination path as an earlier one.
func (e *Engine) AddSource(s *Source) { e.sources = append(e.sources, s) }

// SetSources replaces the source list entirely. Used when the settings
// disable the bundled default template.
func (e *Engine) SetSources(sources ...*Source) { e.sources = sources }

// Run executes the pipeline for location, a single directory name relative
// to the engine's working directory ("." targets the working directory
// itself).
func (e *Engine) Run(location string) error {
	if err := e.validateLocation(location); err != nil {
		return err
	}
	e.values.ProjectDir = filepath.Join(e.workDir, location)

	if err := e.validateTarget(); err != nil {
		return err
	}
	if err := e.createRoot(location); err != nil {
		return err
	}

	plan, err := e.buildPlan()
	if err != nil {
		return err
	}
	if err := e.executePlan(plan); err != nil {
		return err
	}

	if e.values.License != "" && e.values.License != LicenseNone {
		e.log.Debug().Str("license", e.values.License).Msg("emitting license file")
		if err := EmitLicense(e.values.ProjectDir, e.values.License, e.values.Author, time.Now().Year()); err != nil {
			return err
		}
	}

	return e.restructure()
}

// validateLocation rejects multi-segment locations; the target must be a
// single directory name under the working directory.
func (e *Engine) validateLocation(location string) error {
	if location == "" {
		return ErrLocationNotSimple
	}
	clean := filepath.Clean(location)
	if clean != "." && (filepath.IsAbs(clean) || strings.ContainsRune(clean, filepath.Separator) || clean == "..") {
		return ErrLocationNotSimple
	}
	return nil
}

// validateTarget enforces the pre-condition that the target holds no files.
// The check runs once; the run owns the directory afterwards.
func (e *Engine) validateTarget() error {
	entries, err := os.ReadDir(e.values.ProjectDir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	case err != nil:
		return err
	case len(entries) > 0:
		return fmt.Errorf("%w: %s", ErrTargetNotEmpty, e.values.ProjectDir)
	}
	return nil
}

func (e *Engine) createRoot(location string) error {
	if location == "." {
		return nil
	}
	err := os.Mkdir(e.values.ProjectDir, 0o750)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrExist) && e.isOwnEmptyDir():
		// the target passed validation as an existing empty directory
		return nil
	case errors.Is(err, fs.ErrExist):
		return fmt.Errorf("%w: %s", ErrTargetExists, e.values.ProjectDir)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	default:
		return err
	}
}

func (e *Engine) isOwnEmptyDir() bool {
	entries, err := os.ReadDir(e.values.ProjectDir)
	return err == nil && len(entries) == 0
}

// planEntry pairs an entry with the source that will supply its content.
type planEntry struct {
	Entry
	src *Source
}

// buildPlan merges every source's enumeration into one write plan keyed by
// destination path. Files from later sources overwrite earlier ones;
// directories merge. The result is ordered lexically so parent directories
// always precede their children.
func (e *Engine) buildPlan() ([]planEntry, error) {
	plan := map[string]planEntry{}
	for _, src := range e.sources {
		entries, err := src.ListEntries()
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			dest := entry.Dest()
			if prev, ok := plan[dest]; ok && prev.Kind == KindDir && entry.Kind == KindDir {
				continue
			}
			plan[dest] = planEntry{Entry: entry, src: src}
		}
	}

	dests := make([]string, 0, len(plan))
	for dest := range plan {
		dests = append(dests, dest)
	}
	sort.Strings(dests)

	ordered := make([]planEntry, 0, len(dests))
	for _, dest := range dests {
		ordered = append(ordered, plan[dest])
	}
	return ordered, nil
}

// executePlan materializes the plan in order. Any I/O failure aborts the run
// with the underlying error; nothing is retried or cleaned up.
func (e *Engine) executePlan(plan []planEntry) error {
	ctx := NewContext(e.values, e.options)

	for _, pe := range plan {
		dest := filepath.Join(e.values.ProjectDir, filepath.FromSlash(pe.Dest()))

		switch pe.Kind {
		case KindDir:
			if err := os.MkdirAll(dest, 0o750); err != nil {
				return err
			}

		case KindStatic:
			content, err := pe.src.ReadFile(pe.Path)
			if err != nil {
				return err
			}
			if err := os.WriteFile(dest, content, 0o644); err != nil {
				return err
			}

		case KindTemplate:
			content, err := pe.src.ReadFile(pe.Path)
			if err != nil {
				return err
			}
			rendered, err := e.renderer.Render(pe.Path, content, ctx)
			if err != nil {
				return err
			}
			if err := os.WriteFile(dest, []byte(rendered), 0o644); err != nil {
				return err
			}
		}

		e.log.Debug().Str("source", pe.src.Name).Str("path", pe.Dest()).Msg("wrote entry")
	}
	return nil
}

// restructure applies the packaging-mode branch and the optional tests
// removal. Exactly one of rename-or-hoist happens per run.
func (e *Engine) restructure() error {
	appDir := filepath.Join(e.values.ProjectDir, PlaceholderDir)

	switch e.values.Mode() {
	case ModePackage:
		if _, err := os.Stat(appDir); errors.Is(err, fs.ErrNotExist) {
			return &StructureError{Path: PlaceholderDir, Reason: "template set produced no placeholder application folder"}
		} else if err != nil {
			return err
		}
		if err := os.Rename(appDir, filepath.Join(e.values.ProjectDir, e.values.PackageName)); err != nil {
			return err
		}

	case ModeStandalone:
		entry := filepath.Join(appDir, EntryPointFile)
		if err := os.Rename(entry, filepath.Join(e.values.ProjectDir, EntryPointFile)); err != nil {
			return err
		}
		if err := os.RemoveAll(appDir); err != nil {
			return err
		}
	}

	if !e.options[OptionTest] {
		if err := os.RemoveAll(filepath.Join(e.values.ProjectDir, TestsDir)); err != nil {
			return err
		}
	}
	return nil
}

func slugOf(projectDir string) string {
	return filepath.Base(projectDir)
}
