package scaffold

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"
)

func testEngine(t *testing.T, values *ProjectValues, options map[string]bool) (*Engine, string) {
	t.Helper()
	workDir := t.TempDir()
	return NewEngine(values, options, workDir, zerolog.Nop()), workDir
}

func fullValues(pkgName string) *ProjectValues {
	return &ProjectValues{
		Name:        "My Project",
		PackageName: pkgName,
		Description: "A generated project",
		Author:      "Grace Hopper",
		Email:       "grace@example.com",
		Repository:  "https://github.com/grace/my_project",
		License:     "MIT",
		Standalone:  pkgName == StandaloneSentinel,
	}
}

func mustNotExist(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("%s should not exist", path)
	}
}

func mustExist(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("%s should exist: %v", path, err)
	}
}

func TestGeneratePackageProject(t *testing.T) {
	values := fullValues("my_lib")
	engine, workDir := testEngine(t, values, map[string]bool{OptionTest: false})

	if err := engine.Run("myproj"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	projectDir := filepath.Join(workDir, "myproj")
	if values.ProjectDir != projectDir {
		t.Errorf("ProjectDir = %q, want %q", values.ProjectDir, projectDir)
	}

	// placeholder renamed, never both present
	mustExist(t, filepath.Join(projectDir, "my_lib", "main.py"))
	mustExist(t, filepath.Join(projectDir, "my_lib", "__init__.py"))
	mustNotExist(t, filepath.Join(projectDir, PlaceholderDir))
	mustNotExist(t, filepath.Join(projectDir, EntryPointFile))

	// tests removed when the option is off
	mustNotExist(t, filepath.Join(projectDir, TestsDir))

	// rendered files with the suffix stripped
	mustExist(t, filepath.Join(projectDir, "README.md"))
	mustExist(t, filepath.Join(projectDir, ".gitignore"))
	mustNotExist(t, filepath.Join(projectDir, "README.md"+TemplateSuffix))

	t.Run("LicenseFile", func(t *testing.T) {
		content, err := os.ReadFile(filepath.Join(projectDir, LicenseFilename))
		if err != nil {
			t.Fatalf("license file missing: %v", err)
		}
		text := string(content)
		if !strings.Contains(text, "MIT License") {
			t.Error("license file does not contain the MIT text")
		}
		if !strings.Contains(text, "Grace Hopper") {
			t.Error("license file does not name the author")
		}
		if !strings.Contains(text, fmt.Sprintf("%d", time.Now().Year())) {
			t.Error("license file does not contain the current year")
		}
	})

	t.Run("DescriptorParseable", func(t *testing.T) {
		content, err := os.ReadFile(filepath.Join(projectDir, "pyproject.toml"))
		if err != nil {
			t.Fatalf("descriptor missing: %v", err)
		}

		var doc struct {
			Tool struct {
				Poetry struct {
					Name        string   `toml:"name"`
					Description string   `toml:"description"`
					Authors     []string `toml:"authors"`
				} `toml:"poetry"`
			} `toml:"tool"`
		}
		if err := toml.Unmarshal(content, &doc); err != nil {
			t.Fatalf("rendered descriptor is not parseable TOML: %v", err)
		}
		if doc.Tool.Poetry.Name != "myproj" {
			t.Errorf("descriptor name = %q, want slug myproj", doc.Tool.Poetry.Name)
		}
		if len(doc.Tool.Poetry.Authors) != 1 || !strings.Contains(doc.Tool.Poetry.Authors[0], "grace@example.com") {
			t.Errorf("descriptor authors = %v", doc.Tool.Poetry.Authors)
		}
	})

	t.Run("NoUnresolvedPlaceholders", func(t *testing.T) {
		err := filepath.Walk(projectDir, func(path string, info os.FileInfo, err error) error {
			if err != nil || info.IsDir() {
				return err
			}
			content, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			if strings.Contains(string(content), "{{") {
				t.Errorf("%s still contains template markers", path)
			}
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}
	})
}

func TestGenerateStandaloneProject(t *testing.T) {
	values := fullValues(StandaloneSentinel)
	engine, workDir := testEngine(t, values, map[string]bool{OptionTest: true})

	if err := engine.Run("script"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	projectDir := filepath.Join(workDir, "script")

	// entry point hoisted, placeholder gone entirely
	mustExist(t, filepath.Join(projectDir, EntryPointFile))
	mustNotExist(t, filepath.Join(projectDir, PlaceholderDir))

	// tests retained this time
	mustExist(t, filepath.Join(projectDir, TestsDir, "test_main.py"))
}

func TestGenerateTargetNotEmpty(t *testing.T) {
	values := fullValues("my_lib")
	engine, workDir := testEngine(t, values, nil)

	target := filepath.Join(workDir, "busy")
	if err := os.MkdirAll(target, 0o750); err != nil {
		t.Fatal(err)
	}
	original := []byte("precious data")
	if err := os.WriteFile(filepath.Join(target, "keep.txt"), original, 0o644); err != nil {
		t.Fatal(err)
	}

	err := engine.Run("busy")
	if !errors.Is(err, ErrTargetNotEmpty) {
		t.Fatalf("Run() error = %v, want ErrTargetNotEmpty", err)
	}
	if code := ExitCodeFor(err); code != ExitFolderNotEmpty {
		t.Errorf("exit code = %d, want %d", code, ExitFolderNotEmpty)
	}

	// nothing was written, existing contents untouched
	entries, err := os.ReadDir(target)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("target gained entries: %v", entries)
	}
	content, err := os.ReadFile(filepath.Join(target, "keep.txt"))
	if err != nil || string(content) != string(original) {
		t.Errorf("existing file modified: %q, %v", content, err)
	}
}

func TestGenerateNoLicense(t *testing.T) {
	values := fullValues("my_lib")
	values.License = LicenseNone
	engine, workDir := testEngine(t, values, nil)

	if err := engine.Run("unlicensed"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	mustNotExist(t, filepath.Join(workDir, "unlicensed", LicenseFilename))
}

func TestGenerateIntoCurrentDirectory(t *testing.T) {
	values := fullValues("my_lib")
	engine, workDir := testEngine(t, values, nil)

	if err := engine.Run("."); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	mustExist(t, filepath.Join(workDir, "README.md"))
	mustExist(t, filepath.Join(workDir, "my_lib", "main.py"))
}

func TestGenerateExistingEmptyTarget(t *testing.T) {
	values := fullValues("my_lib")
	engine, workDir := testEngine(t, values, nil)

	if err := os.MkdirAll(filepath.Join(workDir, "empty"), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := engine.Run("empty"); err != nil {
		t.Fatalf("Run() into an existing empty directory failed: %v", err)
	}
	mustExist(t, filepath.Join(workDir, "empty", "README.md"))
}

func TestLocationValidation(t *testing.T) {
	for _, location := range []string{"", "a/b", "../up", "/abs/path"} {
		values := fullValues("my_lib")
		engine, _ := testEngine(t, values, nil)

		err := engine.Run(location)
		if !errors.Is(err, ErrLocationNotSimple) {
			t.Errorf("Run(%q) error = %v, want ErrLocationNotSimple", location, err)
		}
		if code := ExitCodeFor(err); code != ExitLocationError {
			t.Errorf("Run(%q) exit code = %d, want %d", location, code, ExitLocationError)
		}
	}
}

func TestCustomSourceOverlay(t *testing.T) {
	values := fullValues("my_lib")
	engine, workDir := testEngine(t, values, map[string]bool{OptionTest: true})

	custom := fstest.MapFS{
		"README.md.tmpl": {Data: []byte("custom readme for {{ .Name }}")},
		"Makefile":       {Data: []byte("all:\n\techo hi\n")},
	}
	engine.AddSource(NewSource("custom", custom))

	if err := engine.Run("overlaid"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	projectDir := filepath.Join(workDir, "overlaid")

	content, err := os.ReadFile(filepath.Join(projectDir, "README.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "custom readme for My Project" {
		t.Errorf("custom source did not win: %q", content)
	}

	// files only the default source provides still appear
	mustExist(t, filepath.Join(projectDir, "pyproject.toml"))
	mustExist(t, filepath.Join(projectDir, "Makefile"))
}

func TestCustomSourceKeepsLicensesDir(t *testing.T) {
	values := fullValues("my_lib")
	engine, workDir := testEngine(t, values, map[string]bool{OptionTest: true})

	custom := fstest.MapFS{
		"licenses/NOTICE.txt": {Data: []byte("third-party notices")},
	}
	engine.AddSource(NewSource("custom", custom))

	if err := engine.Run("noticed"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// only the bundled source reserves a licenses directory
	path := filepath.Join(workDir, "noticed", "licenses", "NOTICE.txt")
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("custom licenses directory was dropped: %v", err)
	}
	if string(content) != "third-party notices" {
		t.Errorf("content = %q", content)
	}
}

func TestMissingPlaceholderIsStructureError(t *testing.T) {
	values := fullValues("my_lib")
	engine, _ := testEngine(t, values, nil)

	engine.SetSources(NewSource("broken", fstest.MapFS{
		"README.md.tmpl": {Data: []byte("no app folder here")},
	}))

	err := engine.Run("broken")
	var structErr *StructureError
	if !errors.As(err, &structErr) {
		t.Fatalf("Run() error = %v, want StructureError", err)
	}
}

func TestRestructureExclusivity(t *testing.T) {
	for _, pkgName := range []string{"my_lib", StandaloneSentinel} {
		values := fullValues(pkgName)
		engine, workDir := testEngine(t, values, nil)

		if err := engine.Run("proj"); err != nil {
			t.Fatalf("Run() error = %v", err)
		}

		projectDir := filepath.Join(workDir, "proj")
		_, pkgErr := os.Stat(filepath.Join(projectDir, "my_lib"))
		_, rootErr := os.Stat(filepath.Join(projectDir, EntryPointFile))

		renamed := pkgErr == nil
		hoisted := rootErr == nil
		if renamed == hoisted {
			t.Errorf("package %q: renamed=%v hoisted=%v, exactly one must happen", pkgName, renamed, hoisted)
		}
	}
}

func TestExitCodesDistinct(t *testing.T) {
	codes := map[error]ExitCode{
		ErrLocationNotSimple: ExitLocationError,
		ErrTargetNotEmpty:    ExitFolderNotEmpty,
		ErrTargetExists:      ExitDirectoryExists,
		ErrPermissionDenied:  ExitPermissionDenied,
		ErrUserAbort:         ExitUserAbort,
		&GitError{Err: errors.New("boom")}: ExitGitError,
		errors.New("some os failure"):      ExitOSError,
	}

	seen := map[ExitCode]bool{}
	for err, want := range codes {
		got := ExitCodeFor(err)
		if got != want {
			t.Errorf("ExitCodeFor(%v) = %d, want %d", err, got, want)
		}
		if seen[got] {
			t.Errorf("exit code %d assigned to more than one cause", got)
		}
		seen[got] = true
	}
}
