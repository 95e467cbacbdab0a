package scaffold

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// StandaloneSentinel is the package name a user enters to request a
// standalone script instead of an installable package.
const StandaloneSentinel = "-"

// LicenseNone disables license file generation.
const LicenseNone = "None"

// LicenseNames is the closed set of license identifiers the emitter can
// render, plus the LicenseNone sentinel. Each identifier (except None) has a
// matching template bundled under licenses/.
var LicenseNames = []string{
	LicenseNone,
	"Apache2",
	"BSD2",
	"BSD3",
	"GPL3",
	"MIT",
	"MPL2",
	"Unlicense",
}

// ProjectValues is the configuration value set for one generation run. It is
// populated by the wizard, an answers file or the accept-defaults path, and
// is read-only once handed to the Engine.
type ProjectValues struct {
	// ProjectDir is resolved by the Engine from the location argument; it is
	// empty until then.
	ProjectDir string

	Name        string
	PackageName string
	Description string
	Author      string
	Email       string
	Homepage    string
	Repository  string
	License     string
	Standalone  bool
}

// PackagingMode is the two-variant outcome of the package-vs-standalone
// branch, resolved once and consumed by the restructuring step.
type PackagingMode int

const (
	// ModePackage renames the placeholder application folder to PackageName.
	ModePackage PackagingMode = iota
	// ModeStandalone hoists the entry-point file to the project root and
	// removes the placeholder folder.
	ModeStandalone
)

// Mode resolves the packaging mode from the package name sentinel.
func (v *ProjectValues) Mode() PackagingMode {
	if v.Standalone || v.PackageName == StandaloneSentinel {
		return ModeStandalone
	}
	return ModePackage
}

var invalidPackageChars = regexp.MustCompile(`[- .]`)

// ValidPackageName reports whether name is usable as an importable package
// identifier. The standalone sentinel is always valid.
func ValidPackageName(name string) bool {
	if name == StandaloneSentinel {
		return true
	}
	if name == "" || strings.ContainsRune(name, filepath.Separator) || strings.ContainsRune(name, '/') {
		return false
	}
	return !invalidPackageChars.MatchString(name)
}

// ValidLicense reports whether id is in the known license set.
func ValidLicense(id string) bool {
	for _, name := range LicenseNames {
		if id == name {
			return true
		}
	}
	return false
}

// Validate checks the invariants the Engine relies on. ProjectDir is not
// checked here; it is set and validated by the Engine itself.
func (v *ProjectValues) Validate() error {
	if !ValidPackageName(v.PackageName) {
		return fmt.Errorf("package name %q cannot contain dashes, dots, spaces or path separators; use underscores if required", v.PackageName)
	}
	if v.License != "" && !ValidLicense(v.License) {
		return fmt.Errorf("unknown license %q, valid choices: %s", v.License, strings.Join(LicenseNames, ", "))
	}
	return nil
}

// Sanitize converts a directory name into a usable package name by
// lowercasing it and replacing dashes, dots and spaces with underscores.
func Sanitize(name string) string {
	return strings.ToLower(invalidPackageChars.ReplaceAllString(name, "_"))
}

// Titleize converts a directory name into a display title: separators become
// spaces and each word is capitalized.
func Titleize(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || r == ' '
	})
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
