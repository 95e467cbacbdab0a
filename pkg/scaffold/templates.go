package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed all:templates/project
var templateFS embed.FS

//go:embed licenses/*.tmpl
var licenseFS embed.FS

// DefaultSourceName identifies the bundled template source in logs and plans.
const DefaultSourceName = "default"

// DefaultSource returns the bundled template source. The bundle ships inside
// the binary, so a missing root is a packaging defect and panics.
func DefaultSource() *Source {
	sub, err := fs.Sub(templateFS, "templates/project")
	if err != nil {
		panic(fmt.Sprintf("bundled template set missing: %v", err))
	}
	src := NewSource(DefaultSourceName, sub)
	src.rootSkips = []string{LicensesDir}
	return src
}
