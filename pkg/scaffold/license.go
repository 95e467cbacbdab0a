package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
)

// LicenseFilename is the fixed name of the emitted license file.
const LicenseFilename = "LICENSE.txt"

type licenseContext struct {
	Author string
	Year   int
}

// EmitLicense renders the bundled license template for id into
// dir/LICENSE.txt. Callers must filter the LicenseNone sentinel before
// calling; an id outside the known set is a contract violation that should
// have been rejected by upstream validation, so it panics rather than
// producing a project with a bogus license.
func EmitLicense(dir, id, author string, year int) error {
	if !ValidLicense(id) || id == LicenseNone {
		panic(fmt.Sprintf("license emitter called with invalid license %q", id))
	}

	content, err := licenseFS.ReadFile(LicensesDir + "/" + id + TemplateSuffix)
	if err != nil {
		panic(fmt.Sprintf("bundled license template for %q missing: %v", id, err))
	}

	rendered, err := NewRenderer().Render(id+TemplateSuffix, content, licenseContext{Author: author, Year: year})
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, LicenseFilename), []byte(rendered), 0o644)
}
