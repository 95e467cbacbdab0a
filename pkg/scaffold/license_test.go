package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmitLicense(t *testing.T) {
	for _, id := range LicenseNames {
		if id == LicenseNone {
			continue
		}
		t.Run(id, func(t *testing.T) {
			dir := t.TempDir()
			if err := EmitLicense(dir, id, "Ada Lovelace", 2024); err != nil {
				t.Fatalf("EmitLicense(%s) error = %v", id, err)
			}

			content, err := os.ReadFile(filepath.Join(dir, LicenseFilename))
			if err != nil {
				t.Fatalf("license file missing: %v", err)
			}
			text := string(content)
			if !strings.Contains(text, "Ada Lovelace") {
				t.Errorf("%s output does not name the author", id)
			}
			if !strings.Contains(text, "2024") {
				t.Errorf("%s output does not contain the year", id)
			}
			if strings.Contains(text, "{{") {
				t.Errorf("%s output has unresolved placeholders", id)
			}
		})
	}
}

func TestEmitLicensePanicsOnUnknownID(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for an unknown license id")
		}
	}()
	_ = EmitLicense(t.TempDir(), "NotALicense", "x", 2024)
}

func TestEmitLicensePanicsOnNoneSentinel(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic for the None sentinel")
		}
	}()
	_ = EmitLicense(t.TempDir(), LicenseNone, "x", 2024)
}
