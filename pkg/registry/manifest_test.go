package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pymaker/pymaker/pkg/scaffold"
)

const sampleManifest = `
[template]
name = "fastapi-starter"
version = "1.2.0"
description = "A FastAPI project template"
author = "Grace Hopper"

[template.files]
exclude = ["docs/*", "*.bak"]
`

func TestParseManifestData(t *testing.T) {
	manifest, err := ParseManifestData([]byte(sampleManifest))
	if err != nil {
		t.Fatalf("ParseManifestData() error = %v", err)
	}

	if manifest.Template.Name != "fastapi-starter" {
		t.Errorf("name = %q", manifest.Template.Name)
	}
	if manifest.Template.Version != "1.2.0" {
		t.Errorf("version = %q", manifest.Template.Version)
	}
	if len(manifest.Template.Files.Exclude) != 2 {
		t.Errorf("exclude = %v", manifest.Template.Files.Exclude)
	}
	if err := manifest.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestParseManifestDataInvalid(t *testing.T) {
	if _, err := ParseManifestData([]byte("[template\nbroken")); err == nil {
		t.Error("expected an error for invalid TOML")
	}
}

func TestManifestValidate(t *testing.T) {
	manifest := &TemplateManifest{}
	if err := manifest.Validate(); err == nil {
		t.Error("expected an error for a manifest without a name")
	}
}

func TestLoadManifest(t *testing.T) {
	t.Run("Present", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, scaffold.ManifestFilename)
		if err := os.WriteFile(path, []byte(sampleManifest), 0o644); err != nil {
			t.Fatal(err)
		}

		manifest, err := LoadManifest(dir)
		if err != nil {
			t.Fatalf("LoadManifest() error = %v", err)
		}
		if manifest == nil || manifest.Template.Name != "fastapi-starter" {
			t.Errorf("unexpected manifest: %+v", manifest)
		}
	})

	t.Run("Absent", func(t *testing.T) {
		manifest, err := LoadManifest(t.TempDir())
		if err != nil {
			t.Fatalf("LoadManifest() error = %v", err)
		}
		if manifest != nil {
			t.Error("expected nil manifest for a set without one")
		}
	})

	t.Run("Unparsable", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, scaffold.ManifestFilename)
		if err := os.WriteFile(path, []byte("not toml ["), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadManifest(dir); err == nil {
			t.Error("expected an error for an unparsable manifest")
		}
	})
}
