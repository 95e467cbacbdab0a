package scaffold

import (
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// Context is the data every template file is rendered against: the full
// value set plus the target directory leaf name and the option flags.
type Context struct {
	Name        string
	PackageName string
	Description string
	Author      string
	Email       string
	Homepage    string
	Repository  string
	License     string
	Standalone  bool

	// Slug is the leaf name of the target directory.
	Slug string
	// Options holds the boolean feature flags consumed by template
	// conditionals (test, git, docs, ...).
	Options map[string]bool
}

// NewContext derives the rendering context from the value set and options.
func NewContext(values *ProjectValues, options map[string]bool) Context {
	if options == nil {
		options = map[string]bool{}
	}
	return Context{
		Name:        values.Name,
		PackageName: values.PackageName,
		Description: values.Description,
		Author:      values.Author,
		Email:       values.Email,
		Homepage:    values.Homepage,
		Repository:  values.Repository,
		License:     values.License,
		Standalone:  values.Standalone,
		Slug:        slugOf(values.ProjectDir),
		Options:     options,
	}
}

// Renderer renders template file content with the sprig function map.
type Renderer struct {
	funcs template.FuncMap
}

// NewRenderer creates a renderer with the sprig text function map.
func NewRenderer() *Renderer {
	return &Renderer{funcs: sprig.TxtFuncMap()}
}

// Render parses and executes one template. name identifies the template in
// error messages; rendering is deterministic for identical content and data.
func (r *Renderer) Render(name string, content []byte, data any) (string, error) {
	tmpl, err := template.New(name).Funcs(r.funcs).Parse(string(content))
	if err != nil {
		return "", &RenderError{Template: name, Err: err}
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", &RenderError{Template: name, Err: err}
	}
	return buf.String(), nil
}
