// Package prompt implements the interactive wizard that populates a
// ProjectValues set. The generation pipeline never prompts; it consumes the
// values this package (or the defaults path, or an answers file) produced.
package prompt

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"

	"github.com/pymaker/pymaker/internal/config"
	"github.com/pymaker/pymaker/pkg/scaffold"
)

// PackageChecker reports whether a package name is already taken on the
// package index. It is an external collaborator; the wizard only warns.
type PackageChecker func(name string) bool

// Wizard asks the project questions and fills a ProjectValues.
type Wizard struct {
	Settings *config.Settings
	// Checker may be nil, in which case no availability check happens.
	Checker PackageChecker
}

// ApplyDefaults fills values without asking anything, deriving everything
// from the slug and the persisted settings.
func ApplyDefaults(values *scaffold.ProjectValues, settings *config.Settings, slug string) {
	values.Name = scaffold.Titleize(slug)
	values.PackageName = scaffold.Sanitize(slug)
	values.Description = ""
	values.Author = settings.AuthorName
	values.Email = settings.AuthorEmail
	values.License = settings.DefaultLicense
	values.Standalone = false
}

// Fill runs the interactive wizard. slug is the leaf name of the target
// directory and seeds the name and package defaults.
func (w *Wizard) Fill(values *scaffold.ProjectValues, slug string) error {
	if err := w.ask(&survey.Input{
		Message: "Name of the Application?",
		Default: scaffold.Titleize(slug),
	}, &values.Name); err != nil {
		return err
	}

	pkgName, err := w.askPackageName(scaffold.Sanitize(slug))
	if err != nil {
		return err
	}
	values.PackageName = pkgName
	values.Standalone = pkgName == scaffold.StandaloneSentinel

	if !values.Standalone {
		if err := w.ask(&survey.Input{Message: "Homepage URL?"}, &values.Homepage); err != nil {
			return err
		}
		if err := w.ask(&survey.Input{
			Message: "Repository URL?",
			Default: "https://github.com/your_user_name/" + values.PackageName,
		}, &values.Repository); err != nil {
			return err
		}
	}

	if err := w.ask(&survey.Input{Message: "Description of the Application?"}, &values.Description); err != nil {
		return err
	}
	if err := w.ask(&survey.Input{
		Message: "Author Name?",
		Default: w.Settings.AuthorName,
	}, &values.Author); err != nil {
		return err
	}
	if err := w.ask(&survey.Input{
		Message: "Author Email?",
		Default: w.Settings.AuthorEmail,
	}, &values.Email); err != nil {
		return err
	}

	defaultLicense := w.Settings.DefaultLicense
	if !scaffold.ValidLicense(defaultLicense) {
		defaultLicense = scaffold.LicenseNone
	}
	if err := w.ask(&survey.Select{
		Message: "Application License?",
		Options: scaffold.LicenseNames,
		Default: defaultLicense,
	}, &values.License); err != nil {
		return err
	}

	return values.Validate()
}

// askPackageName loops until a valid package name is given. A single '-'
// requests a standalone script. A taken name only warns and asks to proceed.
func (w *Wizard) askPackageName(defaultName string) (string, error) {
	for {
		var name string
		err := w.ask(&survey.Input{
			Message: "Package Name? (Use '-' for standalone script)",
			Default: defaultName,
		}, &name)
		if err != nil {
			return "", err
		}

		if !scaffold.ValidPackageName(name) {
			color.Red("Error: Package name cannot contain dashes, dots or spaces. Please use underscores if required.")
			continue
		}
		if name == scaffold.StandaloneSentinel || w.Checker == nil || !w.Checker(name) {
			return name, nil
		}

		color.Yellow("Warning: Package name already exists on the package index.")
		var useAnyway bool
		if err := w.ask(&survey.Confirm{Message: "Do you want to use it anyway?"}, &useAnyway); err != nil {
			return "", err
		}
		if useAnyway {
			color.Yellow("Warning: an existing package name cannot be uploaded to the index.")
			return name, nil
		}
	}
}

// Confirm shows the collected values and asks for a go-ahead. A negative
// answer aborts the run before any filesystem mutation.
func (w *Wizard) Confirm(values *scaffold.ProjectValues) (bool, error) {
	color.Green("\nCreating a new application with the below settings:\n")

	rows := [][2]string{
		{"Name", values.Name},
		{"Package Name", values.PackageName},
		{"Description", values.Description},
		{"Author", values.Author},
		{"Email", values.Email},
		{"Homepage", values.Homepage},
		{"Repository", values.Repository},
		{"License", values.License},
		{"Standalone", fmt.Sprintf("%t", values.Standalone)},
		{"Project Dir", values.ProjectDir},
	}
	for _, row := range rows {
		fmt.Printf("  %15s : %s\n", row[0], color.GreenString("%s", row[1]))
	}

	ok := true
	err := w.ask(&survey.Confirm{Message: "Is this correct?", Default: true}, &ok)
	return ok, err
}

// AskConfirm is a standalone yes/no question.
func AskConfirm(message string, def bool) (bool, error) {
	answer := def
	err := survey.AskOne(&survey.Confirm{Message: message, Default: def}, &answer)
	return answer, err
}

func (w *Wizard) ask(p survey.Prompt, response any) error {
	return survey.AskOne(p, response)
}
