package scaffold

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AnswersFile is the YAML shape accepted by --answers for fully
// non-interactive runs. Option flags default to the CLI flag values and are
// only overridden when present in the file.
type AnswersFile struct {
	Name        string `yaml:"name"`
	PackageName string `yaml:"package_name"`
	Description string `yaml:"description"`
	Author      string `yaml:"author"`
	Email       string `yaml:"email"`
	Homepage    string `yaml:"homepage"`
	Repository  string `yaml:"repository"`
	License     string `yaml:"license"`

	Options map[string]bool `yaml:"options"`
}

// LoadAnswers reads an answers file and applies it to values and options.
// The resulting values are validated before they are returned.
func LoadAnswers(path string, values *ProjectValues, options map[string]bool) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("cannot read answers file: %w", err)
	}

	var answers AnswersFile
	if err := yaml.Unmarshal(content, &answers); err != nil {
		return fmt.Errorf("cannot parse answers file %s: %w", path, err)
	}

	values.Name = answers.Name
	values.PackageName = answers.PackageName
	values.Description = answers.Description
	values.Author = answers.Author
	values.Email = answers.Email
	values.Homepage = answers.Homepage
	values.Repository = answers.Repository
	values.License = answers.License
	values.Standalone = answers.PackageName == StandaloneSentinel

	for flag, on := range answers.Options {
		options[flag] = on
	}

	return values.Validate()
}
