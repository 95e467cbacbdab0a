package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pymaker/pymaker/internal/config"
	"github.com/pymaker/pymaker/internal/exec"
	"github.com/pymaker/pymaker/internal/prompt"
	"github.com/pymaker/pymaker/internal/ui"
	"github.com/pymaker/pymaker/internal/utils"
	"github.com/pymaker/pymaker/pkg/registry"
	"github.com/pymaker/pymaker/pkg/scaffold"
)

// mkdocsConfig replaces the stock config written by `mkdocs new`.
const mkdocsConfig = `site_name: %s
theme:
  name: material
`

var (
	newAcceptDefaults bool
	newAnswersFile    string
	newNoTest         bool
	newNoGit          bool
	newDocs           bool
	newNoInstall      bool
)

// newCmd represents the new command
var newCmd = &cobra.Command{
	Use:   "new [location]",
	Short: "Create a new Python project",
	Long: `Create a new Python project at the given location.

The location must be a single directory name relative to the current
directory, and must be empty or not exist yet. Use '.' to generate into the
current directory.

Examples:
  # Create a project interactively
  pymaker new my-project

  # Create a project with defaults from your settings
  pymaker new my-project --accept-defaults

  # Fully non-interactive from an answers file
  pymaker new my-project --answers answers.yaml --no-git`,
	Args: cobra.ExactArgs(1),
	Run:  runNewCommand,
}

func runNewCommand(cmd *cobra.Command, args []string) {
	location := args[0]
	log := GetLogger()

	ui.Header(Version)

	settings, err := config.Load("")
	if err != nil {
		exitWith(err)
	}

	options := map[string]bool{
		scaffold.OptionTest:           !newNoTest,
		scaffold.OptionGit:            !newNoGit,
		scaffold.OptionDocs:           newDocs,
		scaffold.OptionAcceptDefaults: newAcceptDefaults,
	}

	cwd, err := os.Getwd()
	if err != nil {
		exitWith(err)
	}
	slug := location
	if location == "." {
		slug = filepath.Base(cwd)
	}

	values := &scaffold.ProjectValues{}
	wizard := &prompt.Wizard{Settings: settings}

	switch {
	case newAnswersFile != "":
		if err := scaffold.LoadAnswers(newAnswersFile, values, options); err != nil {
			exitWith(err)
		}
	case newAcceptDefaults:
		prompt.ApplyDefaults(values, settings, slug)
		if err := values.Validate(); err != nil {
			exitWith(err)
		}
	default:
		fmt.Printf("%s %s\n\n", color.GreenString("Creating a new project at"), filepath.Join(cwd, location))
		if err := wizard.Fill(values, slug); err != nil {
			exitWith(err)
		}
		ok, err := wizard.Confirm(values)
		if err != nil {
			exitWith(err)
		}
		if !ok {
			color.Red("\nAborting!")
			os.Exit(int(scaffold.ExitUserAbort))
		}
	}

	engine := scaffold.NewEngine(values, options, cwd, *log)
	if !settings.UseDefaultTemplate {
		engine.SetSources()
	}
	if settings.TemplateFolder != "" {
		custom, err := openCustomSource(cmd.Context(), settings.TemplateFolder)
		if err != nil {
			exitWith(err)
		}
		engine.AddSource(custom)
	}

	fmt.Print("--> Creating project skeleton ... ")
	if err := engine.Run(location); err != nil {
		fmt.Println()
		exitWith(err)
	}
	color.Green("Done")

	runTooling(cmd.Context(), values, options)

	if options[scaffold.OptionGit] {
		fmt.Print("--> Creating git repository ... ")
		if err := scaffold.InitRepository(values.ProjectDir, values.Author, values.Email); err != nil {
			fmt.Println()
			exitWith(err)
		}
		color.Green("Done")
	}

	printNextSteps(location)
}

// openCustomSource opens the configured custom template folder: a local
// directory is used in place, anything else is treated as a git reference
// and fetched into the template cache.
func openCustomSource(ctx context.Context, folder string) (*scaffold.Source, error) {
	root := folder
	if !utils.DirExists(folder) && !filepath.IsAbs(folder) {
		cache, err := registry.NewCacheManager("")
		if err != nil {
			return nil, err
		}
		cached, err := registry.NewResolver(cache).Resolve(ctx, folder)
		if err != nil {
			return nil, err
		}
		root = cached.LocalPath
	}

	var exclude []string
	if manifest, err := registry.LoadManifest(root); err != nil {
		return nil, err
	} else if manifest != nil {
		exclude = manifest.Template.Files.Exclude
	}
	return scaffold.NewDirSource(root, exclude...)
}

// runTooling performs the optional post-generation steps: dependency
// install, docs bootstrap and pre-commit hooks. Every step is a blocking
// child process; a failure is fatal.
func runTooling(ctx context.Context, values *scaffold.ProjectValues, options map[string]bool) {
	if newNoInstall {
		return
	}

	install := options[scaffold.OptionAcceptDefaults]
	if !install {
		var err error
		install, err = prompt.AskConfirm("Should I run 'poetry install' now?", true)
		if err != nil {
			exitWith(err)
		}
	}
	if !install {
		return
	}

	runner := exec.NewRealRunner()
	dir := values.ProjectDir

	if err := runner.Run(ctx, dir, "poetry", "install"); err != nil {
		exitWith(err)
	}

	if options[scaffold.OptionDocs] {
		fmt.Println("\n--> Creating MkDocs project")
		if err := runner.Run(ctx, dir, "poetry", "run", "mkdocs", "new", "."); err != nil {
			exitWith(err)
		}
		cfg := fmt.Sprintf(mkdocsConfig, values.Name)
		if err := os.WriteFile(filepath.Join(dir, "mkdocs.yml"), []byte(cfg), 0o644); err != nil {
			exitWith(err)
		}
	}

	hooks := options[scaffold.OptionAcceptDefaults]
	if !hooks {
		var err error
		hooks, err = prompt.AskConfirm("Do you want to install and update the pre-commit hooks?", true)
		if err != nil {
			exitWith(err)
		}
	}
	if hooks {
		if err := runner.Run(ctx, dir, "poetry", "run", "pre-commit", "install"); err != nil {
			exitWith(err)
		}
		if err := runner.Run(ctx, dir, "poetry", "run", "pre-commit", "autoupdate"); err != nil {
			exitWith(err)
		}
	}
}

// printNextSteps prints what to do after the project is created.
func printNextSteps(location string) {
	color.Green("\n✅ Project created successfully.\n")

	fmt.Println(color.BlueString("Next steps:"))
	fmt.Printf("  1. %s\n", color.CyanString("cd %s", location))
	fmt.Printf("  2. %s\n", color.CyanString("poetry install    # if not done already"))
	fmt.Printf("  3. %s\n", color.CyanString("poetry shell"))
	fmt.Printf("  4. %s\n", color.CyanString("Code!"))
	fmt.Println()
	fmt.Println("See the README.md file for more information.")
}

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().BoolVarP(&newAcceptDefaults, "accept-defaults", "y", false, "Accept the default values without prompting")
	newCmd.Flags().StringVar(&newAnswersFile, "answers", "", "YAML file with the project answers (non-interactive)")
	newCmd.Flags().BoolVar(&newNoTest, "no-test", false, "Don't include a tests folder")
	newCmd.Flags().BoolVar(&newNoGit, "no-git", false, "Don't initialize a git repository")
	newCmd.Flags().BoolVar(&newDocs, "docs", false, "Bootstrap an MkDocs documentation site")
	newCmd.Flags().BoolVar(&newNoInstall, "no-install", false, "Skip running 'poetry install' and the tooling steps")
}
