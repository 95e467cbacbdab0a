package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pymaker/pymaker/internal/config"
	execrunner "github.com/pymaker/pymaker/internal/exec"
	"github.com/pymaker/pymaker/internal/ui"
)

// configCmd groups the persisted-settings subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the persisted settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings",
	Run: func(cmd *cobra.Command, args []string) {
		ui.Header(Version)
		settings, err := config.Load("")
		if err != nil {
			exitWith(err)
		}

		fmt.Println(color.BlueString("Settings (%s):", settings.Path()))
		for _, item := range settings.Items() {
			fmt.Printf("  %22s : %s\n", item[0], color.CyanString("%s", item[1]))
		}
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one settings key",
	Long: `Change one settings key and persist it.

Known keys: author_name, author_email, default_license,
use_default_template, template_folder.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := config.Load("")
		if err != nil {
			exitWith(err)
		}
		if err := settings.Set(args[0], args[1]); err != nil {
			exitWith(err)
		}
		color.Green("✓ %s updated", args[0])
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open the settings file in your editor",
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := config.Load("")
		if err != nil {
			exitWith(err)
		}

		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "vi"
		}
		if err := execrunner.NewRealRunner().Run(cmd.Context(), "", editor, settings.Path()); err != nil {
			exitWith(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configEditCmd)
}
