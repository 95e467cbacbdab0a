package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pymaker/pymaker/pkg/registry"
)

// templateCmd groups the custom-template cache subcommands.
var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage cached custom template sets",
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the cached template sets",
	Run: func(cmd *cobra.Command, args []string) {
		cache, err := registry.NewCacheManager("")
		if err != nil {
			exitWith(err)
		}
		templates, err := cache.List()
		if err != nil {
			exitWith(err)
		}

		if len(templates) == 0 {
			fmt.Println("No cached template sets. Add one with: pymaker template add <git-url>")
			return
		}
		for _, tmpl := range templates {
			fmt.Printf("%s %s\n", color.GreenString(tmpl.Name), color.New(color.Faint).Sprintf("(%s@%s)", tmpl.Source, tmpl.Version))
			if tmpl.Description != "" {
				fmt.Printf("  %s\n", tmpl.Description)
			}
		}
	},
}

var templateAddCmd = &cobra.Command{
	Use:   "add <source>",
	Short: "Fetch a template set into the cache",
	Long: `Fetch a template set into the local cache.

The source can be a git URL (github.com/user/repo, optionally @tag) or a
local directory.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cache, err := registry.NewCacheManager("")
		if err != nil {
			exitWith(err)
		}
		cached, err := registry.NewResolver(cache).Resolve(cmd.Context(), args[0])
		if err != nil {
			exitWith(err)
		}
		color.Green("✓ cached %s@%s at %s", cached.Name, cached.Version, cached.LocalPath)
	},
}

var templateRemoveCmd = &cobra.Command{
	Use:   "remove <source>",
	Short: "Remove a template set from the cache",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cache, err := registry.NewCacheManager("")
		if err != nil {
			exitWith(err)
		}
		if err := cache.Remove(args[0], templateRemoveVersion); err != nil {
			exitWith(err)
		}
		color.Green("✓ removed %s", args[0])
	},
}

var templateRemoveVersion string

func init() {
	rootCmd.AddCommand(templateCmd)
	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateAddCmd)
	templateCmd.AddCommand(templateRemoveCmd)

	templateRemoveCmd.Flags().StringVar(&templateRemoveVersion, "version", "", "Remove only this version (default: all versions)")
}
