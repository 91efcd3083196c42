// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"chain-cli/internal/buildenv"
)

// toolsCmd groups tool inspection subcommands.
var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Inspect the tool definitions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var toolsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tool definitions and their available versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		defs, err := buildenv.LoadToolDefs(buildOptions(logger))
		if err != nil {
			reportResolutionError(err)
			return resolutionFailed(err)
		}

		fmt.Println(TitleStyle.Render("Tools"))
		for _, name := range defs.Names() {
			def := defs.Lookup(name)
			fmt.Println("  " + ToolStyle.Render(name))
			fmt.Println("    " + VerboseStyle.Render(def.Path))
			for _, entry := range def.Versions {
				fmt.Printf("    %s  %s\n",
					SuccessStyle.Render(entry.ID),
					SubtitleStyle.Render(entry.Location.String()))
			}
		}
		return nil
	},
}

func init() {
	toolsCmd.AddCommand(toolsListCmd)
}
