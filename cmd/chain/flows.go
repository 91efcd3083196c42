// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"chain-cli/internal/buildenv"
)

// flowsCmd groups flow inspection subcommands.
var flowsCmd = &cobra.Command{
	Use:   "flows",
	Short: "Inspect the merged flow universe",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var flowsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every flow known after merging all flows documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		universe, err := buildenv.LoadUniverse(buildOptions(logger))
		if err != nil {
			reportResolutionError(err)
			return resolutionFailed(err)
		}

		fmt.Println(TitleStyle.Render("Flows"))
		for _, name := range universe.Names() {
			def := universe.Lookup(name)
			line := "  " + FlowStyle.Render(name)
			if len(def.Flows) > 0 {
				line += SubtitleStyle.Render("  -> " + strings.Join(def.Flows, ", "))
			}
			fmt.Println(line)
			fmt.Println("    " + VerboseStyle.Render(def.Path))
			for _, req := range def.Tools {
				fmt.Printf("    %s %s\n",
					ToolStyle.Render(req.Tool),
					SubtitleStyle.Render(strings.Join(req.Patterns, " ")))
			}
		}
		return nil
	},
}

func init() {
	flowsCmd.AddCommand(flowsListCmd)
}
