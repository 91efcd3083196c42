// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"chain-cli/internal/buildenv"
	"chain-cli/internal/theme"
)

// resolveCmd resolves a target flow and prints the gathered environment.
var resolveCmd = &cobra.Command{
	Use:   "resolve <flow>",
	Short: "Resolve a flow's dependency closure and tool versions",
	Long: `Resolve a flow's dependency closure and tool versions.

All discoverable flows documents are merged first, then the target flow
is resolved: its backend path is checked, a version is selected for each
required tool, and every flow named in its 'flows' list is resolved the
same way, recursively.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		opts := buildOptions(logger)

		env, err := buildenv.Resolve(args[0], opts)
		if err != nil {
			reportResolutionError(err)
			return resolutionFailed(err)
		}

		printEnvironment(env, buildenv.LoadTheme(opts))
		return nil
	},
}

// printEnvironment renders the resolved environment: each flow in
// registration order with its backend and bound tool versions, then the
// global registry of tool versions in use.
func printEnvironment(env *buildenv.Env, th *theme.Theme) {
	fmt.Println(th.Render(theme.StyleTitle, "Resolved flows for target "+env.Target))

	for _, name := range env.Graph.Names() {
		resolved := env.Graph.Lookup(name)
		fmt.Printf("  %s  %s\n",
			th.Render(theme.StyleFlow, name),
			th.Render(theme.StyleDebug, resolved.BackendPath))

		tools := make([]string, 0, len(resolved.ToolVersions))
		for tool := range resolved.ToolVersions {
			tools = append(tools, tool)
		}
		sort.Strings(tools)
		for _, tool := range tools {
			fmt.Printf("    %s %s\n",
				th.Render(theme.StyleTool, tool),
				th.Render(theme.StyleVersion, resolved.ToolVersions[tool]))
		}
	}

	names := env.Tools.Names()
	if len(names) == 0 {
		return
	}
	fmt.Println()
	fmt.Println(th.Render(theme.StyleTitle, "Tool versions in use"))
	for _, name := range names {
		resolved := env.Tools.Lookup(name)
		versions := make([]string, 0, len(resolved.Versions))
		for version := range resolved.Versions {
			versions = append(versions, version)
		}
		sort.Strings(versions)
		for _, version := range versions {
			fmt.Printf("  %s %s  %s\n",
				th.Render(theme.StyleTool, name),
				th.Render(theme.StyleVersion, version),
				th.Render(theme.StyleDebug, resolved.Versions[version].String()))
		}
	}
}
