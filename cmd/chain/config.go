// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"chain-cli/internal/config"
)

// configCmd manages the application configuration file.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage chain configuration",
	Long: `Manage chain configuration.

Configuration is stored in:
  - Linux: ~/.config/chain/config.cue
  - macOS: ~/Library/Application Support/chain/config.cue
  - Windows: %APPDATA%\chain\config.cue`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Loader{File: appCfgFile}.Load(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println(TitleStyle.Render("Current Configuration"))
		fmt.Println()

		cfgDir, dirErr := config.ConfigDir()
		if dirErr == nil {
			cfgPath := filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)
			if _, statErr := os.Stat(cfgPath); statErr == nil {
				fmt.Printf("%s: %s\n", FlowStyle.Render("Config file"), cfgPath)
			} else {
				fmt.Printf("%s: %s\n", FlowStyle.Render("Config file"), SubtitleStyle.Render("(using defaults)"))
			}
		}
		fmt.Println()

		fmt.Printf("%s: %s\n", FlowStyle.Render("ui.color_scheme"), SuccessStyle.Render(cfg.UI.ColorScheme.String()))
		fmt.Printf("%s: %v\n", FlowStyle.Render("ui.quiet"), cfg.UI.Quiet)
		fmt.Printf("%s: %v\n", FlowStyle.Render("ui.debug"), cfg.UI.Debug)
		fmt.Printf("%s: %v\n", FlowStyle.Render("ui.interactive"), cfg.UI.Interactive)
		fmt.Printf("%s: %s\n", FlowStyle.Render("resolution.project_root"), cfg.Resolution.ProjectRoot)
		fmt.Printf("%s: %s\n", FlowStyle.Render("resolution.tools_file"), cfg.Resolution.ToolsFile)
		fmt.Printf("%s: %s\n", FlowStyle.Render("resolution.flows_file"), cfg.Resolution.FlowsFile)
		fmt.Printf("%s: %s\n", FlowStyle.Render("resolution.theme_file"), cfg.Resolution.ThemeFile)
		fmt.Printf("%s: %v\n", FlowStyle.Render("resolution.single_flows_file"), cfg.Resolution.SingleFlowsFile)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgDir, err := config.ConfigDir()
		if err != nil {
			return err
		}
		cfgPath := filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt)

		if _, statErr := os.Stat(cfgPath); statErr == nil {
			if !GetInteractive() {
				return fmt.Errorf("configuration already exists: %s", cfgPath)
			}
			if !confirm(cmd, "Overwrite "+cfgPath+"?") {
				fmt.Println(SubtitleStyle.Render("Keeping existing configuration."))
				return nil
			}
			if err := config.Save(config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Println(SuccessStyle.Render("Configuration reset: ") + cfgPath)
			return nil
		}

		if err := config.CreateDefaultConfig(); err != nil {
			return err
		}
		fmt.Println(SuccessStyle.Render("Configuration created: ") + cfgPath)
		return nil
	},
}

// confirm asks a yes/no question on the command's input stream. Anything
// other than an explicit yes declines.
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	reader := bufio.NewReader(cmd.InOrStdin())
	answer, err := reader.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfgDir, err := config.ConfigDir()
		if err != nil {
			return err
		}
		fmt.Println(filepath.Join(cfgDir, config.ConfigFileName+"."+config.ConfigFileExt))
		return nil
	},
}

var configDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Output raw configuration as CUE",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Loader{File: appCfgFile}.Load(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Print(config.GenerateCUE(cfg))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configDumpCmd)
}
