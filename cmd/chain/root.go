// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for chain.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"chain-cli/internal/buildenv"
	"chain-cli/internal/config"
	"chain-cli/internal/issue"
)

const (
	// forceTerminalEnv makes styled output unconditional, even when stdout
	// is not a terminal.
	forceTerminalEnv = "CHAIN_FORCE_TERMINAL"
	// forceInteractiveEnv overrides the interactive setting from the
	// application config.
	forceInteractiveEnv = "CHAIN_FORCE_INTERACTIVE"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// quiet suppresses informational output
	quiet bool
	// debug enables debug diagnostics
	debug bool
	// appCfgFile allows specifying a custom application config file
	appCfgFile string
	// configHome overrides the configuration directory searched for documents
	configHome string
	// projectRoot is the project directory searched for documents
	projectRoot string
	// toolsConfig, flowsConfig, themeConfig are explicit document overrides
	toolsConfig string
	flowsConfig string
	themeConfig string
	// singleFlowsFile disables merge-all for the flows domain
	singleFlowsFile bool
	// interactive allows interactive prompts
	interactive bool

	// appCfg is the loaded application configuration.
	appCfg *config.Config

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "chain",
		Short: "A layered build-flow configuration resolver",
		Long: TitleStyle.Render("chain") + SubtitleStyle.Render(" - A layered build-flow configuration resolver") + `

chain gathers build flows and tool definitions from layered TOML, YAML,
or CUE documents, merges them with well-defined precedence, and resolves
a target flow's dependency closure together with the tool versions each
flow runs with.

Documents are searched across the project root, explicit overrides,
$CHAIN_CONFIG_HOME, $XDG_CONFIG_HOME/chain, ~/.config/chain, and the
installation's config directory.

` + SubtitleStyle.Render("Examples:") + `
  chain resolve synth       Resolve the 'synth' flow and its dependencies
  chain flows list          List every flow known after merging
  chain tools list          List tool definitions and available versions`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress informational output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug diagnostics")
	rootCmd.PersistentFlags().StringVar(&appCfgFile, "app-config", "", "application config file (default is $HOME/.config/chain/config.cue)")
	rootCmd.PersistentFlags().StringVar(&configHome, "config-home", "", "directory searched for configuration documents")
	rootCmd.PersistentFlags().StringVar(&projectRoot, "project-root", "", "project directory searched for configuration documents")
	rootCmd.PersistentFlags().StringVar(&toolsConfig, "tools-config", "", "explicit tools document")
	rootCmd.PersistentFlags().StringVar(&flowsConfig, "flows-config", "", "explicit flows document")
	rootCmd.PersistentFlags().StringVar(&themeConfig, "theme-config", "", "explicit theme document")
	rootCmd.PersistentFlags().BoolVar(&singleFlowsFile, "single-flows-file", false, "use only the first flows document found")

	// Add subcommands
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(flowsCmd)
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(exitCodeGeneric)
	}
}

// initRootConfig reads the application config file and ENV variables if set.
func initRootConfig() {
	// Styled output is normally downgraded when stdout is not a terminal;
	// the override keeps ANSI sequences in pipes and CI logs.
	if forceTerminal() {
		lipgloss.SetColorProfile(termenv.TrueColor)
	}

	cfg, err := config.Loader{File: appCfgFile}.Load(context.Background())
	if err != nil {
		// Always surface config loading errors to the user
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, debug))
		cfg = config.DefaultConfig()
	}
	appCfg = cfg

	// Flags win over config; config wins over defaults.
	if !quiet {
		quiet = cfg.UI.Quiet
	}
	if !debug {
		debug = cfg.UI.Debug
	}
	interactive = cfg.UI.Interactive
	if v := os.Getenv(forceInteractiveEnv); v != "" {
		if forced, err := strconv.ParseBool(v); err == nil {
			interactive = forced
		}
	}

	applyResolutionConfig(cfg)
}

// applyResolutionConfig fills document search settings from the application
// config, without overriding anything set via command-line flags.
func applyResolutionConfig(cfg *config.Config) {
	if projectRoot == "" {
		projectRoot = cfg.Resolution.ProjectRoot.String()
	}
	if toolsConfig == "" {
		toolsConfig = cfg.Resolution.ToolsFile.String()
	}
	if flowsConfig == "" {
		flowsConfig = cfg.Resolution.FlowsFile.String()
	}
	if themeConfig == "" {
		themeConfig = cfg.Resolution.ThemeFile.String()
	}
	if !singleFlowsFile {
		singleFlowsFile = cfg.Resolution.SingleFlowsFile
	}
}

// newLogger builds the diagnostics logger for one command invocation.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})
	switch {
	case debug:
		logger.SetLevel(log.DebugLevel)
	case quiet:
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
	return logger
}

// buildOptions assembles the environment gathering options shared by the
// resolve and listing commands.
func buildOptions(logger *log.Logger) buildenv.Options {
	return buildenv.Options{
		RootPath:        installRoot(),
		ProjectRoot:     projectRoot,
		ConfigHome:      configHome,
		ToolsConfig:     toolsConfig,
		FlowsConfig:     flowsConfig,
		ThemeConfig:     themeConfig,
		SingleFlowsFile: singleFlowsFile,
		Logger:          logger,
	}
}

// installRoot returns the installation directory, derived from the running
// executable. Empty when the executable path cannot be determined.
func installRoot() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	return filepath.Dir(filepath.Dir(exe))
}

// forceTerminal reports whether styled output was forced via environment.
func forceTerminal() bool {
	v := os.Getenv(forceTerminalEnv)
	if v == "" {
		return false
	}
	forced, err := strconv.ParseBool(v)
	return err == nil && forced
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In debug mode, shows the full error chain.
func formatErrorForDisplay(err error, debugMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(debugMode)
	}
	return err.Error()
}

// reportResolutionError prints the error and, when the catalog knows the
// failure class, the rendered remediation guidance.
func reportResolutionError(err error) {
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, debug))

	if quiet {
		return
	}
	known := issue.ForError(err)
	if known == nil {
		return
	}
	rendered, renderErr := known.Render(renderStyle())
	if renderErr != nil {
		return
	}
	fmt.Fprintln(os.Stderr, rendered)
}

// renderStyle maps the configured color scheme onto a glamour style name.
// The scheme values are the glamour standard style names, so this is a
// pass-through with a fallback for the pre-config error path.
func renderStyle() string {
	if appCfg == nil {
		return string(config.ColorSchemeAuto)
	}
	return appCfg.UI.ColorScheme.String()
}

// GetQuiet returns the quiet flag value
func GetQuiet() bool {
	return quiet
}

// GetInteractive returns the interactive setting value
func GetInteractive() bool {
	return interactive
}
