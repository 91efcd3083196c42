// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"chain-cli/internal/issue"
	"chain-cli/pkg/cueutil"
)

const (
	// AppName is the application name.
	AppName = "chain"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
)

//go:embed config_schema.cue
var configSchema string

// configDirOverride redirects ConfigDir for tests. os.UserHomeDir ignores
// the HOME env var on some platforms, so tests need a direct hook to point
// config writes at a temp dir.
var configDirOverride string

// SetConfigDirOverride redirects ConfigDir to dir until Reset is called.
func SetConfigDirOverride(dir string) { configDirOverride = dir }

// Reset clears the ConfigDir override.
func Reset() { configDirOverride = "" }

// ConfigDir returns the chain configuration directory using platform-specific
// conventions: Windows uses %APPDATA%, macOS uses ~/Library/Application Support,
// and Linux/others use $XDG_CONFIG_HOME (defaulting to ~/.config).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// load resolves and reads the configuration for the Loader's inputs,
// returning the loaded config and the path it came from ("" when only
// defaults applied).
func (l Loader) load(ctx context.Context) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	// Set defaults
	defaults := DefaultConfig()
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)
	v.SetDefault("ui.quiet", defaults.UI.Quiet)
	v.SetDefault("ui.debug", defaults.UI.Debug)
	v.SetDefault("ui.interactive", defaults.UI.Interactive)
	v.SetDefault("resolution.project_root", defaults.Resolution.ProjectRoot)
	v.SetDefault("resolution.tools_file", defaults.Resolution.ToolsFile)
	v.SetDefault("resolution.flows_file", defaults.Resolution.FlowsFile)
	v.SetDefault("resolution.theme_file", defaults.Resolution.ThemeFile)
	v.SetDefault("resolution.single_flows_file", defaults.Resolution.SingleFlowsFile)

	resolvedPath := ""

	// An explicit config file (the --app-config flag) is used exclusively.
	if l.File != "" {
		if !fileExists(l.File) {
			return nil, "", issue.FailedTo("load configuration", l.File,
				fmt.Errorf("config file not found: %s", l.File),
				"Verify the file path is correct",
				"Check that the file exists and is readable")
		}
		if err := loadCUEIntoViper(v, l.File); err != nil {
			return nil, "", issue.FailedTo("load configuration", l.File, err,
				"Check that the file contains valid CUE syntax",
				"Verify the configuration values match the expected schema")
		}
		resolvedPath = l.File
	} else {
		cfgDir, err := l.configDir()
		if err != nil {
			return nil, "", err
		}

		cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
		if fileExists(cuePath) {
			if err := loadCUEIntoViper(v, cuePath); err != nil {
				return nil, "", issue.FailedTo("load configuration", cuePath, err,
					"Check that the file contains valid CUE syntax",
					"Verify the configuration values match the expected schema")
			}
			resolvedPath = cuePath
		}
		// No config file found: defaults apply, not an error.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}

	if valid, errs := cfg.IsValid(); !valid {
		return nil, "", issue.FailedTo("validate configuration", resolvedPath, errs[0],
			"Check the values against the configuration schema")
	}

	return &cfg, resolvedPath, nil
}

// configDir resolves the directory searched for the config file, honoring
// the Loader's Dir before platform defaults.
func (l Loader) configDir() (string, error) {
	if l.Dir != "" {
		return l.Dir, nil
	}
	return ConfigDir()
}

// loadCUEIntoViper validates a CUE config file against the #Config schema
// and merges its decoded contents into Viper. Validation is non-concrete:
// every config field is optional.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	res, err := cueutil.ParseAndDecodeString[map[string]any](configSchema, data, "#Config",
		cueutil.WithFilename(path),
		cueutil.WithConcrete(false))
	if err != nil {
		return err
	}

	// Merge into Viper (preserves defaults, allows env overrides)
	if err := v.MergeConfigMap(*res.Value); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}

	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	cfgDir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(cfgDir, 0o755)
}

// CreateDefaultConfig creates a default config file if it doesn't exist
func CreateDefaultConfig() error {
	cfgDir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)

	// Check if file already exists
	if _, err := os.Stat(cfgPath); err == nil {
		return nil // File exists
	}

	defaults := DefaultConfig()
	cueContent := GenerateCUE(defaults)

	if err := os.WriteFile(cfgPath, []byte(cueContent), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Save writes the current configuration to file
func Save(cfg *Config) error {
	cfgDir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)

	cueContent := GenerateCUE(cfg)

	if err := os.WriteFile(cfgPath, []byte(cueContent), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// Chain Configuration File\n\n")

	// UI config
	sb.WriteString("ui: {\n")
	sb.WriteString(fmt.Sprintf("\tcolor_scheme: %q\n", cfg.UI.ColorScheme))
	sb.WriteString(fmt.Sprintf("\tquiet: %v\n", cfg.UI.Quiet))
	sb.WriteString(fmt.Sprintf("\tdebug: %v\n", cfg.UI.Debug))
	sb.WriteString(fmt.Sprintf("\tinteractive: %v\n", cfg.UI.Interactive))
	sb.WriteString("}\n")

	// Resolution config
	sb.WriteString("\nresolution: {\n")
	if cfg.Resolution.ProjectRoot != "" {
		sb.WriteString(fmt.Sprintf("\tproject_root: %q\n", cfg.Resolution.ProjectRoot))
	}
	if cfg.Resolution.ToolsFile != "" {
		sb.WriteString(fmt.Sprintf("\ttools_file: %q\n", cfg.Resolution.ToolsFile))
	}
	if cfg.Resolution.FlowsFile != "" {
		sb.WriteString(fmt.Sprintf("\tflows_file: %q\n", cfg.Resolution.FlowsFile))
	}
	if cfg.Resolution.ThemeFile != "" {
		sb.WriteString(fmt.Sprintf("\ttheme_file: %q\n", cfg.Resolution.ThemeFile))
	}
	sb.WriteString(fmt.Sprintf("\tsingle_flows_file: %v\n", cfg.Resolution.SingleFlowsFile))
	sb.WriteString("}\n")

	return sb.String()
}
