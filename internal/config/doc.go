// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/chain/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/chain/config.cue on macOS, %APPDATA%\chain\config.cue
// on Windows). The package provides type-safe configuration access covering UI settings
// and configuration document resolution overrides.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
