// SPDX-License-Identifier: MPL-2.0

package config

import "context"

// Loader loads the application configuration. An explicit File wins over
// everything; otherwise the config file is looked up in Dir when set, or
// in the platform config directory. A missing config file is not an
// error: defaults apply.
type Loader struct {
	// File forces loading from a specific config file.
	File string
	// Dir overrides the config directory lookup.
	Dir string
}

// Load reads, validates against the CUE schema, and decodes the
// configuration.
func (l Loader) Load(ctx context.Context) (*Config, error) {
	cfg, _, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
