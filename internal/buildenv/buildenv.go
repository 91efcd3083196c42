// SPDX-License-Identifier: MPL-2.0

// Package buildenv gathers the build environment from layered
// configuration documents: it locates and loads the tools document, merges
// every discoverable flows document into one universe, and resolves the
// requested target flow's dependency closure and tool-version bindings.
package buildenv

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"chain-cli/internal/document"
	"chain-cli/internal/flow"
	"chain-cli/internal/locate"
	"chain-cli/internal/theme"
	"chain-cli/internal/tool"
)

const (
	// ToolsFileName is the tools document searched in standard locations.
	ToolsFileName = "tools.toml"
	// FlowsFileName is the flows document searched in standard locations.
	FlowsFileName = "flows.toml"
	// ThemeFileName is the console theme document.
	ThemeFileName = "theme.toml"

	// configDirEnv overrides the per-user config subdirectory name.
	configDirEnv = "CHAIN_CONFIG_DIR_NAME"
	// configHomeEnv points at a dedicated config directory.
	configHomeEnv = "CHAIN_CONFIG_HOME"
	// defaultConfigDir is the per-user config subdirectory name.
	defaultConfigDir = "chain"
)

type (
	// Options carries everything the environment gathering needs from the
	// outside: the install root, command-line overrides, and the
	// diagnostics logger. There is deliberately no global state here; the
	// logger travels explicitly through every resolution step.
	Options struct {
		// RootPath is the installation directory; its config subdirectory
		// is the last-resort search location.
		RootPath string
		// ProjectRoot is the project directory searched right after
		// explicit overrides. Empty means no project root.
		ProjectRoot string
		// ConfigHome is an explicit config directory override. A wrong
		// value is a user error, not a fallback signal.
		ConfigHome string
		// ToolsConfig, FlowsConfig, and ThemeConfig are explicit file
		// overrides for the respective domains.
		ToolsConfig string
		FlowsConfig string
		ThemeConfig string
		// SingleFlowsFile disables collect-all mode for the flows domain,
		// using only the first flows document found.
		SingleFlowsFile bool
		// Logger is the diagnostics sink for all resolution steps.
		Logger *log.Logger
	}

	// Env is the gathered build environment, handed to the backend
	// dispatcher once resolution has fully completed.
	Env struct {
		// Target is the requested flow name.
		Target string
		// Universe is the merged table of all known flows.
		Universe *flow.Universe
		// Graph holds the target flow and its resolved dependencies.
		Graph *flow.Graph
		// Tools is the registry of tool versions bound during resolution.
		Tools *tool.Registry
		// ToolDefs are the validated definitions from the tools document.
		ToolDefs *tool.Definitions
	}
)

// logger returns the configured diagnostics logger, falling back to the
// standard one so that plain Options values stay usable.
func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}

// Resolve gathers the environment for the target flow. The work is
// strictly two-phase: all flow documents are merged into the universe
// before the target's dependency walk starts, so a document discovered
// late can still satisfy a dependency referenced early. The first error
// aborts the pass; no partial environment is ever returned.
func Resolve(target string, opts Options) (*Env, error) {
	logger := opts.logger()

	defs, err := loadTools(opts, logger)
	if err != nil {
		return nil, err
	}

	universe, err := loadFlows(opts, logger)
	if err != nil {
		return nil, err
	}

	graph := flow.NewGraph()
	registry := tool.NewRegistry()
	selector := tool.NewSelector(defs, graph, registry, logger)
	resolver := flow.NewResolver(universe, graph, selector, logger)

	if err := resolver.Resolve(target); err != nil {
		return nil, err
	}

	logger.Debug("build environment resolved",
		"target", target, "flows", graph.Names(), "tools", registry.Names())

	return &Env{
		Target:   target,
		Universe: universe,
		Graph:    graph,
		Tools:    registry,
		ToolDefs: defs,
	}, nil
}

// LoadUniverse merges all discoverable flow documents without resolving a
// target. Used by listing commands.
func LoadUniverse(opts Options) (*flow.Universe, error) {
	return loadFlows(opts, opts.logger())
}

// LoadToolDefs locates and validates the tools document without resolving
// a target. Used by listing commands.
func LoadToolDefs(opts Options) (*tool.Definitions, error) {
	return loadTools(opts, opts.logger())
}

// LoadTheme locates and loads the console theme through the same search
// chain as the other domains. Themes only affect presentation, so any
// failure falls back to the built-in defaults instead of aborting.
func LoadTheme(opts Options) *theme.Theme {
	logger := opts.logger()

	chain := opts.chainFor("console theme", ThemeFileName, opts.ThemeConfig, false)
	paths, err := chain.Resolve(logger)
	if err != nil || len(paths) == 0 {
		logger.Debug("no console theme found, using defaults")
		return theme.Default()
	}

	doc, err := document.Load(paths[0])
	if err != nil {
		logger.Debug("console theme failed to load, using defaults", "path", paths[0], "err", err)
		return theme.Default()
	}
	return theme.FromDocument(doc)
}

func loadTools(opts Options, logger *log.Logger) (*tool.Definitions, error) {
	chain := opts.chainFor("build tools", ToolsFileName, opts.ToolsConfig, false)
	paths, err := chain.Resolve(logger)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, &ConfigNotFoundError{For: "build tools"}
	}

	doc, err := document.Load(paths[0])
	if err != nil {
		return nil, err
	}
	return tool.DefinitionsFrom(doc)
}

func loadFlows(opts Options, logger *log.Logger) (*flow.Universe, error) {
	chain := opts.chainFor("build flows", FlowsFileName, opts.FlowsConfig, !opts.SingleFlowsFile)
	paths, err := chain.Resolve(logger)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, &ConfigNotFoundError{For: "build flows"}
	}

	docs := make([]document.Document, 0, len(paths))
	for _, path := range paths {
		doc, err := document.Load(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	return flow.Merge(docs, logger)
}

// chainFor builds the standard search chain of one configuration domain.
// Precedence: explicit file override, project root, explicit config-home
// directory, $CHAIN_CONFIG_HOME, $XDG_CONFIG_HOME, ~/.config, and finally
// the install default directory.
func (o Options) chainFor(forWhat, fileName, override string, findAll bool) *locate.Chain {
	cwd, _ := os.Getwd()
	cfgDir := os.Getenv(configDirEnv)
	if cfgDir == "" {
		cfgDir = defaultConfigDir
	}

	// No install root means no last-resort location; the empty value makes
	// the chain skip it.
	defaultDir := ""
	if o.RootPath != "" {
		defaultDir = filepath.Join(o.RootPath, "config")
	}

	return &locate.Chain{
		For:      forWhat,
		FileName: fileName,
		FindAll:  findAll,
		Locations: []locate.Location{
			{
				Kind:       locate.KindExplicit,
				Name:       "command-line file override",
				RawValue:   override,
				PathPrefix: cwd,
				MustExist:  true,
			},
			{
				Kind:       locate.KindFixed,
				Name:       "project root",
				RawValue:   o.ProjectRoot,
				IsDir:      true,
				PathPrefix: cwd,
			},
			{
				Kind:       locate.KindExplicit,
				Name:       "command-line config home",
				RawValue:   o.ConfigHome,
				IsDir:      true,
				PathPrefix: cwd,
				MustExist:  true,
			},
			locate.FromEnv(configHomeEnv, ""),
			locate.FromEnv("XDG_CONFIG_HOME", cfgDir),
			locate.FromEnv("HOME", filepath.Join(".config", cfgDir)),
			{
				Kind:     locate.KindFixed,
				Name:     "default path",
				RawValue: defaultDir,
				IsDir:    true,
			},
		},
	}
}
