// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	ToolsConfigNotFoundId Id = iota + 1
	FlowsConfigNotFoundId
	ConfigParseErrorId
	FlowNotFoundId
	FlowBackendMissingId
	ToolNotFoundId
	NoSuitableVersionId
	VersionConflictId
	DependencyCycleId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	toolsConfigNotFoundIssue = &Issue{
		id: ToolsConfigNotFoundId,
		mdMsg: `
# No tools configuration found!

We searched for a tools.toml but couldn't find one in the expected
locations.

## Search locations (in order of precedence):
1. The --tools-config command-line override
2. The project root
3. The --config-home directory
4. $CHAIN_CONFIG_HOME
5. $XDG_CONFIG_HOME/chain
6. ~/.config/chain
7. The installation's config directory

## Things you can try:
- Create a tools.toml in your project root:
~~~toml
[tool.yosys]
path = "./run_yosys"

[tool.yosys.versions]
"1.0" = "path:/opt/yosys-1.0"
~~~

- Or point at an existing file:
~~~
$ chain resolve synth --tools-config /path/to/tools.toml
~~~`,
	}

	flowsConfigNotFoundIssue = &Issue{
		id: FlowsConfigNotFoundId,
		mdMsg: `
# No flows configuration found!

We searched for a flows.toml but couldn't find one in the expected
locations.

## Things you can try:
- Create a flows.toml in your project root:
~~~toml
[flow.synth]
path = "./synth_backend"
flows = ["pack"]

[flow.synth.tools]
yosys = "1.*"
~~~

- Or pass an explicit file:
~~~
$ chain resolve synth --flows-config /path/to/flows.toml
~~~`,
	}

	configParseErrorIssue = &Issue{
		id: ConfigParseErrorId,
		mdMsg: `
# Failed to parse a configuration document!

One of the discovered configuration files contains syntax errors.

## Common issues:
- Invalid TOML/YAML/CUE syntax (missing quotes, unbalanced brackets)
- A file extension that doesn't match the file's contents
- Non-string version patterns

## Things you can try:
- Check the error message above for the offending file and position
- Run with debug output to see which files were picked up:
~~~
$ chain --debug flows list
~~~`,
	}

	flowNotFoundIssue = &Issue{
		id: FlowNotFoundId,
		mdMsg: `
# Flow not found!

The requested flow is not declared in any discovered flows document,
or a flow names it as a dependency but nothing defines it.

## Things you can try:
- List all known flows:
~~~
$ chain flows list
~~~

- Check for typos in the flow name and in 'flows' dependency lists
- Verify the document defining it sits in a searched location:
~~~
$ chain --debug flows list
~~~`,
	}

	flowBackendMissingIssue = &Issue{
		id: FlowBackendMissingId,
		mdMsg: `
# Flow backend not found!

A flow declares a backend path that doesn't exist on disk, or declares
no path at all.

## Remember:
- Relative paths resolve against the directory of the document that
  declared them, not against your current directory.

## Things you can try:
- Check the 'path' key of the flow definition
- Verify the backend file exists at the resolved location
- Move the declaration into the document that sits next to the backend`,
	}

	toolNotFoundIssue = &Issue{
		id: ToolNotFoundId,
		mdMsg: `
# Tool not found!

A flow requires a tool that the tools document doesn't define.

## Things you can try:
- List all known tools and their versions:
~~~
$ chain tools list
~~~

- Add the tool to your tools.toml:
~~~toml
[tool.ghdl]
path = "./run_ghdl"

[tool.ghdl.versions]
"4.0" = "path:/opt/ghdl-4.0"
~~~`,
	}

	noSuitableVersionIssue = &Issue{
		id: NoSuitableVersionId,
		mdMsg: `
# No suitable tool version!

None of the versions declared for a tool match the flow's version
patterns.

## Pattern syntax:
- ` + "`*`" + ` matches any run of characters
- ` + "`?`" + ` matches a single character
- ` + "`[12]`" + ` matches a character class

## Things you can try:
- Compare the flow's patterns against the available versions:
~~~
$ chain tools list
~~~

- Widen the pattern (e.g. "1.*" instead of "1.3")
- Register the missing version in tools.toml`,
	}

	versionConflictIssue = &Issue{
		id: VersionConflictId,
		mdMsg: `
# Conflicting tool versions!

One flow ended up requiring two different versions of the same tool.
Each flow runs with exactly one version of each tool.

## Things you can try:
- Align the version patterns across the flow's requirement entries
- Check whether two merged documents contribute incompatible patterns
  for the same flow:
~~~
$ chain --debug resolve <flow>
~~~`,
	}

	dependencyCycleIssue = &Issue{
		id: DependencyCycleId,
		mdMsg: `
# Dependency cycle detected!

The 'flows' dependency declarations form a cycle, which has no valid
resolution order.

## Example of a cycle:
~~~toml
[flow.synth]
path = "./synth"
flows = ["pack"]

[flow.pack]
path = "./pack"
flows = ["synth"]   # Cycle: synth -> pack -> synth
~~~

## Things you can try:
- Review the 'flows' keys along the cycle reported above
- Break the cycle by removing one of the dependency edges`,
	}

	issues = map[Id]*Issue{
		toolsConfigNotFoundIssue.Id(): toolsConfigNotFoundIssue,
		flowsConfigNotFoundIssue.Id(): flowsConfigNotFoundIssue,
		configParseErrorIssue.Id():    configParseErrorIssue,
		flowNotFoundIssue.Id():        flowNotFoundIssue,
		flowBackendMissingIssue.Id():  flowBackendMissingIssue,
		toolNotFoundIssue.Id():        toolNotFoundIssue,
		noSuitableVersionIssue.Id():   noSuitableVersionIssue,
		versionConflictIssue.Id():     versionConflictIssue,
		dependencyCycleIssue.Id():     dependencyCycleIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
