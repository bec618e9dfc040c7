package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskgenie/internal/config"
	"taskgenie/internal/exitcode"
	"taskgenie/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command. The command list is built from the
// default registry.
type HelpCmd struct {
	local
}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskgenie help" }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, HelpText(DefaultRegistry))
	return exitcode.Success
}

// HelpText renders usage for every command in r.
func HelpText(r *Registry) string {
	var b strings.Builder
	b.WriteString("Usage:\n")
	b.WriteString("  taskgenie                  List tasks (same as: taskgenie list)\n")
	for _, cmd := range r.All() {
		fmt.Fprintf(&b, "  %-26s %s\n", cmd.Name(), cmd.Synopsis())
		fmt.Fprintf(&b, "      %s\n", cmd.Usage())
	}
	b.WriteString(commonHelp)
	return b.String()
}

const commonHelp = `
<ref> is a number printed by list (position in the --filter ordering) or a task id.

Common flags:
  --config <dir>   Override config directory
  --server <url>   Override the backend URL
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
