package commands

import (
	"context"
	"flag"
	"io"

	"taskgenie/internal/config"
	"taskgenie/internal/exitcode"
	"taskgenie/internal/service"
	"taskgenie/internal/tasklist"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct {
	authed
	filter string
}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "taskgenie rm [--filter <f>] <ref>" }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", string(tasklist.DefaultFilter), "")
}

func (c *RmCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	ref, ok := parseRefArg(errOut, args)
	if !ok {
		return exitcode.UserError
	}
	if c.filter == "" {
		c.filter = string(tasklist.DefaultFilter)
	}
	filter, ok := parseFilterFlag(errOut, c.filter)
	if !ok {
		return exitcode.UserError
	}

	p := newPresenter(cfg, svc, out, errOut, tasklist.WithFilter(filter))

	// An id goes straight to the backend; a position needs the list
	id := ref.ID
	if id == "" {
		task, err := resolveTask(ctx, p, svc, ref)
		if err != nil {
			return reportResolveError(errOut, ref, err)
		}
		id = task.ID
	}

	if err := p.Delete(ctx, id); err != nil {
		return mutationExit(errOut, err)
	}
	return exitcode.Success
}
