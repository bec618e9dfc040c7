package commands

import (
	"context"
	"flag"
	"io"

	"taskgenie/internal/config"
	"taskgenie/internal/exitcode"
	"taskgenie/internal/output"
	"taskgenie/internal/service"
	"taskgenie/internal/tasklist"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd implements the show command.
type ShowCmd struct {
	authed
	filter string
}

func (c *ShowCmd) Name() string      { return "show" }
func (c *ShowCmd) Aliases() []string { return []string{"get"} }
func (c *ShowCmd) Synopsis() string  { return "Show one task" }
func (c *ShowCmd) Usage() string     { return "taskgenie show [--filter <f>] <ref>" }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", string(tasklist.DefaultFilter), "")
}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
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
	task, err := resolveTask(ctx, p, svc, ref)
	if err != nil {
		return reportResolveError(errOut, ref, err)
	}

	// A position was resolved from the list; fetch the record itself
	if ref.ID == "" {
		if task, err = svc.GetTask(ctx, task.ID); err != nil {
			return reportBackendError(errOut, err)
		}
	}

	output.FormatTaskDetail(out, task)
	return exitcode.Success
}
