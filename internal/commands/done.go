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
	Register(&DoneCmd{})
}

// DoneCmd implements the done command: an edit that only sets the status.
type DoneCmd struct {
	authed
	filter string
}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return nil }
func (c *DoneCmd) Synopsis() string  { return "Mark a task done" }
func (c *DoneCmd) Usage() string     { return "taskgenie done [--filter <f>] <ref>" }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", string(tasklist.DefaultFilter), "")
}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	ref, ok := parseRefArg(errOut, args)
	if !ok {
		return exitcode.UserError
	}
	return editTask(ctx, cfg, svc, c.filter, ref, out, errOut, func(t *service.Task) {
		t.Status = service.StatusDone
	})
}
