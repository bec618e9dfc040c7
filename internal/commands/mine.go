package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"taskgenie/internal/config"
	"taskgenie/internal/exitcode"
	"taskgenie/internal/output"
	"taskgenie/internal/service"
	"taskgenie/internal/session"
	"taskgenie/internal/tasklist"
)

func init() {
	Register(&MineCmd{})
}

// MineCmd lists the tasks owned by one user, by default the logged-in one.
type MineCmd struct {
	authed
	user   string
	filter string
}

// SetUser sets the user id (for testing).
func (c *MineCmd) SetUser(id string) {
	c.user = id
}

func (c *MineCmd) Name() string      { return "mine" }
func (c *MineCmd) Aliases() []string { return nil }
func (c *MineCmd) Synopsis() string  { return "List tasks owned by a user" }
func (c *MineCmd) Usage() string     { return "taskgenie mine [--user <id>] [--filter <f>]" }

func (c *MineCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.user, "user", "", "")
	fs.StringVar(&c.filter, "filter", string(tasklist.DefaultFilter), "")
}

func (c *MineCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if c.filter == "" {
		c.filter = string(tasklist.DefaultFilter)
	}
	filter, ok := parseFilterFlag(errOut, c.filter)
	if !ok {
		return exitcode.UserError
	}

	userID := c.user
	if userID == "" {
		rec, err := session.NewStore(cfg.SessionPath()).Load()
		if errors.Is(err, session.ErrNoSession) {
			fmt.Fprintln(errOut, "error: not logged in (run: taskgenie login)")
			return exitcode.AuthError
		}
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.AuthError
		}
		if userID, err = rec.UserID(); err != nil {
			fmt.Fprintf(errOut, "error: %v (use --user)\n", err)
			return exitcode.UserError
		}
	}

	tasks, err := svc.GetUserTasks(ctx, userID)
	if err != nil {
		return reportBackendError(errOut, err)
	}

	tasks = tasklist.Apply(tasks, filter)
	if len(tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}
	output.FormatHeader(out, filter.Label(), len(tasks))
	for i, task := range tasks {
		output.FormatTask(out, i+1, task)
	}
	return exitcode.Success
}
