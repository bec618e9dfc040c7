package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"taskgenie/internal/config"
	"taskgenie/internal/exitcode"
	"taskgenie/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	authed
	date      string
	important bool
}

// SetDate sets the due date (for testing).
func (c *AddCmd) SetDate(date string) {
	c.date = date
}

// SetImportant sets the important flag (for testing).
func (c *AddCmd) SetImportant(on bool) {
	c.important = on
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskgenie add [--date <YYYY-MM-DD>] [--important] <content...>"
}

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.date, "date", "", "")
	fs.StringVar(&c.date, "d", "", "")
	fs.BoolVar(&c.important, "important", false, "")
	fs.BoolVar(&c.important, "i", false, "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	// Join args to form the content
	content := strings.TrimSpace(strings.Join(args, " "))
	if content == "" {
		fmt.Fprintln(errOut, "error: content required")
		return exitcode.UserError
	}

	date := strings.TrimSpace(c.date)
	if date != "" {
		if _, err := time.Parse(time.DateOnly, date); err != nil {
			fmt.Fprintf(errOut, "error: invalid date: %s (want YYYY-MM-DD)\n", date)
			return exitcode.UserError
		}
	}

	task, err := svc.CreateTask(ctx, service.TaskDraft{
		Content:   content,
		Date:      date,
		Important: c.important,
	})
	if err != nil {
		return reportBackendError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "created %s\n", task.ID)
	}
	return exitcode.Success
}
