package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"taskgenie/internal/config"
	"taskgenie/internal/exitcode"
	"taskgenie/internal/logging"
	"taskgenie/internal/service"
	"taskgenie/internal/tasklist"
	"taskgenie/internal/tui"
)

func init() {
	Register(&TUICmd{})
}

// TUICmd starts the interactive task list.
type TUICmd struct {
	authed
	filter string
}

func (c *TUICmd) Name() string      { return "tui" }
func (c *TUICmd) Aliases() []string { return []string{"ui"} }
func (c *TUICmd) Synopsis() string  { return "Browse and edit tasks interactively" }
func (c *TUICmd) Usage() string     { return "taskgenie tui [--filter <f>]" }

func (c *TUICmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", string(tasklist.DefaultFilter), "")
}

func (c *TUICmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if c.filter == "" {
		c.filter = string(tasklist.DefaultFilter)
	}
	filter, ok := parseFilterFlag(errOut, c.filter)
	if !ok {
		return exitcode.UserError
	}

	// The screen belongs to the UI; the developer log goes to a file with --debug
	logOut := io.Discard
	if cfg.Debug {
		if err := cfg.EnsureDir(); err == nil {
			f, err := os.OpenFile(cfg.LogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
			if err == nil {
				defer f.Close()
				logOut = f
			}
		}
	}
	logger := logging.New(logOut, cfg.Debug)

	notifier := tui.NewChanNotifier()
	p := tasklist.New(svc, tasklist.NewStore(nil),
		tasklist.WithFilter(filter),
		tasklist.WithNotifier(notifier),
		tasklist.WithLogger(logging.Component(logger, "tui")),
	)

	if err := tui.Run(ctx, p, notifier.C()); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
