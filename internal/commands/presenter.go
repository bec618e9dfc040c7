package commands

import (
	"fmt"
	"io"

	"taskgenie/internal/config"
	"taskgenie/internal/logging"
	"taskgenie/internal/service"
	"taskgenie/internal/tasklist"
)

// writerNotifier prints notifications: successes to out unless quiet,
// errors to errOut.
type writerNotifier struct {
	out, errOut io.Writer
	quiet       bool
}

func (n writerNotifier) Notify(note tasklist.Notification) {
	if note.Level == tasklist.LevelError {
		fmt.Fprintf(n.errOut, "error: %s\n", note.Message)
		return
	}
	if !n.quiet {
		fmt.Fprintln(n.out, note.Message)
	}
}

// newPresenter builds a presenter for one command run. Notifications go to
// the command's writers. The developer log reaches errOut only with --debug;
// otherwise failure detail stays out of user output.
func newPresenter(cfg *config.Config, svc service.Service, out, errOut io.Writer, opts ...tasklist.Option) *tasklist.Presenter {
	logOut := io.Discard
	if cfg.Debug {
		logOut = errOut
	}
	logger := logging.New(logOut, cfg.Debug)
	base := []tasklist.Option{
		tasklist.WithNotifier(writerNotifier{out: out, errOut: errOut, quiet: cfg.Quiet}),
		tasklist.WithLogger(logging.Component(logger, "tasklist")),
	}
	return tasklist.New(svc, tasklist.NewStore(nil), append(base, opts...)...)
}

// parseFilterFlag validates a --filter value and prints the error itself.
func parseFilterFlag(errOut io.Writer, s string) (tasklist.Filter, bool) {
	f, err := tasklist.ParseFilter(s)
	if err != nil {
		fmt.Fprintf(errOut, "error: unknown filter: %s (want newest, oldest, to-do, in-progress or done)\n", s)
		return "", false
	}
	return f, true
}
