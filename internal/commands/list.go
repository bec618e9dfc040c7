package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskgenie/internal/config"
	"taskgenie/internal/exitcode"
	"taskgenie/internal/output"
	"taskgenie/internal/service"
	"taskgenie/internal/tasklist"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskgenie` (no args) and `taskgenie list`.
type ListCmd struct {
	authed
	filter string
	page   int
	json   bool
}

// SetPage sets the page number (for testing).
func (c *ListCmd) SetPage(page int) {
	c.page = page
}

// SetFilter sets the filter name (for testing).
func (c *ListCmd) SetFilter(filter string) {
	c.filter = filter
}

// SetJSON selects JSON output (for testing).
func (c *ListCmd) SetJSON(on bool) {
	c.json = on
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks, one page at a time" }
func (c *ListCmd) Usage() string {
	return "taskgenie list [--filter <newest|oldest|to-do|in-progress|done>] [--page <n>] [--json]"
}

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", string(tasklist.DefaultFilter), "")
	fs.StringVar(&c.filter, "f", string(tasklist.DefaultFilter), "")
	fs.IntVar(&c.page, "page", 1, "")
	fs.BoolVar(&c.json, "json", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	// Zero values come from tests that skip RegisterFlags
	if c.filter == "" {
		c.filter = string(tasklist.DefaultFilter)
	}
	if c.page == 0 {
		c.page = 1
	}
	if c.page < 1 {
		fmt.Fprintf(errOut, "error: invalid page number: %d\n", c.page)
		return exitcode.UserError
	}
	filter, ok := parseFilterFlag(errOut, c.filter)
	if !ok {
		return exitcode.UserError
	}

	p := newPresenter(cfg, svc, out, errOut, tasklist.WithFilter(filter))
	if err := p.Refresh(ctx); err != nil {
		return reportBackendError(errOut, err)
	}

	// Page 1 always exists; later pages need a control
	if c.page > 1 {
		if err := p.SetPage(c.page); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
	}
	v := p.View()

	if c.json {
		return c.printJSON(v, out, errOut)
	}

	if v.Empty {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	output.FormatHeader(out, v.Filter.Label(), v.Filtered)
	if v.FilteredEmpty() {
		fmt.Fprintln(out, "no tasks match filter")
		return exitcode.Success
	}

	// Numbers are positions in the whole filtered ordering, usable as <ref>
	start := (v.Page-1)*tasklist.PageSize + 1
	for i, task := range v.Tasks {
		output.FormatTask(out, start+i, task)
	}
	output.FormatPager(out, v.Page, v.Pages)
	return exitcode.Success
}

func (c *ListCmd) printJSON(v tasklist.View, out, errOut io.Writer) int {
	tasks := v.Tasks
	if tasks == nil {
		tasks = []service.Task{}
	}
	s, err := output.NewJSONFormatter().Format(output.Page{
		Filter:     string(v.Filter),
		Page:       v.Page,
		TotalPages: v.TotalPages,
		Total:      v.Total,
		Filtered:   v.Filtered,
		Tasks:      tasks,
	})
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	fmt.Fprintln(out, s)
	return exitcode.Success
}
