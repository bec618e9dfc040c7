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
	"taskgenie/internal/tasklist"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command. It opens the presenter's edit modal
// on the resolved task, applies the flag values and submits the full record.
type EditCmd struct {
	authed
	filter string
	fields editFields
}

// editFields holds the flag values; a nil pointer means "leave unchanged".
type editFields struct {
	title       *string
	description *string
	status      *string
	due         *string
}

// optionalString is a flag.Value that records whether it was set.
type optionalString struct {
	target **string
}

func (o optionalString) String() string {
	if o.target == nil || *o.target == nil {
		return ""
	}
	return **o.target
}

func (o optionalString) Set(s string) error {
	*o.target = &s
	return nil
}

// SetFields sets the edit values (for testing). Empty strings leave a field
// unchanged.
func (c *EditCmd) SetFields(title, description, status, due string) {
	c.fields = editFields{}
	set := func(dst **string, v string) {
		if v != "" {
			*dst = &v
		}
	}
	set(&c.fields.title, title)
	set(&c.fields.description, description)
	set(&c.fields.status, status)
	set(&c.fields.due, due)
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return []string{"update"} }
func (c *EditCmd) Synopsis() string  { return "Edit a task" }
func (c *EditCmd) Usage() string {
	return "taskgenie edit [--filter <f>] [--title <t>] [--description <d>] [--status <s>] [--due <YYYY-MM-DD>] <ref>"
}

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	c.fields = editFields{}
	fs.StringVar(&c.filter, "filter", string(tasklist.DefaultFilter), "")
	fs.Var(optionalString{&c.fields.title}, "title", "")
	fs.Var(optionalString{&c.fields.description}, "description", "")
	fs.Var(optionalString{&c.fields.status}, "status", "")
	fs.Var(optionalString{&c.fields.due}, "due", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	ref, ok := parseRefArg(errOut, args)
	if !ok {
		return exitcode.UserError
	}
	f := c.fields
	if f.title == nil && f.description == nil && f.status == nil && f.due == nil {
		fmt.Fprintln(errOut, "error: nothing to change (use --title, --description, --status or --due)")
		return exitcode.UserError
	}
	return editTask(ctx, cfg, svc, c.filter, ref, out, errOut, func(t *service.Task) {
		if f.title != nil {
			t.Title = *f.title
		}
		if f.description != nil {
			t.Description = *f.description
		}
		if f.status != nil {
			t.Status = service.Status(strings.ToLower(strings.TrimSpace(*f.status)))
		}
		if f.due != nil {
			t.DueDate = strings.TrimSpace(*f.due)
		}
	})
}

// editTask runs one request-edit/submit cycle on the task ref names.
func editTask(ctx context.Context, cfg *config.Config, svc service.Service, filterName string, ref TaskRef, out, errOut io.Writer, apply func(*service.Task)) int {
	if filterName == "" {
		filterName = string(tasklist.DefaultFilter)
	}
	filter, ok := parseFilterFlag(errOut, filterName)
	if !ok {
		return exitcode.UserError
	}

	p := newPresenter(cfg, svc, out, errOut, tasklist.WithFilter(filter))
	task, err := resolveTask(ctx, p, svc, ref)
	if err != nil {
		return reportResolveError(errOut, ref, err)
	}

	// Backends may send full timestamps; submit the day as the TUI form does
	if _, ok := task.Due(); ok {
		task.DueDate = task.DueDay()
	}

	p.RequestEdit(task)
	updated, _ := p.Selected()
	apply(&updated)

	if err := tasklist.ValidateEdit(updated); err != nil {
		p.CancelEdit()
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if err := p.SubmitEdit(ctx, updated); err != nil {
		return mutationExit(errOut, err)
	}
	return exitcode.Success
}
