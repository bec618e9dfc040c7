package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"taskgenie/internal/exitcode"
	"taskgenie/internal/service"
	"taskgenie/internal/tasklist"
)

// errOutOfRange marks a position past the end of the filtered ordering.
var errOutOfRange = errors.New("task number out of range")

// resolveTask finds the task a reference names. Positions are looked up in
// the presenter's filtered ordering after a refresh; ids are fetched
// directly so the full current record is known.
func resolveTask(ctx context.Context, p *tasklist.Presenter, svc service.Service, ref TaskRef) (service.Task, error) {
	if ref.ID != "" {
		return svc.GetTask(ctx, ref.ID)
	}

	if err := p.Refresh(ctx); err != nil {
		return service.Task{}, err
	}
	ordered := p.Ordered()
	if ref.Pos < 1 || ref.Pos > len(ordered) {
		return service.Task{}, fmt.Errorf("%w: %d", errOutOfRange, ref.Pos)
	}
	return ordered[ref.Pos-1], nil
}

// reportResolveError prints a resolveTask failure and returns its exit code.
func reportResolveError(errOut io.Writer, ref TaskRef, err error) int {
	switch {
	case errors.Is(err, errOutOfRange):
		fmt.Fprintf(errOut, "error: task number out of range: %d\n", ref.Pos)
		return exitcode.UserError
	case errors.Is(err, service.ErrNotFound):
		fmt.Fprintf(errOut, "error: task not found: %s\n", ref)
		return exitcode.UserError
	}
	return reportBackendError(errOut, err)
}

// parseRefArg parses the task reference and prints the error itself.
func parseRefArg(errOut io.Writer, args []string) (TaskRef, bool) {
	ref, err := ParseTaskRef(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return TaskRef{}, false
	}
	return ref, true
}
