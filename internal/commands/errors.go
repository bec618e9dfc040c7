package commands

import (
	"errors"
	"fmt"
	"io"

	"taskgenie/internal/exitcode"
	"taskgenie/internal/service"
)

// exitCodeFor classifies a backend error.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return exitcode.AuthError
	case errors.Is(err, service.ErrNotFound):
		return exitcode.UserError
	}
	return exitcode.BackendError
}

// reportBackendError prints err for a direct service call and returns the
// matching exit code.
func reportBackendError(errOut io.Writer, err error) int {
	code := exitCodeFor(err)
	switch code {
	case exitcode.AuthError:
		fmt.Fprintf(errOut, "error: auth error: %v (run: taskgenie login)\n", err)
	case exitcode.UserError:
		fmt.Fprintf(errOut, "error: %v\n", err)
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	}
	return code
}

// mutationExit returns the exit code for a failed presenter mutation. The
// presenter has already notified the user; only an auth failure gets an
// extra hint.
func mutationExit(errOut io.Writer, err error) int {
	code := exitCodeFor(err)
	if code == exitcode.AuthError {
		fmt.Fprintln(errOut, "error: not logged in or session expired (run: taskgenie login)")
	}
	return code
}
