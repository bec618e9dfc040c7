// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"taskgenie/internal/config"
	"taskgenie/internal/service"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command calls the task endpoints with
	// the stored session token.
	NeedsAuth() bool

	// NeedsBackend returns true if the command calls the backend without a
	// session (register, login).
	NeedsBackend() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, paths, server URL).
	// svc is nil unless NeedsAuth or NeedsBackend returns true.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int
}

// local is embedded by commands that never touch the backend.
type local struct{}

func (local) NeedsAuth() bool    { return false }
func (local) NeedsBackend() bool { return false }

// authed is embedded by commands that call the task endpoints.
type authed struct{}

func (authed) NeedsAuth() bool    { return true }
func (authed) NeedsBackend() bool { return true }
