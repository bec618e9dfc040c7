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
)

func init() {
	Register(&LoginCmd{})
	Register(&RegisterCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	creds credentials
}

// SetCredentials sets email and password (for testing).
func (c *LoginCmd) SetCredentials(email, password string) {
	c.creds = credentials{Email: email, Password: password}
}

func (c *LoginCmd) Name() string       { return "login" }
func (c *LoginCmd) Aliases() []string  { return nil }
func (c *LoginCmd) Synopsis() string   { return "Log in and store the session" }
func (c *LoginCmd) Usage() string      { return "taskgenie login --email <e> [--password <p>]" }
func (c *LoginCmd) NeedsAuth() bool    { return false }
func (c *LoginCmd) NeedsBackend() bool { return true }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	c.creds = credentials{}
	fs.StringVar(&c.creds.Email, "email", "", "")
	fs.StringVar(&c.creds.Password, "password", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if err := c.creds.check(false); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	acct, err := svc.Login(ctx, c.creds.Email, c.creds.Password)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			fmt.Fprintln(errOut, "error: invalid email or password")
			return exitcode.AuthError
		}
		return reportBackendError(errOut, err)
	}
	if acct.Token == "" {
		fmt.Fprintln(errOut, "error: login response carried no token")
		return exitcode.AuthError
	}
	return storeSession(cfg, acct, out, errOut)
}

// RegisterCmd implements the register command.
type RegisterCmd struct {
	creds credentials
}

// SetCredentials sets name, email and password (for testing).
func (c *RegisterCmd) SetCredentials(name, email, password string) {
	c.creds = credentials{Name: name, Email: email, Password: password}
}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return []string{"signup"} }
func (c *RegisterCmd) Synopsis() string  { return "Create an account" }
func (c *RegisterCmd) Usage() string {
	return "taskgenie register --name <n> --email <e> [--password <p>]"
}
func (c *RegisterCmd) NeedsAuth() bool    { return false }
func (c *RegisterCmd) NeedsBackend() bool { return true }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {
	c.creds = credentials{}
	fs.StringVar(&c.creds.Name, "name", "", "")
	fs.StringVar(&c.creds.Email, "email", "", "")
	fs.StringVar(&c.creds.Password, "password", "", "")
}

func (c *RegisterCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if err := c.creds.check(true); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	acct, err := svc.Register(ctx, c.creds.Name, c.creds.Email, c.creds.Password)
	if err != nil {
		return reportBackendError(errOut, err)
	}

	// Some backends only create the account; the token comes from login
	if acct.Token == "" {
		if !cfg.Quiet {
			fmt.Fprintf(out, "registered %s (run: taskgenie login)\n", c.creds.Email)
		}
		return exitcode.Success
	}
	return storeSession(cfg, acct, out, errOut)
}

// storeSession persists acct's token as the session record.
func storeSession(cfg *config.Config, acct service.Account, out, errOut io.Writer) int {
	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}
	if err := session.NewStore(cfg.SessionPath()).Save(session.Record{Token: acct.Token}); err != nil {
		fmt.Fprintf(errOut, "error: failed to save session: %v\n", err)
		return exitcode.AuthError
	}
	if !cfg.Quiet {
		output.FormatAccount(out, acct)
	}
	return exitcode.Success
}
