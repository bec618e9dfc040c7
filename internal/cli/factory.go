package cli

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"

	"taskgenie/internal/backend/rest"
	"taskgenie/internal/config"
	"taskgenie/internal/logging"
	"taskgenie/internal/service"
	"taskgenie/internal/session"
)

// ErrInvalidServerURL is returned by the REST factory for a server URL that
// is not an absolute http(s) URL.
var ErrInvalidServerURL = errors.New("invalid server URL")

// RESTFactory returns a ServiceFactory that talks to cfg.ServerURL. The
// session file is read on every request, so logging in mid-run takes effect
// without rebuilding the client.
func RESTFactory(version string) ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		u, err := url.Parse(cfg.ServerURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidServerURL, cfg.ServerURL)
		}

		logger := logging.New(os.Stderr, cfg.Debug)
		tokens := session.NewStore(cfg.SessionPath()).TokenSource()
		return rest.New(cfg.ServerURL, tokens,
			rest.WithUserAgent(config.AppName+"/"+version),
			rest.WithLogger(logging.Component(logger, "rest")),
		), nil
	}
}
