// Package rest implements the service.Service interface against the TaskGenie
// REST backend.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"taskgenie/internal/logging"
	"taskgenie/internal/service"
)

// Endpoint paths.
const (
	registerPath = "/api/user/register"
	loginPath    = "/api/user/login"
	tasksPath    = "/api/task"
	userTasks    = "/api/task/user/"
)

// maxErrorBody caps how much of an error response is kept.
const maxErrorBody = 64 << 10

// Client implements service.Service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *log.Entry
}

// Option configures a Client.
type Option func(*options)

type options struct {
	base      http.RoundTripper
	userAgent string
	logger    *log.Entry
}

// WithTransport sets the RoundTripper below the auth and header layers.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.base = rt }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(o *options) { o.userAgent = ua }
}

// WithLogger sets the developer log.
func WithLogger(l *log.Entry) Option {
	return func(o *options) { o.logger = l }
}

// New creates a client for baseURL. tokens is consulted on every request;
// the resulting token is sent as "Authorization: Bearer <token>".
func New(baseURL string, tokens oauth2.TokenSource, opts ...Option) *Client {
	o := options{logger: logging.Discard()}
	for _, opt := range opts {
		opt(&o)
	}

	var rt http.RoundTripper = &headerTransport{Base: o.base, UserAgent: o.userAgent}
	if tokens != nil {
		rt = &oauth2.Transport{Source: tokens, Base: rt}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Transport: rt},
		log:        o.logger,
	}
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		log:        logging.Discard(),
	}
}

// BaseURL returns the backend origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, name, email, password string) (service.Account, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var acct service.Account
	err := c.do(ctx, http.MethodPost, registerPath, body, &acct)
	return acct, err
}

// Login exchanges credentials for an account record.
func (c *Client) Login(ctx context.Context, email, password string) (service.Account, error) {
	body := map[string]string{"email": email, "password": password}
	var acct service.Account
	err := c.do(ctx, http.MethodPost, loginPath, body, &acct)
	return acct, err
}

// GetAllTasks returns the full task collection.
func (c *Client) GetAllTasks(ctx context.Context) ([]service.Task, error) {
	var tasks []service.Task
	if err := c.do(ctx, http.MethodGet, tasksPath, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetUserTasks returns tasks owned by userID.
func (c *Client) GetUserTasks(ctx context.Context, userID string) ([]service.Task, error) {
	var tasks []service.Task
	if err := c.do(ctx, http.MethodGet, userTasks+url.PathEscape(userID), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTask returns one task.
func (c *Client) GetTask(ctx context.Context, id string) (service.Task, error) {
	var task service.Task
	err := c.do(ctx, http.MethodGet, taskPath(id), nil, &task)
	return task, err
}

// CreateTask posts a new task.
func (c *Client) CreateTask(ctx context.Context, draft service.TaskDraft) (service.Task, error) {
	var task service.Task
	err := c.do(ctx, http.MethodPost, tasksPath, draft, &task)
	return task, err
}

// UpdateTask replaces the draft fields of task id.
func (c *Client) UpdateTask(ctx context.Context, id string, draft service.TaskDraft) (service.Task, error) {
	var task service.Task
	err := c.do(ctx, http.MethodPut, taskPath(id), draft, &task)
	return task, err
}

// SaveTask puts the full task record.
func (c *Client) SaveTask(ctx context.Context, t service.Task) (service.Task, error) {
	var task service.Task
	err := c.do(ctx, http.MethodPut, taskPath(t.ID), t, &task)
	return task, err
}

// DeleteTask deletes task id.
func (c *Client) DeleteTask(ctx context.Context, id string) (service.Confirmation, error) {
	var conf service.Confirmation
	err := c.do(ctx, http.MethodDelete, taskPath(id), nil, &conf)
	return conf, err
}

func taskPath(id string) string {
	return tasksPath + "/" + url.PathEscape(id)
}

// do sends one request and decodes a JSON response into out. Empty response
// bodies leave out untouched.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	entry := c.log.WithFields(log.Fields{"method": method, "path": path})
	entry.Debug("request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		entry.WithError(err).Debug("request failed")
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	entry = entry.WithField("status", resp.StatusCode)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := newAPIError(resp.StatusCode, data)
		entry.WithField("body", apiErr.Body).Debug("error response")
		return apiErr
	}
	entry.Debug("response")

	if out == nil {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

var _ service.Service = (*Client)(nil)
