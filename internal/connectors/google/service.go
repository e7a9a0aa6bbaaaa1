package google

import (
	"context"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/discovery/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi/transport"
	"google.golang.org/api/option"
	"google.golang.org/api/people/v1"
	"google.golang.org/api/tasks/v1"

	"github.com/custodia-labs/wsbridge/internal/core/ports/driven"
)

// Service paths relative to an overridden endpoint. They mirror the base
// paths of the production hosts so a single test server can stand in for
// every API.
const (
	pathDrive     = "drive/v3/"
	pathCalendar  = "calendar/v3/"
	pathDiscovery = "discovery/v1/"
	pathBatch     = "batch/"
	productionAPI = "https://www.googleapis.com/"
)

// ClientOptions configures how provider clients reach the network.
type ClientOptions struct {
	// Endpoint replaces every API host, e.g. an httptest server URL.
	// Empty means the production hosts.
	Endpoint string
	// Timeout bounds each request. Zero means no client-side timeout.
	Timeout time.Duration
	// Transport is the base round tripper. Defaults to http.DefaultTransport.
	Transport http.RoundTripper
	// Metrics receives per-call counters. Defaults to NopMetrics.
	Metrics driven.Metrics
}

// Client bundles the authenticated HTTP client, the shared throttle and
// the endpoint every provider adapter builds its API service from.
type Client struct {
	http     *http.Client
	throttle *Throttle
	metrics  driven.Metrics
	endpoint string
	base     http.RoundTripper
	timeout  time.Duration
}

// NewClient creates a client whose requests carry the bearer token held by
// tokens and wait on throttle before going out.
func NewClient(tokens driven.TokenProvider, throttle *Throttle, opts ClientOptions) *Client {
	base := opts.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = driven.NopMetrics{}
	}
	endpoint := opts.Endpoint
	if endpoint != "" && !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}

	return &Client{
		http: &http.Client{
			Timeout: opts.Timeout,
			Transport: &oauth2.Transport{
				Source: NewTokenSource(tokens),
				Base:   base,
			},
		},
		throttle: throttle,
		metrics:  metrics,
		endpoint: endpoint,
		base:     base,
		timeout:  opts.Timeout,
	}
}

// HTTPClient returns the authenticated HTTP client.
func (c *Client) HTTPClient() *http.Client {
	return c.http
}

// Throttle returns the shared gate.
func (c *Client) Throttle() *Throttle {
	return c.throttle
}

// Call runs one provider request through the gate. The error it returns
// is already normalised. A rate-limit response pauses the gate.
func Call[T any](ctx context.Context, c *Client, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if err := c.throttle.Wait(ctx); err != nil {
		return zero, NormalizeError(op, err)
	}

	start := time.Now()
	v, err := fn(ctx)
	c.metrics.RecordAPICall(op, err, time.Since(start))
	if err != nil {
		if IsRateLimited(err) {
			c.throttle.RecordRateLimitError(RetryAfter(err))
		}
		return zero, NormalizeError(op, err)
	}
	return v, nil
}

// serviceOptions returns the options for an API whose production base
// path lives under path.
func (c *Client) serviceOptions(path string) []option.ClientOption {
	opts := []option.ClientOption{option.WithHTTPClient(c.http)}
	if c.endpoint != "" {
		opts = append(opts, option.WithEndpoint(c.endpoint+path))
	}
	return opts
}

// url resolves a path against the API root used for raw requests.
func (c *Client) url(path string) string {
	if c.endpoint != "" {
		return c.endpoint + path
	}
	return productionAPI + path
}

// NewDriveService creates a Google Drive API service.
func NewDriveService(ctx context.Context, c *Client) (*drive.Service, error) {
	return drive.NewService(ctx, c.serviceOptions(pathDrive)...)
}

// NewCalendarService creates a Google Calendar API service.
func NewCalendarService(ctx context.Context, c *Client) (*calendar.Service, error) {
	return calendar.NewService(ctx, c.serviceOptions(pathCalendar)...)
}

// NewGmailService creates a Gmail API service.
func NewGmailService(ctx context.Context, c *Client) (*gmail.Service, error) {
	return gmail.NewService(ctx, c.serviceOptions("")...)
}

// NewPeopleService creates a People API service.
func NewPeopleService(ctx context.Context, c *Client) (*people.Service, error) {
	return people.NewService(ctx, c.serviceOptions("")...)
}

// NewTasksService creates a Google Tasks API service.
func NewTasksService(ctx context.Context, c *Client) (*tasks.Service, error) {
	return tasks.NewService(ctx, c.serviceOptions("")...)
}

// NewDiscoveryService creates a discovery client authenticated with the
// application's API key rather than the user's token.
func NewDiscoveryService(ctx context.Context, c *Client, apiKey string) (*discovery.Service, error) {
	keyed := &http.Client{
		Timeout:   c.timeout,
		Transport: &transport.APIKey{Key: apiKey, Transport: c.base},
	}
	opts := []option.ClientOption{option.WithHTTPClient(keyed)}
	if c.endpoint != "" {
		opts = append(opts, option.WithEndpoint(c.endpoint+pathDiscovery))
	}
	return discovery.NewService(ctx, opts...)
}
