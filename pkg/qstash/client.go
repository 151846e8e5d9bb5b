// Package qstash is a client for the Upstash QStash HTTP API, a hosted
// message queueing and scheduling service. The client serializes requests,
// attaches auth headers, calls the remote endpoint, and maps responses to
// typed results or errors. Queueing, delivery guarantees, and retry policy
// all live server-side.
package qstash

import (
	"strings"
	"time"

	"github.com/samvad-hq/qstash-go/pkg/httpclient"
	"go.uber.org/zap"
)

// DefaultBaseURL is the production QStash API endpoint.
const DefaultBaseURL = "https://qstash.upstash.io/v1/"

const defaultTimeout = 10 * time.Second

// Client talks to the QStash API. It holds only immutable configuration
// plus a transport handle and is safe for concurrent use.
type Client struct {
	token   string
	baseURL string
	http    httpclient.Client
	log     *zap.SugaredLogger
}

// Option customizes a Client at construction time.
type Option func(*Client)

// WithBaseURL points the client at a different API endpoint, e.g. a test
// server or a self-hosted gateway.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSpace(baseURL) }
}

// WithHTTPClient injects the transport used for API calls. The transport
// owns timeout configuration; the client passes contexts through.
func WithHTTPClient(client httpclient.Client) Option {
	return func(c *Client) { c.http = client }
}

// WithLogger attaches a logger for debug-level request tracing. Without it
// the client stays silent; errors are returned, never logged.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(c *Client) { c.log = log }
}

// New creates a QStash client for the given API token. The token is the
// key from the QStash dashboard; it is only checked for non-emptiness
// locally, the server is the source of truth for validity. No network
// I/O happens here.
func New(token string, opts ...Option) (*Client, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrEmptyToken
	}

	c := &Client{
		token:   token,
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(c.baseURL, "/") {
		c.baseURL += "/"
	}
	if c.http == nil {
		c.http = httpclient.NewRestyClient(defaultTimeout)
	}
	if c.log == nil {
		c.log = zap.NewNop().Sugar()
	}

	return c, nil
}
