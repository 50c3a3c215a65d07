// Package client issues XRPC queries and procedures against an AT Protocol
// service and decodes the responses into the typed record model.
package client

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mmattbtw/ATProtoKit/cache"
)

const (
	defaultHost    = "https://bsky.social"
	defaultTimeout = 30 * time.Second

	cacheTTL = 10 * time.Minute
)

// Transport is the I/O collaborator. The client builds requests and decodes
// responses; everything between is opaque. The default is an http.Client
// with a timeout; tests and embedding applications substitute their own.
type Transport interface {
	Do(req *http.Request) (*http.Response, error)
}

// Session is the bearer credential for authenticated calls. The client only
// reads it; refresh and rotation belong to whoever owns the session.
type Session struct {
	Handle     string `json:"handle"`
	DID        string `json:"did"`
	AccessJwt  string `json:"accessJwt"`
	RefreshJwt string `json:"refreshJwt"`
}

// Client is a single-service XRPC client. All methods are safe for
// concurrent use as long as the session is not swapped mid-flight.
type Client struct {
	host      string
	transport Transport
	session   *Session
	store     cache.Store
	logger    *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTransport replaces the HTTP collaborator.
func WithTransport(t Transport) Option {
	return func(c *Client) { c.transport = t }
}

// WithSession attaches a bearer credential to every call.
func WithSession(s *Session) Option {
	return func(c *Client) { c.session = s }
}

// WithCache enables read-through caching of handle and profile lookups.
func WithCache(store cache.Store) Option {
	return func(c *Client) { c.store = store }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the given service host. An empty host selects the
// public entryway.
func New(host string, opts ...Option) *Client {
	if host == "" {
		host = defaultHost
	}
	c := &Client{
		host:      host,
		transport: &http.Client{Timeout: defaultTimeout},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Host returns the service base URL this client talks to.
func (c *Client) Host() string { return c.host }

// SetSession swaps the credential used for subsequent calls. Serialize this
// with in-flight calls; the client does not.
func (c *Client) SetSession(s *Session) { c.session = s }
