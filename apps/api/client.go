// Package lmsapi is the client of the LMS REST API: a bearer-authenticated JSON transport,
// cached and tag-invalidated queries, and mutations.
package lmsapi

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/trezcool/masomo-portal/core"
	"github.com/trezcool/masomo-portal/core/cache"
	"github.com/trezcool/masomo-portal/core/session"
)

// Navigator moves the application to another route, e.g. the login page on a global sign-out.
type Navigator interface {
	Redirect(path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(path string)

func (f NavigatorFunc) Redirect(path string) { f(path) }

type nopNavigator struct{}

func (nopNavigator) Redirect(string) {}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

// Client talks to the API on behalf of the stored session.
type Client struct {
	http      *http.Client
	baseURL   string
	loginPath string
	sessions  *session.Manager
	cache     *cache.Cache
	nav       Navigator
	logger    core.Logger
	requestID func() string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithNavigator(nav Navigator) Option {
	return func(c *Client) { c.nav = nav }
}

func WithLogger(logger core.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithCache shares an existing cache instead of creating one.
func WithCache(qc *cache.Cache) Option {
	return func(c *Client) { c.cache = qc }
}

func New(conf *core.Config, sessions *session.Manager, opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: conf.API.Timeout},
		baseURL:   strings.TrimRight(conf.API.BaseURL, "/"),
		loginPath: conf.API.LoginPath,
		sessions:  sessions,
		nav:       nopNavigator{},
		logger:    nopLogger{},
		requestID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cache == nil {
		c.cache = cache.New(cache.WithLogger(c.logger))
	}
	if c.loginPath == "" {
		c.loginPath = session.LoginPath
	}
	return c
}

// Cache returns the query cache of c.
func (c *Client) Cache() *cache.Cache {
	return c.cache
}

// Sessions returns the session manager of c.
func (c *Client) Sessions() *session.Manager {
	return c.sessions
}

// Close stops the query cache.
func (c *Client) Close() {
	c.cache.Close()
}

// signOut is the global reaction to a 401: forget the session and every cached result,
// then send the user to the login page.
func (c *Client) signOut(req request) {
	c.logger.Warn("api: unauthorized, signing out", map[string]interface{}{"method": req.method, "path": req.path})

	if err := c.sessions.Clear(); err != nil {
		c.logger.Error("api: clearing session", err)
	}
	c.cache.Reset()
	c.nav.Redirect(c.loginPath)
}

func isLoginRequest(req request) bool {
	return strings.HasPrefix(req.path, pathLogin)
}
