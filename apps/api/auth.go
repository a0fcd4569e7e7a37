package lmsapi

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/masomo-portal/core/session"
)

const (
	pathLogin          = "/auth/login"
	pathRegister       = "/auth/register"
	pathChangePassword = "/auth/change-password"
)

// Login authenticates and stores the new session. Every cached result of the previous identity is dropped.
// A 401 (bad credentials) is returned as is, without signing out.
func (c *Client) Login(ctx context.Context, creds Credentials) (LoginResult, error) {
	var res LoginResult
	if err := c.call(ctx, request{method: "POST", path: pathLogin, body: creds}, "", &res); err != nil {
		return LoginResult{}, err
	}
	if res.Token == "" {
		return LoginResult{}, errors.New("login response has no token")
	}

	c.cache.Reset()
	if err := c.sessions.Save(session.Session{Token: res.Token, User: res.User.SessionUser()}); err != nil {
		return LoginResult{}, errors.Wrap(err, "saving session")
	}
	return res, nil
}

// Logout forgets the session and every cached result.
func (c *Client) Logout() error {
	c.cache.Reset()
	return errors.Wrap(c.sessions.Clear(), "clearing session")
}

// Register calls the registration endpoint and returns its message.
func (c *Client) Register(ctx context.Context, reg Registration) (string, error) {
	var msg string
	err := c.call(ctx, request{method: "POST", path: pathRegister, body: reg}, "message", &msg)
	return msg, err
}

func (c *Client) ChangePassword(ctx context.Context, pc PasswordChange) error {
	return c.call(ctx, request{method: "POST", path: pathChangePassword, body: pc}, "", nil)
}
