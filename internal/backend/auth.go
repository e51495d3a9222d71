package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Login exchanges reader credentials for a token, then resolves the user
// profile so the caller gets both in one step.
func (c *Client) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var auth AuthResponse
	if err := c.doForm(ctx, "/auth/token", form, &auth); err != nil {
		return nil, err
	}

	user, err := c.Me(ctx, auth.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("resolve user after login: %w", err)
	}
	auth.User = user

	return &auth, nil
}

// LoginAdmin exchanges dashboard credentials for a token. The admin token
// endpoint returns the user fields inline.
func (c *Client) LoginAdmin(ctx context.Context, username, password string) (*AdminAuthResponse, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var auth AdminAuthResponse
	if err := c.doForm(ctx, "/auth/token_admin", form, &auth); err != nil {
		return nil, err
	}
	return &auth, nil
}

// Me fetches the profile of the token's owner.
func (c *Client) Me(ctx context.Context, token string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/auth/me", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates a new reader account.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
