package backend

import (
	"context"
	"fmt"
	"net/http"
)

// Users lists every account. Admin only.
func (c *Client) Users(ctx context.Context, token string) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/users", token, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UserStats fetches per-user aggregates. Admin only.
func (c *Client) UserStats(ctx context.Context, userID int64, token string) (*UserStats, error) {
	var stats UserStats
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d/stats", userID), token, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
