package backend

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
)

// Posts lists all posts. The token is optional; when present the response
// carries per-user like flags.
func (c *Client) Posts(ctx context.Context, token string) ([]Post, error) {
	var posts []Post
	if err := c.do(ctx, http.MethodGet, "/posts", token, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// Post fetches a single post by id.
func (c *Client) Post(ctx context.Context, id int64, token string) (*Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/posts/%d", id), token, nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// MyPosts lists the posts written by the token's owner.
func (c *Client) MyPosts(ctx context.Context, token string) ([]Post, error) {
	var posts []Post
	if err := c.do(ctx, http.MethodGet, "/posts/my-posts", token, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// CreatePost publishes a new post.
func (c *Client) CreatePost(ctx context.Context, input PostInput, token string) (*Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodPost, "/posts", token, input, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost replaces the editable fields of an existing post.
func (c *Client) UpdatePost(ctx context.Context, id int64, input PostInput, token string) (*Post, error) {
	var post Post
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/posts/%d", id), token, input, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost removes a post.
func (c *Client) DeletePost(ctx context.Context, id int64, token string) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/posts/%d", id), token, nil, nil)
}

// Like toggles the caller's like on a post. The server decides whether
// this records or removes the like; callers track the toggle locally.
func (c *Client) Like(ctx context.Context, id int64, token string) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/like", id), token, struct{}{}, nil)
}

// RecordVisit records a page view and reports whether it was counted.
// It is best-effort: failures are logged and swallowed so a dead counter
// never interrupts page rendering.
func (c *Client) RecordVisit(ctx context.Context, id int64, token string) bool {
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/visit", id), token, struct{}{}, nil); err != nil {
		slog.Debug("record visit failed", "post_id", id, "error", err)
		return false
	}
	return true
}

// PostVisits returns the server-side visit count for a post, or 0 when
// the call fails.
func (c *Client) PostVisits(ctx context.Context, id int64) int {
	var visits int
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/posts/%d/visits", id), "", nil, &visits); err != nil {
		slog.Debug("fetch visit count failed", "post_id", id, "error", err)
		return 0
	}
	return visits
}

// Similar returns posts related to the given one. Failures degrade to an
// empty list; related content is never allowed to break a page.
func (c *Client) Similar(ctx context.Context, id int64) []Post {
	var posts []Post
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/posts/%d/similar", id), "", nil, &posts); err != nil {
		slog.Debug("fetch similar posts failed", "post_id", id, "error", err)
		return nil
	}
	return posts
}

// Recommendations returns the personalized list for a user. Like Similar,
// failures degrade to an empty list.
func (c *Client) Recommendations(ctx context.Context, userID int64, token string) []Post {
	var posts []Post
	path := fmt.Sprintf("/posts/user/%d/recommendations", userID)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &posts); err != nil {
		slog.Debug("fetch recommendations failed", "user_id", userID, "error", err)
		return nil
	}
	return posts
}

// PostStats fetches the aggregate counters and leaderboards.
func (c *Client) PostStats(ctx context.Context, token string) (*PostStats, error) {
	var stats PostStats
	if err := c.do(ctx, http.MethodGet, "/posts/stats", token, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
