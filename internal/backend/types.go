package backend

import "time"

// User is the profile record returned by the auth endpoints.
type User struct {
	ID        int64      `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email,omitempty"`
	IsAdmin   bool       `json:"is_admin,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// Post mirrors the wire record served by the posts endpoints.
type Post struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content,omitempty"`
	Image     string     `json:"image,omitempty"`
	Category  string     `json:"categorie,omitempty"`
	UserID    int64      `json:"user_id,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	Likes     int        `json:"likes"`
	IsLiked   bool       `json:"isliked"`
	Visits    int        `json:"visits"`
}

// PostInput is the payload for creating or updating a post.
type PostInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Image    string `json:"image,omitempty"`
	Category string `json:"categorie,omitempty"`
}

// AuthResponse is what the reader token endpoint returns, with the user
// profile resolved from /auth/me right after the token exchange.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        *User  `json:"user,omitempty"`
}

// AdminAuthResponse carries the user fields inline, so no follow-up
// profile fetch is needed for the dashboard.
type AdminAuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      int64  `json:"user_id"`
	Username    string `json:"username"`
	IsAdmin     bool   `json:"is_admin"`
}

// CategoryCount is one entry of a category leaderboard.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// PostStats is the aggregate payload behind the dashboard stats page.
type PostStats struct {
	TotalPosts        int             `json:"total_posts"`
	TotalLikes        int             `json:"total_likes"`
	TotalVisits       int             `json:"total_visits"`
	PopularCategories []CategoryCount `json:"popular_categories"`
	MostLikedPosts    []Post          `json:"most_liked_posts"`
	MostVisitedPosts  []Post          `json:"most_visited_posts"`
}

// UserStats is the per-user aggregate payload.
type UserStats struct {
	UserID             int64           `json:"user_id"`
	Username           string          `json:"username"`
	TotalPosts         int             `json:"total_posts"`
	TotalLikes         int             `json:"total_likes"`
	TotalVisits        int             `json:"total_visits"`
	FavoriteCategories []CategoryCount `json:"favorite_categories"`
}

// RegisterInput is the registration payload.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
