package session

import "github.com/univmedia/campusnews/internal/backend"

// Session is the in-memory record of the current authentication state,
// rebuilt per request from the persisted token.
type Session struct {
	Token string
	User  *backend.User
}

// IsAuthenticated is true only when both the token and the resolved user
// are present. A token alone is "not yet authenticated", never an error.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Token != "" && s.User != nil
}

// IsAdmin reports whether the resolved user carries the admin flag.
func (s *Session) IsAdmin() bool {
	return s.IsAuthenticated() && s.User.IsAdmin
}

// UserID returns the resolved user's id, or 0 when logged out.
func (s *Session) UserID() int64 {
	if !s.IsAuthenticated() {
		return 0
	}
	return s.User.ID
}
