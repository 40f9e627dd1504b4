package domain

import "time"

// User is an account holder. Email and username are stored lowercased and are
// unique across all users (enforced by unique indexes on the collection).
// BoardRefs is the set of vision board ids reachable from this user; it is
// mutated only through the board service's reference push/pull, never directly.
type User struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name,omitempty"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	BoardRefs    []string  `json:"visionBoards"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Identity is the minimal projection of a User attached to a session.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Session is the server-side record a cookie token resolves to.
// RefreshedAt tracks the last sliding-expiration reset so that touches can be
// rate limited.
type Session struct {
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

// Identity returns the minimal projection stored for the session owner.
func (s Session) Identity() Identity {
	return Identity{ID: s.UserID, Username: s.Username}
}

// UserBoards pairs a user id with its board reference set. Used by the
// ownership repair sweep.
type UserBoards struct {
	UserID    string
	BoardRefs []string
}
