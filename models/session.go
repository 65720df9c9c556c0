package models

import "time"

// Session is one authenticated login. A user may hold several sessions at
// once; a session stays valid until it is deleted by logout.
type Session struct {
	Token     string    `json:"-"`
	UserID    int64     `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}

// Identity is the result of resolving a session token: the owning user and
// the token itself, which partitions the conversation log.
type Identity struct {
	UserID       int64
	Name         string
	Email        string
	SessionToken string
}
