package models

import "time"

// Role tags the author of a single message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one persisted chat message. Each record carries exactly one
// role; an exchange is stored as a user record followed by an assistant
// record written in the same transaction.
type Message struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"-"`
	SessionToken string    `json:"-"`
	Role         Role      `json:"role"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"timestamp"`
}

// TableName returns the name of the database table
// associated with the Message model.
func (m Message) TableName() string {
	return "messages"
}

// RoleMessage is a transcript entry used as LLM input context.
type RoleMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
