package models

import "time"

// Feedback is a user's rating of one assistant reply.
type Feedback struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"-"`
	SessionToken string    `json:"-"`
	RunID        string    `json:"runId"`
	Score        float64   `json:"score"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Feedback model.
func (f Feedback) TableName() string {
	return "feedback"
}

// FeedbackRequest is the body of POST /feedback/submit.
type FeedbackRequest struct {
	RunID   string   `json:"runId"`
	Score   *float64 `json:"score"`
	Comment string   `json:"comment"`
}
