package models

import "time"

type User struct {
	ID           int
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// InteractionRecord is one row of the append-only interaction log. Feedback
// is empty at creation and may be attached once afterwards.
type InteractionRecord struct {
	ID        int
	QueryText string
	Topic     string
	Mood      string
	Polarity  float64
	Feedback  string
	Username  string
	CreatedAt time.Time
}

// Candidate is a single rankable learning resource. Score is computed per
// request and never stored.
type Candidate struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Level       string `json:"level"`
	Category    string `json:"category"`
	Platform    string `json:"platform"`
	Score       int    `json:"score"`
}
