// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Submission statuses. A submission only ever holds an undecided or
// transiently-marked state; finalized items move to an outcome store.
const (
	SubmissionStatusPending  = "pending"
	SubmissionStatusRejected = "rejected"
)

// Submission is a news post awaiting a moderation decision.
type Submission struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Topic     string         `json:"topic"`
	Reporter  string         `json:"reporter"`
	Content   string         `json:"content"`
	Image     string         `gorm:"type:text" json:"image"` // base64 payload or URI; presence only, never validated
	Status    string         `gorm:"not null;default:pending" json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsComplete reports whether the submission carries every field required
// before it may be published.
func (s *Submission) IsComplete() bool {
	return s.Topic != "" && s.Reporter != "" && s.Content != "" && s.Image != ""
}

// ModerationDecision is the transient payload captured between the request
// step and the finalize step of an approval. It is never persisted.
type ModerationDecision struct {
	SubmissionID uint   `json:"submission_id"`
	Topic        string `json:"topic"`
	Reporter     string `json:"reporter"`
	Content      string `json:"content"`
	Image        string `json:"image"`
	Feedback     string `json:"feedback"`
	Rating       int    `json:"rating"`
}
