package models

import "time"

// Outcome statuses as stored on finalized records.
const (
	OutcomeStatusApproved = "Approved"
	OutcomeStatusRejected = "Rejected"
)

// ApprovedRecord is the append-only record of an approved submission.
// SubmissionID is the idempotency key: a retried finalize cannot double-write.
// Records are never updated or deleted once written.
type ApprovedRecord struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SubmissionID uint      `gorm:"uniqueIndex;not null" json:"submission_id"`
	Topic        string    `json:"topic"`
	Content      string    `json:"content"`
	Reporter     string    `json:"reporter"`
	Status       string    `gorm:"not null" json:"status"`
	Feedback     string    `json:"feedback"`
	Rating       int       `json:"rating"`
	Image        string    `gorm:"type:text" json:"image"`
	CreatedAt    time.Time `json:"created_at"`
}

// RejectedRecord is the append-only record of a rejected submission.
type RejectedRecord struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	SubmissionID    uint      `gorm:"uniqueIndex;not null" json:"submission_id"`
	Topic           string    `json:"topic"`
	Content         string    `json:"content"`
	Reporter        string    `json:"reporter"`
	Image           string    `gorm:"type:text" json:"image"`
	RejectionReason string    `gorm:"not null" json:"rejection_reason"`
	Status          string    `gorm:"not null" json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}
