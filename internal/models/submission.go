package models

import "time"

// Submission represents a student response to an assignment. Responses
// arrive either as raw text or as an uploaded image that still needs
// transcription before it can be evaluated.
type Submission struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	AssignmentID uint       `gorm:"not null" json:"assignment_id"`
	StudentID    uint       `gorm:"not null" json:"student_id"`
	RawText      string     `gorm:"type:text" json:"raw_text"`
	WordCount    int        `json:"word_count"`
	ImageURL     string     `gorm:"size:512" json:"image_url"`
	Status       string     `gorm:"size:32;not null" json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Assignment   Assignment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"assignment"`
	Student      Student    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"student"`
}

const (
	// SubmissionStatusReceived indicates the response text or image has been stored.
	SubmissionStatusReceived = "received"
	// SubmissionStatusTranscribed indicates an image submission has been turned into text.
	SubmissionStatusTranscribed = "transcribed"
	// SubmissionStatusEvaluated indicates the rubric has produced scores for the response.
	SubmissionStatusEvaluated = "evaluated"
)

// IsEvaluated reports whether the submission already has rubric scores.
func (s Submission) IsEvaluated() bool {
	return s.Status == SubmissionStatusEvaluated
}

// HasText reports whether the submission carries text ready for evaluation.
func (s Submission) HasText() bool {
	return s.RawText != ""
}
