package dto

import "time"

// GradingNotification tells a student that rubric scores are ready.
type GradingNotification struct {
	StudentID          uint      `json:"student_id" validate:"required,gt=0"`
	SubmissionID       uint      `json:"submission_id" validate:"required,gt=0"`
	AssignmentID       uint      `json:"assignment_id" validate:"required,gt=0"`
	Variant            string    `json:"variant" validate:"required,oneof=component argument"`
	OverallDisplay     float64   `json:"overall_display"`
	TotalPointsDisplay float64   `json:"total_points_display"`
	Message            string    `json:"message" validate:"required,min=1"`
	SentAt             time.Time `json:"sent_at"`
}
