package models

import "time"

// Assignment represents a writing prompt that students respond to.
// Variant selects which rubric grades the responses.
type Assignment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Prompt      string    `gorm:"type:text;not null" json:"prompt"`
	Variant     string    `gorm:"size:32;not null" json:"variant"`
	DueDate     time.Time `gorm:"not null" json:"due_date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Submissions []Submission
}

// IsPastDue returns true when the assignment deadline has already passed.
func (a Assignment) IsPastDue(reference time.Time) bool {
	return reference.After(a.DueDate)
}
