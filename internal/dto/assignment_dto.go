package dto

import (
	"time"

	"github.com/noah-isme/rubrica-go-api/internal/models"
)

// AssignmentCreateRequest describes the payload for creating a new assignment.
type AssignmentCreateRequest struct {
	Title   string `form:"title" json:"title" validate:"required,min=3"`
	Prompt  string `form:"prompt" json:"prompt" validate:"required,min=10"`
	Variant string `form:"variant" json:"variant" validate:"required,oneof=component argument"`
	DueDate string `form:"due_date" json:"due_date" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

// AssignmentUpdateRequest describes the payload for updating an assignment.
type AssignmentUpdateRequest struct {
	Title   *string `form:"title" json:"title" validate:"omitempty,min=3"`
	Prompt  *string `form:"prompt" json:"prompt" validate:"omitempty,min=10"`
	Variant *string `form:"variant" json:"variant" validate:"omitempty,oneof=component argument"`
	DueDate *string `form:"due_date" json:"due_date" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// AssignmentResponse is the serialized representation returned to API clients.
type AssignmentResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Prompt    string    `json:"prompt"`
	Variant   string    `json:"variant"`
	DueDate   time.Time `json:"due_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewAssignmentResponse converts a model into a DTO.
func NewAssignmentResponse(model models.Assignment) AssignmentResponse {
	return AssignmentResponse{
		ID:        model.ID,
		Title:     model.Title,
		Prompt:    model.Prompt,
		Variant:   model.Variant,
		DueDate:   model.DueDate,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

// NewAssignmentResponseSlice converts a slice of models into DTOs.
func NewAssignmentResponseSlice(assignments []models.Assignment) []AssignmentResponse {
	responses := make([]AssignmentResponse, 0, len(assignments))
	for _, assignment := range assignments {
		responses = append(responses, NewAssignmentResponse(assignment))
	}

	return responses
}
