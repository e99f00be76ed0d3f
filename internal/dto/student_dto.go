package dto

import (
	"time"

	"github.com/noah-isme/rubrica-go-api/internal/models"
)

// StudentCreateRequest describes the payload for registering a student.
type StudentCreateRequest struct {
	Name       string `json:"name" validate:"required,min=2"`
	Email      string `json:"email" validate:"required,email"`
	GradeLevel string `json:"grade_level" validate:"omitempty,max=32"`
}

// StudentResponse is the serialized student record.
type StudentResponse struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	GradeLevel string    `json:"grade_level"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewStudentResponse converts a model into a DTO.
func NewStudentResponse(model models.Student) StudentResponse {
	return StudentResponse{
		ID:         model.ID,
		Name:       model.Name,
		Email:      model.Email,
		GradeLevel: model.GradeLevel,
		CreatedAt:  model.CreatedAt,
	}
}
