package dto

import (
	"time"

	"github.com/noah-isme/rubrica-go-api/internal/models"
)

// ActivityCreateRequest describes a manually recorded audit event.
type ActivityCreateRequest struct {
	Action     string         `json:"action" validate:"required,min=2,max=64"`
	EntityType string         `json:"entity_type" validate:"required,min=2,max=64"`
	EntityID   *uint          `json:"entity_id" validate:"omitempty,gt=0"`
	Metadata   map[string]any `json:"metadata" validate:"omitempty"`
}

// ActivityListRequest describes filters for browsing the audit trail.
type ActivityListRequest struct {
	Page       int    `query:"page"`
	PageSize   int    `query:"page_size"`
	ActorID    uint   `query:"actor_id"`
	Action     string `query:"action"`
	EntityType string `query:"entity_type"`
}

// ActivityResponse serializes one audit trail entry.
type ActivityResponse struct {
	ID         uint           `json:"id"`
	ActorID    uint           `json:"actor_id"`
	ActorRole  string         `json:"actor_role"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   *uint          `json:"entity_id"`
	Metadata   map[string]any `json:"metadata"`
	CreatedAt  time.Time      `json:"created_at"`
}

// PaginationMeta describes list pagination state.
type PaginationMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// ActivityListResponse wraps a page of audit entries.
type ActivityListResponse struct {
	Items      []ActivityResponse `json:"items"`
	Pagination PaginationMeta     `json:"pagination"`
}

// NewActivityResponse converts a model into a DTO.
func NewActivityResponse(model models.ActivityLog) ActivityResponse {
	return ActivityResponse{
		ID:         model.ID,
		ActorID:    model.ActorID,
		ActorRole:  model.ActorRole,
		Action:     model.Action,
		EntityType: model.EntityType,
		EntityID:   model.EntityID,
		Metadata:   map[string]any(model.Metadata),
		CreatedAt:  model.CreatedAt,
	}
}
