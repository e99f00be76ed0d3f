package models

import (
	"time"

	"gorm.io/datatypes"
)

// Evaluation stores the rubric output for one submission. The score
// columns mirror the metric breakdown so they stay queryable; the full
// extraction record and feedback travel as JSON documents.
type Evaluation struct {
	ID                 uint              `gorm:"primaryKey" json:"id"`
	SubmissionID       uint              `gorm:"not null;uniqueIndex" json:"submission_id"`
	Variant            string            `gorm:"size:32;not null" json:"variant"`
	SM1                float64           `gorm:"not null" json:"sm1"`
	SM2                float64           `gorm:"not null" json:"sm2"`
	SM3                float64           `gorm:"not null" json:"sm3"`
	Ceiling            float64           `gorm:"not null" json:"ceiling"`
	Overall            float64           `gorm:"not null" json:"overall"`
	TotalPoints        float64           `gorm:"not null" json:"total_points"`
	OverallDisplay     float64           `gorm:"not null" json:"overall_display"`
	TotalPointsDisplay float64           `gorm:"not null" json:"total_points_display"`
	Layer              *int              `json:"layer"`
	LayerLabel         string            `gorm:"size:64" json:"layer_label"`
	Analysis           datatypes.JSON    `gorm:"type:json" json:"analysis"`
	Feedback           datatypes.JSONMap `gorm:"type:json" json:"feedback"`
	CreatedAt          time.Time         `json:"created_at"`
	Submission         Submission        `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
