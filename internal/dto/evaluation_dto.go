package dto

import (
	"encoding/json"
	"time"

	"github.com/noah-isme/rubrica-go-api/internal/models"
)

// EvaluateTextRequest grades a free-standing response without persisting it.
type EvaluateTextRequest struct {
	Text    string `json:"text" validate:"required,min=1"`
	Variant string `json:"variant" validate:"required,oneof=component argument"`
}

// ScoreBreakdown carries the metric-level rubric output.
type ScoreBreakdown struct {
	SM1                float64 `json:"sm1"`
	SM2                float64 `json:"sm2"`
	SM3                float64 `json:"sm3"`
	Ceiling            float64 `json:"ceiling"`
	Overall            float64 `json:"overall"`
	TotalPoints        float64 `json:"total_points"`
	OverallDisplay     float64 `json:"overall_display"`
	TotalPointsDisplay float64 `json:"total_points_display"`
}

// EvaluationResponse is the serialized rubric result for a submission.
type EvaluationResponse struct {
	ID           uint            `json:"id"`
	SubmissionID uint            `json:"submission_id"`
	Variant      string          `json:"variant"`
	Scores       ScoreBreakdown  `json:"scores"`
	Layer        *int            `json:"layer,omitempty"`
	LayerLabel   string          `json:"layer_label,omitempty"`
	Analysis     json.RawMessage `json:"analysis"`
	Feedback     map[string]any  `json:"feedback"`
	CreatedAt    time.Time       `json:"created_at"`
}

// NewEvaluationResponse converts an Evaluation model into a DTO.
func NewEvaluationResponse(model models.Evaluation) EvaluationResponse {
	return EvaluationResponse{
		ID:           model.ID,
		SubmissionID: model.SubmissionID,
		Variant:      model.Variant,
		Scores: ScoreBreakdown{
			SM1:                model.SM1,
			SM2:                model.SM2,
			SM3:                model.SM3,
			Ceiling:            model.Ceiling,
			Overall:            model.Overall,
			TotalPoints:        model.TotalPoints,
			OverallDisplay:     model.OverallDisplay,
			TotalPointsDisplay: model.TotalPointsDisplay,
		},
		Layer:      model.Layer,
		LayerLabel: model.LayerLabel,
		Analysis:   json.RawMessage(model.Analysis),
		Feedback:   map[string]any(model.Feedback),
		CreatedAt:  model.CreatedAt,
	}
}

// BatchItemResult reports the outcome for one submission in a batch run.
type BatchItemResult struct {
	SubmissionID uint                `json:"submission_id"`
	Status       string              `json:"status"`
	Error        string              `json:"error,omitempty"`
	Evaluation   *EvaluationResponse `json:"evaluation,omitempty"`
}

// BatchEvaluateResponse summarizes a batch grading run over an assignment.
type BatchEvaluateResponse struct {
	AssignmentID uint              `json:"assignment_id"`
	Total        int               `json:"total"`
	Succeeded    int               `json:"succeeded"`
	Failed       int               `json:"failed"`
	Results      []BatchItemResult `json:"results"`
}

// LayerBucket counts evaluations that landed at one argument layer.
type LayerBucket struct {
	Layer int    `json:"layer"`
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// AssignmentReportResponse aggregates rubric outcomes across an assignment.
type AssignmentReportResponse struct {
	AssignmentID   uint          `json:"assignment_id"`
	Variant        string        `json:"variant"`
	Evaluated      int           `json:"evaluated"`
	AverageOverall float64       `json:"average_overall"`
	AverageSM1     float64       `json:"average_sm1"`
	AverageSM2     float64       `json:"average_sm2"`
	AverageSM3     float64       `json:"average_sm3"`
	Layers         []LayerBucket `json:"layers,omitempty"`
}
