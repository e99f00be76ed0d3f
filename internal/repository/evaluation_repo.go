package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/noah-isme/rubrica-go-api/internal/models"
)

// LayerCount pairs an argument layer with the number of evaluations at that layer.
type LayerCount struct {
	Layer int   `json:"layer"`
	Count int64 `json:"count"`
}

// EvaluationRepository persists rubric results.
type EvaluationRepository interface {
	Upsert(ctx context.Context, evaluation *models.Evaluation) error
	GetBySubmissionID(ctx context.Context, submissionID uint) (models.Evaluation, error)
	ListByAssignment(ctx context.Context, assignmentID uint) ([]models.Evaluation, error)
	LayerDistribution(ctx context.Context, assignmentID uint) ([]LayerCount, error)
}

type evaluationRepository struct {
	db *gorm.DB
}

// NewEvaluationRepository constructs the evaluation repository.
func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

// Upsert writes the evaluation, replacing any earlier result for the
// same submission so re-grading stays idempotent.
func (r *evaluationRepository) Upsert(ctx context.Context, evaluation *models.Evaluation) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "submission_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"variant", "sm1", "sm2", "sm3", "ceiling",
			"overall", "total_points", "overall_display", "total_points_display",
			"layer", "layer_label", "analysis", "feedback",
		}),
	}).Create(evaluation).Error
}

func (r *evaluationRepository) GetBySubmissionID(ctx context.Context, submissionID uint) (models.Evaluation, error) {
	var evaluation models.Evaluation
	if err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		First(&evaluation).Error; err != nil {
		return models.Evaluation{}, err
	}

	return evaluation, nil
}

func (r *evaluationRepository) ListByAssignment(ctx context.Context, assignmentID uint) ([]models.Evaluation, error) {
	var evaluations []models.Evaluation
	if err := r.db.WithContext(ctx).
		Joins("JOIN submissions ON submissions.id = evaluations.submission_id").
		Where("submissions.assignment_id = ?", assignmentID).
		Order("evaluations.created_at ASC").
		Find(&evaluations).Error; err != nil {
		return nil, err
	}

	return evaluations, nil
}

// LayerDistribution aggregates argument-variant evaluations by layer.
func (r *evaluationRepository) LayerDistribution(ctx context.Context, assignmentID uint) ([]LayerCount, error) {
	var counts []LayerCount
	if err := r.db.WithContext(ctx).
		Model(&models.Evaluation{}).
		Select("evaluations.layer AS layer, COUNT(*) AS count").
		Joins("JOIN submissions ON submissions.id = evaluations.submission_id").
		Where("submissions.assignment_id = ?", assignmentID).
		Where("evaluations.layer IS NOT NULL").
		Group("evaluations.layer").
		Order("layer ASC").
		Scan(&counts).Error; err != nil {
		return nil, err
	}

	return counts, nil
}
