package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/rubrica-go-api/internal/dto"
	"github.com/noah-isme/rubrica-go-api/internal/models"
	"github.com/noah-isme/rubrica-go-api/internal/observability"
	"github.com/noah-isme/rubrica-go-api/internal/repository"
	"github.com/noah-isme/rubrica-go-api/internal/rubric"
	"github.com/noah-isme/rubrica-go-api/internal/rubric/taxonomy"
)

var (
	// ErrEvaluationNotFound indicates no rubric result exists for the submission.
	ErrEvaluationNotFound = errors.New("evaluation not found")
	// ErrSubmissionNotReady indicates the submission has no text to grade yet.
	ErrSubmissionNotReady = errors.New("submission has no transcribed text")
)

// EvaluationService grades submissions and ad-hoc text against the rubric.
type EvaluationService interface {
	EvaluateText(ctx context.Context, payload dto.EvaluateTextRequest) (*rubric.Result, error)
	EvaluateSubmission(ctx context.Context, submissionID uint) (dto.EvaluationResponse, error)
	GetBySubmission(ctx context.Context, submissionID uint) (dto.EvaluationResponse, error)
	Report(ctx context.Context, assignmentID uint) (dto.AssignmentReportResponse, error)
}

type evaluationService struct {
	engine      *rubric.Engine
	submissions repository.SubmissionRepository
	evaluations repository.EvaluationRepository
	assignments repository.AssignmentRepository
	notifier    NotificationService
	recorder    ActivityRecorder
	redis       *redis.Client
	cacheTTL    time.Duration
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	logger      zerolog.Logger
	tracer      trace.Tracer
	now         func() time.Time
}

// NewEvaluationService constructs the grading service.
func NewEvaluationService(
	engine *rubric.Engine,
	submissions repository.SubmissionRepository,
	evaluations repository.EvaluationRepository,
	assignments repository.AssignmentRepository,
	notifier NotificationService,
	recorder ActivityRecorder,
	redisClient *redis.Client,
	cacheTTL time.Duration,
	validate *validator.Validate,
	logger zerolog.Logger,
) EvaluationService {
	return &evaluationService{
		engine:      engine,
		submissions: submissions,
		evaluations: evaluations,
		assignments: assignments,
		notifier:    notifier,
		recorder:    recorder,
		redis:       redisClient,
		cacheTTL:    cacheTTL,
		validator:   validate,
		sanitizer:   bluemonday.StrictPolicy(),
		logger:      logger.With().Str("component", "evaluation_service").Logger(),
		tracer:      otel.Tracer("github.com/noah-isme/rubrica-go-api/internal/service/evaluation"),
		now:         time.Now,
	}
}

// EvaluateText grades free-standing text without touching storage. It backs
// the preview endpoint teachers use while calibrating prompts.
func (s *evaluationService) EvaluateText(ctx context.Context, payload dto.EvaluateTextRequest) (*rubric.Result, error) {
	if err := s.validator.Struct(payload); err != nil {
		return nil, err
	}

	_, span := s.tracer.Start(ctx, "evaluation.text", trace.WithAttributes(
		attribute.String("evaluation.variant", payload.Variant),
	))
	defer span.End()

	clean := s.sanitizer.Sanitize(payload.Text)

	start := time.Now()
	result, err := s.engine.Evaluate(taxonomy.Variant(payload.Variant), clean)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "evaluation failed")
		return nil, err
	}
	observability.EvaluationDuration().WithLabelValues(payload.Variant).Observe(time.Since(start).Seconds())
	observability.Evaluations().WithLabelValues(payload.Variant, fmt.Sprintf("%.1f", result.Scores.Ceiling)).Inc()

	return result, nil
}

// EvaluateSubmission grades a stored submission, persists the result and
// notifies the student. Re-grading overwrites the earlier result.
func (s *evaluationService) EvaluateSubmission(ctx context.Context, submissionID uint) (dto.EvaluationResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "evaluation.submission", trace.WithAttributes(
		attribute.Int("evaluation.submission_id", int(submissionID)),
	))
	defer span.End()

	submission, err := s.submissions.GetByID(spanCtx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EvaluationResponse{}, ErrSubmissionNotFound
		}
		span.RecordError(err)
		return dto.EvaluationResponse{}, err
	}

	if !submission.HasText() {
		return dto.EvaluationResponse{}, ErrSubmissionNotReady
	}

	variant := submission.Assignment.Variant
	clean := s.sanitizer.Sanitize(submission.RawText)

	start := time.Now()
	result, err := s.engine.Evaluate(taxonomy.Variant(variant), clean)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "evaluation failed")
		return dto.EvaluationResponse{}, err
	}
	observability.EvaluationDuration().WithLabelValues(variant).Observe(time.Since(start).Seconds())
	observability.Evaluations().WithLabelValues(variant, fmt.Sprintf("%.1f", result.Scores.Ceiling)).Inc()

	evaluation, err := buildEvaluationModel(submission.ID, result)
	if err != nil {
		span.RecordError(err)
		return dto.EvaluationResponse{}, err
	}

	if err := s.evaluations.Upsert(spanCtx, &evaluation); err != nil {
		span.RecordError(err)
		return dto.EvaluationResponse{}, err
	}

	submission.Status = models.SubmissionStatusEvaluated
	if err := s.submissions.Update(spanCtx, &submission); err != nil {
		span.RecordError(err)
		return dto.EvaluationResponse{}, err
	}

	response := dto.NewEvaluationResponse(evaluation)
	s.cacheResult(spanCtx, response)
	s.notifyStudent(spanCtx, submission, response)
	s.recordAudit(spanCtx, submission, response)

	s.logger.Info().
		Uint("submission_id", submission.ID).
		Str("variant", variant).
		Float64("overall", response.Scores.OverallDisplay).
		Msg("submission evaluated")

	return response, nil
}

// GetBySubmission returns the stored result, serving from Redis when the
// cached copy is still fresh.
func (s *evaluationService) GetBySubmission(ctx context.Context, submissionID uint) (dto.EvaluationResponse, error) {
	if cached, ok := s.cachedResult(ctx, submissionID); ok {
		return cached, nil
	}

	evaluation, err := s.evaluations.GetBySubmissionID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EvaluationResponse{}, ErrEvaluationNotFound
		}
		return dto.EvaluationResponse{}, err
	}

	response := dto.NewEvaluationResponse(evaluation)
	s.cacheResult(ctx, response)

	return response, nil
}

// Report aggregates stored results across one assignment.
func (s *evaluationService) Report(ctx context.Context, assignmentID uint) (dto.AssignmentReportResponse, error) {
	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentReportResponse{}, ErrAssignmentNotFound
		}
		return dto.AssignmentReportResponse{}, err
	}

	evaluations, err := s.evaluations.ListByAssignment(ctx, assignmentID)
	if err != nil {
		return dto.AssignmentReportResponse{}, err
	}

	report := dto.AssignmentReportResponse{
		AssignmentID: assignmentID,
		Variant:      assignment.Variant,
		Evaluated:    len(evaluations),
	}

	if len(evaluations) > 0 {
		var sumOverall, sumSM1, sumSM2, sumSM3 float64
		for _, evaluation := range evaluations {
			sumOverall += evaluation.Overall
			sumSM1 += evaluation.SM1
			sumSM2 += evaluation.SM2
			sumSM3 += evaluation.SM3
		}
		n := float64(len(evaluations))
		report.AverageOverall = sumOverall / n
		report.AverageSM1 = sumSM1 / n
		report.AverageSM2 = sumSM2 / n
		report.AverageSM3 = sumSM3 / n
	}

	if assignment.Variant == string(taxonomy.VariantArgument) {
		counts, err := s.evaluations.LayerDistribution(ctx, assignmentID)
		if err != nil {
			return dto.AssignmentReportResponse{}, err
		}
		for _, count := range counts {
			report.Layers = append(report.Layers, dto.LayerBucket{
				Layer: count.Layer,
				Label: rubric.LayerLabel(count.Layer),
				Count: count.Count,
			})
		}
	}

	return report, nil
}

func buildEvaluationModel(submissionID uint, result *rubric.Result) (models.Evaluation, error) {
	analysis, err := json.Marshal(result)
	if err != nil {
		return models.Evaluation{}, fmt.Errorf("marshal analysis: %w", err)
	}

	feedback := datatypes.JSONMap{}
	for key, value := range result.Feedback {
		feedback[key] = value
	}

	evaluation := models.Evaluation{
		SubmissionID:       submissionID,
		Variant:            string(result.Variant),
		SM1:                result.Scores.SM1,
		SM2:                result.Scores.SM2,
		SM3:                result.Scores.SM3,
		Ceiling:            result.Scores.Ceiling,
		Overall:            result.Scores.Overall,
		TotalPoints:        result.Scores.TotalPoints,
		OverallDisplay:     result.Scores.OverallDisplay,
		TotalPointsDisplay: result.Scores.TotalPointsDisplay,
		Feedback:           feedback,
		Analysis:           datatypes.JSON(analysis),
	}

	if result.Variant == taxonomy.VariantArgument {
		layer := result.Layer
		evaluation.Layer = &layer
		evaluation.LayerLabel = result.LayerLabel
	}

	return evaluation, nil
}

func evaluationCacheKey(submissionID uint) string {
	return fmt.Sprintf("rubrica:evaluation:%d", submissionID)
}

func (s *evaluationService) cacheResult(ctx context.Context, response dto.EvaluationResponse) {
	if s.redis == nil || s.cacheTTL <= 0 {
		return
	}

	payload, err := json.Marshal(response)
	if err != nil {
		return
	}

	if err := s.redis.Set(ctx, evaluationCacheKey(response.SubmissionID), payload, s.cacheTTL).Err(); err != nil {
		s.logger.Warn().Err(err).Msg("failed to cache evaluation")
	}
}

func (s *evaluationService) cachedResult(ctx context.Context, submissionID uint) (dto.EvaluationResponse, bool) {
	if s.redis == nil || s.cacheTTL <= 0 {
		return dto.EvaluationResponse{}, false
	}

	payload, err := s.redis.Get(ctx, evaluationCacheKey(submissionID)).Bytes()
	if err != nil {
		return dto.EvaluationResponse{}, false
	}

	var response dto.EvaluationResponse
	if err := json.Unmarshal(payload, &response); err != nil {
		return dto.EvaluationResponse{}, false
	}

	return response, true
}

func (s *evaluationService) notifyStudent(ctx context.Context, submission models.Submission, response dto.EvaluationResponse) {
	if s.notifier == nil {
		return
	}

	notification := dto.GradingNotification{
		StudentID:          submission.StudentID,
		SubmissionID:       submission.ID,
		AssignmentID:       submission.AssignmentID,
		Variant:            response.Variant,
		OverallDisplay:     response.Scores.OverallDisplay,
		TotalPointsDisplay: response.Scores.TotalPointsDisplay,
		Message:            fmt.Sprintf("Your response to %q has been graded: %.1f / 5.0.", submission.Assignment.Title, response.Scores.OverallDisplay),
		SentAt:             s.now().UTC(),
	}

	if err := s.notifier.Publish(ctx, notification); err != nil {
		s.logger.Warn().Err(err).Uint("submission_id", submission.ID).Msg("failed to notify student")
	}
}

func (s *evaluationService) recordAudit(ctx context.Context, submission models.Submission, response dto.EvaluationResponse) {
	if s.recorder == nil {
		return
	}

	entityID := submission.ID
	_, err := s.recorder.Record(ctx, ActivityEntry{
		ActorRole:  "system",
		Action:     "submission_evaluated",
		EntityType: "submission",
		EntityID:   &entityID,
		Metadata: map[string]interface{}{
			"variant":         response.Variant,
			"overall_display": response.Scores.OverallDisplay,
			"ceiling":         response.Scores.Ceiling,
		},
	})
	if err != nil {
		s.logger.Warn().Err(err).Uint("submission_id", submission.ID).Msg("failed to record grading audit entry")
	}
}
