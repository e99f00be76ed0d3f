package service

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/noah-isme/rubrica-go-api/internal/dto"
	"github.com/noah-isme/rubrica-go-api/internal/observability"
	"github.com/noah-isme/rubrica-go-api/internal/repository"
)

// BatchService grades every pending submission of an assignment.
type BatchService interface {
	EvaluateAssignment(ctx context.Context, assignmentID uint) (dto.BatchEvaluateResponse, error)
}

type batchService struct {
	submissions repository.SubmissionRepository
	assignments repository.AssignmentRepository
	evaluator   EvaluationService
	concurrency int
	logger      zerolog.Logger
	tracer      trace.Tracer
}

// NewBatchService constructs the batch grading service.
func NewBatchService(submissions repository.SubmissionRepository, assignments repository.AssignmentRepository, evaluator EvaluationService, concurrency int, logger zerolog.Logger) BatchService {
	if concurrency <= 0 {
		concurrency = 4
	}

	return &batchService{
		submissions: submissions,
		assignments: assignments,
		evaluator:   evaluator,
		concurrency: concurrency,
		logger:      logger.With().Str("component", "batch_service").Logger(),
		tracer:      otel.Tracer("github.com/noah-isme/rubrica-go-api/internal/service/batch"),
	}
}

// EvaluateAssignment fans pending submissions out across a bounded worker
// group. One failing submission does not abort the run; its error lands in
// the per-item result instead.
func (s *batchService) EvaluateAssignment(ctx context.Context, assignmentID uint) (dto.BatchEvaluateResponse, error) {
	spanCtx, span := s.tracer.Start(ctx, "evaluation.batch", trace.WithAttributes(
		attribute.Int("batch.assignment_id", int(assignmentID)),
	))
	defer span.End()

	if _, err := s.assignments.GetByID(spanCtx, assignmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.BatchEvaluateResponse{}, ErrAssignmentNotFound
		}
		return dto.BatchEvaluateResponse{}, err
	}

	pending, err := s.submissions.ListPendingByAssignment(spanCtx, assignmentID)
	if err != nil {
		return dto.BatchEvaluateResponse{}, err
	}

	span.SetAttributes(attribute.Int("batch.pending", len(pending)))

	results := make([]dto.BatchItemResult, len(pending))
	var mu sync.Mutex

	group, groupCtx := errgroup.WithContext(spanCtx)
	group.SetLimit(s.concurrency)

	for i, submission := range pending {
		group.Go(func() error {
			item := dto.BatchItemResult{SubmissionID: submission.ID}

			evaluation, err := s.evaluator.EvaluateSubmission(groupCtx, submission.ID)
			if err != nil {
				item.Status = "failed"
				item.Error = err.Error()
				observability.BatchSubmissions().WithLabelValues("failed").Inc()
			} else {
				item.Status = "evaluated"
				item.Evaluation = &evaluation
				observability.BatchSubmissions().WithLabelValues("evaluated").Inc()
			}

			mu.Lock()
			results[i] = item
			mu.Unlock()

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return dto.BatchEvaluateResponse{}, err
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].SubmissionID < results[b].SubmissionID
	})

	response := dto.BatchEvaluateResponse{
		AssignmentID: assignmentID,
		Total:        len(results),
		Results:      results,
	}
	for _, item := range results {
		if item.Status == "evaluated" {
			response.Succeeded++
		} else {
			response.Failed++
		}
	}

	s.logger.Info().
		Uint("assignment_id", assignmentID).
		Int("total", response.Total).
		Int("failed", response.Failed).
		Msg("batch evaluation finished")

	return response, nil
}
