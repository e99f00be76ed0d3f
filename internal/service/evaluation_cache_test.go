package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/rubrica-go-api/internal/models"
	"github.com/noah-isme/rubrica-go-api/internal/rubric"
	"github.com/noah-isme/rubrica-go-api/internal/rubric/taxonomy"
)

func newCachedEvaluationService(t *testing.T, submissions *fakeSubmissionRepo, evaluations *fakeEvaluationRepo, assignments *fakeAssignmentRepo) (EvaluationService, *miniredis.Miniredis) {
	t.Helper()

	mini, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mini.Close)

	redisClient := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	engine := rubric.NewEngine(taxonomy.Default())
	service := NewEvaluationService(
		engine,
		submissions,
		evaluations,
		assignments,
		nil,
		nil,
		redisClient,
		10*time.Minute,
		validator.New(validator.WithRequiredStructEnabled()),
		zerolog.Nop(),
	)

	return service, mini
}

func TestEvaluateSubmissionWritesCache(t *testing.T) {
	assignment := componentAssignment()
	submissions := newFakeSubmissionRepo(models.Submission{
		ID:           7,
		AssignmentID: assignment.ID,
		StudentID:    3,
		RawText:      "Lowry uses imagery to show the cost of sameness for the community.",
		Status:       models.SubmissionStatusTranscribed,
		Assignment:   assignment,
	})
	service, mini := newCachedEvaluationService(t, submissions, newFakeEvaluationRepo(), newFakeAssignmentRepo(assignment))

	_, err := service.EvaluateSubmission(context.Background(), 7)
	require.NoError(t, err)

	require.True(t, mini.Exists("rubrica:evaluation:7"))
}

func TestGetBySubmissionServesFromCache(t *testing.T) {
	assignment := componentAssignment()
	submissions := newFakeSubmissionRepo(models.Submission{
		ID:           7,
		AssignmentID: assignment.ID,
		StudentID:    3,
		RawText:      "Lowry uses imagery to show the cost of sameness for the community.",
		Status:       models.SubmissionStatusTranscribed,
		Assignment:   assignment,
	})
	evaluations := newFakeEvaluationRepo()
	service, _ := newCachedEvaluationService(t, submissions, evaluations, newFakeAssignmentRepo(assignment))

	persisted, err := service.EvaluateSubmission(context.Background(), 7)
	require.NoError(t, err)

	// Drop the stored row. A cache hit must still answer the read.
	evaluations.mu.Lock()
	delete(evaluations.evaluations, 7)
	evaluations.mu.Unlock()

	cached, err := service.GetBySubmission(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, persisted.SubmissionID, cached.SubmissionID)
	require.Equal(t, persisted.Scores, cached.Scores)
}

func TestGetBySubmissionFallsBackWhenCacheExpires(t *testing.T) {
	assignment := componentAssignment()
	submissions := newFakeSubmissionRepo(models.Submission{
		ID:           7,
		AssignmentID: assignment.ID,
		StudentID:    3,
		RawText:      "Lowry uses imagery to show the cost of sameness for the community.",
		Status:       models.SubmissionStatusTranscribed,
		Assignment:   assignment,
	})
	service, mini := newCachedEvaluationService(t, submissions, newFakeEvaluationRepo(), newFakeAssignmentRepo(assignment))

	persisted, err := service.EvaluateSubmission(context.Background(), 7)
	require.NoError(t, err)

	mini.FastForward(time.Hour)

	fetched, err := service.GetBySubmission(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, persisted.SubmissionID, fetched.SubmissionID)

	// The read-through repopulates the cache.
	require.True(t, mini.Exists("rubrica:evaluation:7"))
}
