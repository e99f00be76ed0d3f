package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/rubrica-go-api/internal/dto"
	"github.com/noah-isme/rubrica-go-api/internal/models"
	"github.com/noah-isme/rubrica-go-api/internal/repository"
	"github.com/noah-isme/rubrica-go-api/internal/rubric"
	"github.com/noah-isme/rubrica-go-api/internal/rubric/taxonomy"
)

type fakeSubmissionRepo struct {
	mu          sync.Mutex
	submissions map[uint]models.Submission
}

func newFakeSubmissionRepo(submissions ...models.Submission) *fakeSubmissionRepo {
	repo := &fakeSubmissionRepo{submissions: make(map[uint]models.Submission)}
	for _, submission := range submissions {
		repo.submissions[submission.ID] = submission
	}
	return repo
}

func (r *fakeSubmissionRepo) List(_ context.Context, filter repository.SubmissionFilter) ([]models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Submission
	for _, submission := range r.submissions {
		if filter.AssignmentID != nil && submission.AssignmentID != *filter.AssignmentID {
			continue
		}
		if filter.StudentID != nil && submission.StudentID != *filter.StudentID {
			continue
		}
		if filter.Status != nil && submission.Status != *filter.Status {
			continue
		}
		out = append(out, submission)
	}
	return out, nil
}

func (r *fakeSubmissionRepo) GetByID(_ context.Context, id uint) (models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	submission, ok := r.submissions[id]
	if !ok {
		return models.Submission{}, gorm.ErrRecordNotFound
	}
	return submission, nil
}

func (r *fakeSubmissionRepo) GetByAssignmentAndStudent(_ context.Context, assignmentID, studentID uint) (models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, submission := range r.submissions {
		if submission.AssignmentID == assignmentID && submission.StudentID == studentID {
			return submission, nil
		}
	}
	return models.Submission{}, gorm.ErrRecordNotFound
}

func (r *fakeSubmissionRepo) ListPendingByAssignment(_ context.Context, assignmentID uint) ([]models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Submission
	for _, submission := range r.submissions {
		if submission.AssignmentID == assignmentID && submission.Status != models.SubmissionStatusEvaluated {
			out = append(out, submission)
		}
	}
	return out, nil
}

func (r *fakeSubmissionRepo) Create(_ context.Context, submission *models.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	submission.ID = uint(len(r.submissions) + 1)
	r.submissions[submission.ID] = *submission
	return nil
}

func (r *fakeSubmissionRepo) Update(_ context.Context, submission *models.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.submissions[submission.ID] = *submission
	return nil
}

type fakeEvaluationRepo struct {
	mu          sync.Mutex
	evaluations map[uint]models.Evaluation
}

func newFakeEvaluationRepo() *fakeEvaluationRepo {
	return &fakeEvaluationRepo{evaluations: make(map[uint]models.Evaluation)}
}

func (r *fakeEvaluationRepo) Upsert(_ context.Context, evaluation *models.Evaluation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.evaluations[evaluation.SubmissionID]; ok {
		evaluation.ID = existing.ID
	} else {
		evaluation.ID = uint(len(r.evaluations) + 1)
	}
	r.evaluations[evaluation.SubmissionID] = *evaluation
	return nil
}

func (r *fakeEvaluationRepo) GetBySubmissionID(_ context.Context, submissionID uint) (models.Evaluation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	evaluation, ok := r.evaluations[submissionID]
	if !ok {
		return models.Evaluation{}, gorm.ErrRecordNotFound
	}
	return evaluation, nil
}

func (r *fakeEvaluationRepo) ListByAssignment(_ context.Context, _ uint) ([]models.Evaluation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Evaluation
	for _, evaluation := range r.evaluations {
		out = append(out, evaluation)
	}
	return out, nil
}

func (r *fakeEvaluationRepo) LayerDistribution(_ context.Context, _ uint) ([]repository.LayerCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := map[int]int64{}
	for _, evaluation := range r.evaluations {
		if evaluation.Layer != nil {
			counts[*evaluation.Layer]++
		}
	}
	var out []repository.LayerCount
	for layer := 0; layer <= 4; layer++ {
		if counts[layer] > 0 {
			out = append(out, repository.LayerCount{Layer: layer, Count: counts[layer]})
		}
	}
	return out, nil
}

type fakeAssignmentRepo struct {
	assignments map[uint]models.Assignment
}

func newFakeAssignmentRepo(assignments ...models.Assignment) *fakeAssignmentRepo {
	repo := &fakeAssignmentRepo{assignments: make(map[uint]models.Assignment)}
	for _, assignment := range assignments {
		repo.assignments[assignment.ID] = assignment
	}
	return repo
}

func (r *fakeAssignmentRepo) List(_ context.Context) ([]models.Assignment, error) {
	var out []models.Assignment
	for _, assignment := range r.assignments {
		out = append(out, assignment)
	}
	return out, nil
}

func (r *fakeAssignmentRepo) ListWithFilter(_ context.Context, _ repository.AssignmentFilter) ([]models.Assignment, int64, error) {
	return nil, 0, nil
}

func (r *fakeAssignmentRepo) GetByID(_ context.Context, id uint) (models.Assignment, error) {
	assignment, ok := r.assignments[id]
	if !ok {
		return models.Assignment{}, gorm.ErrRecordNotFound
	}
	return assignment, nil
}

func (r *fakeAssignmentRepo) Create(_ context.Context, assignment *models.Assignment) error {
	assignment.ID = uint(len(r.assignments) + 1)
	r.assignments[assignment.ID] = *assignment
	return nil
}

func (r *fakeAssignmentRepo) Update(_ context.Context, assignment *models.Assignment) error {
	r.assignments[assignment.ID] = *assignment
	return nil
}

func (r *fakeAssignmentRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.assignments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.assignments, id)
	return nil
}

func newTestEvaluationService(t *testing.T, submissions *fakeSubmissionRepo, evaluations *fakeEvaluationRepo, assignments *fakeAssignmentRepo) EvaluationService {
	t.Helper()

	engine := rubric.NewEngine(taxonomy.Default())
	return NewEvaluationService(
		engine,
		submissions,
		evaluations,
		assignments,
		nil,
		nil,
		nil,
		0,
		validator.New(validator.WithRequiredStructEnabled()),
		zerolog.Nop(),
	)
}

func componentAssignment() models.Assignment {
	return models.Assignment{
		ID:      1,
		Title:   "Imagery in The Giver",
		Prompt:  "Explain how Lowry uses a literary device.",
		Variant: "component",
		DueDate: time.Now().Add(24 * time.Hour),
	}
}

func TestEvaluateTextScoresComponentVariant(t *testing.T) {
	service := newTestEvaluationService(t, newFakeSubmissionRepo(), newFakeEvaluationRepo(), newFakeAssignmentRepo())

	result, err := service.EvaluateText(context.Background(), dto.EvaluateTextRequest{
		Text:    "Lowry uses imagery to show the cost of sameness. The imagery reveals how the community trades feeling for safety.",
		Variant: "component",
	})
	require.NoError(t, err)
	require.Equal(t, taxonomy.VariantComponent, result.Variant)
	require.NotNil(t, result.Component)
	require.GreaterOrEqual(t, result.Scores.Overall, 1.0)
	require.LessOrEqual(t, result.Scores.SM2, result.Scores.Ceiling)
}

func TestEvaluateTextRejectsUnknownVariant(t *testing.T) {
	service := newTestEvaluationService(t, newFakeSubmissionRepo(), newFakeEvaluationRepo(), newFakeAssignmentRepo())

	_, err := service.EvaluateText(context.Background(), dto.EvaluateTextRequest{Text: "anything", Variant: "haiku"})
	require.Error(t, err)
	require.True(t, isValidationFailure(err), "expected a validation error, got %v", err)
}

func isValidationFailure(err error) bool {
	_, ok := err.(validator.ValidationErrors)
	return ok
}

func TestEvaluateSubmissionPersistsAndMarksEvaluated(t *testing.T) {
	assignment := componentAssignment()
	submissions := newFakeSubmissionRepo(models.Submission{
		ID:           7,
		AssignmentID: assignment.ID,
		StudentID:    3,
		RawText:      "Lowry uses imagery to reveal how the community trades feeling for safety.",
		WordCount:    12,
		Status:       models.SubmissionStatusReceived,
		Assignment:   assignment,
	})
	evaluations := newFakeEvaluationRepo()
	service := newTestEvaluationService(t, submissions, evaluations, newFakeAssignmentRepo(assignment))

	response, err := service.EvaluateSubmission(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, uint(7), response.SubmissionID)
	require.Equal(t, "component", response.Variant)
	require.NotEmpty(t, response.Analysis)
	require.NotEmpty(t, response.Feedback)

	stored, err := evaluations.GetBySubmissionID(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, response.Scores.SM1, stored.SM1)
	require.NotEmpty(t, stored.Feedback, "persisted row must retain the feedback bundle")
	require.Nil(t, stored.Layer, "component evaluations carry no argument layer")

	updated, err := submissions.GetByID(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, models.SubmissionStatusEvaluated, updated.Status)
}

func TestEvaluateSubmissionRequiresText(t *testing.T) {
	assignment := componentAssignment()
	submissions := newFakeSubmissionRepo(models.Submission{
		ID:           8,
		AssignmentID: assignment.ID,
		StudentID:    3,
		Status:       models.SubmissionStatusReceived,
		Assignment:   assignment,
	})
	service := newTestEvaluationService(t, submissions, newFakeEvaluationRepo(), newFakeAssignmentRepo(assignment))

	_, err := service.EvaluateSubmission(context.Background(), 8)
	require.ErrorIs(t, err, ErrSubmissionNotReady)
}

func TestEvaluateSubmissionMissing(t *testing.T) {
	service := newTestEvaluationService(t, newFakeSubmissionRepo(), newFakeEvaluationRepo(), newFakeAssignmentRepo())

	_, err := service.EvaluateSubmission(context.Background(), 99)
	require.ErrorIs(t, err, ErrSubmissionNotFound)
}

func TestGetBySubmissionMissing(t *testing.T) {
	service := newTestEvaluationService(t, newFakeSubmissionRepo(), newFakeEvaluationRepo(), newFakeAssignmentRepo())

	_, err := service.GetBySubmission(context.Background(), 99)
	require.ErrorIs(t, err, ErrEvaluationNotFound)
}

func TestReportAggregatesArgumentLayers(t *testing.T) {
	assignment := models.Assignment{
		ID:      2,
		Title:   "Hero or Victim",
		Prompt:  "Is Jonas more of a hero or a victim?",
		Variant: "argument",
		DueDate: time.Now().Add(24 * time.Hour),
	}

	submissions := newFakeSubmissionRepo(
		models.Submission{ID: 1, AssignmentID: 2, StudentID: 1, RawText: "Jonas is a victim.", Status: models.SubmissionStatusReceived, Assignment: assignment},
		models.Submission{ID: 2, AssignmentID: 2, StudentID: 2, RawText: "I believe Jonas is more of a victim than a hero because he suffered alone.", Status: models.SubmissionStatusReceived, Assignment: assignment},
	)
	evaluations := newFakeEvaluationRepo()
	service := newTestEvaluationService(t, submissions, evaluations, newFakeAssignmentRepo(assignment))

	_, err := service.EvaluateSubmission(context.Background(), 1)
	require.NoError(t, err)
	_, err = service.EvaluateSubmission(context.Background(), 2)
	require.NoError(t, err)

	report, err := service.Report(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, "argument", report.Variant)
	require.Equal(t, 2, report.Evaluated)
	require.Greater(t, report.AverageOverall, 0.0)
	require.NotEmpty(t, report.Layers)
	for _, bucket := range report.Layers {
		require.NotEmpty(t, bucket.Label)
	}
}
