package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/rubrica-go-api/internal/dto"
	"github.com/noah-isme/rubrica-go-api/internal/models"
)

func newTestSubmissionService(submissions *fakeSubmissionRepo, assignments *fakeAssignmentRepo) SubmissionService {
	return NewSubmissionService(submissions, assignments, validator.New(validator.WithRequiredStructEnabled()), zerolog.Nop())
}

func TestSubmissionCreateSanitizesText(t *testing.T) {
	assignment := componentAssignment()
	submissions := newFakeSubmissionRepo()
	service := newTestSubmissionService(submissions, newFakeAssignmentRepo(assignment))

	created, err := service.Create(context.Background(), dto.SubmissionCreateRequest{
		AssignmentID: assignment.ID,
		StudentID:    3,
		Text:         "<script>alert(1)</script>Lowry uses imagery to reveal loss.",
	})
	require.NoError(t, err)
	require.NotContains(t, created.RawText, "<script>")
	require.Contains(t, created.RawText, "Lowry uses imagery")
	require.Equal(t, models.SubmissionStatusReceived, created.Status)
	require.Equal(t, 6, created.WordCount)
}

func TestSubmissionCreateRejectsPastDueAssignment(t *testing.T) {
	assignment := componentAssignment()
	assignment.DueDate = time.Now().Add(-time.Hour)
	service := newTestSubmissionService(newFakeSubmissionRepo(), newFakeAssignmentRepo(assignment))

	_, err := service.Create(context.Background(), dto.SubmissionCreateRequest{
		AssignmentID: assignment.ID,
		StudentID:    3,
		Text:         "Too late.",
	})
	require.ErrorContains(t, err, "past due")
}

func TestSubmissionCreateMissingAssignment(t *testing.T) {
	service := newTestSubmissionService(newFakeSubmissionRepo(), newFakeAssignmentRepo())

	_, err := service.Create(context.Background(), dto.SubmissionCreateRequest{
		AssignmentID: 404,
		StudentID:    3,
		Text:         "Hello.",
	})
	require.ErrorIs(t, err, ErrAssignmentNotFound)
}

func TestSubmissionGetMissing(t *testing.T) {
	service := newTestSubmissionService(newFakeSubmissionRepo(), newFakeAssignmentRepo())

	_, err := service.Get(context.Background(), 404)
	require.ErrorIs(t, err, ErrSubmissionNotFound)
}

func TestSubmissionListFiltersByStatus(t *testing.T) {
	assignment := componentAssignment()
	submissions := newFakeSubmissionRepo(
		models.Submission{ID: 1, AssignmentID: assignment.ID, StudentID: 1, Status: models.SubmissionStatusReceived, Assignment: assignment},
		models.Submission{ID: 2, AssignmentID: assignment.ID, StudentID: 2, Status: models.SubmissionStatusEvaluated, Assignment: assignment},
	)
	service := newTestSubmissionService(submissions, newFakeAssignmentRepo(assignment))

	status := models.SubmissionStatusEvaluated
	listed, err := service.List(context.Background(), dto.SubmissionFilter{Status: &status})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, uint(2), listed[0].ID)
}

// multipartImage builds a real multipart file header carrying the given bytes.
func multipartImage(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	reader := multipart.NewReader(body, writer.Boundary())
	form, err := reader.ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["image"][0]
}
