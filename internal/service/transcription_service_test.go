package service

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/rubrica-go-api/internal/models"
)

// Minimal valid PNG header so mimetype detection sees a real image.
var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

type fakeImageStorage struct {
	url string
	err error
}

func (f fakeImageStorage) Upload(_ context.Context, _ string, _ io.Reader) (string, error) {
	return f.url, f.err
}

type fakeTranscriber struct {
	text string
	err  error
}

func (f fakeTranscriber) Transcribe(_ context.Context, _ string) (string, error) {
	return f.text, f.err
}

func TestTranscribeSubmissionFillsText(t *testing.T) {
	assignment := componentAssignment()
	submissions := newFakeSubmissionRepo(models.Submission{
		ID:           9,
		AssignmentID: assignment.ID,
		StudentID:    3,
		Status:       models.SubmissionStatusReceived,
		Assignment:   assignment,
	})

	service := NewTranscriptionService(
		submissions,
		fakeImageStorage{url: "https://cdn.example.com/responses/9.png"},
		fakeTranscriber{text: "  Lowry uses imagery to reveal the cost of sameness.  "},
		zerolog.Nop(),
	)

	response, err := service.TranscribeSubmission(context.Background(), 9, multipartImage(t, "page.png", pngBytes))
	require.NoError(t, err)
	require.Equal(t, "Lowry uses imagery to reveal the cost of sameness.", response.RawText)
	require.Equal(t, 9, response.WordCount)
	require.Equal(t, models.SubmissionStatusTranscribed, response.Status)
	require.Equal(t, "https://cdn.example.com/responses/9.png", response.ImageURL)
}

func TestTranscribeSubmissionRejectsNonImage(t *testing.T) {
	assignment := componentAssignment()
	submissions := newFakeSubmissionRepo(models.Submission{ID: 9, AssignmentID: assignment.ID, StudentID: 3, Status: models.SubmissionStatusReceived, Assignment: assignment})

	service := NewTranscriptionService(submissions, fakeImageStorage{}, fakeTranscriber{}, zerolog.Nop())

	_, err := service.TranscribeSubmission(context.Background(), 9, multipartImage(t, "notes.txt", []byte("plain text, not an image")))
	require.ErrorIs(t, err, ErrUnsupportedImageType)
}

func TestTranscribeSubmissionEmptyResult(t *testing.T) {
	assignment := componentAssignment()
	submissions := newFakeSubmissionRepo(models.Submission{ID: 9, AssignmentID: assignment.ID, StudentID: 3, Status: models.SubmissionStatusReceived, Assignment: assignment})

	service := NewTranscriptionService(
		submissions,
		fakeImageStorage{url: "https://cdn.example.com/responses/9.png"},
		fakeTranscriber{text: "   "},
		zerolog.Nop(),
	)

	_, err := service.TranscribeSubmission(context.Background(), 9, multipartImage(t, "page.png", pngBytes))
	require.ErrorIs(t, err, ErrTranscriptionEmpty)
}

func TestTranscribeSubmissionMissing(t *testing.T) {
	service := NewTranscriptionService(newFakeSubmissionRepo(), fakeImageStorage{}, fakeTranscriber{}, zerolog.Nop())

	_, err := service.TranscribeSubmission(context.Background(), 404, multipartImage(t, "page.png", pngBytes))
	require.ErrorIs(t, err, ErrSubmissionNotFound)
}

func TestTranscribeSubmissionTranscriberFailure(t *testing.T) {
	assignment := componentAssignment()
	submissions := newFakeSubmissionRepo(models.Submission{ID: 9, AssignmentID: assignment.ID, StudentID: 3, Status: models.SubmissionStatusReceived, Assignment: assignment})

	service := NewTranscriptionService(
		submissions,
		fakeImageStorage{url: "https://cdn.example.com/responses/9.png"},
		fakeTranscriber{err: errors.New("model unavailable")},
		zerolog.Nop(),
	)

	_, err := service.TranscribeSubmission(context.Background(), 9, multipartImage(t, "page.png", pngBytes))
	require.ErrorContains(t, err, "failed to transcribe image")
}
