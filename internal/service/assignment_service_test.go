package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/rubrica-go-api/internal/dto"
)

func newTestAssignmentService(repo *fakeAssignmentRepo) AssignmentService {
	return NewAssignmentService(repo, validator.New(validator.WithRequiredStructEnabled()), zerolog.Nop())
}

func TestAssignmentCreateValidatesVariant(t *testing.T) {
	service := newTestAssignmentService(newFakeAssignmentRepo())

	_, err := service.Create(context.Background(), dto.AssignmentCreateRequest{
		Title:   "Imagery",
		Prompt:  "Explain how Lowry uses imagery.",
		Variant: "essay",
		DueDate: time.Now().Add(time.Hour).Format(time.RFC3339),
	})
	require.Error(t, err)
	require.True(t, isValidationFailure(err))
}

func TestAssignmentCreateRejectsPastDueDate(t *testing.T) {
	service := newTestAssignmentService(newFakeAssignmentRepo())

	_, err := service.Create(context.Background(), dto.AssignmentCreateRequest{
		Title:   "Imagery",
		Prompt:  "Explain how Lowry uses imagery.",
		Variant: "component",
		DueDate: time.Now().Add(-time.Hour).Format(time.RFC3339),
	})
	require.ErrorContains(t, err, "due date must be in the future")
}

func TestAssignmentCreateNormalizesVariant(t *testing.T) {
	repo := newFakeAssignmentRepo()
	service := newTestAssignmentService(repo)

	created, err := service.Create(context.Background(), dto.AssignmentCreateRequest{
		Title:   "Hero or Victim",
		Prompt:  "Is Jonas more of a hero or a victim?",
		Variant: "argument",
		DueDate: time.Now().Add(time.Hour).Format(time.RFC3339),
	})
	require.NoError(t, err)
	require.Equal(t, "argument", created.Variant)
	require.NotZero(t, created.ID)
}

func TestAssignmentGetMissing(t *testing.T) {
	service := newTestAssignmentService(newFakeAssignmentRepo())

	_, err := service.Get(context.Background(), 404)
	require.ErrorIs(t, err, ErrAssignmentNotFound)
}

func TestAssignmentUpdateChangesPrompt(t *testing.T) {
	assignment := componentAssignment()
	repo := newFakeAssignmentRepo(assignment)
	service := newTestAssignmentService(repo)

	prompt := "Explain how Lowry uses euphemism to soften release."
	updated, err := service.Update(context.Background(), assignment.ID, dto.AssignmentUpdateRequest{Prompt: &prompt})
	require.NoError(t, err)
	require.Equal(t, prompt, updated.Prompt)
	require.Equal(t, assignment.Title, updated.Title)
}

func TestAssignmentDeleteMissing(t *testing.T) {
	service := newTestAssignmentService(newFakeAssignmentRepo())

	err := service.Delete(context.Background(), 404)
	require.ErrorIs(t, err, ErrAssignmentNotFound)
}
