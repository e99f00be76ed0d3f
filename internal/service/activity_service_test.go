package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/rubrica-go-api/internal/dto"
	"github.com/noah-isme/rubrica-go-api/internal/models"
	"github.com/noah-isme/rubrica-go-api/internal/repository"
)

type fakeActivityLogRepo struct {
	entries []models.ActivityLog
}

func (r *fakeActivityLogRepo) Create(_ context.Context, entry *models.ActivityLog) error {
	entry.ID = uint(len(r.entries) + 1)
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeActivityLogRepo) List(_ context.Context, filter repository.ActivityLogFilter) ([]models.ActivityLog, int64, error) {
	var out []models.ActivityLog
	for _, entry := range r.entries {
		if filter.Action != "" && entry.Action != filter.Action {
			continue
		}
		if filter.ActorID != nil && entry.ActorID != *filter.ActorID {
			continue
		}
		out = append(out, entry)
	}
	return out, int64(len(out)), nil
}

func newTestActivityService(repo *fakeActivityLogRepo) ActivityService {
	return NewActivityService(repo, validator.New(validator.WithRequiredStructEnabled()), zerolog.Nop())
}

func TestActivityRecordNormalizesFields(t *testing.T) {
	repo := &fakeActivityLogRepo{}
	service := newTestActivityService(repo)

	entityID := uint(7)
	response, err := service.Record(context.Background(), ActivityEntry{
		ActorID:    1,
		ActorRole:  " Teacher ",
		Action:     " Submission_Evaluated ",
		EntityType: "Submission",
		EntityID:   &entityID,
	})
	require.NoError(t, err)
	require.Equal(t, "submission_evaluated", response.Action)
	require.Equal(t, "submission", response.EntityType)
	require.Equal(t, "teacher", response.ActorRole)
}

func TestActivityRecordMasksSensitiveMetadata(t *testing.T) {
	repo := &fakeActivityLogRepo{}
	service := newTestActivityService(repo)

	_, err := service.Record(context.Background(), ActivityEntry{
		ActorID:    1,
		ActorRole:  "teacher",
		Action:     "submission_evaluated",
		EntityType: "submission",
		Metadata: map[string]interface{}{
			"student_email": "jonas@example.com",
			"overall":       3.6,
		},
	})
	require.NoError(t, err)
	require.Len(t, repo.entries, 1)
	require.Equal(t, "***", repo.entries[0].Metadata["student_email"])
	require.Equal(t, 3.6, repo.entries[0].Metadata["overall"])
}

func TestActivityRecordRequiresAction(t *testing.T) {
	service := newTestActivityService(&fakeActivityLogRepo{})

	_, err := service.Record(context.Background(), ActivityEntry{EntityType: "submission"})
	require.Error(t, err)
}

func TestActivityListPagination(t *testing.T) {
	repo := &fakeActivityLogRepo{}
	service := newTestActivityService(repo)

	for i := 0; i < 5; i++ {
		_, err := service.Record(context.Background(), ActivityEntry{
			ActorID:    1,
			Action:     "submission_evaluated",
			EntityType: "submission",
		})
		require.NoError(t, err)
	}

	page, err := service.List(context.Background(), dto.ActivityListRequest{Page: 1, PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, int64(5), page.Pagination.TotalItems)
	require.Equal(t, 3, page.Pagination.TotalPages)
}
