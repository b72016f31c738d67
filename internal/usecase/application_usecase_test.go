package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-jobtrack-backend/internal/domain"
	"go-jobtrack-backend/internal/repository/inmemory"
	"go-jobtrack-backend/internal/usecase"
	"go-jobtrack-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validPatch() domain.ApplicationPatch {
	return domain.ApplicationPatch{
		Company:         "Acme",
		JobTitle:        "Backend Engineer",
		ApplicationDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Status:          domain.StatusApplied,
		Location:        "Berlin",
	}
}

func TestCreateValidation(t *testing.T) {
	mockRepo := new(MockApplicationRepo)
	uc := usecase.NewApplicationUsecase(mockRepo, validator.New())
	ctx := context.Background()

	t.Run("Should reject out-of-enum status and persist nothing", func(t *testing.T) {
		patch := validPatch()
		patch.Status = "pending"

		_, err := uc.Create(ctx, "user1", patch)
		require.Error(t, err)

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
		assert.Contains(t, appErr.Message, "pending")
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should reject missing required fields", func(t *testing.T) {
		patch := validPatch()
		patch.Company = ""

		_, err := uc.Create(ctx, "user1", patch)
		require.Error(t, err)

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Should accept every enumerated status", func(t *testing.T) {
		for _, status := range []string{
			domain.StatusApplied, domain.StatusInterviewed, domain.StatusOffered, domain.StatusRejected,
		} {
			repo := inmemory.NewApplicationRepository()
			uc := usecase.NewApplicationUsecase(repo, validator.New())

			patch := validPatch()
			patch.Status = status
			app, err := uc.Create(ctx, "user1", patch)
			require.NoError(t, err, "status %q", status)
			assert.Equal(t, 1, app.SerialNo)
			assert.NotEmpty(t, app.Token)
		}
	})
}

func TestOwnershipIsHiddenBehindNotFound(t *testing.T) {
	ctx := context.Background()
	repo := inmemory.NewApplicationRepository()
	uc := usecase.NewApplicationUsecase(repo, validator.New())

	app, err := uc.Create(ctx, "owner", validPatch())
	require.NoError(t, err)

	t.Run("Get by another user", func(t *testing.T) {
		_, err := uc.Get(ctx, "intruder", app.ID)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("Update by another user", func(t *testing.T) {
		_, err := uc.Update(ctx, "intruder", app.ID, validPatch())
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("Delete by another user leaves the record in place", func(t *testing.T) {
		err := uc.Delete(ctx, "intruder", app.ID)
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)

		got, err := uc.Get(ctx, "owner", app.ID)
		require.NoError(t, err)
		assert.Equal(t, app.ID, got.ID)
	})
}

func TestUpdateKeepsSerialAndOwnership(t *testing.T) {
	ctx := context.Background()
	repo := inmemory.NewApplicationRepository()
	uc := usecase.NewApplicationUsecase(repo, validator.New())

	_, err := uc.Create(ctx, "user1", validPatch())
	require.NoError(t, err)
	second, err := uc.Create(ctx, "user1", validPatch())
	require.NoError(t, err)
	require.Equal(t, 2, second.SerialNo)

	patch := validPatch()
	patch.Company = "Globex"
	patch.Status = domain.StatusOffered

	updated, err := uc.Update(ctx, "user1", second.ID, patch)
	require.NoError(t, err)
	assert.Equal(t, "Globex", updated.Company)
	assert.Equal(t, domain.StatusOffered, updated.Status)
	assert.Equal(t, 2, updated.SerialNo, "edit never changes the serial")
	assert.Equal(t, "user1", updated.UserID)
	assert.Equal(t, second.Token, updated.Token)
}

func TestListSortsBySerial(t *testing.T) {
	ctx := context.Background()
	repo := inmemory.NewApplicationRepository()
	uc := usecase.NewApplicationUsecase(repo, validator.New())

	for i := 0; i < 3; i++ {
		_, err := uc.Create(ctx, "user1", validPatch())
		require.NoError(t, err)
	}

	apps, err := uc.List(ctx, "user1", domain.ApplicationFilter{})
	require.NoError(t, err)
	require.Len(t, apps, 3)
	for i, app := range apps {
		assert.Equal(t, i+1, app.SerialNo)
	}
}
