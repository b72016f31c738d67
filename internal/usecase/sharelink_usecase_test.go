package usecase_test

import (
	"context"
	"testing"

	"go-jobtrack-backend/internal/domain"
	"go-jobtrack-backend/internal/usecase"
	"go-jobtrack-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestShareLinkCreate(t *testing.T) {
	shareRepo := new(MockShareLinkRepo)
	uc := usecase.NewShareLinkUsecase(shareRepo, new(MockApplicationRepo), new(MockUserRepo))

	shareRepo.On("Save", mock.Anything, mock.AnythingOfType("string"), "user1", domain.ShareLinkTTL).
		Return(nil)

	token, err := uc.Create(context.Background(), "user1")
	require.NoError(t, err)
	assert.Len(t, token, 32, "16 random bytes hex-encoded")
	shareRepo.AssertExpectations(t)
}

func TestShareLinkResolve(t *testing.T) {
	t.Run("unknown or expired token", func(t *testing.T) {
		shareRepo := new(MockShareLinkRepo)
		uc := usecase.NewShareLinkUsecase(shareRepo, new(MockApplicationRepo), new(MockUserRepo))

		shareRepo.On("ResolveUser", mock.Anything, "gone").Return("", domain.ErrNotFound)

		_, err := uc.Resolve(context.Background(), "gone")
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("valid token returns read-only profile", func(t *testing.T) {
		shareRepo := new(MockShareLinkRepo)
		appRepo := new(MockApplicationRepo)
		userRepo := new(MockUserRepo)
		uc := usecase.NewShareLinkUsecase(shareRepo, appRepo, userRepo)

		shareRepo.On("ResolveUser", mock.Anything, "tok").Return("user1", nil)
		userRepo.On("GetByID", mock.Anything, "user1").Return(&domain.User{ID: "user1", Username: "jane"}, nil)
		appRepo.On("GetByUserSorted", mock.Anything, "user1").Return(fixtureApps(2), nil)

		profile, err := uc.Resolve(context.Background(), "tok")
		require.NoError(t, err)
		assert.Equal(t, "jane", profile.User.Username)
		assert.Len(t, profile.Applications, 2)
	})
}
