package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"

	"go-jobtrack-backend/internal/domain"
	"go-jobtrack-backend/pkg/apperror"
)

type shareLinkUsecase struct {
	shareLinkRepo   domain.ShareLinkRepository
	applicationRepo domain.ApplicationRepository
	userRepo        domain.UserRepository
}

// NewShareLinkUsecase creates a new share link usecase
func NewShareLinkUsecase(
	shareLinkRepo domain.ShareLinkRepository,
	appRepo domain.ApplicationRepository,
	userRepo domain.UserRepository,
) domain.ShareLinkUsecase {
	return &shareLinkUsecase{
		shareLinkRepo:   shareLinkRepo,
		applicationRepo: appRepo,
		userRepo:        userRepo,
	}
}

// Create mints a random token and stores it with the 24-hour TTL. The
// storage layer owns expiry; nothing here ever revisits the token.
func (uc *shareLinkUsecase) Create(ctx context.Context, userID string) (string, error) {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return "", apperror.Internal(err)
	}
	token := hex.EncodeToString(raw)

	if err := uc.shareLinkRepo.Save(ctx, token, userID, domain.ShareLinkTTL); err != nil {
		return "", apperror.Internal(err)
	}
	return token, nil
}

// Resolve maps a share token to the owner's read-only profile: user
// contact details plus the full application set in serial order. Unknown
// and expired tokens are indistinguishable.
func (uc *shareLinkUsecase) Resolve(ctx context.Context, token string) (*domain.SharedProfile, error) {
	userID, err := uc.shareLinkRepo.ResolveUser(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Invalid or expired link")
		}
		return nil, apperror.Internal(err)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	apps, err := uc.applicationRepo.GetByUserSorted(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.SharedProfile{User: user, Applications: apps}, nil
}
