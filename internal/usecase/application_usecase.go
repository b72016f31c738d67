package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go-jobtrack-backend/internal/domain"
	"go-jobtrack-backend/pkg/apperror"
	"go-jobtrack-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	validate        *validator.Validate
}

// NewApplicationUsecase creates a new application usecase
func NewApplicationUsecase(appRepo domain.ApplicationRepository, validate *validator.Validate) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: appRepo,
		validate:        validate,
	}
}

// validatePatch enforces required fields and the status enum. Failing here
// means nothing is persisted.
func (uc *applicationUsecase) validatePatch(patch domain.ApplicationPatch) error {
	if err := uc.validate.Struct(patch); err != nil {
		return apperror.BadRequest("Company, job title, application date, status and location are required")
	}
	if !domain.ValidStatus(patch.Status) {
		return apperror.BadRequest(fmt.Sprintf(
			"Invalid status %q. Must be: applied, interviewed, offered, or rejected", patch.Status))
	}
	return nil
}

// Create validates and persists a new application for the user. The
// repository assigns the identity, the opaque token and the next serial
// number.
func (uc *applicationUsecase) Create(ctx context.Context, userID string, patch domain.ApplicationPatch) (*domain.Application, error) {
	if err := uc.validatePatch(patch); err != nil {
		return nil, err
	}

	app := &domain.Application{
		UserID:          userID,
		Company:         patch.Company,
		JobTitle:        patch.JobTitle,
		ApplicationDate: patch.ApplicationDate,
		Status:          patch.Status,
		FollowUpDate:    patch.FollowUpDate,
		Location:        patch.Location,
		Industry:        patch.Industry,
	}

	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrInconsistentSerials) {
			logger.Log.Error("serial density violated on create", "user_id", userID, "error", err)
		}
		return nil, apperror.Internal(err)
	}

	return app, nil
}

// Get returns one of the user's applications by id.
func (uc *applicationUsecase) Get(ctx context.Context, userID string, id int64) (*domain.Application, error) {
	return uc.getOwned(ctx, userID, id)
}

// List returns the user's applications narrowed by the filter, sorted by
// serial number for stable dashboard display.
func (uc *applicationUsecase) List(ctx context.Context, userID string, filter domain.ApplicationFilter) ([]domain.Application, error) {
	if filter == (domain.ApplicationFilter{}) {
		return uc.applicationRepo.GetByUserSorted(ctx, userID)
	}

	apps, err := uc.applicationRepo.GetByUser(ctx, userID, filter)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	sortBySerial(apps)
	return apps, nil
}

// Update edits an application in place. Ownership and serial number are
// immutable; the patch cannot touch them.
func (uc *applicationUsecase) Update(ctx context.Context, userID string, id int64, patch domain.ApplicationPatch) (*domain.Application, error) {
	if err := uc.validatePatch(patch); err != nil {
		return nil, err
	}

	if _, err := uc.getOwned(ctx, userID, id); err != nil {
		return nil, err
	}

	app, err := uc.applicationRepo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job application not found")
		}
		return nil, apperror.Internal(err)
	}
	return app, nil
}

// Delete removes an application; the repository renumbers the remaining
// records to restore serial density as part of the same transaction.
func (uc *applicationUsecase) Delete(ctx context.Context, userID string, id int64) error {
	if _, err := uc.getOwned(ctx, userID, id); err != nil {
		return err
	}

	if err := uc.applicationRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job application not found")
		}
		if errors.Is(err, domain.ErrInconsistentSerials) {
			logger.Log.Error("serial density violated on delete", "user_id", userID, "id", id, "error", err)
		}
		return apperror.Internal(err)
	}
	return nil
}

// getOwned fetches a record and hides other users' records behind the same
// not-found answer, so ids cannot be probed across accounts.
func (uc *applicationUsecase) getOwned(ctx context.Context, userID string, id int64) (*domain.Application, error) {
	app, err := uc.applicationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Job application not found")
		}
		return nil, apperror.Internal(err)
	}
	if app.UserID != userID {
		return nil, apperror.NotFound("Job application not found")
	}
	return app, nil
}

// sortBySerial orders applications by their persisted serial number.
func sortBySerial(apps []domain.Application) {
	sort.Slice(apps, func(i, j int) bool { return apps[i].SerialNo < apps[j].SerialNo })
}
