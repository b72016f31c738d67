package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go-jobtrack-backend/internal/domain"

	"github.com/google/uuid"
)

// applicationRepo is an in-memory implementation of
// domain.ApplicationRepository with the same serial semantics as the
// Postgres repository: dense per-user serials, renumbering on delete, and
// per-user serialization of create/delete (a single mutex here). Used by
// tests and as a storage backend for running without Postgres.
type applicationRepo struct {
	mu     sync.Mutex
	nextID int64
	apps   map[int64]*domain.Application
}

// NewApplicationRepository creates an empty in-memory application repository
func NewApplicationRepository() domain.ApplicationRepository {
	return &applicationRepo{apps: make(map[int64]*domain.Application)}
}

func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	maxSerial := 0
	for _, a := range r.apps {
		if a.UserID == app.UserID && a.SerialNo > maxSerial {
			maxSerial = a.SerialNo
		}
	}

	r.nextID++
	app.ID = r.nextID
	app.SerialNo = maxSerial + 1
	if app.Token == "" {
		app.Token = uuid.NewString()
	}
	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now

	stored := *app
	r.apps[app.ID] = &stored
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	app, ok := r.apps[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *app
	return &copied, nil
}

func matches(app *domain.Application, filter domain.ApplicationFilter) bool {
	if filter.Location != "" && app.Location != filter.Location {
		return false
	}
	if filter.Status != "" && app.Status != filter.Status {
		return false
	}
	if filter.Token != "" && app.Token != filter.Token {
		return false
	}
	if filter.ApplicationDateFrom != nil && app.ApplicationDate.Before(*filter.ApplicationDateFrom) {
		return false
	}
	if filter.FollowUpDateFrom != nil {
		if app.FollowUpDate == nil || app.FollowUpDate.Before(*filter.FollowUpDateFrom) {
			return false
		}
	}
	return true
}

func (r *applicationRepo) GetByUser(ctx context.Context, userID string, filter domain.ApplicationFilter) ([]domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []domain.Application
	for _, app := range r.apps {
		if app.UserID == userID && matches(app, filter) {
			result = append(result, *app)
		}
	}
	return result, nil
}

func (r *applicationRepo) GetByUserSorted(ctx context.Context, userID string) ([]domain.Application, error) {
	apps, err := r.GetByUser(ctx, userID, domain.ApplicationFilter{})
	if err != nil {
		return nil, err
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].SerialNo < apps[j].SerialNo })
	return apps, nil
}

func (r *applicationRepo) Update(ctx context.Context, id int64, patch domain.ApplicationPatch) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	app, ok := r.apps[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	app.Company = patch.Company
	app.JobTitle = patch.JobTitle
	app.ApplicationDate = patch.ApplicationDate
	app.Status = patch.Status
	app.FollowUpDate = patch.FollowUpDate
	app.Location = patch.Location
	app.Industry = patch.Industry
	app.UpdatedAt = time.Now()

	copied := *app
	return &copied, nil
}

func (r *applicationRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	app, ok := r.apps[id]
	if !ok {
		return domain.ErrNotFound
	}

	userID := app.UserID
	deletedSerial := app.SerialNo
	delete(r.apps, id)

	// Close the gap left by the deleted serial.
	for _, a := range r.apps {
		if a.UserID == userID && a.SerialNo > deletedSerial {
			a.SerialNo--
		}
	}
	return nil
}
