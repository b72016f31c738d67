package domain

import (
	"context"
	"errors"
	"time"
)

// Application status constants
const (
	StatusApplied     = "applied"
	StatusInterviewed = "interviewed"
	StatusOffered     = "offered"
	StatusRejected    = "rejected"
)

// ErrNotFound is returned when an id or token does not resolve to a record.
var ErrNotFound = errors.New("resource not found")

// ErrInconsistentSerials is returned when a renumbering pass would leave a
// user's serial numbers with gaps or duplicates. It indicates a bug, not a
// recoverable condition, and must be surfaced rather than corrected.
var ErrInconsistentSerials = errors.New("serial numbers violate density invariant")

// ValidStatus reports whether s is one of the enumerated application statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusApplied, StatusInterviewed, StatusOffered, StatusRejected:
		return true
	}
	return false
}

// Application represents a single job application owned by one user.
// SerialNo is a dense per-user display ordinal (1..N with no gaps);
// Token is an opaque identifier that stays stable across renumbering.
type Application struct {
	ID              int64      `json:"id"`
	Token           string     `json:"token"`
	UserID          string     `json:"user_id"`
	SerialNo        int        `json:"serial_no"`
	Company         string     `json:"company" validate:"required"`
	JobTitle        string     `json:"job_title" validate:"required"`
	ApplicationDate time.Time  `json:"application_date" validate:"required"`
	Status          string     `json:"status" validate:"required"`
	FollowUpDate    *time.Time `json:"follow_up_date,omitempty"`
	Location        string     `json:"location" validate:"required"`
	Industry        *string    `json:"industry,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ApplicationPatch carries the updatable fields of an application.
// UserID and SerialNo are deliberately absent: ownership and the display
// ordinal never change on edit.
type ApplicationPatch struct {
	Company         string     `json:"company" validate:"required"`
	JobTitle        string     `json:"job_title" validate:"required"`
	ApplicationDate time.Time  `json:"application_date" validate:"required"`
	Status          string     `json:"status" validate:"required"`
	FollowUpDate    *time.Time `json:"follow_up_date,omitempty"`
	Location        string     `json:"location" validate:"required"`
	Industry        *string    `json:"industry,omitempty"`
}

// ApplicationFilter narrows a user's record set for dashboard display.
// Zero-valued fields impose no constraint. Location, Status and Token
// match exactly; ApplicationDateFrom and FollowUpDateFrom are inclusive
// lower bounds.
type ApplicationFilter struct {
	Location            string
	Status              string
	Token               string
	ApplicationDateFrom *time.Time
	FollowUpDateFrom    *time.Time
}

// ApplicationRepository defines data access methods for applications.
// Create and Delete maintain the per-user serial density invariant and
// serialize against each other for the same user.
type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	GetByUser(ctx context.Context, userID string, filter ApplicationFilter) ([]Application, error)
	GetByUserSorted(ctx context.Context, userID string) ([]Application, error)
	Update(ctx context.Context, id int64, patch ApplicationPatch) (*Application, error)
	Delete(ctx context.Context, id int64) error
}

// ApplicationUsecase defines business logic for the application lifecycle.
type ApplicationUsecase interface {
	Create(ctx context.Context, userID string, patch ApplicationPatch) (*Application, error)
	Get(ctx context.Context, userID string, id int64) (*Application, error)
	List(ctx context.Context, userID string, filter ApplicationFilter) ([]Application, error)
	Update(ctx context.Context, userID string, id int64, patch ApplicationPatch) (*Application, error)
	Delete(ctx context.Context, userID string, id int64) error
}
