package domain

import (
	"context"
	"time"
)

type User struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	PhoneNumber *string   `json:"phone_number,omitempty"`
	Address     *string   `json:"address,omitempty"`
	City        *string   `json:"city,omitempty"`
	State       *string   `json:"state,omitempty"`
	ZipCode     *string   `json:"zip_code,omitempty"`
	PhotoURL    *string   `json:"photo_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserProfilePatch carries updatable profile fields. Contact details feed
// the PDF report cover, so they are kept on the user row rather than joined
// from elsewhere.
type UserProfilePatch struct {
	Username    string  `json:"username" validate:"required"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Address     *string `json:"address,omitempty"`
	City        *string `json:"city,omitempty"`
	State       *string `json:"state,omitempty"`
	ZipCode     *string `json:"zip_code,omitempty"`
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, id string, patch UserProfilePatch) (*User, error)
	UpdatePhotoURL(ctx context.Context, id string, url string) error
}

type UserUsecase interface {
	GetProfile(ctx context.Context, userID string) (*User, error)
	UpdateProfile(ctx context.Context, userID string, patch UserProfilePatch) (*User, error)
	// UploadPhoto resizes and re-encodes the image before storing it,
	// returning the public URL of the stored photo.
	UploadPhoto(ctx context.Context, userID string, data []byte) (string, error)
}
