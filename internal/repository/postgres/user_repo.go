package postgres

import (
	"context"
	"errors"
	"time"

	"go-jobtrack-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepo struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, username, email, phone_number, address, city, state,
	zip_code, photo_url, created_at, updated_at`

func scanUser(row pgx.Row, u *domain.User) error {
	return row.Scan(
		&u.ID, &u.Username, &u.Email, &u.PhoneNumber, &u.Address, &u.City, &u.State,
		&u.ZipCode, &u.PhotoURL, &u.CreatedAt, &u.UpdatedAt,
	)
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var u domain.User
	if err := scanUser(r.db.QueryRow(ctx, query, id), &u); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) UpdateProfile(ctx context.Context, id string, patch domain.UserProfilePatch) (*domain.User, error) {
	query := `
		UPDATE users
		SET username = $2, phone_number = $3, address = $4, city = $5,
		    state = $6, zip_code = $7, updated_at = $8
		WHERE id = $1
		RETURNING ` + userColumns

	var u domain.User
	err := scanUser(r.db.QueryRow(ctx, query,
		id, patch.Username, patch.PhoneNumber, patch.Address, patch.City,
		patch.State, patch.ZipCode, time.Now(),
	), &u)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) UpdatePhotoURL(ctx context.Context, id string, url string) error {
	result, err := r.db.Exec(ctx, `
		UPDATE users SET photo_url = $2, updated_at = $3 WHERE id = $1`,
		id, url, time.Now(),
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
