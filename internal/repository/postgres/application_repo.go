package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-jobtrack-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

const applicationColumns = `id, token, user_id, serial_no, company, job_title,
	application_date, status, follow_up_date, location, industry, created_at, updated_at`

func scanApplication(row pgx.Row, app *domain.Application) error {
	return row.Scan(
		&app.ID, &app.Token, &app.UserID, &app.SerialNo, &app.Company, &app.JobTitle,
		&app.ApplicationDate, &app.Status, &app.FollowUpDate, &app.Location, &app.Industry,
		&app.CreatedAt, &app.UpdatedAt,
	)
}

// lockUser takes a transaction-scoped advisory lock keyed on the user id.
// Every create/delete runs under this lock so serial assignment and
// renumbering for one user never interleave.
func lockUser(ctx context.Context, tx pgx.Tx, userID string) error {
	_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, userID)
	return err
}

// checkSerialDensity verifies that a user's serial numbers still form an
// unbroken 1..N range. count == max rules out gaps and the sum check rules
// out duplicates, so together they are equivalent to density. A violation
// aborts the surrounding transaction.
func checkSerialDensity(ctx context.Context, tx pgx.Tx, userID string) error {
	var count, maxSerial, sum int
	err := tx.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(MAX(serial_no), 0), COALESCE(SUM(serial_no), 0)
		FROM job_applications
		WHERE user_id = $1`, userID,
	).Scan(&count, &maxSerial, &sum)
	if err != nil {
		return err
	}
	if count != maxSerial || sum != count*(count+1)/2 {
		return fmt.Errorf("%w: user %s has %d records, max serial %d, serial sum %d",
			domain.ErrInconsistentSerials, userID, count, maxSerial, sum)
	}
	return nil
}

// Create inserts a new application with the next dense serial number for
// its user. Runs in a transaction under the per-user advisory lock so a
// concurrent delete cannot hand out a stale serial.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := lockUser(ctx, tx, app.UserID); err != nil {
		return err
	}

	if err := tx.QueryRow(ctx, `
		SELECT COALESCE(MAX(serial_no), 0) + 1
		FROM job_applications
		WHERE user_id = $1`, app.UserID,
	).Scan(&app.SerialNo); err != nil {
		return err
	}

	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now
	if app.Token == "" {
		app.Token = uuid.NewString()
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO job_applications
			(token, user_id, serial_no, company, job_title, application_date,
			 status, follow_up_date, location, industry, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`,
		app.Token, app.UserID, app.SerialNo, app.Company, app.JobTitle, app.ApplicationDate,
		app.Status, app.FollowUpDate, app.Location, app.Industry, app.CreatedAt, app.UpdatedAt,
	).Scan(&app.ID)
	if err != nil {
		return err
	}

	if err := checkSerialDensity(ctx, tx, app.UserID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetByID retrieves an application by its generated id
func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	query := `SELECT ` + applicationColumns + ` FROM job_applications WHERE id = $1`

	var app domain.Application
	if err := scanApplication(r.db.QueryRow(ctx, query, id), &app); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// GetByUser retrieves a user's applications narrowed by the filter.
// Zero-valued filter fields add no condition; result order is unspecified
// and callers sort explicitly when they need an order.
func (r *applicationRepo) GetByUser(ctx context.Context, userID string, filter domain.ApplicationFilter) ([]domain.Application, error) {
	conditions := []string{"user_id = $1"}
	args := []interface{}{userID}
	argIndex := 2

	if filter.Location != "" {
		conditions = append(conditions, fmt.Sprintf("location = $%d", argIndex))
		args = append(args, filter.Location)
		argIndex++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIndex))
		args = append(args, filter.Status)
		argIndex++
	}
	if filter.Token != "" {
		conditions = append(conditions, fmt.Sprintf("token = $%d", argIndex))
		args = append(args, filter.Token)
		argIndex++
	}
	if filter.ApplicationDateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("application_date >= $%d", argIndex))
		args = append(args, *filter.ApplicationDateFrom)
		argIndex++
	}
	if filter.FollowUpDateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("follow_up_date >= $%d", argIndex))
		args = append(args, *filter.FollowUpDateFrom)
		argIndex++
	}

	query := `SELECT ` + applicationColumns + `
		FROM job_applications
		WHERE ` + strings.Join(conditions, " AND ")

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := scanApplication(rows, &app); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

// GetByUserSorted retrieves a user's full set ordered by serial number,
// the presentation order used by list views and exports.
func (r *applicationRepo) GetByUserSorted(ctx context.Context, userID string) ([]domain.Application, error) {
	query := `SELECT ` + applicationColumns + `
		FROM job_applications
		WHERE user_id = $1
		ORDER BY serial_no ASC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := scanApplication(rows, &app); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

// Update edits an application in place. serial_no, user_id and token are
// never touched by an edit.
func (r *applicationRepo) Update(ctx context.Context, id int64, patch domain.ApplicationPatch) (*domain.Application, error) {
	query := `
		UPDATE job_applications
		SET company = $2, job_title = $3, application_date = $4, status = $5,
		    follow_up_date = $6, location = $7, industry = $8, updated_at = $9
		WHERE id = $1
		RETURNING ` + applicationColumns

	var app domain.Application
	err := scanApplication(r.db.QueryRow(ctx, query,
		id, patch.Company, patch.JobTitle, patch.ApplicationDate, patch.Status,
		patch.FollowUpDate, patch.Location, patch.Industry, time.Now(),
	), &app)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// Delete removes an application and closes the gap it leaves: every
// remaining record of the same user with a higher serial is decremented by
// one in a single batch statement. The whole sequence runs in one
// transaction under the per-user advisory lock, so concurrent deletes for
// the same user serialize and partial renumbering is never observable.
func (r *applicationRepo) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Owner lookup first: the advisory lock must be held before the row
	// is read for its serial, or a concurrent delete could renumber
	// underneath us.
	var userID string
	err = tx.QueryRow(ctx, `SELECT user_id FROM job_applications WHERE id = $1`, id).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	if err := lockUser(ctx, tx, userID); err != nil {
		return err
	}

	var deletedSerial int
	err = tx.QueryRow(ctx, `
		DELETE FROM job_applications
		WHERE id = $1
		RETURNING serial_no`, id,
	).Scan(&deletedSerial)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Row vanished between lookup and lock acquisition.
			return domain.ErrNotFound
		}
		return err
	}

	// No-op when the deleted record held the highest serial.
	_, err = tx.Exec(ctx, `
		UPDATE job_applications
		SET serial_no = serial_no - 1
		WHERE user_id = $1 AND serial_no > $2`,
		userID, deletedSerial,
	)
	if err != nil {
		return err
	}

	if err := checkSerialDensity(ctx, tx, userID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
