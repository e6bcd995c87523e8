package registration

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no record matches the given id.
var ErrNotFound = errors.New("registration not found")

// Repository persists registrations in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert writes a new record and returns it with server-assigned
// id and timestamps.
func (r *Repository) Insert(ctx context.Context, sub Submission, photoURL string) (Record, error) {
	rec := Record{
		ID:           uuid.NewString(),
		FullName:     sub.FullName,
		MobileNumber: sub.MobileNumber,
		Email:        sub.Email,
		Gender:       sub.Gender,
		Department:   sub.Department,
		Address:      sub.Address,
		PhotoURL:     photoURL,
	}
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO registrations (id, full_name, mobile_number, email, gender, department, address, photo_url)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING created_at, updated_at
	`, rec.ID, rec.FullName, rec.MobileNumber, rec.Email, rec.Gender, rec.Department, rec.Address, rec.PhotoURL)
	if err := row.Scan(&rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// List returns every record ordered by creation time descending.
// Filtering and pagination happen in memory on the caller's side.
func (r *Repository) List(ctx context.Context) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, full_name, mobile_number, email, gender, department, address, photo_url, created_at, updated_at
		FROM registrations
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.FullName, &rec.MobileNumber, &rec.Email, &rec.Gender,
			&rec.Department, &rec.Address, &rec.PhotoURL, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}

// Get returns a single record by id.
func (r *Repository) Get(ctx context.Context, id string) (Record, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, full_name, mobile_number, email, gender, department, address, photo_url, created_at, updated_at
		FROM registrations WHERE id = $1
	`, id)
	var rec Record
	if err := row.Scan(&rec.ID, &rec.FullName, &rec.MobileNumber, &rec.Email, &rec.Gender,
		&rec.Department, &rec.Address, &rec.PhotoURL, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return rec, nil
}

// Update patches the six editable fields of a record. The id, photo
// URL and created_at never change; updated_at is stamped server-side.
func (r *Repository) Update(ctx context.Context, id string, sub Submission) (Record, error) {
	row := r.db.QueryRowContext(ctx, `
		UPDATE registrations
		SET full_name = $2, mobile_number = $3, email = $4, gender = $5, department = $6, address = $7,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING id, full_name, mobile_number, email, gender, department, address, photo_url, created_at, updated_at
	`, id, sub.FullName, sub.MobileNumber, sub.Email, sub.Gender, sub.Department, sub.Address)
	var rec Record
	if err := row.Scan(&rec.ID, &rec.FullName, &rec.MobileNumber, &rec.Email, &rec.Gender,
		&rec.Department, &rec.Address, &rec.PhotoURL, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	return rec, nil
}

// Delete removes a record. Deleting an id with no matching row
// reports ErrNotFound.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM registrations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
