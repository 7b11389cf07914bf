package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/greattime/events-api/internal/model"
)

// AdminRepo provides access to the admins table.
type AdminRepo struct {
	db *sql.DB
}

// NewAdminRepo constructs an AdminRepo with the given DB handle.
func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{db: db} }

// Create inserts an admin with an already-hashed password and reads the row
// back so timestamps are populated. A duplicate email maps to ErrEmailExists.
func (r *AdminRepo) Create(ctx context.Context, email, passwordHash string, name *string) (*model.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO admins (email, password_hash, name) VALUES (?,?,?)",
		email, passwordHash, name)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByEmail fetches an admin by normalized email.
func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (*model.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var a model.Admin
	err := r.db.QueryRowContext(ctx,
		"SELECT id, email, password_hash, name, created_at FROM admins WHERE email = ? LIMIT 1",
		email).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &a, nil
}

// GetByID fetches an admin by id.
func (r *AdminRepo) GetByID(ctx context.Context, id uint64) (*model.Admin, error) {
	var a model.Admin
	err := r.db.QueryRowContext(ctx,
		"SELECT id, email, password_hash, name, created_at FROM admins WHERE id = ? LIMIT 1",
		id).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &a, nil
}
