package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/greattime/events-api/internal/model"
)

// HallRepo provides access to the halls table.
type HallRepo struct {
	db *sql.DB
}

// NewHallRepo constructs a HallRepo with the given DB handle.
func NewHallRepo(db *sql.DB) *HallRepo { return &HallRepo{db: db} }

// Create inserts a new hall and reads the row back so CreatedAt is set.
func (r *HallRepo) Create(ctx context.Context, h *model.Hall) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO halls (name, capacity, price) VALUES (?,?,?)",
		h.Name, h.Capacity, h.Price)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT id, name, capacity, price, created_at FROM halls WHERE id = ?",
		h.ID).Scan(&h.ID, &h.Name, &h.Capacity, &h.Price, &h.CreatedAt)
}

// List returns all halls with their booking counts, newest first.
func (r *HallRepo) List(ctx context.Context) ([]*model.Hall, error) {
	const q = `SELECT h.id, h.name, h.capacity, h.price, h.created_at, COUNT(b.id)
	           FROM halls h
	           LEFT JOIN bookings b ON b.hall_id = h.id
	           GROUP BY h.id, h.name, h.capacity, h.price, h.created_at
	           ORDER BY h.created_at DESC, h.id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Hall, 0)
	for rows.Next() {
		h := new(model.Hall)
		if err := rows.Scan(&h.ID, &h.Name, &h.Capacity, &h.Price, &h.CreatedAt, &h.BookingCount); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// GetByID retrieves a hall by its ID. It returns ErrHallNotFound when no
// row is found.
func (r *HallRepo) GetByID(ctx context.Context, id uint64) (*model.Hall, error) {
	var h model.Hall
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, capacity, price, created_at FROM halls WHERE id = ?",
		id).Scan(&h.ID, &h.Name, &h.Capacity, &h.Price, &h.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHallNotFound
		}
		return nil, err
	}
	return &h, nil
}

// CountBookings returns how many bookings reference the hall, regardless
// of their status.
func (r *HallRepo) CountBookings(ctx context.Context, hallID uint64) (uint64, error) {
	var n uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE hall_id = ?", hallID).Scan(&n)
	return n, err
}

// Count returns the total number of halls.
func (r *HallRepo) Count(ctx context.Context) (uint64, error) {
	var n uint64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM halls").Scan(&n)
	return n, err
}

// Delete removes a hall. The foreign key on bookings.hall_id restricts the
// delete at the storage layer as well, so a concurrent booking still maps
// to ErrHallHasBookings instead of a bare driver error.
func (r *HallRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM halls WHERE id = ?", id)
	if err != nil {
		// 1451: cannot delete a parent row, foreign key constraint fails
		if strings.Contains(err.Error(), "1451") {
			return ErrHallHasBookings
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrHallNotFound
	}
	return nil
}
