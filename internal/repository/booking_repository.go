package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/greattime/events-api/internal/model"
)

// BookingRepo provides access to the bookings table. All dates are stored
// in a DATE column; time-of-day never participates in conflict checks.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo constructs a BookingRepo with the given DB handle.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingCols = `b.id, b.customer, b.phone, b.email, b.hall_id, b.date,
	b.amount, b.status, b.payment_status, b.created_at`

const dateLayout = "2006-01-02"

// BookingFilter narrows List results. Zero values mean "no filter".
// Customer is a case-insensitive substring match.
type BookingFilter struct {
	Status   string
	Customer string
}

// Create inserts a booking after re-checking that the hall is free on the
// requested date. The check-then-insert sequence runs in one transaction
// with the conflicting rows locked, and the unique key over
// (hall_id, open_date) backs it up, so two concurrent requests for the
// same hall and date cannot both commit.
func (r *BookingRepo) Create(ctx context.Context, b *model.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var conflictID uint64
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM bookings
		 WHERE hall_id = ? AND date = ? AND status IN ('PENDING','APPROVED')
		 LIMIT 1 FOR UPDATE`,
		b.HallID, b.Date.Format(dateLayout)).Scan(&conflictID)
	switch {
	case err == nil:
		return ErrDateUnavailable
	case !errors.Is(err, sql.ErrNoRows):
		return err
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (customer, phone, email, hall_id, date, amount, status, payment_status)
		 VALUES (?,?,?,?,?,?,?,?)`,
		b.Customer, b.Phone, b.Email, b.HallID, b.Date.Format(dateLayout),
		b.Amount, b.Status, b.PaymentStatus)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return ErrDateUnavailable
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)

	err = tx.QueryRowContext(ctx,
		"SELECT "+bookingCols+" FROM bookings b WHERE b.id = ?", b.ID).
		Scan(&b.ID, &b.Customer, &b.Phone, &b.Email, &b.HallID, &b.Date,
			&b.Amount, &b.Status, &b.PaymentStatus, &b.CreatedAt)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// List returns bookings joined with their hall summary, newest first.
func (r *BookingRepo) List(ctx context.Context, f BookingFilter) ([]*model.Booking, error) {
	q := `SELECT ` + bookingCols + `, h.id, h.name, h.price
	      FROM bookings b
	      JOIN halls h ON h.id = b.hall_id`
	var (
		where []string
		args  []interface{}
	)
	if f.Status != "" {
		where = append(where, "b.status = ?")
		args = append(args, f.Status)
	}
	if f.Customer != "" {
		where = append(where, "LOWER(b.customer) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.Customer)+"%")
	}
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY b.created_at DESC, b.id DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Booking, 0)
	for rows.Next() {
		b := new(model.Booking)
		h := new(model.HallSummary)
		if err := rows.Scan(&b.ID, &b.Customer, &b.Phone, &b.Email, &b.HallID, &b.Date,
			&b.Amount, &b.Status, &b.PaymentStatus, &b.CreatedAt,
			&h.ID, &h.Name, &h.Price); err != nil {
			return nil, err
		}
		b.Hall = h
		out = append(out, b)
	}
	return out, rows.Err()
}

// GetByID retrieves a booking with its hall summary. It returns
// ErrBookingNotFound when no row is found.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	b := new(model.Booking)
	h := new(model.HallSummary)
	err := r.db.QueryRowContext(ctx,
		`SELECT `+bookingCols+`, h.id, h.name, h.price
		 FROM bookings b JOIN halls h ON h.id = b.hall_id
		 WHERE b.id = ?`, id).
		Scan(&b.ID, &b.Customer, &b.Phone, &b.Email, &b.HallID, &b.Date,
			&b.Amount, &b.Status, &b.PaymentStatus, &b.CreatedAt,
			&h.ID, &h.Name, &h.Price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	b.Hall = h
	return b, nil
}

// Update applies the supplied fields only, leaving the others unchanged,
// and returns the refreshed booking. Passing two nils is a no-op read.
func (r *BookingRepo) Update(ctx context.Context, id uint64, status, paymentStatus *string) (*model.Booking, error) {
	var (
		set  []string
		args []interface{}
	)
	if status != nil {
		set = append(set, "status = ?")
		args = append(args, *status)
	}
	if paymentStatus != nil {
		set = append(set, "payment_status = ?")
		args = append(args, *paymentStatus)
	}
	if len(set) > 0 {
		args = append(args, id)
		if _, err := r.db.ExecContext(ctx,
			"UPDATE bookings SET "+strings.Join(set, ", ")+" WHERE id = ?", args...); err != nil {
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a booking. It returns ErrBookingNotFound when the id is
// unknown.
func (r *BookingRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM bookings WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBookingNotFound
	}
	return nil
}

// Count returns the total number of bookings.
func (r *BookingRepo) Count(ctx context.Context) (uint64, error) {
	var n uint64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM bookings").Scan(&n)
	return n, err
}

// CountByStatus returns the number of bookings in the given status.
func (r *BookingRepo) CountByStatus(ctx context.Context, status string) (uint64, error) {
	var n uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM bookings WHERE status = ?", status).Scan(&n)
	return n, err
}

// SumAmountByPaymentStatus totals booking amounts for one payment status.
// Zero when no booking matches.
func (r *BookingRepo) SumAmountByPaymentStatus(ctx context.Context, paymentStatus string) (float64, error) {
	var sum float64
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM bookings WHERE payment_status = ?",
		paymentStatus).Scan(&sum)
	return sum, err
}

// Recent returns the newest bookings with the hall name denormalized in.
func (r *BookingRepo) Recent(ctx context.Context, limit int) ([]*model.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+bookingCols+`, h.id, h.name, h.price
		 FROM bookings b JOIN halls h ON h.id = b.hall_id
		 ORDER BY b.created_at DESC, b.id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Booking, 0, limit)
	for rows.Next() {
		b := new(model.Booking)
		h := new(model.HallSummary)
		if err := rows.Scan(&b.ID, &b.Customer, &b.Phone, &b.Email, &b.HallID, &b.Date,
			&b.Amount, &b.Status, &b.PaymentStatus, &b.CreatedAt,
			&h.ID, &h.Name, &h.Price); err != nil {
			return nil, err
		}
		b.Hall = h
		out = append(out, b)
	}
	return out, rows.Err()
}

// PaymentRow is one line of the payments report.
type PaymentRow struct {
	Customer      string
	HallName      string
	Amount        float64
	PaymentStatus string
	CreatedAt     time.Time
}

// PaymentsFilter narrows the payments report. The date range applies to
// the booking creation timestamp, inclusive on both ends.
type PaymentsFilter struct {
	Start         *time.Time
	End           *time.Time
	PaymentStatus string
}

// Payments returns report rows for bookings matching the filter, newest
// first.
func (r *BookingRepo) Payments(ctx context.Context, f PaymentsFilter) ([]PaymentRow, error) {
	q := `SELECT b.customer, h.name, b.amount, b.payment_status, b.created_at
	      FROM bookings b
	      JOIN halls h ON h.id = b.hall_id`
	var (
		where []string
		args  []interface{}
	)
	if f.Start != nil && f.End != nil {
		where = append(where, "b.created_at BETWEEN ? AND ?")
		args = append(args, *f.Start, *f.End)
	}
	if f.PaymentStatus != "" {
		where = append(where, "b.payment_status = ?")
		args = append(args, f.PaymentStatus)
	}
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY b.created_at DESC, b.id DESC"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]PaymentRow, 0)
	for rows.Next() {
		var p PaymentRow
		if err := rows.Scan(&p.Customer, &p.HallName, &p.Amount, &p.PaymentStatus, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
