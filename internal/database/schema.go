package database

import (
	"context"
	"database/sql"
)

// Schema statements are idempotent so the server can bootstrap a fresh
// database at startup. The bookings table carries a stored generated
// column, open_date, which is the booking date while the booking is still
// PENDING or APPROVED and NULL once it is cancelled or completed. The
// unique key over (hall_id, open_date) is the authoritative guard against
// double-booking a hall on the same date; the application-level check is
// only a fast path for a friendlier error message.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS admins (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		name VARCHAR(255) NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_admins_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS halls (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		capacity INT UNSIGNED NOT NULL,
		price DECIMAL(12,2) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		customer VARCHAR(255) NOT NULL,
		phone VARCHAR(64) NOT NULL,
		email VARCHAR(255) NULL,
		hall_id BIGINT UNSIGNED NOT NULL,
		date DATE NOT NULL,
		amount DECIMAL(12,2) NOT NULL,
		status ENUM('PENDING','APPROVED','CANCELLED','COMPLETED') NOT NULL DEFAULT 'PENDING',
		payment_status ENUM('PENDING','PAID','FAILED','REFUNDED') NOT NULL DEFAULT 'PENDING',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		open_date DATE GENERATED ALWAYS AS (
			CASE WHEN status IN ('PENDING','APPROVED') THEN date ELSE NULL END
		) STORED,
		UNIQUE KEY uq_bookings_hall_open_date (hall_id, open_date),
		KEY idx_bookings_created (created_at),
		CONSTRAINT fk_bookings_hall FOREIGN KEY (hall_id) REFERENCES halls(id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the application tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
