// Package repository holds the data access layer. Sentinel errors defined
// here let handlers translate storage failures into the right HTTP status
// without inspecting driver errors themselves.
package repository

import "errors"

// ErrAdminNotFound is returned when an admin lookup fails.
var ErrAdminNotFound = errors.New("admin not found")

// ErrEmailExists is returned when registering an email that is already taken.
var ErrEmailExists = errors.New("email already exists")

// ErrHallNotFound is returned when a hall lookup fails.
var ErrHallNotFound = errors.New("hall not found")

// ErrHallHasBookings is returned when deleting a hall that still owns
// bookings. Handlers translate this into a 400/409 response.
var ErrHallHasBookings = errors.New("cannot delete hall with existing bookings")

// ErrBookingNotFound is returned when a booking lookup fails.
var ErrBookingNotFound = errors.New("booking not found")

// ErrDateUnavailable is returned when a hall already has a PENDING or
// APPROVED booking on the requested date.
var ErrDateUnavailable = errors.New("hall is already booked on this date")
