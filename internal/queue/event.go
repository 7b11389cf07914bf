// Package queue defines message payloads exchanged over the message broker.
package queue

// Event types carried in BookingEvent.Type.
const (
	BookingCreated = "booking.created"
	BookingUpdated = "booking.updated"
)

// BookingEvent is published when a booking is created or when its status
// or payment status changes. It contains enough information for downstream
// consumers to log or notify without querying the primary database.
type BookingEvent struct {
	Type          string  `json:"type"`
	BookingID     uint64  `json:"booking_id"`
	Customer      string  `json:"customer"`
	HallID        uint64  `json:"hall_id"`
	HallName      string  `json:"hall_name"`
	Date          string  `json:"date"`
	Amount        float64 `json:"amount"`
	Status        string  `json:"status"`
	PaymentStatus string  `json:"payment_status"`
	OccurredAt    string  `json:"occurred_at"`
}
