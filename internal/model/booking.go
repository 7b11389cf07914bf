package model

import "time"

// Booking statuses. A new booking always starts as PENDING.
const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusCancelled = "CANCELLED"
	StatusCompleted = "COMPLETED"
)

// Payment statuses, tracked independently of the booking status.
const (
	PaymentPending  = "PENDING"
	PaymentPaid     = "PAID"
	PaymentFailed   = "FAILED"
	PaymentRefunded = "REFUNDED"
)

// Booking reserves a hall for a single calendar date.
type Booking struct {
	ID            uint64       `json:"id"`
	Customer      string       `json:"customer"`
	Phone         string       `json:"phone"`
	Email         *string      `json:"email"`
	HallID        uint64       `json:"hallId"`
	Date          time.Time    `json:"date"`
	Amount        float64      `json:"amount"`
	Status        string       `json:"status"`
	PaymentStatus string       `json:"paymentStatus"`
	CreatedAt     time.Time    `json:"createdAt"`
	Hall          *HallSummary `json:"hall,omitempty"`
}

// statusEdges names the legal booking status transitions. CANCELLED and
// COMPLETED are terminal. Self-transitions are handled by CanTransition.
var statusEdges = map[string][]string{
	StatusPending:  {StatusApproved, StatusCancelled},
	StatusApproved: {StatusCancelled, StatusCompleted},
}

// ValidStatus reports whether s is a member of the booking status set.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusApproved, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether s is a member of the payment status set.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// CanTransition reports whether a booking may move from one status to
// another. Setting the same status again is a no-op and always allowed.
func CanTransition(from, to string) bool {
	if !ValidStatus(from) || !ValidStatus(to) {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range statusEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OpenStatuses are booking statuses that block the hall for their date.
// CANCELLED and COMPLETED bookings release the date.
func OpenStatuses() []string {
	return []string{StatusPending, StatusApproved}
}
