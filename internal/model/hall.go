package model

import "time"

// Hall is a bookable venue. BookingCount is derived at query time and is
// not a column of the halls table.
type Hall struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	Capacity     uint32    `json:"capacity"`
	Price        float64   `json:"price"`
	CreatedAt    time.Time `json:"createdAt"`
	BookingCount uint64    `json:"bookingCount"`
}

// HallSummary is the slice of hall data embedded in booking responses.
type HallSummary struct {
	ID    uint64  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}
