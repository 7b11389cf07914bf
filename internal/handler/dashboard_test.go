package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greattime/events-api/internal/model"
)

type fakeHallCounter struct{ n uint64 }

func (f fakeHallCounter) Count(ctx context.Context) (uint64, error) { return f.n, nil }

type fakeBookingStats struct {
	bookings []*model.Booking
}

func (f fakeBookingStats) Count(ctx context.Context) (uint64, error) {
	return uint64(len(f.bookings)), nil
}

func (f fakeBookingStats) CountByStatus(ctx context.Context, status string) (uint64, error) {
	var n uint64
	for _, b := range f.bookings {
		if b.Status == status {
			n++
		}
	}
	return n, nil
}

func (f fakeBookingStats) SumAmountByPaymentStatus(ctx context.Context, ps string) (float64, error) {
	var sum float64
	for _, b := range f.bookings {
		if b.PaymentStatus == ps {
			sum += b.Amount
		}
	}
	return sum, nil
}

func (f fakeBookingStats) Recent(ctx context.Context, limit int) ([]*model.Booking, error) {
	if len(f.bookings) > limit {
		return f.bookings[:limit], nil
	}
	return f.bookings, nil
}

func TestDashboardStats(t *testing.T) {
	stats := fakeBookingStats{bookings: []*model.Booking{
		{Status: model.StatusApproved, PaymentStatus: model.PaymentPaid, Amount: 1000},
		{Status: model.StatusCompleted, PaymentStatus: model.PaymentPaid, Amount: 2000},
		// PENDING payment on a PENDING booking contributes to pendingBookings
		// but not to revenue
		{Status: model.StatusPending, PaymentStatus: model.PaymentPending, Amount: 500},
	}}
	h := NewDashboardHandler(fakeHallCounter{n: 2}, stats)

	c, rec := getReq(echo.New(), "/api/dashboard/stats")
	require.NoError(t, h.Stats(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		TotalHalls      uint64  `json:"totalHalls"`
		TotalBookings   uint64  `json:"totalBookings"`
		PendingBookings uint64  `json:"pendingBookings"`
		TotalRevenue    float64 `json:"totalRevenue"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(2), resp.TotalHalls)
	assert.Equal(t, uint64(3), resp.TotalBookings)
	assert.Equal(t, uint64(1), resp.PendingBookings)
	assert.Equal(t, 3000.0, resp.TotalRevenue)
}

func TestRecentBookingsShape(t *testing.T) {
	date := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	stats := fakeBookingStats{bookings: []*model.Booking{
		{Customer: "Jane", Date: date, Status: model.StatusPending,
			Hall: &model.HallSummary{Name: "Grand Hall"}},
	}}
	h := NewDashboardHandler(fakeHallCounter{}, stats)

	c, rec := getReq(echo.New(), "/api/dashboard/recent-bookings")
	require.NoError(t, h.RecentBookings(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		RecentBookings []recentBooking `json:"recentBookings"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.RecentBookings, 1)
	assert.Equal(t, "Jane", resp.RecentBookings[0].Customer)
	assert.Equal(t, "Grand Hall", resp.RecentBookings[0].Hall)
	assert.Equal(t, "9/12/2026", resp.RecentBookings[0].Date)
	assert.Equal(t, model.StatusPending, resp.RecentBookings[0].Status)
}
