package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/greattime/events-api/internal/model"
)

// HallCounter is the slice of the hall repository used by the dashboard.
type HallCounter interface {
	Count(ctx context.Context) (uint64, error)
}

// BookingStats is the slice of the booking repository used by the dashboard.
type BookingStats interface {
	Count(ctx context.Context) (uint64, error)
	CountByStatus(ctx context.Context, status string) (uint64, error)
	SumAmountByPaymentStatus(ctx context.Context, paymentStatus string) (float64, error)
	Recent(ctx context.Context, limit int) ([]*model.Booking, error)
}

// DashboardHandler serves the admin portal overview.
type DashboardHandler struct {
	Halls    HallCounter
	Bookings BookingStats
}

func NewDashboardHandler(halls HallCounter, bookings BookingStats) *DashboardHandler {
	return &DashboardHandler{Halls: halls, Bookings: bookings}
}

const recentBookingsLimit = 5

type recentBooking struct {
	Customer string `json:"customer"`
	Hall     string `json:"hall"`
	Date     string `json:"date"`
	Status   string `json:"status"`
}

// Stats handles GET /api/dashboard/stats. Revenue counts only PAID
// bookings; pendingBookings counts status PENDING regardless of payment
// status.
func (h *DashboardHandler) Stats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	totalHalls, err := h.Halls.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	totalBookings, err := h.Bookings.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	pendingBookings, err := h.Bookings.CountByStatus(ctx, model.StatusPending)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	totalRevenue, err := h.Bookings.SumAmountByPaymentStatus(ctx, model.PaymentPaid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"totalHalls":      totalHalls,
		"totalBookings":   totalBookings,
		"pendingBookings": pendingBookings,
		"totalRevenue":    totalRevenue,
	})
}

// RecentBookings handles GET /api/dashboard/recent-bookings, returning the
// newest bookings with the hall name denormalized in.
func (h *DashboardHandler) RecentBookings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bookings, err := h.Bookings.Recent(ctx, recentBookingsLimit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}

	out := make([]recentBooking, 0, len(bookings))
	for _, b := range bookings {
		hallName := ""
		if b.Hall != nil {
			hallName = b.Hall.Name
		}
		out = append(out, recentBooking{
			Customer: b.Customer,
			Hall:     hallName,
			Date:     b.Date.Format("1/2/2006"),
			Status:   b.Status,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"recentBookings": out})
}
