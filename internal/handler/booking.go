package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/greattime/events-api/internal/model"
	"github.com/greattime/events-api/internal/queue"
	"github.com/greattime/events-api/internal/repository"
	queue_publisher "github.com/greattime/events-api/internal/service"
)

// BookingStore is the slice of the booking repository used by booking
// endpoints.
type BookingStore interface {
	List(ctx context.Context, f repository.BookingFilter) ([]*model.Booking, error)
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id uint64) (*model.Booking, error)
	Update(ctx context.Context, id uint64, status, paymentStatus *string) (*model.Booking, error)
	Delete(ctx context.Context, id uint64) error
}

// HallGetter resolves hall ids for booking creation.
type HallGetter interface {
	GetByID(ctx context.Context, id uint64) (*model.Hall, error)
}

// BookingSettings exposes the toggles the booking endpoints consult.
type BookingSettings interface {
	OnlineBookingsAllowed() bool
	NotificationsEnabled() bool
}

// BookingHandler bundles dependencies for booking endpoints. Publish is
// called in a goroutine for every created or updated booking when
// notifications are enabled; it defaults to the RabbitMQ publisher.
type BookingHandler struct {
	Bookings BookingStore
	Halls    HallGetter
	Settings BookingSettings
	Publish  func(ctx context.Context, ev queue.BookingEvent) error
}

func NewBookingHandler(bookings BookingStore, halls HallGetter, st BookingSettings) *BookingHandler {
	return &BookingHandler{
		Bookings: bookings,
		Halls:    halls,
		Settings: st,
		Publish:  queue_publisher.PublishBookingEvent,
	}
}

type createBookingReq struct {
	Customer string   `json:"customer"`
	Phone    string   `json:"phone"`
	Email    *string  `json:"email"`
	HallID   uint64   `json:"hallId"`
	Date     string   `json:"date"`
	Amount   *float64 `json:"amount"`
}

type updateBookingReq struct {
	ID            uint64  `json:"id"`
	Status        *string `json:"status"`
	PaymentStatus *string `json:"paymentStatus"`
}

const bookingDateLayout = "2006-01-02"

// parseBookingDate accepts a plain calendar date or a full RFC 3339
// timestamp, keeping only the date part.
func parseBookingDate(s string) (time.Time, error) {
	if d, err := time.Parse(bookingDateLayout, s); err == nil {
		return d, nil
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := ts.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}

// ListBookings handles GET /api/bookings?status=&customer=.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	f := repository.BookingFilter{
		Status:   strings.TrimSpace(c.QueryParam("status")),
		Customer: strings.TrimSpace(c.QueryParam("customer")),
	}
	bookings, err := h.Bookings.List(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bookings": bookings})
}

// CreateBooking handles POST /api/bookings, the public booking request.
// A new booking always starts PENDING/PENDING; the amount defaults to the
// hall's current price.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	if !h.Settings.OnlineBookingsAllowed() {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Online bookings are currently disabled"})
	}

	var req createBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Customer = strings.TrimSpace(req.Customer)
	req.Phone = strings.TrimSpace(req.Phone)
	if req.Customer == "" || req.Phone == "" || req.HallID == 0 || req.Date == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Customer, phone, hall, and date are required"})
	}
	date, err := parseBookingDate(req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hall, err := h.Halls.GetByID(ctx, req.HallID)
	if err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}

	amount := hall.Price
	if req.Amount != nil {
		amount = *req.Amount
	}

	booking := &model.Booking{
		Customer:      req.Customer,
		Phone:         req.Phone,
		Email:         req.Email,
		HallID:        hall.ID,
		Date:          date,
		Amount:        amount,
		Status:        model.StatusPending,
		PaymentStatus: model.PaymentPending,
	}
	if err := h.Bookings.Create(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrDateUnavailable) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "Hall is already booked on this date"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	booking.Hall = &model.HallSummary{ID: hall.ID, Name: hall.Name, Price: hall.Price}

	h.notify(queue.BookingCreated, booking)

	return c.JSON(http.StatusCreated, echo.Map{"booking": booking})
}

// UpdateBooking handles PATCH /api/bookings. Only the supplied fields are
// applied. Status changes must follow the legal transition edges; payment
// status only needs to stay inside its value set.
func (h *BookingHandler) UpdateBooking(c echo.Context) error {
	var req updateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if req.ID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Booking ID is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	existing, err := h.Bookings.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}

	if req.Status != nil {
		if !model.ValidStatus(*req.Status) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid status"})
		}
		if !model.CanTransition(existing.Status, *req.Status) {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Invalid status transition from " + existing.Status + " to " + *req.Status,
			})
		}
	}
	if req.PaymentStatus != nil && !model.ValidPaymentStatus(*req.PaymentStatus) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid payment status"})
	}

	booking, err := h.Bookings.Update(ctx, req.ID, req.Status, req.PaymentStatus)
	if err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}

	h.notify(queue.BookingUpdated, booking)

	return c.JSON(http.StatusOK, echo.Map{"booking": booking})
}

// DeleteBooking handles DELETE /api/bookings?id=.
func (h *BookingHandler) DeleteBooking(c echo.Context) error {
	id, err := strconv.ParseUint(c.QueryParam("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Booking ID is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Bookings.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrBookingNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Booking not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Booking deleted successfully"})
}

// notify publishes a booking event in the background. Failures are logged
// by the publisher and never affect the request.
func (h *BookingHandler) notify(eventType string, b *model.Booking) {
	if h.Publish == nil || !h.Settings.NotificationsEnabled() {
		return
	}
	hallName := ""
	if b.Hall != nil {
		hallName = b.Hall.Name
	}
	ev := queue.BookingEvent{
		Type:          eventType,
		BookingID:     b.ID,
		Customer:      b.Customer,
		HallID:        b.HallID,
		HallName:      hallName,
		Date:          b.Date.Format(bookingDateLayout),
		Amount:        b.Amount,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = h.Publish(ctx, ev)
	}()
}
