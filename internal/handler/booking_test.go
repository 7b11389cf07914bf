package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greattime/events-api/internal/model"
	"github.com/greattime/events-api/internal/queue"
	"github.com/greattime/events-api/internal/repository"
)

type fakeBookingStore struct {
	bookings map[uint64]*model.Booking
	nextID   uint64
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: map[uint64]*model.Booking{}, nextID: 1}
}

func (f *fakeBookingStore) List(ctx context.Context, filt repository.BookingFilter) ([]*model.Booking, error) {
	out := make([]*model.Booking, 0)
	for _, b := range f.bookings {
		if filt.Status != "" && b.Status != filt.Status {
			continue
		}
		if filt.Customer != "" && !strings.Contains(strings.ToLower(b.Customer), strings.ToLower(filt.Customer)) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingStore) Create(ctx context.Context, b *model.Booking) error {
	for _, existing := range f.bookings {
		if existing.HallID == b.HallID && existing.Date.Equal(b.Date) &&
			(existing.Status == model.StatusPending || existing.Status == model.StatusApproved) {
			return repository.ErrDateUnavailable
		}
	}
	b.ID = f.nextID
	b.CreatedAt = time.Now().UTC()
	f.nextID++
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeBookingStore) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingStore) Update(ctx context.Context, id uint64, status, paymentStatus *string) (*model.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	if status != nil {
		b.Status = *status
	}
	if paymentStatus != nil {
		b.PaymentStatus = *paymentStatus
	}
	return b, nil
}

func (f *fakeBookingStore) Delete(ctx context.Context, id uint64) error {
	if _, ok := f.bookings[id]; !ok {
		return repository.ErrBookingNotFound
	}
	delete(f.bookings, id)
	return nil
}

type fakeToggles struct {
	allow  bool
	notify bool
}

func (f fakeToggles) OnlineBookingsAllowed() bool { return f.allow }
func (f fakeToggles) NotificationsEnabled() bool  { return f.notify }

func newBookingFixture() (*BookingHandler, *fakeBookingStore, *fakeHallStore, chan queue.BookingEvent) {
	bookings := newFakeBookingStore()
	halls := newFakeHallStore()
	halls.halls[1] = &model.Hall{ID: 1, Name: "Grand Hall", Capacity: 100, Price: 2500}
	h := NewBookingHandler(bookings, halls, fakeToggles{allow: true, notify: true})
	events := make(chan queue.BookingEvent, 8)
	h.Publish = func(ctx context.Context, ev queue.BookingEvent) error {
		events <- ev
		return nil
	}
	return h, bookings, halls, events
}

func waitEvent(t *testing.T, events chan queue.BookingEvent) queue.BookingEvent {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("expected a booking event")
		return queue.BookingEvent{}
	}
}

func TestCreateBookingDefaults(t *testing.T) {
	h, _, _, events := newBookingFixture()

	c, rec := postJSON(echo.New(), "/api/bookings",
		`{"customer":"Jane Doe","phone":"555-0100","hallId":1,"date":"2026-09-12"}`)
	require.NoError(t, h.CreateBooking(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Booking model.Booking `json:"booking"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, model.StatusPending, resp.Booking.Status)
	assert.Equal(t, model.PaymentPending, resp.Booking.PaymentStatus)
	// amount falls back to the hall price
	assert.Equal(t, 2500.0, resp.Booking.Amount)
	require.NotNil(t, resp.Booking.Hall)
	assert.Equal(t, "Grand Hall", resp.Booking.Hall.Name)

	ev := waitEvent(t, events)
	assert.Equal(t, queue.BookingCreated, ev.Type)
	assert.Equal(t, "2026-09-12", ev.Date)
}

func TestCreateBookingValidation(t *testing.T) {
	h, _, _, _ := newBookingFixture()

	cases := []string{
		`{"phone":"555","hallId":1,"date":"2026-09-12"}`,
		`{"customer":"J","hallId":1,"date":"2026-09-12"}`,
		`{"customer":"J","phone":"555","date":"2026-09-12"}`,
		`{"customer":"J","phone":"555","hallId":1}`,
		`{"customer":"J","phone":"555","hallId":1,"date":"not-a-date"}`,
	}
	for _, body := range cases {
		c, rec := postJSON(echo.New(), "/api/bookings", body)
		require.NoError(t, h.CreateBooking(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}

func TestCreateBookingUnknownHall(t *testing.T) {
	h, _, _, _ := newBookingFixture()
	c, rec := postJSON(echo.New(), "/api/bookings",
		`{"customer":"J","phone":"555","hallId":42,"date":"2026-09-12"}`)
	require.NoError(t, h.CreateBooking(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateBookingDateConflict(t *testing.T) {
	h, _, _, _ := newBookingFixture()

	first, rec1 := postJSON(echo.New(), "/api/bookings",
		`{"customer":"A","phone":"1","hallId":1,"date":"2026-09-12"}`)
	require.NoError(t, h.CreateBooking(first))
	require.Equal(t, http.StatusCreated, rec1.Code)

	second, rec2 := postJSON(echo.New(), "/api/bookings",
		`{"customer":"B","phone":"2","hallId":1,"date":"2026-09-12"}`)
	require.NoError(t, h.CreateBooking(second))
	assert.Equal(t, http.StatusConflict, rec2.Code)

	// a different date on the same hall is fine
	third, rec3 := postJSON(echo.New(), "/api/bookings",
		`{"customer":"C","phone":"3","hallId":1,"date":"2026-09-13"}`)
	require.NoError(t, h.CreateBooking(third))
	assert.Equal(t, http.StatusCreated, rec3.Code)
}

func TestCreateBookingDisabledOnline(t *testing.T) {
	bookings := newFakeBookingStore()
	halls := newFakeHallStore()
	h := NewBookingHandler(bookings, halls, fakeToggles{allow: false})

	c, rec := postJSON(echo.New(), "/api/bookings",
		`{"customer":"J","phone":"555","hallId":1,"date":"2026-09-12"}`)
	require.NoError(t, h.CreateBooking(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestUpdateBookingRejectsUnknownStatusAndKeepsStored(t *testing.T) {
	h, bookings, _, _ := newBookingFixture()
	bookings.bookings[7] = &model.Booking{ID: 7, Status: model.StatusPending, PaymentStatus: model.PaymentPending}

	c, rec := patchJSON(echo.New(), "/api/bookings", `{"id":7,"status":"CONFIRMED"}`)
	require.NoError(t, h.UpdateBooking(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, model.StatusPending, bookings.bookings[7].Status)

	c, rec = patchJSON(echo.New(), "/api/bookings", `{"id":7,"paymentStatus":"SETTLED"}`)
	require.NoError(t, h.UpdateBooking(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, model.PaymentPending, bookings.bookings[7].PaymentStatus)
}

func TestUpdateBookingRejectsIllegalTransition(t *testing.T) {
	h, bookings, _, _ := newBookingFixture()
	bookings.bookings[7] = &model.Booking{ID: 7, Status: model.StatusCompleted, PaymentStatus: model.PaymentPaid}

	c, rec := patchJSON(echo.New(), "/api/bookings", `{"id":7,"status":"PENDING"}`)
	require.NoError(t, h.UpdateBooking(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, model.StatusCompleted, bookings.bookings[7].Status)
}

func TestUpdateBookingPartial(t *testing.T) {
	h, bookings, _, events := newBookingFixture()
	bookings.bookings[7] = &model.Booking{ID: 7, Customer: "J", Status: model.StatusPending, PaymentStatus: model.PaymentPending}

	// status only
	c, rec := patchJSON(echo.New(), "/api/bookings", `{"id":7,"status":"APPROVED"}`)
	require.NoError(t, h.UpdateBooking(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.StatusApproved, bookings.bookings[7].Status)
	assert.Equal(t, model.PaymentPending, bookings.bookings[7].PaymentStatus)

	ev := waitEvent(t, events)
	assert.Equal(t, queue.BookingUpdated, ev.Type)
	assert.Equal(t, model.StatusApproved, ev.Status)

	// payment status only
	c, rec = patchJSON(echo.New(), "/api/bookings", `{"id":7,"paymentStatus":"PAID"}`)
	require.NoError(t, h.UpdateBooking(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.StatusApproved, bookings.bookings[7].Status)
	assert.Equal(t, model.PaymentPaid, bookings.bookings[7].PaymentStatus)
}

func TestUpdateBookingNotFoundAndMissingID(t *testing.T) {
	h, _, _, _ := newBookingFixture()

	c, rec := patchJSON(echo.New(), "/api/bookings", `{"status":"APPROVED"}`)
	require.NoError(t, h.UpdateBooking(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = patchJSON(echo.New(), "/api/bookings", `{"id":99,"status":"APPROVED"}`)
	require.NoError(t, h.UpdateBooking(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteBooking(t *testing.T) {
	h, bookings, _, _ := newBookingFixture()
	bookings.bookings[3] = &model.Booking{ID: 3}

	c, rec := deleteReq(echo.New(), "/api/bookings?id=99")
	require.NoError(t, h.DeleteBooking(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	c, rec = deleteReq(echo.New(), "/api/bookings?id=3")
	require.NoError(t, h.DeleteBooking(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, bookings.bookings)
}

func TestListBookingsFilter(t *testing.T) {
	h, bookings, _, _ := newBookingFixture()
	bookings.bookings[1] = &model.Booking{ID: 1, Customer: "Jane Doe", Status: model.StatusPending}
	bookings.bookings[2] = &model.Booking{ID: 2, Customer: "Bob Roe", Status: model.StatusApproved}

	c, rec := getReq(echo.New(), "/api/bookings?status=PENDING&customer=jane")
	require.NoError(t, h.ListBookings(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Jane Doe")
	assert.NotContains(t, rec.Body.String(), "Bob Roe")
}

func patchJSON(e *echo.Echo, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPatch, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
