package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greattime/events-api/internal/settings"
)

func putJSON(e *echo.Echo, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPut, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestGetSettingsDefaults(t *testing.T) {
	h := NewSettingsHandler(settings.NewStore())
	c, rec := getReq(echo.New(), "/api/settings")
	require.NoError(t, h.GetSettings(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "GreatTime Event Center")
	assert.Contains(t, rec.Body.String(), `"allowOnlineBookings":true`)
}

func TestUpdateEventCenterInfoPartial(t *testing.T) {
	store := settings.NewStore()
	h := NewSettingsHandler(store)

	c, rec := putJSON(echo.New(), "/api/settings/event-center-info", `{"centerName":"Sunset Hall"}`)
	require.NoError(t, h.UpdateEventCenterInfo(c))
	require.Equal(t, http.StatusOK, rec.Code)

	info, _ := store.Get()
	assert.Equal(t, "Sunset Hall", info.CenterName)
	// fields absent from the request keep their values
	assert.Equal(t, "info@greattime.com", info.EmailAddress)
}

func TestUpdateBookingSettingsPartial(t *testing.T) {
	store := settings.NewStore()
	h := NewSettingsHandler(store)

	c, rec := putJSON(echo.New(), "/api/settings/booking-settings", `{"allowOnlineBookings":false}`)
	require.NoError(t, h.UpdateBookingSettings(c))
	require.Equal(t, http.StatusOK, rec.Code)

	_, booking := store.Get()
	assert.False(t, booking.AllowOnlineBookings)
	assert.True(t, booking.SendEmailNotifications)
}
