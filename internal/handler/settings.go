package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/greattime/events-api/internal/settings"
)

// SettingsHandler serves the in-memory configuration endpoints.
type SettingsHandler struct {
	Store *settings.Store
}

func NewSettingsHandler(store *settings.Store) *SettingsHandler {
	return &SettingsHandler{Store: store}
}

// GetSettings handles GET /api/settings.
func (h *SettingsHandler) GetSettings(c echo.Context) error {
	info, booking := h.Store.Get()
	return c.JSON(http.StatusOK, echo.Map{
		"eventCenterInfo": info,
		"bookingSettings": booking,
	})
}

// UpdateEventCenterInfo handles PUT /api/settings/event-center-info.
// Omitted fields keep their current values.
func (h *SettingsHandler) UpdateEventCenterInfo(c echo.Context) error {
	var patch settings.EventCenterInfoPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	info := h.Store.UpdateEventCenterInfo(patch)
	return c.JSON(http.StatusOK, echo.Map{
		"message":         "Event center info updated successfully",
		"eventCenterInfo": info,
	})
}

// UpdateBookingSettings handles PUT /api/settings/booking-settings.
// Omitted fields keep their current values.
func (h *SettingsHandler) UpdateBookingSettings(c echo.Context) error {
	var patch settings.BookingSettingsPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	booking := h.Store.UpdateBookingSettings(patch)
	return c.JSON(http.StatusOK, echo.Map{
		"message":         "Booking settings updated successfully",
		"bookingSettings": booking,
	})
}
