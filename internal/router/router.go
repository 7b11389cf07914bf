// Package router defines how HTTP routes are registered for the API.
// Everything the clients use lives under /api; the health check sits at
// the root for load balancers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/greattime/events-api/internal/handler"
	"github.com/greattime/events-api/internal/middleware"
)

// Handlers collects everything the router wires up.
type Handlers struct {
	Auth      *handler.AuthHandler
	Halls     *handler.HallHandler
	Bookings  *handler.BookingHandler
	Dashboard *handler.DashboardHandler
	Payments  *handler.PaymentsHandler
	Settings  *handler.SettingsHandler
}

// RegisterRoutes registers the health check on the provided Echo instance.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI registers every /api route. Mutating hall and booking
// endpoints sit behind JWT verification without exception; the public
// endpoints that accept anonymous writes (register, login, booking
// creation) carry the rate limiter instead.
func RegisterAPI(e *echo.Echo, h Handlers, jwtSecret string, limiter echo.MiddlewareFunc) {
	api := e.Group("/api")

	// Public auth endpoints.
	auth := api.Group("/auth", limiter)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/register", h.Auth.Register)

	// Public browse and booking-request endpoints.
	api.GET("/halls", h.Halls.ListHalls)
	api.POST("/bookings", h.Bookings.CreateBooking, limiter)
	api.GET("/payments", h.Payments.Report)
	api.GET("/settings", h.Settings.GetSettings)
	api.PUT("/settings/event-center-info", h.Settings.UpdateEventCenterInfo)
	api.PUT("/settings/booking-settings", h.Settings.UpdateBookingSettings)
	api.GET("/dashboard/stats", h.Dashboard.Stats)
	api.GET("/dashboard/recent-bookings", h.Dashboard.RecentBookings)

	// Admin endpoints require a valid access token.
	admin := api.Group("", middleware.JWTAuth(jwtSecret))
	admin.POST("/halls", h.Halls.CreateHall)
	admin.DELETE("/halls", h.Halls.DeleteHall)
	admin.GET("/bookings", h.Bookings.ListBookings)
	admin.PATCH("/bookings", h.Bookings.UpdateBooking)
	admin.DELETE("/bookings", h.Bookings.DeleteBooking)
}
