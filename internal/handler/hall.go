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
	"github.com/greattime/events-api/internal/repository"
)

// HallStore is the slice of the hall repository used by hall endpoints.
type HallStore interface {
	List(ctx context.Context) ([]*model.Hall, error)
	Create(ctx context.Context, h *model.Hall) error
	GetByID(ctx context.Context, id uint64) (*model.Hall, error)
	CountBookings(ctx context.Context, hallID uint64) (uint64, error)
	Delete(ctx context.Context, id uint64) error
}

// HallHandler bundles dependencies for hall endpoints.
type HallHandler struct {
	Halls HallStore
}

func NewHallHandler(halls HallStore) *HallHandler {
	return &HallHandler{Halls: halls}
}

type createHallReq struct {
	Name     string   `json:"name"`
	Capacity *uint32  `json:"capacity"`
	Price    *float64 `json:"price"`
}

// ListHalls handles GET /api/halls. Booking counts come along so the admin
// portal can show which halls are deletable.
func (h *HallHandler) ListHalls(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	halls, err := h.Halls.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"halls": halls})
}

// CreateHall handles POST /api/halls.
func (h *HallHandler) CreateHall(c echo.Context) error {
	var req createHallReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Capacity == nil || req.Price == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Name, capacity, and price are required"})
	}
	if *req.Capacity < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Capacity must be at least 1"})
	}
	if *req.Price < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Price must be a positive number"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hall := &model.Hall{Name: req.Name, Capacity: *req.Capacity, Price: *req.Price}
	if err := h.Halls.Create(ctx, hall); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"hall": hall})
}

// DeleteHall handles DELETE /api/halls?id=. A hall that still owns
// bookings is never deleted.
func (h *HallHandler) DeleteHall(c echo.Context) error {
	id, err := strconv.ParseUint(c.QueryParam("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Hall ID is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Halls.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrHallNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Hall not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}

	n, err := h.Halls.CountBookings(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	if n > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Cannot delete hall with existing bookings"})
	}

	if err := h.Halls.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrHallNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Hall not found"})
		case errors.Is(err, repository.ErrHallHasBookings):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Cannot delete hall with existing bookings"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Internal server error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Hall deleted successfully"})
}
