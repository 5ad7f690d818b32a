package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/astro-booking/internal/api/dto"
	"github.com/spec-kit/astro-booking/internal/domain"
	"github.com/spec-kit/astro-booking/internal/preferences"
	"github.com/spec-kit/astro-booking/internal/service"
)

// BookingSubmitter is implemented by service.BookingService.
type BookingSubmitter interface {
	Submit(ctx context.Context, in service.BookingInput) (*domain.Booking, error)
}

// BookingHandler accepts the booking form.
type BookingHandler struct {
	bookings BookingSubmitter
	resolver *preferences.Resolver
}

// NewBookingHandler constructs handler.
func NewBookingHandler(bookings BookingSubmitter, resolver *preferences.Resolver) *BookingHandler {
	return &BookingHandler{bookings: bookings, resolver: resolver}
}

// Create handles POST /api/bookings.
func (h *BookingHandler) Create(c *fiber.Ctx) error {
	var req dto.BookingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	booking, err := h.bookings.Submit(c.UserContext(), service.BookingInput{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Service:       req.Service,
		PreferredDate: req.PreferredDate,
		Message:       req.Message,
		Language:      currentState(c, h.resolver).Language,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.BookingResponse{
			ID:            booking.ID,
			Service:       booking.Service,
			Status:        string(booking.Status),
			PreferredDate: booking.PreferredDate,
			CreatedAt:     booking.CreatedAt,
		},
	})
}
