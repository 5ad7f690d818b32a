package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/astro-booking/internal/domain"
	"github.com/spec-kit/astro-booking/internal/events"
	"github.com/spec-kit/astro-booking/internal/repository"
	"github.com/spec-kit/astro-booking/internal/site"
	apperrors "github.com/spec-kit/astro-booking/pkg/util"
)

const bookingDateLayout = "2006-01-02"

// BookingService accepts consultation requests from the booking form.
type BookingService struct {
	bookings   repository.BookingRepository
	catalog    *site.Catalog
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// NewBookingService constructs the service.
func NewBookingService(bookings repository.BookingRepository, catalog *site.Catalog, dispatcher events.Dispatcher, logger *zap.Logger) *BookingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{
		bookings:   bookings,
		catalog:    catalog,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// BookingInput is a submitted booking form.
type BookingInput struct {
	Name          string
	Email         string
	Phone         string
	Service       string
	PreferredDate string
	Message       string
	Language      domain.Language
}

// Submit validates and stores a booking request.
func (s *BookingService) Submit(ctx context.Context, in BookingInput) (*domain.Booking, error) {
	service := strings.TrimSpace(in.Service)
	if !s.catalog.HasService(service) {
		return nil, apperrors.NewValidationError("unknown service", map[string]any{"service": in.Service})
	}

	booking := &domain.Booking{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(in.Name),
		Email:    normalizeEmail(in.Email),
		Phone:    strings.TrimSpace(in.Phone),
		Service:  service,
		Message:  strings.TrimSpace(in.Message),
		Language: in.Language,
		Status:   domain.BookingStatusPending,
	}
	if booking.Language == "" {
		booking.Language = domain.LanguageEnglish
	}

	if raw := strings.TrimSpace(in.PreferredDate); raw != "" {
		date, err := time.Parse(bookingDateLayout, raw)
		if err != nil {
			return nil, apperrors.NewValidationError("preferred_date must be YYYY-MM-DD", map[string]any{"preferred_date": raw})
		}
		now := s.now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if date.Before(today) {
			return nil, apperrors.NewValidationError("preferred_date is in the past", map[string]any{"preferred_date": raw})
		}
		booking.PreferredDate = &date
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrUnavailable) {
			return nil, apperrors.NewMisconfigured("POSTGRES_DSN")
		}
		return nil, apperrors.NewUpstreamError("failed to store booking", err, nil)
	}

	s.logger.Info("booking received", zap.String("booking_id", booking.ID), zap.String("service", booking.Service))
	if s.dispatcher != nil {
		s.dispatcher.Publish(ctx, events.New(events.EventBookingReceived, booking.ID, events.Actor{Method: "public"}, events.BookingReceivedPayload{
			Service:  booking.Service,
			Language: string(booking.Language),
		}))
	}
	return booking, nil
}
