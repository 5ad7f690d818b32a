package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/astro-booking/internal/events"
)

// AuditService writes an audit trail of account and booking events.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger.With(zap.String("component", "audit")),
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventStaffCreated, a.handleStaffCreated)
	a.dispatcher.Subscribe(events.EventStaffRollback, a.handleStaffRollback)
	a.dispatcher.Subscribe(events.EventBookingReceived, a.handleBookingReceived)
}

func (a *AuditService) handleStaffCreated(_ context.Context, event events.Event) error {
	a.logger.Info("StaffCreated", a.fields(event)...)
	return nil
}

func (a *AuditService) handleStaffRollback(_ context.Context, event events.Event) error {
	fields := a.fields(event)
	if p, ok := event.Payload.(events.StaffRollbackPayload); ok && !p.RolledBack {
		// Identity exists without a staff row; someone has to clean it up.
		a.logger.Error("StaffRollbackIncomplete", fields...)
		return nil
	}
	a.logger.Warn("StaffRollback", fields...)
	return nil
}

func (a *AuditService) handleBookingReceived(_ context.Context, event events.Event) error {
	a.logger.Info("BookingReceived", a.fields(event)...)
	return nil
}

func (a *AuditService) fields(event events.Event) []zap.Field {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("subject_id", event.SubjectID),
		zap.String("auth", event.Actor.Method),
		zap.Any("payload", event.Payload),
	}
	if event.Actor.StaffID != nil {
		fields = append(fields, zap.String("actor_staff_id", *event.Actor.StaffID))
	}
	return fields
}
