package appointment

import (
	"context"

	"github.com/glowbookhq/stylist-scheduler/internal/audit"
	domain "github.com/glowbookhq/stylist-scheduler/internal/domain/appointment"
	paymentdomain "github.com/glowbookhq/stylist-scheduler/internal/domain/payment"
	"github.com/glowbookhq/stylist-scheduler/internal/events"
	"github.com/glowbookhq/stylist-scheduler/internal/httperr"
	"github.com/glowbookhq/stylist-scheduler/internal/models"
)

// ConfirmAppointment is payment-triggered: it moves approved -> confirmed
// only once the verified total covers the appointment amount, and issues
// the completion code. The amount is frozen from here on.
type ConfirmAppointment struct {
	repo     domain.Repository
	payments paymentdomain.Repository
	events   *events.Dispatcher
	audit    *audit.Dispatcher
}

func NewConfirmAppointment(
	repo domain.Repository,
	payments paymentdomain.Repository,
	eventsD *events.Dispatcher,
	auditD *audit.Dispatcher,
) *ConfirmAppointment {
	return &ConfirmAppointment{
		repo:     repo,
		payments: payments,
		events:   eventsD,
		audit:    auditD,
	}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	verified, err := uc.payments.SumVerifiedAmount(ctx, ap.ID)
	if err != nil {
		return nil, err
	}
	if verified < ap.Amount {
		return nil, httperr.ErrBusiness(httperr.CodePaymentNotVerified)
	}

	previous := ap.Status
	if err := domain.Confirm(ap); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.events.Dispatch(events.AppointmentStatusUpdated(ap, previous))

	uc.audit.Dispatch(audit.Event{
		ActorRole: "system",
		Action:    "appointment_confirmed",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}
