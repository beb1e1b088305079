package appointment

import (
	"context"

	"github.com/glowbookhq/stylist-scheduler/internal/audit"
	domain "github.com/glowbookhq/stylist-scheduler/internal/domain/appointment"
	"github.com/glowbookhq/stylist-scheduler/internal/events"
	"github.com/glowbookhq/stylist-scheduler/internal/httperr"
	"github.com/glowbookhq/stylist-scheduler/internal/models"
)

type ApproveAppointment struct {
	repo   domain.Repository
	events *events.Dispatcher
	audit  *audit.Dispatcher
}

func NewApproveAppointment(
	repo domain.Repository,
	eventsD *events.Dispatcher,
	auditD *audit.Dispatcher,
) *ApproveAppointment {
	return &ApproveAppointment{
		repo:   repo,
		events: eventsD,
		audit:  auditD,
	}
}

func (uc *ApproveAppointment) Execute(
	ctx context.Context,
	stylistID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if ap.StylistID != stylistID {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	previous := ap.Status
	if err := domain.Approve(ap); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.events.Dispatch(events.AppointmentStatusUpdated(ap, previous))

	uc.audit.Dispatch(audit.Event{
		ActorID:   &stylistID,
		ActorRole: models.RoleStylist,
		Action:    "appointment_approved",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}
