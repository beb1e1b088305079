package appointment

import (
	"context"
	"time"

	"github.com/glowbookhq/stylist-scheduler/internal/audit"
	"github.com/glowbookhq/stylist-scheduler/internal/config"
	domain "github.com/glowbookhq/stylist-scheduler/internal/domain/appointment"
	"github.com/glowbookhq/stylist-scheduler/internal/events"
	"github.com/glowbookhq/stylist-scheduler/internal/models"
	"github.com/glowbookhq/stylist-scheduler/internal/timezone"
)

// EscalateAppointment is the admin dispute path: any non-terminal state
// parks in escalated until an explicit resolve.
type EscalateAppointment struct {
	repo   domain.Repository
	events *events.Dispatcher
	audit  *audit.Dispatcher
}

func NewEscalateAppointment(
	repo domain.Repository,
	eventsD *events.Dispatcher,
	auditD *audit.Dispatcher,
) *EscalateAppointment {
	return &EscalateAppointment{
		repo:   repo,
		events: eventsD,
		audit:  auditD,
	}
}

func (uc *EscalateAppointment) Execute(
	ctx context.Context,
	adminID uint,
	appointmentID uint,
	reason string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	previous := ap.Status
	if err := domain.Escalate(ap, reason); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.events.Dispatch(events.AppointmentStatusUpdated(ap, previous))

	uc.audit.Dispatch(audit.Event{
		ActorID:   &adminID,
		ActorRole: models.RoleAdmin,
		Action:    "appointment_escalated",
		Entity:    "appointment",
		EntityID:  &ap.ID,
		Metadata:  map[string]any{"reason": reason},
	})

	return ap, nil
}

// ResolveAppointment routes an escalated dispute to completed or
// cancelled.
type ResolveAppointment struct {
	repo   domain.Repository
	events *events.Dispatcher
	audit  *audit.Dispatcher

	now func() time.Time
}

func NewResolveAppointment(
	repo domain.Repository,
	eventsD *events.Dispatcher,
	auditD *audit.Dispatcher,
	cfg *config.Config,
) *ResolveAppointment {
	loc := timezone.Location(cfg.MarketTimezone)

	return &ResolveAppointment{
		repo:   repo,
		events: eventsD,
		audit:  auditD,
		now:    func() time.Time { return time.Now().In(loc) },
	}
}

func (uc *ResolveAppointment) Execute(
	ctx context.Context,
	adminID uint,
	appointmentID uint,
	outcome string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	previous := ap.Status
	if err := domain.Resolve(ap, domain.Status(outcome), uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.events.Dispatch(events.AppointmentStatusUpdated(ap, previous))

	uc.audit.Dispatch(audit.Event{
		ActorID:   &adminID,
		ActorRole: models.RoleAdmin,
		Action:    "appointment_resolved",
		Entity:    "appointment",
		EntityID:  &ap.ID,
		Metadata:  map[string]any{"outcome": outcome},
	})

	return ap, nil
}
