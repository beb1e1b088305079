package appointment

import (
	"context"
	"time"

	"github.com/glowbookhq/stylist-scheduler/internal/audit"
	"github.com/glowbookhq/stylist-scheduler/internal/config"
	domain "github.com/glowbookhq/stylist-scheduler/internal/domain/appointment"
	"github.com/glowbookhq/stylist-scheduler/internal/events"
	"github.com/glowbookhq/stylist-scheduler/internal/httperr"
	"github.com/glowbookhq/stylist-scheduler/internal/models"
	"github.com/glowbookhq/stylist-scheduler/internal/timezone"
)

type CancelAppointment struct {
	repo   domain.Repository
	events *events.Dispatcher
	audit  *audit.Dispatcher

	now func() time.Time
}

func NewCancelAppointment(
	repo domain.Repository,
	eventsD *events.Dispatcher,
	auditD *audit.Dispatcher,
	cfg *config.Config,
) *CancelAppointment {
	loc := timezone.Location(cfg.MarketTimezone)

	return &CancelAppointment{
		repo:   repo,
		events: eventsD,
		audit:  auditD,
		now:    func() time.Time { return time.Now().In(loc) },
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actorID uint,
	actorRole string,
	appointmentID uint,
	reason string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if actorRole != models.RoleAdmin &&
		ap.CustomerID != actorID && ap.StylistID != actorID {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	previous := ap.Status
	if err := domain.Cancel(ap, reason, uc.now()); err != nil {
		return nil, err
	}

	// The held interval is released by leaving the active status set.
	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.events.Dispatch(events.AppointmentStatusUpdated(ap, previous))

	uc.audit.Dispatch(audit.Event{
		ActorID:   &actorID,
		ActorRole: actorRole,
		Action:    "appointment_cancelled",
		Entity:    "appointment",
		EntityID:  &ap.ID,
		Metadata:  map[string]any{"reason": reason},
	})

	return ap, nil
}
