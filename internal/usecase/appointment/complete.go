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
	"github.com/glowbookhq/stylist-scheduler/internal/rewards"
	"github.com/glowbookhq/stylist-scheduler/internal/timezone"
)

// CompleteAppointment consumes the completion code exchanged at point of
// service. Either party may supply it; success releases escrow and fires
// the rewards hook. A wrong code is recoverable and does not consume the
// code; lockout policy belongs to the caller.
type CompleteAppointment struct {
	repo    domain.Repository
	events  *events.Dispatcher
	audit   *audit.Dispatcher
	rewards rewards.Hook

	now func() time.Time
}

func NewCompleteAppointment(
	repo domain.Repository,
	eventsD *events.Dispatcher,
	auditD *audit.Dispatcher,
	rewardsHook rewards.Hook,
	cfg *config.Config,
) *CompleteAppointment {
	loc := timezone.Location(cfg.MarketTimezone)

	return &CompleteAppointment{
		repo:    repo,
		events:  eventsD,
		audit:   auditD,
		rewards: rewardsHook,
		now:     func() time.Time { return time.Now().In(loc) },
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	actorID uint,
	actorRole string,
	appointmentID uint,
	suppliedCode string,
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
	if err := domain.Complete(ap, suppliedCode, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.events.Dispatch(events.AppointmentStatusUpdated(ap, previous))

	// escrow released; rewards accrual happens downstream
	uc.rewards.AppointmentCompleted(ctx, ap)

	uc.audit.Dispatch(audit.Event{
		ActorID:   &actorID,
		ActorRole: actorRole,
		Action:    "appointment_completed",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}
