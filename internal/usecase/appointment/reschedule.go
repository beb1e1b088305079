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

// RescheduleAppointment atomically releases the old interval and
// re-validates the new one, re-entering pending. The release and
// re-acquire share one transaction so a concurrent create cannot
// interleave and strand the appointment.
type RescheduleAppointment struct {
	repo   domain.Repository
	events *events.Dispatcher
	audit  *audit.Dispatcher

	minAdvanceMinutes int
	loc               *time.Location
	now               func() time.Time
}

func NewRescheduleAppointment(
	repo domain.Repository,
	eventsD *events.Dispatcher,
	auditD *audit.Dispatcher,
	cfg *config.Config,
) *RescheduleAppointment {
	loc := timezone.Location(cfg.MarketTimezone)

	return &RescheduleAppointment{
		repo:              repo,
		events:            eventsD,
		audit:             auditD,
		minAdvanceMinutes: cfg.MinAdvanceMinutes,
		loc:               loc,
		now:               func() time.Time { return time.Now().In(loc) },
	}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	actorID uint,
	actorRole string,
	appointmentID uint,
	newDate string,
	newTime string,
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

	// Validates the current state allows rescheduling before any work.
	if err := domain.BeginReschedule(ap); err != nil {
		return nil, err
	}

	date, err := time.ParseInLocation("2006-01-02", newDate, uc.loc)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
	}

	iv, err := domain.IntervalFor(newTime, ap.Duration)
	if err != nil {
		return nil, err
	}

	start := date.Add(time.Duration(iv.StartMin) * time.Minute)
	if start.Before(uc.now().Add(time.Duration(uc.minAdvanceMinutes) * time.Minute)) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
	}

	day, err := uc.repo.GetDaySchedule(ctx, ap.StylistID, int(date.Weekday()))
	if err != nil {
		return nil, err
	}
	if !withinSchedule(day, iv) {
		return nil, httperr.ErrBusiness(httperr.CodeSchedulingConflict)
	}

	if err := uc.repo.RescheduleAppointment(
		ctx,
		ap,
		date,
		domain.FormatClock(iv.StartMin),
		iv.StartMin,
		iv.EndMin,
	); err != nil {
		return nil, err
	}

	uc.events.Dispatch(events.AppointmentStatusUpdated(ap, previous))

	uc.audit.Dispatch(audit.Event{
		ActorID:   &actorID,
		ActorRole: actorRole,
		Action:    "appointment_rescheduled",
		Entity:    "appointment",
		EntityID:  &ap.ID,
		Metadata: map[string]any{
			"date": newDate,
			"time": newTime,
		},
	})

	return ap, nil
}
