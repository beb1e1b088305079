package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/glowbookhq/stylist-scheduler/internal/audit"
	"github.com/glowbookhq/stylist-scheduler/internal/config"
	domain "github.com/glowbookhq/stylist-scheduler/internal/domain/appointment"
	"github.com/glowbookhq/stylist-scheduler/internal/events"
	"github.com/glowbookhq/stylist-scheduler/internal/httperr"
	"github.com/glowbookhq/stylist-scheduler/internal/models"
	"github.com/glowbookhq/stylist-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	CustomerID  uint
	StylistID   uint
	PortfolioID uint

	Date string // YYYY-MM-DD
	Time string // HH:mm

	ExtraNotes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo   domain.Repository
	events *events.Dispatcher
	audit  *audit.Dispatcher

	minAdvanceMinutes int
	loc               *time.Location
	now               func() time.Time
}

func NewCreateAppointment(
	repo domain.Repository,
	eventsD *events.Dispatcher,
	auditD *audit.Dispatcher,
	cfg *config.Config,
) *CreateAppointment {
	loc := timezone.Location(cfg.MarketTimezone)

	return &CreateAppointment{
		repo:              repo,
		events:            eventsD,
		audit:             auditD,
		minAdvanceMinutes: cfg.MinAdvanceMinutes,
		loc:               loc,
		now:               func() time.Time { return time.Now().In(loc) },
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	customer, err := uc.repo.GetUserByID(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}

	stylist, err := uc.repo.GetUserByID(ctx, in.StylistID)
	if err != nil {
		return nil, err
	}
	if stylist.Role != models.RoleStylist {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	portfolio, err := uc.repo.GetPortfolio(ctx, in.PortfolioID)
	if err != nil {
		return nil, err
	}
	if portfolio.StylistID != in.StylistID {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	date, err := time.ParseInLocation("2006-01-02", in.Date, uc.loc)
	if err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
	}

	iv, err := domain.IntervalFor(in.Time, portfolio.Duration)
	if err != nil {
		return nil, err
	}

	// No booking in the past (plus the marketplace's advance window).
	start := date.Add(time.Duration(iv.StartMin) * time.Minute)
	if start.Before(uc.now().Add(time.Duration(uc.minAdvanceMinutes) * time.Minute)) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
	}

	day, err := uc.repo.GetDaySchedule(ctx, in.StylistID, int(date.Weekday()))
	if err != nil {
		return nil, err
	}
	if !withinSchedule(day, iv) {
		return nil, httperr.ErrBusiness(httperr.CodeSchedulingConflict)
	}

	ap := &models.Appointment{
		BookingID:       uuid.NewString(),
		CustomerID:      in.CustomerID,
		StylistID:       in.StylistID,
		PortfolioID:     in.PortfolioID,
		Status:          string(domain.InitialStatus()),
		AppointmentDate: date,
		AppointmentTime: domain.FormatClock(iv.StartMin),
		Duration:        portfolio.Duration,
		StartMinute:     iv.StartMin,
		EndMinute:       iv.EndMin,
		Amount:          portfolio.Price,
		ExtraNotes:      in.ExtraNotes,
	}

	// Authoritative conflict re-check happens inside the insert
	// transaction; a losing concurrent writer surfaces here.
	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	ap.Customer = *customer
	ap.Stylist = *stylist
	ap.Portfolio = *portfolio

	uc.events.Dispatch(events.AppointmentCreated(ap))

	uc.audit.Dispatch(audit.Event{
		ActorID:   &in.CustomerID,
		ActorRole: models.RoleCustomer,
		Action:    "appointment_created",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}

// withinSchedule reports whether the requested interval fits inside one of
// the day's configured slots on an available day.
func withinSchedule(day *models.StylistSchedule, iv domain.Interval) bool {
	if day == nil || !day.Available {
		return false
	}

	for _, s := range day.Slots {
		from, err := domain.ParseClock(s.From)
		if err != nil {
			continue
		}
		to, err := domain.ParseClock(s.To)
		if err != nil {
			continue
		}
		if iv.StartMin >= from && iv.EndMin <= to {
			return true
		}
	}
	return false
}
