package schedule

import (
	"context"

	"github.com/glowbookhq/stylist-scheduler/internal/httperr"
	"github.com/glowbookhq/stylist-scheduler/internal/models"

	domain "github.com/glowbookhq/stylist-scheduler/internal/domain/appointment"
)

// SlotInput is one HH:MM range submitted by the owning stylist.
type SlotInput struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

// Store owns the seven recurring weekday rows per stylist.
type Store interface {
	GetSchedule(
		ctx context.Context,
		stylistID uint,
	) ([]models.StylistSchedule, error)

	SetDaySchedule(
		ctx context.Context,
		stylistID uint,
		weekday int,
		available bool,
		slots []models.ScheduleTimeSlot,
	) (*models.StylistSchedule, error)

	// SeedWeek creates the seven unavailable rows at stylist registration.
	SeedWeek(
		ctx context.Context,
		stylistID uint,
	) error
}

// ValidateSlots enforces the day-schedule input contract: every range has
// From < To and ranges are sorted and non-overlapping.
func ValidateSlots(slots []SlotInput) ([]models.ScheduleTimeSlot, error) {
	out := make([]models.ScheduleTimeSlot, 0, len(slots))

	prevEnd := -1
	for _, s := range slots {
		from, err := domain.ParseClock(s.From)
		if err != nil {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidSlotRange)
		}
		to, err := domain.ParseClock(s.To)
		if err != nil {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidSlotRange)
		}

		if from >= to {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidSlotRange)
		}
		if from < prevEnd {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidSlotRange)
		}
		prevEnd = to

		out = append(out, models.ScheduleTimeSlot{
			From: domain.FormatClock(from),
			To:   domain.FormatClock(to),
		})
	}

	return out, nil
}
