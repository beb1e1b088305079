package schedule

import (
	"context"

	"github.com/glowbookhq/stylist-scheduler/internal/audit"
	domain "github.com/glowbookhq/stylist-scheduler/internal/domain/schedule"
	"github.com/glowbookhq/stylist-scheduler/internal/httperr"
	"github.com/glowbookhq/stylist-scheduler/internal/models"
)

type ManageSchedule struct {
	store domain.Store
	audit *audit.Dispatcher
}

func NewManageSchedule(store domain.Store, auditD *audit.Dispatcher) *ManageSchedule {
	return &ManageSchedule{store: store, audit: auditD}
}

func (uc *ManageSchedule) Get(
	ctx context.Context,
	stylistID uint,
) ([]models.StylistSchedule, error) {
	return uc.store.GetSchedule(ctx, stylistID)
}

// SetDay replaces one weekday's availability; slot input is validated for
// order and overlap before anything touches storage.
func (uc *ManageSchedule) SetDay(
	ctx context.Context,
	stylistID uint,
	weekday int,
	available bool,
	slots []domain.SlotInput,
) (*models.StylistSchedule, error) {

	if weekday < 0 || weekday > 6 {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidSlotRange)
	}

	validated, err := domain.ValidateSlots(slots)
	if err != nil {
		return nil, err
	}

	day, err := uc.store.SetDaySchedule(ctx, stylistID, weekday, available, validated)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:   &stylistID,
		ActorRole: models.RoleStylist,
		Action:    "schedule_updated",
		Entity:    "stylist_schedule",
		EntityID:  &day.ID,
		Metadata: map[string]any{
			"weekday":   weekday,
			"available": available,
			"slots":     len(validated),
		},
	})

	return day, nil
}
