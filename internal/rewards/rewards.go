package rewards

import (
	"context"
	"time"

	"github.com/glowbookhq/stylist-scheduler/internal/events"
	"github.com/glowbookhq/stylist-scheduler/internal/models"
)

// Hook is fired once per completed appointment. Point accrual lives in the
// rewards service; the engine only announces the completion.
type Hook interface {
	AppointmentCompleted(ctx context.Context, ap *models.Appointment)
}

type CompletedPayload struct {
	AppointmentID uint      `json:"appointment_id"`
	CustomerID    uint      `json:"customer_id"`
	StylistID     uint      `json:"stylist_id"`
	Amount        float64   `json:"amount"`
	CompletedAt   time.Time `json:"completed_at"`
}

// DispatcherHook publishes the completion onto the event stream.
type DispatcherHook struct {
	dispatcher *events.Dispatcher
}

func NewDispatcherHook(dispatcher *events.Dispatcher) *DispatcherHook {
	return &DispatcherHook{dispatcher: dispatcher}
}

func (h *DispatcherHook) AppointmentCompleted(ctx context.Context, ap *models.Appointment) {
	completedAt := time.Now()
	if ap.CompletedAt != nil {
		completedAt = *ap.CompletedAt
	}

	h.dispatcher.Dispatch(events.Event{
		Name:     events.EventRewardsAppointmentCompleted,
		Channels: []string{events.AdminFeedChannel},
		Payload: CompletedPayload{
			AppointmentID: ap.ID,
			CustomerID:    ap.CustomerID,
			StylistID:     ap.StylistID,
			Amount:        ap.Amount,
			CompletedAt:   completedAt,
		},
	})
}

var _ Hook = (*DispatcherHook)(nil)
