package appointment

import "github.com/glowbookhq/stylist-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending     Status = "pending"
	StatusApproved    Status = "approved"
	StatusConfirmed   Status = "confirmed"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
	StatusRescheduled Status = "rescheduled"
	StatusEscalated   Status = "escalated"
)

// ActiveStatuses are the states that hold a stylist's interval for
// availability purposes.
var ActiveStatuses = []string{
	string(StatusApproved),
	string(StatusConfirmed),
}

// BlockingStatuses are the states the create-time re-check treats as
// occupying the interval. A pending request reserves the slot until the
// stylist declines it, so two concurrent bookings cannot both land.
var BlockingStatuses = []string{
	string(StatusPending),
	string(StatusApproved),
	string(StatusConfirmed),
}

func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ===============================
// Transition table
// ===============================

var transitions = map[Status][]Status{
	StatusPending:     {StatusApproved, StatusCancelled, StatusEscalated},
	StatusApproved:    {StatusConfirmed, StatusCancelled, StatusRescheduled, StatusEscalated},
	StatusConfirmed:   {StatusCompleted, StatusRescheduled, StatusEscalated},
	StatusRescheduled: {StatusPending, StatusEscalated},
	StatusEscalated:   {StatusCompleted, StatusCancelled},
}

// CanTransition validates a single state-machine edge. Every lifecycle use
// case funnels through this table.
func CanTransition(from, to Status) error {
	for _, next := range transitions[from] {
		if next == to {
			return nil
		}
	}
	return httperr.ErrBusiness(httperr.CodeInvalidTransition)
}

func CanEscalate(current Status) error {
	if IsTerminal(current) {
		return httperr.ErrBusiness(httperr.CodeInvalidTransition)
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
