package appointment

import (
	"time"

	"github.com/glowbookhq/stylist-scheduler/internal/httperr"
	"github.com/glowbookhq/stylist-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Approve moves pending -> approved and issues the appointment code.
func Approve(ap *models.Appointment) error {
	if err := CanTransition(Status(ap.Status), StatusApproved); err != nil {
		return err
	}
	ap.Status = string(StatusApproved)
	ap.AppointmentCode = NewCode()
	return nil
}

// Confirm moves approved -> confirmed and issues the completion code.
// Payment verification is the caller's responsibility.
func Confirm(ap *models.Appointment) error {
	if err := CanTransition(Status(ap.Status), StatusConfirmed); err != nil {
		return err
	}
	ap.Status = string(StatusConfirmed)
	ap.CompletionCode = NewCode()
	return nil
}

// Complete validates the supplied completion code and moves
// confirmed -> completed. A wrong code leaves the appointment untouched so
// the caller may retry; an already-consumed code is an invalid transition.
func Complete(ap *models.Appointment, suppliedCode string, now time.Time) error {
	if err := CanTransition(Status(ap.Status), StatusCompleted); err != nil {
		return err
	}
	if ap.CompletionCodeUsed {
		return httperr.ErrBusiness(httperr.CodeInvalidTransition)
	}
	if !CodeMatches(ap.CompletionCode, suppliedCode) {
		return httperr.ErrBusiness(httperr.CodeInvalidCompletionCode)
	}

	ap.Status = string(StatusCompleted)
	ap.CompletionCodeUsed = true
	ap.CompletedAt = &now
	return nil
}

func Cancel(ap *models.Appointment, reason string, now time.Time) error {
	if err := CanTransition(Status(ap.Status), StatusCancelled); err != nil {
		return err
	}
	ap.Status = string(StatusCancelled)
	ap.CancelReason = reason
	ap.CancelledAt = &now
	return nil
}

// BeginReschedule releases the held interval; the use case re-validates the
// new slot and re-enters pending inside the same transaction.
func BeginReschedule(ap *models.Appointment) error {
	if err := CanTransition(Status(ap.Status), StatusRescheduled); err != nil {
		return err
	}
	ap.Status = string(StatusRescheduled)
	return nil
}

func Escalate(ap *models.Appointment, reason string) error {
	if err := CanEscalate(Status(ap.Status)); err != nil {
		return err
	}
	ap.Status = string(StatusEscalated)
	ap.EscalateReason = reason
	return nil
}

// Resolve routes an escalated appointment to its admin-chosen outcome.
func Resolve(ap *models.Appointment, outcome Status, now time.Time) error {
	if outcome != StatusCompleted && outcome != StatusCancelled {
		return httperr.ErrBusiness(httperr.CodeInvalidTransition)
	}
	if err := CanTransition(Status(ap.Status), outcome); err != nil {
		return err
	}
	ap.Status = string(outcome)
	switch outcome {
	case StatusCompleted:
		ap.CompletedAt = &now
	case StatusCancelled:
		ap.CancelledAt = &now
	}
	return nil
}
