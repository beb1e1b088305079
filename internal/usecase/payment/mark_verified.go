package payment

import (
	"context"
	"time"

	"github.com/glowbookhq/stylist-scheduler/internal/audit"
	domain "github.com/glowbookhq/stylist-scheduler/internal/domain/payment"
	"github.com/glowbookhq/stylist-scheduler/internal/httperr"
	"github.com/glowbookhq/stylist-scheduler/internal/models"
	ucappointment "github.com/glowbookhq/stylist-scheduler/internal/usecase/appointment"
)

// MarkVerified resolves a verification positively and bumps the
// appointment to confirmed. Gateways redeliver callbacks, so a duplicate
// call on an already-verified record is a no-op, never an error.
type MarkVerified struct {
	payments domain.Repository
	confirm  *ucappointment.ConfirmAppointment
	audit    *audit.Dispatcher
}

func NewMarkVerified(
	payments domain.Repository,
	confirm *ucappointment.ConfirmAppointment,
	auditD *audit.Dispatcher,
) *MarkVerified {
	return &MarkVerified{
		payments: payments,
		confirm:  confirm,
		audit:    auditD,
	}
}

// ExecuteForAppointment resolves the appointment's oldest pending claim;
// used by the gateway callback, which only knows the booking.
func (uc *MarkVerified) ExecuteForAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.PaymentVerification, error) {

	v, err := uc.payments.GetPendingVerification(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	return uc.Execute(ctx, nil, v.ID)
}

func (uc *MarkVerified) Execute(
	ctx context.Context,
	actorID *uint,
	verificationID uint,
) (*models.PaymentVerification, error) {

	v, err := uc.payments.GetVerification(ctx, verificationID)
	if err != nil {
		return nil, err
	}

	switch v.Status {
	case models.VerificationVerified:
		// duplicate callback
		return v, nil
	case models.VerificationRejected:
		return nil, httperr.ErrBusiness(httperr.CodeInvalidTransition)
	}

	now := time.Now()
	v.Status = models.VerificationVerified
	v.ResolvedAt = &now

	if err := uc.payments.UpdateVerification(ctx, v); err != nil {
		return nil, err
	}

	if _, err := uc.confirm.Execute(ctx, v.AppointmentID); err != nil {
		// The verification stands even if the appointment has since moved
		// out of approved (e.g. cancelled); the caller learns why.
		return v, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:   actorID,
		ActorRole: models.RoleAdmin,
		Action:    "payment_verified",
		Entity:    "payment_verification",
		EntityID:  &v.ID,
	})

	return v, nil
}
