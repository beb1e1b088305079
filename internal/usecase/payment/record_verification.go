package payment

import (
	"context"
	"fmt"
	"math"

	"github.com/glowbookhq/stylist-scheduler/internal/audit"
	appointmentdomain "github.com/glowbookhq/stylist-scheduler/internal/domain/appointment"
	domain "github.com/glowbookhq/stylist-scheduler/internal/domain/payment"
	"github.com/glowbookhq/stylist-scheduler/internal/events"
	"github.com/glowbookhq/stylist-scheduler/internal/httperr"
	"github.com/glowbookhq/stylist-scheduler/internal/models"
)

// RecordVerificationRequest files a customer's out-of-band payment claim
// for admin/gateway resolution. The claimed amount must match the
// appointment's outstanding balance exactly.
type RecordVerificationRequest struct {
	payments     domain.Repository
	appointments appointmentdomain.Repository
	events       *events.Dispatcher
	audit        *audit.Dispatcher
}

func NewRecordVerificationRequest(
	payments domain.Repository,
	appointments appointmentdomain.Repository,
	eventsD *events.Dispatcher,
	auditD *audit.Dispatcher,
) *RecordVerificationRequest {
	return &RecordVerificationRequest{
		payments:     payments,
		appointments: appointments,
		events:       eventsD,
		audit:        auditD,
	}
}

func (uc *RecordVerificationRequest) Execute(
	ctx context.Context,
	customerID uint,
	appointmentID uint,
	amount float64,
	reference string,
) (*models.PaymentVerification, error) {

	ap, err := uc.appointments.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if ap.CustomerID != customerID {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	// Claims only make sense while the appointment awaits confirmation.
	if ap.Status != string(appointmentdomain.StatusApproved) {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidTransition)
	}

	verified, err := uc.payments.SumVerifiedAmount(ctx, ap.ID)
	if err != nil {
		return nil, err
	}

	outstanding := ap.Amount - verified
	if math.Abs(amount-outstanding) >= 0.005 {
		return nil, httperr.ErrBusinessf(
			httperr.CodePaymentMismatch,
			fmt.Sprintf("expected %.2f, got %.2f", outstanding, amount),
		)
	}

	v := &models.PaymentVerification{
		AppointmentID:   ap.ID,
		Reference:       reference,
		RequestedAmount: amount,
		Status:          models.VerificationRequested,
	}

	if err := uc.payments.CreateVerification(ctx, v); err != nil {
		return nil, err
	}

	uc.events.Dispatch(events.PaymentVerificationRequested(ap, v))

	uc.audit.Dispatch(audit.Event{
		ActorID:   &customerID,
		ActorRole: models.RoleCustomer,
		Action:    "payment_verification_requested",
		Entity:    "payment_verification",
		EntityID:  &v.ID,
		Metadata: map[string]any{
			"appointment_id": ap.ID,
			"amount":         amount,
			"reference":      reference,
		},
	})

	return v, nil
}
