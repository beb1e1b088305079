package payment

import (
	"context"
	"time"

	"github.com/glowbookhq/stylist-scheduler/internal/audit"
	domain "github.com/glowbookhq/stylist-scheduler/internal/domain/payment"
	"github.com/glowbookhq/stylist-scheduler/internal/httperr"
	"github.com/glowbookhq/stylist-scheduler/internal/models"
)

// MarkRejected resolves a verification negatively. The appointment stays
// approved; the customer may file a new claim or either side may cancel.
type MarkRejected struct {
	payments domain.Repository
	audit    *audit.Dispatcher
}

func NewMarkRejected(
	payments domain.Repository,
	auditD *audit.Dispatcher,
) *MarkRejected {
	return &MarkRejected{
		payments: payments,
		audit:    auditD,
	}
}

func (uc *MarkRejected) Execute(
	ctx context.Context,
	actorID *uint,
	verificationID uint,
	reason string,
) (*models.PaymentVerification, error) {

	v, err := uc.payments.GetVerification(ctx, verificationID)
	if err != nil {
		return nil, err
	}

	if v.Status != models.VerificationRequested {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidTransition)
	}

	now := time.Now()
	v.Status = models.VerificationRejected
	v.RejectReason = reason
	v.ResolvedAt = &now

	if err := uc.payments.UpdateVerification(ctx, v); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:   actorID,
		ActorRole: models.RoleAdmin,
		Action:    "payment_rejected",
		Entity:    "payment_verification",
		EntityID:  &v.ID,
		Metadata:  map[string]any{"reason": reason},
	})

	return v, nil
}
