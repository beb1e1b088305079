package payment

import (
	"context"

	"github.com/glowbookhq/stylist-scheduler/internal/models"
)

type Repository interface {
	CreateVerification(
		ctx context.Context,
		v *models.PaymentVerification,
	) error

	GetVerification(
		ctx context.Context,
		verificationID uint,
	) (*models.PaymentVerification, error)

	UpdateVerification(
		ctx context.Context,
		v *models.PaymentVerification,
	) error

	// GetPendingVerification returns the oldest requested record for an
	// appointment (gateway callbacks resolve claims oldest-first).
	GetPendingVerification(
		ctx context.Context,
		appointmentID uint,
	) (*models.PaymentVerification, error)

	// SumVerifiedAmount totals verified records for an appointment; the
	// outstanding balance is the appointment amount minus this.
	SumVerifiedAmount(
		ctx context.Context,
		appointmentID uint,
	) (float64, error)

	ListVerificationsByStatus(
		ctx context.Context,
		status string,
	) ([]models.PaymentVerification, error)
}
