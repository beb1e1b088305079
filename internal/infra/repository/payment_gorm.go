package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/glowbookhq/stylist-scheduler/internal/domain/payment"
	"github.com/glowbookhq/stylist-scheduler/internal/httperr"
	"github.com/glowbookhq/stylist-scheduler/internal/models"
)

type PaymentGormRepository struct {
	db *gorm.DB
}

func NewPaymentGormRepository(db *gorm.DB) *PaymentGormRepository {
	return &PaymentGormRepository{db: db}
}

func (r *PaymentGormRepository) CreateVerification(
	ctx context.Context,
	v *models.PaymentVerification,
) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *PaymentGormRepository) GetVerification(
	ctx context.Context,
	verificationID uint,
) (*models.PaymentVerification, error) {

	var v models.PaymentVerification
	if err := r.db.WithContext(ctx).
		First(&v, verificationID).Error; err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	return &v, nil
}

func (r *PaymentGormRepository) UpdateVerification(
	ctx context.Context,
	v *models.PaymentVerification,
) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *PaymentGormRepository) GetPendingVerification(
	ctx context.Context,
	appointmentID uint,
) (*models.PaymentVerification, error) {

	var v models.PaymentVerification
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ? AND status = ?", appointmentID, models.VerificationRequested).
		Order("created_at ASC").
		First(&v).Error; err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	return &v, nil
}

func (r *PaymentGormRepository) SumVerifiedAmount(
	ctx context.Context,
	appointmentID uint,
) (float64, error) {

	var total float64
	if err := r.db.WithContext(ctx).
		Model(&models.PaymentVerification{}).
		Where("appointment_id = ? AND status = ?", appointmentID, models.VerificationVerified).
		Select("COALESCE(SUM(requested_amount), 0)").
		Scan(&total).Error; err != nil {
		return 0, err
	}

	return total, nil
}

func (r *PaymentGormRepository) ListVerificationsByStatus(
	ctx context.Context,
	status string,
) ([]models.PaymentVerification, error) {

	var out []models.PaymentVerification
	if err := r.db.WithContext(ctx).
		Preload("Appointment").
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}

	return out, nil
}

// Compile-time check
var _ domain.Repository = (*PaymentGormRepository)(nil)
