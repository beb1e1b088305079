package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/glowbookhq/stylist-scheduler/internal/domain/appointment"
	"github.com/glowbookhq/stylist-scheduler/internal/httperr"
	"github.com/glowbookhq/stylist-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Users / Portfolio
// --------------------------------------------------

func (r *AppointmentGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return &user, nil
}

func (r *AppointmentGormRepository) GetPortfolio(
	ctx context.Context,
	portfolioID uint,
) (*models.Portfolio, error) {

	var p models.Portfolio
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = true", portfolioID).
		First(&p).Error; err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return &p, nil
}

// --------------------------------------------------
// Schedule (read side)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetDaySchedule(
	ctx context.Context,
	stylistID uint,
	weekday int,
) (*models.StylistSchedule, error) {

	var day models.StylistSchedule
	if err := r.db.WithContext(ctx).
		Preload("Slots", func(db *gorm.DB) *gorm.DB {
			return db.Order("schedule_time_slots.from ASC")
		}).
		Where("stylist_id = ? AND weekday = ?", stylistID, weekday).
		First(&day).Error; err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	return &day, nil
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

// slotLockKey names the advisory lock for one stylist's day. Every
// transaction that inserts or moves an interval on that day hashes the
// same key.
func slotLockKey(stylistID uint, date time.Time) string {
	return fmt.Sprintf("appointments:%d:%s", stylistID, date.Format("2006-01-02"))
}

// lockSlotDay takes a transaction-scoped advisory lock on the stylist's
// day. FOR UPDATE alone cannot serialize two creates into a free slot:
// with no existing row to lock, neither transaction waits on the other
// and both insert. The advisory lock makes the check-then-insert below
// a critical section; it releases on commit or rollback.
func lockSlotDay(tx *gorm.DB, stylistID uint, date time.Time) error {
	return tx.Exec(
		`SELECT pg_advisory_xact_lock(hashtext(?))`,
		slotLockKey(stylistID, date),
	).Error
}

// lockConflicts counts the stylist's blocking rows overlapping the
// interval, FOR UPDATE. Callers hold the day's advisory lock, so the
// count cannot race a concurrent insert.
func lockConflicts(
	tx *gorm.DB,
	stylistID uint,
	date time.Time,
	startMin int,
	endMin int,
	excludeID uint,
) error {

	q := tx.
		Model(&models.Appointment{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"stylist_id = ? AND appointment_date = ? AND status IN ? AND start_minute < ? AND end_minute > ?",
			stylistID,
			date.Format("2006-01-02"),
			domain.BlockingStatuses,
			endMin,
			startMin,
		)

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return httperr.ErrBusiness(httperr.CodeSchedulingConflict)
	}
	return nil
}

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockSlotDay(tx, ap.StylistID, ap.AppointmentDate); err != nil {
			return err
		}

		if err := lockConflicts(
			tx,
			ap.StylistID,
			ap.AppointmentDate,
			ap.StartMinute,
			ap.EndMinute,
			0,
		); err != nil {
			return err
		}

		return tx.Create(ap).Error
	})

	if httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness(httperr.CodeSchedulingConflict)
	}
	return err
}

func (r *AppointmentGormRepository) RescheduleAppointment(
	ctx context.Context,
	ap *models.Appointment,
	newDate time.Time,
	newTime string,
	startMin int,
	endMin int,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Release and re-acquire inside one transaction: a concurrent
		// create against the target day serializes on the same advisory
		// lock.
		if err := lockSlotDay(tx, ap.StylistID, newDate); err != nil {
			return err
		}

		if err := lockConflicts(
			tx,
			ap.StylistID,
			newDate,
			startMin,
			endMin,
			ap.ID,
		); err != nil {
			return err
		}

		ap.Status = string(domain.StatusPending)
		ap.AppointmentDate = newDate
		ap.AppointmentTime = newTime
		ap.StartMinute = startMin
		ap.EndMinute = endMin

		return tx.Save(ap).Error
	})

	if httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness(httperr.CodeSchedulingConflict)
	}
	return err
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Stylist").
		Preload("Portfolio").
		First(&ap, appointmentID).Error; err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentByBookingID(
	ctx context.Context,
	bookingID string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Stylist").
		Preload("Portfolio").
		Where("booking_id = ?", bookingID).
		First(&ap).Error; err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	err := r.db.WithContext(ctx).Save(ap).Error

	// The exclusion constraint also fires on status bumps into an
	// occupied interval.
	if httperr.IsExclusionConflict(err) {
		return httperr.ErrBusiness(httperr.CodeSchedulingConflict)
	}
	return err
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListActiveAppointmentsForDate(
	ctx context.Context,
	stylistID uint,
	date time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("id", "appointment_time", "duration", "start_minute", "end_minute", "status").
		Where(
			"stylist_id = ? AND appointment_date = ? AND status IN ?",
			stylistID,
			date.Format("2006-01-02"),
			domain.ActiveStatuses,
		).
		Order("start_minute ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	stylistID *uint,
	customerID *uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Stylist").
		Preload("Portfolio").
		Where(
			"appointment_date >= ? AND appointment_date < ?",
			start.Format("2006-01-02"),
			end.Format("2006-01-02"),
		)

	if stylistID != nil {
		q = q.Where("stylist_id = ?", *stylistID)
	}
	if customerID != nil {
		q = q.Where("customer_id = ?", *customerID)
	}

	var apps []models.Appointment
	if err := q.
		Order("appointment_date ASC, start_minute ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
