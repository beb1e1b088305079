package appointment

import (
	"context"
	"time"

	"github.com/glowbookhq/stylist-scheduler/internal/models"
)

type Repository interface {
	// -------- Users --------
	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Portfolio --------
	GetPortfolio(
		ctx context.Context,
		portfolioID uint,
	) (*models.Portfolio, error)

	// -------- Schedule (read side) --------
	GetDaySchedule(
		ctx context.Context,
		stylistID uint,
		weekday int,
	) (*models.StylistSchedule, error)

	// -------- Appointment (create / conflict) --------

	// CreateAppointment re-checks the interval FOR UPDATE and inserts in
	// one transaction; a losing concurrent writer gets
	// scheduling_conflict.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// RescheduleAppointment releases the old interval and validates-then-
	// acquires the new one atomically.
	RescheduleAppointment(
		ctx context.Context,
		ap *models.Appointment,
		newDate time.Time,
		newTime string,
		startMin int,
		endMin int,
	) error

	// -------- Appointment (state change) --------
	GetAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	GetAppointmentByBookingID(
		ctx context.Context,
		bookingID string,
	) (*models.Appointment, error)

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Availability --------
	ListActiveAppointmentsForDate(
		ctx context.Context,
		stylistID uint,
		date time.Time,
	) ([]models.Appointment, error)

	ListAppointmentsForPeriod(
		ctx context.Context,
		stylistID *uint,
		customerID *uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)
}
