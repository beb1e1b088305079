package events

import (
	"fmt"
	"time"

	"github.com/glowbookhq/stylist-scheduler/internal/models"
)

const (
	EventAppointmentCreated           = "appointment.created"
	EventAppointmentStatusUpdated     = "appointment.status.updated"
	EventPaymentVerificationRequested = "payment.verification.requested"
	EventRewardsAppointmentCompleted  = "rewards.appointment.completed"
)

// Event is one lifecycle notification. Channels name the pub/sub scopes
// the payload fans out to; delivery is the notifier's problem, never the
// booking caller's.
type Event struct {
	Name     string   `json:"name"`
	Channels []string `json:"-"`
	Payload  any      `json:"payload"`
}

func appointmentChannel(id uint) string { return fmt.Sprintf("appointment:%d", id) }
func customerChannel(id uint) string    { return fmt.Sprintf("customer:%d", id) }
func stylistChannel(id uint) string     { return fmt.Sprintf("stylist:%d", id) }

const (
	AdminFeedChannel     = "admin:feed"
	AdminPaymentsChannel = "admin:payments"
)

// ===============================
// Payloads (wire contract)
// ===============================

type AppointmentCreatedPayload struct {
	AppointmentID   uint      `json:"appointment_id"`
	Status          string    `json:"status"`
	BookingID       string    `json:"booking_id"`
	AppointmentCode string    `json:"appointment_code"`
	CompletionCode  string    `json:"completion_code"`
	CustomerID      uint      `json:"customer_id"`
	StylistID       uint      `json:"stylist_id"`
	PortfolioID     uint      `json:"portfolio_id"`
	Amount          float64   `json:"amount"`
	CustomerName    string    `json:"customer_name"`
	StylistName     string    `json:"stylist_name"`
	PortfolioTitle  string    `json:"portfolio_title"`
	CreatedAt       time.Time `json:"created_at"`
}

type AppointmentStatusUpdatedPayload struct {
	AppointmentID   uint      `json:"appointment_id"`
	Status          string    `json:"status"`
	PreviousStatus  string    `json:"previous_status"`
	AppointmentCode string    `json:"appointment_code"`
	CompletionCode  string    `json:"completion_code"`
	CustomerID      uint      `json:"customer_id"`
	StylistID       uint      `json:"stylist_id"`
	PortfolioID     uint      `json:"portfolio_id"`
	Amount          float64   `json:"amount"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type PaymentVerificationRequestedPayload struct {
	AppointmentID    uint      `json:"appointment_id"`
	BookingID        string    `json:"booking_id"`
	CustomerID       uint      `json:"customer_id"`
	CustomerName     string    `json:"customer_name"`
	PaymentAmount    float64   `json:"payment_amount"`
	PaymentReference string    `json:"payment_reference"`
	StylistName      string    `json:"stylist_name"`
	PortfolioTitle   string    `json:"portfolio_title"`
	CreatedAt        time.Time `json:"created_at"`
}

// ===============================
// Constructors
// ===============================

func AppointmentCreated(ap *models.Appointment) Event {
	return Event{
		Name: EventAppointmentCreated,
		Channels: []string{
			appointmentChannel(ap.ID),
			customerChannel(ap.CustomerID),
			stylistChannel(ap.StylistID),
			AdminFeedChannel,
		},
		Payload: AppointmentCreatedPayload{
			AppointmentID:   ap.ID,
			Status:          ap.Status,
			BookingID:       ap.BookingID,
			AppointmentCode: ap.AppointmentCode,
			CompletionCode:  ap.CompletionCode,
			CustomerID:      ap.CustomerID,
			StylistID:       ap.StylistID,
			PortfolioID:     ap.PortfolioID,
			Amount:          ap.Amount,
			CustomerName:    ap.Customer.Name,
			StylistName:     ap.Stylist.Name,
			PortfolioTitle:  ap.Portfolio.Title,
			CreatedAt:       ap.CreatedAt,
		},
	}
}

func AppointmentStatusUpdated(ap *models.Appointment, previous string) Event {
	return Event{
		Name: EventAppointmentStatusUpdated,
		Channels: []string{
			appointmentChannel(ap.ID),
			customerChannel(ap.CustomerID),
			stylistChannel(ap.StylistID),
		},
		Payload: AppointmentStatusUpdatedPayload{
			AppointmentID:   ap.ID,
			Status:          ap.Status,
			PreviousStatus:  previous,
			AppointmentCode: ap.AppointmentCode,
			CompletionCode:  ap.CompletionCode,
			CustomerID:      ap.CustomerID,
			StylistID:       ap.StylistID,
			PortfolioID:     ap.PortfolioID,
			Amount:          ap.Amount,
			UpdatedAt:       ap.UpdatedAt,
		},
	}
}

func PaymentVerificationRequested(ap *models.Appointment, v *models.PaymentVerification) Event {
	return Event{
		Name: EventPaymentVerificationRequested,
		Channels: []string{
			AdminPaymentsChannel,
			appointmentChannel(ap.ID),
		},
		Payload: PaymentVerificationRequestedPayload{
			AppointmentID:    ap.ID,
			BookingID:        ap.BookingID,
			CustomerID:       ap.CustomerID,
			CustomerName:     ap.Customer.Name,
			PaymentAmount:    v.RequestedAmount,
			PaymentReference: v.Reference,
			StylistName:      ap.Stylist.Name,
			PortfolioTitle:   ap.Portfolio.Title,
			CreatedAt:        v.CreatedAt,
		},
	}
}
