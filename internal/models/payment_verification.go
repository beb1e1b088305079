package models

import "time"

const (
	VerificationRequested = "requested"
	VerificationVerified  = "verified"
	VerificationRejected  = "rejected"
)

// PaymentVerification records a customer's claim of an out-of-band payment.
// It is resolved exactly once by an admin or a gateway callback.
type PaymentVerification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint        `gorm:"index" json:"appointment_id"`
	Appointment   Appointment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"appointment"`

	Reference       string  `gorm:"size:100" json:"reference"`
	RequestedAmount float64 `gorm:"type:decimal(10,2)" json:"requested_amount"`

	Status       string `gorm:"size:20;default:'requested'" json:"status"`
	RejectReason string `gorm:"size:255" json:"reject_reason,omitempty"`

	ResolvedAt *time.Time `json:"resolved_at"`
	CreatedAt  time.Time  `json:"created_at"`
}
