package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID string `gorm:"size:36;uniqueIndex;not null" json:"booking_id"`

	CustomerID uint `gorm:"index" json:"customer_id"`
	Customer   User `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	StylistID uint `gorm:"index" json:"stylist_id"`
	Stylist   User `gorm:"foreignKey:StylistID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"stylist"`

	PortfolioID uint      `json:"portfolio_id"`
	Portfolio   Portfolio `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"portfolio"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	AppointmentDate time.Time `gorm:"type:date" json:"appointment_date"`
	AppointmentTime string    `gorm:"size:5" json:"appointment_time"`
	Duration        string    `gorm:"size:10" json:"duration"`

	// Derived minute bounds backing the SQL overlap predicate and the
	// exclusion constraint. Always recomputed from time+duration on write.
	StartMinute int `json:"-"`
	EndMinute   int `json:"-"`

	Amount float64 `gorm:"type:decimal(10,2)" json:"amount"`

	AppointmentCode    string `gorm:"size:16;index" json:"appointment_code"`
	CompletionCode     string `gorm:"size:16" json:"completion_code"`
	CompletionCodeUsed bool   `gorm:"default:false" json:"-"`

	ExtraNotes string `gorm:"size:255" json:"extra_notes"`

	CancelReason   string `gorm:"size:255" json:"cancel_reason,omitempty"`
	EscalateReason string `gorm:"size:255" json:"escalate_reason,omitempty"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
