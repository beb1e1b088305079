package models

import "time"

// Portfolio is a bookable service a stylist offers. Catalog management is
// handled elsewhere; the engine only reads title, price and duration.
type Portfolio struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StylistID uint `gorm:"index" json:"stylist_id"`
	Stylist   User `gorm:"foreignKey:StylistID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"stylist"`

	Title       string  `gorm:"size:100;not null" json:"title"`
	Description string  `gorm:"size:255" json:"description"`
	Price       float64 `gorm:"type:decimal(10,2)" json:"price"`

	// Service length as a duration string ("1h", "90m", "1h30m").
	Duration string `gorm:"size:10;not null" json:"duration"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
