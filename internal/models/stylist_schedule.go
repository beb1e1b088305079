package models

import "time"

// StylistSchedule is one weekday row of a stylist's recurring availability.
// Seven rows per stylist, seeded unavailable at registration and mutated
// only by the owning stylist.
type StylistSchedule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StylistID uint `gorm:"index:idx_schedule_stylist_weekday,unique" json:"stylist_id"`
	Weekday   int  `gorm:"index:idx_schedule_stylist_weekday,unique" json:"weekday"`

	Available bool `gorm:"default:false" json:"available"`

	Slots []ScheduleTimeSlot `gorm:"foreignKey:ScheduleID;constraint:OnDelete:CASCADE;" json:"slots"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ScheduleTimeSlot struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ScheduleID uint `gorm:"index" json:"schedule_id"`

	// HH:MM wall-clock bounds, From < To.
	From string `gorm:"size:5;not null" json:"from"`
	To   string `gorm:"size:5;not null" json:"to"`
}
