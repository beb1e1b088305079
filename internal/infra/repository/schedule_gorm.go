package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/glowbookhq/stylist-scheduler/internal/domain/schedule"
	"github.com/glowbookhq/stylist-scheduler/internal/httperr"
	"github.com/glowbookhq/stylist-scheduler/internal/models"
)

type ScheduleGormStore struct {
	db *gorm.DB
}

func NewScheduleGormStore(db *gorm.DB) *ScheduleGormStore {
	return &ScheduleGormStore{db: db}
}

func (s *ScheduleGormStore) GetSchedule(
	ctx context.Context,
	stylistID uint,
) ([]models.StylistSchedule, error) {

	var days []models.StylistSchedule
	if err := s.db.WithContext(ctx).
		Preload("Slots", func(db *gorm.DB) *gorm.DB {
			return db.Order("schedule_time_slots.from ASC")
		}).
		Where("stylist_id = ?", stylistID).
		Order("weekday ASC").
		Find(&days).Error; err != nil {
		return nil, err
	}

	if len(days) == 0 {
		return nil, httperr.ErrBusiness(httperr.CodeNotFound)
	}

	return days, nil
}

func (s *ScheduleGormStore) SetDaySchedule(
	ctx context.Context,
	stylistID uint,
	weekday int,
	available bool,
	slots []models.ScheduleTimeSlot,
) (*models.StylistSchedule, error) {

	var day models.StylistSchedule

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("stylist_id = ? AND weekday = ?", stylistID, weekday).
			First(&day).Error; err != nil {
			return httperr.ErrBusiness(httperr.CodeNotFound)
		}

		day.Available = available
		if err := tx.Save(&day).Error; err != nil {
			return err
		}

		if err := tx.
			Where("schedule_id = ?", day.ID).
			Delete(&models.ScheduleTimeSlot{}).Error; err != nil {
			return err
		}

		for i := range slots {
			slots[i].ScheduleID = day.ID
		}
		if len(slots) > 0 {
			if err := tx.Create(&slots).Error; err != nil {
				return err
			}
		}

		day.Slots = slots
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &day, nil
}

func (s *ScheduleGormStore) SeedWeek(
	ctx context.Context,
	stylistID uint,
) error {

	days := make([]models.StylistSchedule, 0, 7)
	for weekday := 0; weekday < 7; weekday++ {
		days = append(days, models.StylistSchedule{
			StylistID: stylistID,
			Weekday:   weekday,
			Available: false,
		})
	}

	return s.db.WithContext(ctx).Create(&days).Error
}

// Compile-time check
var _ schedule.Store = (*ScheduleGormStore)(nil)
