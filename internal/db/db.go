package db

import (
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/glowbookhq/stylist-scheduler/internal/config"
	"github.com/glowbookhq/stylist-scheduler/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Portfolio{},
		&models.StylistSchedule{},
		&models.ScheduleTimeSlot{},
		&models.Appointment{},
		&models.PaymentVerification{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	// DB-level backstop for the per-stylist no-overlap invariant: a
	// status bump into an occupied interval fails here even though it
	// never passes the create-path conflict check.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).Error; err != nil {
		log.Fatalf("failed to create btree_gist extension: %v", err)
	}
	if err := db.Exec(`
        DO $$ BEGIN
            ALTER TABLE appointments ADD CONSTRAINT appointments_no_overlap
            EXCLUDE USING gist (
                stylist_id WITH =,
                appointment_date WITH =,
                int4range(start_minute, end_minute) WITH &&
            ) WHERE (status IN ('approved', 'confirmed'));
        EXCEPTION
            WHEN duplicate_table THEN NULL;
            WHEN duplicate_object THEN NULL;
        END $$
    `).Error; err != nil {
		log.Fatalf("failed to create no-overlap constraint: %v", err)
	}

	return db
}
