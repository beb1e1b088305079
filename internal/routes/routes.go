package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/glowbookhq/stylist-scheduler/internal/audit"
	"github.com/glowbookhq/stylist-scheduler/internal/config"
	"github.com/glowbookhq/stylist-scheduler/internal/events"
	"github.com/glowbookhq/stylist-scheduler/internal/gateway"
	"github.com/glowbookhq/stylist-scheduler/internal/handlers"
	infraRepo "github.com/glowbookhq/stylist-scheduler/internal/infra/repository"
	"github.com/glowbookhq/stylist-scheduler/internal/middleware"
	"github.com/glowbookhq/stylist-scheduler/internal/models"
	"github.com/glowbookhq/stylist-scheduler/internal/rewards"
	ucAppointment "github.com/glowbookhq/stylist-scheduler/internal/usecase/appointment"
	ucPayment "github.com/glowbookhq/stylist-scheduler/internal/usecase/payment"
	ucSchedule "github.com/glowbookhq/stylist-scheduler/internal/usecase/schedule"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	scheduleStore := infraRepo.NewScheduleGormStore(db)
	paymentRepo := infraRepo.NewPaymentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	eventDispatcher := events.NewDispatcher(events.NewRedisPublisher(rdb))
	rewardsHook := rewards.NewDispatcherHook(eventDispatcher)

	var depositChecker gateway.DepositChecker = gateway.SandboxChecker{}
	if cfg.GatewayAccessToken != "" {
		mp, err := gateway.NewMercadoPagoChecker(cfg.GatewayAccessToken)
		if err != nil {
			log.Fatalf("failed to init payment gateway client: %v", err)
		}
		depositChecker = mp
	}

	// ======================================================
	// USE CASES
	// ======================================================
	availabilityResolver := ucAppointment.NewAvailabilityResolver(appointmentRepo, cfg)

	createUC := ucAppointment.NewCreateAppointment(appointmentRepo, eventDispatcher, auditDispatcher, cfg)
	approveUC := ucAppointment.NewApproveAppointment(appointmentRepo, eventDispatcher, auditDispatcher)
	confirmUC := ucAppointment.NewConfirmAppointment(appointmentRepo, paymentRepo, eventDispatcher, auditDispatcher)
	completeUC := ucAppointment.NewCompleteAppointment(appointmentRepo, eventDispatcher, auditDispatcher, rewardsHook, cfg)
	cancelUC := ucAppointment.NewCancelAppointment(appointmentRepo, eventDispatcher, auditDispatcher, cfg)
	rescheduleUC := ucAppointment.NewRescheduleAppointment(appointmentRepo, eventDispatcher, auditDispatcher, cfg)
	escalateUC := ucAppointment.NewEscalateAppointment(appointmentRepo, eventDispatcher, auditDispatcher)
	resolveUC := ucAppointment.NewResolveAppointment(appointmentRepo, eventDispatcher, auditDispatcher, cfg)
	listUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo)

	recordVerificationUC := ucPayment.NewRecordVerificationRequest(paymentRepo, appointmentRepo, eventDispatcher, auditDispatcher)
	markVerifiedUC := ucPayment.NewMarkVerified(paymentRepo, confirmUC, auditDispatcher)
	markRejectedUC := ucPayment.NewMarkRejected(paymentRepo, auditDispatcher)

	manageScheduleUC := ucSchedule.NewManageSchedule(scheduleStore, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, scheduleStore)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityResolver, cfg)
	appointmentHandler := handlers.NewAppointmentHandler(
		createUC,
		approveUC,
		completeUC,
		cancelUC,
		rescheduleUC,
		listUC,
		cfg,
	)
	paymentHandler := handlers.NewPaymentHandler(
		recordVerificationUC,
		markVerifiedUC,
		appointmentRepo,
		depositChecker,
	)
	adminHandler := handlers.NewAdminHandler(
		escalateUC,
		resolveUC,
		markVerifiedUC,
		markRejectedUC,
		paymentRepo,
	)
	scheduleHandler := handlers.NewScheduleHandler(manageScheduleUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.GET("/stylists/:id/availability", availabilityHandler.ListOpenSlots)
		api.GET("/stylists/:id/next-available", availabilityHandler.NextAvailable)

		api.GET("/payments/callback", paymentHandler.Callback)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.POST("/appointments/:id/approve", appointmentHandler.Approve)
			secured.POST("/appointments/:id/complete", appointmentHandler.Complete)
			secured.POST("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.POST("/appointments/:id/reschedule", appointmentHandler.Reschedule)

			secured.POST("/appointments/:id/payment-verifications", paymentHandler.RequestVerification)

			// ------------------------------
			// STYLIST SCHEDULE
			// ------------------------------
			stylist := secured.Group("/me")
			stylist.Use(middleware.RequireRole(models.RoleStylist))
			{
				stylist.GET("/schedule", scheduleHandler.Get)
				stylist.PUT("/schedule/:weekday", scheduleHandler.SetDay)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.POST("/appointments/:id/escalate", adminHandler.Escalate)
				admin.POST("/appointments/:id/resolve", adminHandler.Resolve)

				admin.GET("/payment-verifications", adminHandler.ListPendingVerifications)
				admin.POST("/payment-verifications/:id/verify", adminHandler.VerifyPayment)
				admin.POST("/payment-verifications/:id/reject", adminHandler.RejectPayment)

				admin.GET("/admin/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
