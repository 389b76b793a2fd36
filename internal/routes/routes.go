package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/korefit/studio-api/internal/audit"
	"github.com/korefit/studio-api/internal/config"
	"github.com/korefit/studio-api/internal/handlers"
	infraRepo "github.com/korefit/studio-api/internal/infra/repository"
	"github.com/korefit/studio-api/internal/loyalty"
	"github.com/korefit/studio-api/internal/middleware"
	"github.com/korefit/studio-api/internal/models"
	"github.com/korefit/studio-api/internal/notify"
	"github.com/korefit/studio-api/internal/ratelimit"
	ucBooking "github.com/korefit/studio-api/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	ledger := loyalty.NewGormLedger(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	var notifier notify.Notifier = notify.LogNotifier{}
	if cfg.AMQPUrl != "" {
		notifier = notify.NewAMQPNotifier(cfg.AMQPUrl)
	}
	notifyDispatcher := notify.NewDispatcher(notifier)

	var limiter ratelimit.Policy = ratelimit.NewMemoryPolicy(cfg.RateLimitPerMinute, time.Minute)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		limiter = ratelimit.NewRedisPolicy(rdb, cfg.RateLimitPerMinute, time.Minute)
	}

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(bookingRepo, auditDispatcher, notifyDispatcher)
	updateStatusUC := ucBooking.NewUpdateBookingStatus(bookingRepo, ledger, auditDispatcher)
	confirmPaymentUC := ucBooking.NewConfirmPayment(bookingRepo, ledger, auditDispatcher)
	cancelBookingUC := ucBooking.NewCancelBooking(bookingRepo, auditDispatcher)
	deleteBookingUC := ucBooking.NewDeleteBooking(bookingRepo, auditDispatcher)
	listBookingsUC := ucBooking.NewListBookingsByDate(bookingRepo)

	createCancellationRequestUC := ucBooking.NewCreateCancellationRequest(bookingRepo, auditDispatcher)
	resolveCancellationRequestUC := ucBooking.NewResolveCancellationRequest(
		bookingRepo,
		cancelBookingUC,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db, bookingRepo)
	sessionHandler := handlers.NewSessionHandler(db)
	scheduleHandler := handlers.NewScheduleHandler(db)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		updateStatusUC,
		confirmPaymentUC,
		cancelBookingUC,
		deleteBookingUC,
		listBookingsUC,
	)

	publicHandler := handlers.NewPublicHandler(db, bookingRepo, createBookingUC)

	cancellationHandler := handlers.NewCancellationHandler(
		createCancellationRequestUC,
		resolveCancellationRequestUC,
	)
	cancellationListHandler := handlers.NewCancellationListHandler(bookingRepo)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/sessions", publicHandler.ListSessions)
			publicAPI.GET("/schedules", scheduleHandler.GetByDate)
			publicAPI.GET("/bookings/:reference", publicHandler.GetBookingByReference)

			guestBooking := publicAPI.Group("/")
			if cfg.RateLimitEnabled {
				guestBooking.Use(middleware.RateLimit(limiter))
			}
			guestBooking.POST("/bookings", publicHandler.CreateBooking)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// AUTHENTICATED CLIENTS
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", userHandler.Me)

			secured.POST("/me/bookings", bookingHandler.Create)
			secured.PATCH("/me/bookings/:id/cancel", bookingHandler.Cancel)

			secured.POST("/me/cancellation-requests", cancellationHandler.Create)

			// ------------------------------
			// STAFF
			// ------------------------------
			staff := secured.Group("/")
			staff.Use(middleware.RequireRole(models.RoleAdmin, models.RoleManager))
			{
				staff.GET("/users", userHandler.List)
				staff.DELETE("/users/:id", userHandler.Delete)

				staff.POST("/sessions", sessionHandler.Create)
				staff.GET("/sessions", sessionHandler.List)
				staff.PATCH("/sessions/:id", sessionHandler.Update)
				staff.GET("/sessions/:id/capacity", sessionHandler.EffectiveCapacity)

				staff.POST("/schedules", scheduleHandler.Create)
				staff.POST("/schedules/:id/time-slots", scheduleHandler.AddTimeSlot)

				staff.GET("/bookings", bookingHandler.ListByDate)
				staff.PATCH("/bookings/:id/status", bookingHandler.UpdateStatus)
				staff.POST("/bookings/:id/confirm-payment", bookingHandler.ConfirmPayment)
				staff.PATCH("/bookings/:id/cancel", bookingHandler.Cancel)
				staff.DELETE("/bookings/:id", bookingHandler.Delete)

				staff.GET("/cancellation-requests", cancellationListHandler.List)
				staff.PATCH("/cancellation-requests/:id/approve", cancellationHandler.Approve)
				staff.PATCH("/cancellation-requests/:id/reject", cancellationHandler.Reject)
			}
		}
	}
}
