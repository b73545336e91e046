package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/booki-saas/booki-api/internal/audit"
	"github.com/booki-saas/booki-api/internal/config"
	"github.com/booki-saas/booki-api/internal/handlers"
	infraRepo "github.com/booki-saas/booki-api/internal/infra/repository"
	"github.com/booki-saas/booki-api/internal/insights"
	"github.com/booki-saas/booki-api/internal/middleware"
	"github.com/booki-saas/booki-api/internal/realtime"
	"github.com/booki-saas/booki-api/internal/storage"
	ucBooking "github.com/booki-saas/booki-api/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	zlog *zap.Logger,
	rdb *redis.Client,
) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, zlog)

	publisher := realtime.NewPublisher(rdb, zlog)
	hub := realtime.NewHub(rdb, zlog, cfg.RealtimeDebounce)
	uploader := storage.NewUploader(cfg)
	insightsSvc := insights.New(cfg.GeminiAPIKey, zlog)

	// ======================================================
	// 🧠 USE CASES — BOOKINGS
	// ======================================================
	availabilityUC := ucBooking.NewGetAvailability(scheduleRepo)

	createBookingUC := ucBooking.NewCreateBooking(
		scheduleRepo,
		auditDispatcher,
		publisher,
	)

	updateBookingUC := ucBooking.NewUpdateBooking(
		scheduleRepo,
		auditDispatcher,
		publisher,
	)

	rescheduleBookingUC := ucBooking.NewRescheduleBooking(
		scheduleRepo,
		auditDispatcher,
		publisher,
	)

	cancelBookingUC := ucBooking.NewCancelBooking(
		scheduleRepo,
		auditDispatcher,
		publisher,
	)

	completeBookingUC := ucBooking.NewCompleteBooking(
		scheduleRepo,
		auditDispatcher,
		publisher,
	)

	listBookingsUC := ucBooking.NewListBookings(scheduleRepo)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)

	companyHandler := handlers.NewCompanyHandler(db, auditDispatcher)
	planHandler := handlers.NewPlanHandler(db)
	profileHandler := handlers.NewProfileHandler(db)
	dashboardHandler := handlers.NewDashboardHandler(db, insightsSvc)
	financeHandler := handlers.NewFinanceHandler(db)
	activityLogsHandler := handlers.NewActivityLogsHandler(db)

	companyProfileHandler := handlers.NewCompanyProfileHandler(db)
	professionalHandler := handlers.NewProfessionalHandler(db, auditDispatcher, publisher)
	serviceHandler := handlers.NewServiceHandler(db)
	productHandler := handlers.NewProductHandler(db, uploader)
	clientHandler := handlers.NewClientHandler(db)
	orderHandler := handlers.NewOrderHandler(db, auditDispatcher)
	reportHandler := handlers.NewReportHandler(db)
	blockedSlotHandler := handlers.NewBlockedSlotHandler(db, auditDispatcher, publisher)
	eventsHandler := handlers.NewEventsHandler(hub)

	bookingHandler := handlers.NewBookingHandler(
		availabilityUC,
		createBookingUC,
		updateBookingUC,
		rescheduleBookingUC,
		cancelBookingUC,
		completeBookingUC,
		listBookingsUC,
	)

	publicHandler := handlers.NewPublicHandler(
		db,
		availabilityUC,
		createBookingUC,
		cancelBookingUC,
	)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA (link de agendamento)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug", publicHandler.GetCompany)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.POST("/:slug/bookings", publicHandler.CreateBooking)
			publicAPI.GET("/:slug/bookings", publicHandler.MyBookings)
			publicAPI.PATCH("/:slug/bookings/:id/cancel", publicHandler.CancelBooking)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.MasterRegister)
		api.POST("/auth/login", authHandler.MasterLogin)
		api.POST("/auth/company-login", authHandler.CompanyLogin)

		// ------------------------------
		// 👑 CONSOLE MASTER
		// ------------------------------
		master := api.Group("/master")
		master.Use(middleware.AuthMiddleware(cfg), middleware.RequireMaster())
		{
			master.GET("/companies", companyHandler.List)
			master.POST("/companies", companyHandler.Create)
			master.GET("/companies/:id", companyHandler.Get)
			master.PATCH("/companies/:id", companyHandler.Update)
			master.PATCH("/companies/:id/status", companyHandler.ChangeStatus)

			master.GET("/plans", planHandler.List)
			master.POST("/plans", planHandler.Create)
			master.PATCH("/plans/:id", planHandler.Update)
			master.DELETE("/plans/:id", planHandler.Delete)

			master.GET("/users", profileHandler.List)
			master.POST("/users", authHandler.MasterRegister)
			master.PATCH("/users/:id/role", profileHandler.UpdateRole)
			master.DELETE("/users/:id", profileHandler.Delete)

			master.GET("/dashboard", dashboardHandler.Stats)
			master.GET("/dashboard/insights", dashboardHandler.Insights)
			master.GET("/finance", financeHandler.Summary)
			master.GET("/activity", activityLogsHandler.ListPlatform)
		}

		// ------------------------------
		// 🏢 PORTAL DO TENANT
		// ------------------------------
		me := api.Group("/me")
		me.Use(middleware.AuthMiddleware(cfg), middleware.RequireCompany())
		{
			me.GET("/company", companyProfileHandler.GetMe)
			me.PATCH("/company", companyProfileHandler.UpdateMe)

			me.GET("/professionals", professionalHandler.List)
			me.POST("/professionals", professionalHandler.Create)
			me.PATCH("/professionals/:id", professionalHandler.Update)
			me.DELETE("/professionals/:id", professionalHandler.Delete)

			me.GET("/services", serviceHandler.List)
			me.POST("/services", serviceHandler.Create)
			me.PATCH("/services/:id", serviceHandler.Update)
			me.DELETE("/services/:id", serviceHandler.Delete)

			me.GET("/products", productHandler.List)
			me.POST("/products", productHandler.Create)
			me.PATCH("/products/:id", productHandler.Update)
			me.DELETE("/products/:id", productHandler.Delete)
			me.POST("/products/:id/image", productHandler.UploadImage)

			me.GET("/clients", clientHandler.List)

			me.GET("/orders", orderHandler.List)
			me.POST("/orders", orderHandler.Create)
			me.PATCH("/orders/:id/close", orderHandler.Close)

			// ------------------------------
			// AGENDA
			// ------------------------------
			me.GET("/availability", bookingHandler.Availability)
			me.GET("/bookings", bookingHandler.ListByDate)
			me.GET("/bookings/month", bookingHandler.ListByMonth)
			me.POST("/bookings", bookingHandler.Create)
			me.PATCH("/bookings/:id", bookingHandler.Update)
			me.PATCH("/bookings/:id/reschedule", bookingHandler.Reschedule)
			me.PATCH("/bookings/:id/cancel", bookingHandler.Cancel)
			me.PATCH("/bookings/:id/complete", bookingHandler.Complete)

			me.GET("/blocked-slots", blockedSlotHandler.List)
			me.POST("/blocked-slots/toggle", blockedSlotHandler.Toggle)

			me.GET("/events", eventsHandler.Stream)

			me.GET("/dashboard", reportHandler.Dashboard)
			me.GET("/finance", reportHandler.Finance)
			me.GET("/activity", activityLogsHandler.ListCompany)
		}
	}
}
