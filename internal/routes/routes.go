package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/DevAlex-full/barbeflow-scheduler/internal/config"
	domain "github.com/DevAlex-full/barbeflow-scheduler/internal/domain/appointment"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/domain/booking"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/handlers"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/middleware"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/timezone"
	ucAppointment "github.com/DevAlex-full/barbeflow-scheduler/internal/usecase/appointment"
	ucBooking "github.com/DevAlex-full/barbeflow-scheduler/internal/usecase/booking"
	"github.com/DevAlex-full/barbeflow-scheduler/internal/validators"
)

// Deps are the singletons the HTTP surface is built from.
type Deps struct {
	Config   *config.Config
	Repo     domain.Repository
	Sessions booking.SessionStore
	Notifier ucAppointment.Notifier
	Clock    timezone.Clock
	Logger   *zap.Logger
}

func RegisterRoutes(r *gin.Engine, deps Deps) {

	// ======================================================
	// 🌍 GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware(deps.Config.AllowedOrigins()...))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	repo := deps.Repo

	if err := validators.Register(); err != nil {
		logger.Error("failed to register binding validators", zap.Error(err))
	}

	// ======================================================
	// 🧠 USE CASES - APPOINTMENTS
	// ======================================================
	availabilityUC := ucAppointment.NewGetAvailability(repo, deps.Clock)

	createAppointmentUC := ucAppointment.NewCreateAppointment(
		repo,
		deps.Notifier,
		deps.Clock,
		logger,
	)

	updateStatusUC := ucAppointment.NewUpdateStatus(
		repo,
		deps.Notifier,
		deps.Clock,
		logger,
	)

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		repo,
		deps.Notifier,
		domain.NewCancellationPolicy(deps.Config.CancellationLead),
		deps.Clock,
		logger,
	)

	rescheduleUC := ucAppointment.NewReschedule(repo, deps.Clock, logger)
	reminderUC := ucAppointment.NewRequestReminder(repo, deps.Notifier, logger)
	deleteUC := ucAppointment.NewDeleteAppointment(repo, logger)

	listAppointmentsByDateUC := ucAppointment.NewListAppointmentsByDate(repo)
	listAppointmentsByMonthUC := ucAppointment.NewListAppointmentsByMonth(repo)

	businessHoursUC := ucAppointment.NewBusinessHours(repo)

	// ======================================================
	// 🧠 USE CASES - BOOKING WIZARD
	// ======================================================
	bookingSvc := ucBooking.NewService(
		repo,
		deps.Sessions,
		availabilityUC,
		createAppointmentUC,
		deps.Config.WizardTTL,
		logger,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(
		repo,
		createAppointmentUC,
		updateStatusUC,
		rescheduleUC,
		reminderUC,
		deleteUC,
		listAppointmentsByDateUC,
		listAppointmentsByMonthUC,
	)

	businessHoursHandler := handlers.NewBusinessHoursHandler(businessHoursUC)
	publicHandler := handlers.NewPublicHandler(repo, availabilityUC, cancelAppointmentUC)
	wizardHandler := handlers.NewWizardHandler(repo, bookingSvc)

	auth := middleware.AuthMiddleware(deps.Config)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 PUBLIC API
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/barbers", publicHandler.ListBarbers)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)

			// only :slug routes live under /public, so any slug is routable
			publicAPI.POST("/:slug/wizard", auth, middleware.RequireCustomer(), wizardHandler.Start)
		}

		// ------------------------------
		// 🔐 CUSTOMER
		// ------------------------------
		customer := api.Group("/customer")
		customer.Use(auth, middleware.RequireCustomer())
		{
			customer.GET("/wizard/:session", wizardHandler.Get)
			customer.POST("/wizard/:session/barber", wizardHandler.ChooseBarber)
			customer.POST("/wizard/:session/date", wizardHandler.ChooseDate)
			customer.POST("/wizard/:session/time", wizardHandler.ChooseTime)
			customer.POST("/wizard/:session/back", wizardHandler.Back)
			customer.POST("/wizard/:session/submit", wizardHandler.Submit)
			customer.DELETE("/wizard/:session", wizardHandler.Abandon)

			customer.PATCH("/appointments/:id/cancel", publicHandler.Cancel)
		}

		// ------------------------------
		// 🔐 PRIVATE API (staff)
		// ------------------------------
		secured := api.Group("/me")
		secured.Use(auth, middleware.RequireStaff())
		{
			secured.GET("/business-hours", businessHoursHandler.Get)
			secured.PUT("/business-hours", businessHoursHandler.Update)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.ListByDate)
			secured.GET("/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/appointments/:id/status", appointmentHandler.UpdateStatus)
			secured.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)
			secured.POST("/appointments/:id/reminder", appointmentHandler.RequestReminder)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)
		}
	}
}
