package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/catalog"
	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/dashboard"
)

// Deps are the process singletons the HTTP layer is built from. Locker,
// AuditLogs and the extra health checks are optional.
type Deps struct {
	Config    *config.Config
	Log       *zap.Logger
	Store     domain.Store
	Catalog   *catalog.Catalog
	Directory *auth.Directory
	Tokens    *auth.Tokens
	Auditor   ucAppointment.Auditor
	Locker    ucAppointment.Locker
	AuditLogs handlers.AuditLister
	Health    map[string]handlers.Pinger
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(d.Log),
		middleware.CORSMiddleware(d.Config.CORSOrigins),
	)

	// ======================================================
	// USE CASES
	// ======================================================
	now := timezone.Clock(d.Config.Timezone)
	schedule := ucAppointment.NewSchedule(d.Store, d.Locker)

	bookUC := ucAppointment.NewBookAppointment(schedule, d.Catalog, d.Directory, d.Auditor, now)
	transitionUC := ucAppointment.NewTransitionAppointment(schedule, d.Directory, d.Auditor, now)
	rescheduleUC := ucAppointment.NewRescheduleAppointment(schedule, d.Directory, d.Auditor, now)
	removeUC := ucAppointment.NewRemoveAppointment(d.Store, d.Directory, d.Auditor)
	checkUC := ucAppointment.NewCheckConflict(d.Store, d.Catalog, d.Directory)
	listUC := ucAppointment.NewListAppointments(d.Store, d.Directory)
	getUC := ucAppointment.NewGetAppointment(d.Store, d.Directory)
	availUC := ucAppointment.NewGetAvailability(d.Store, d.Catalog, d.Directory, d.Config.BusinessHours())

	metricsUC := dashboard.NewGetMetrics(d.Store, d.Directory)

	// ======================================================
	// HANDLERS
	// ======================================================
	health := map[string]handlers.Pinger{"store": d.Store.Ping}
	for name, p := range d.Health {
		health[name] = p
	}
	healthHandler := handlers.NewHealthHandler(d.Config.Env, health)

	authHandler := handlers.NewAuthHandler(d.Directory, d.Tokens)
	meHandler := handlers.NewMeHandler()
	serviceHandler := handlers.NewServiceHandler(d.Catalog)
	employeeHandler := handlers.NewEmployeeHandler(d.Directory)
	dashboardHandler := handlers.NewDashboardHandler(metricsUC)

	appointmentHandler := handlers.NewAppointmentHandler(
		bookUC,
		transitionUC,
		rescheduleUC,
		removeUC,
		checkUC,
		listUC,
		getUC,
		availUC,
	)

	// ======================================================
	// HEALTH
	// ======================================================
	r.GET("/health/live", healthHandler.Liveness)
	r.GET("/health/ready", healthHandler.Readiness)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)

		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Tokens, d.Directory))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/services", serviceHandler.List)
			secured.GET("/employees", employeeHandler.List)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.GET("/appointments", appointmentHandler.List)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.POST("/appointments/conflicts", appointmentHandler.CheckConflict)
			secured.GET("/appointments/availability", appointmentHandler.Availability)
			secured.GET("/appointments/:id", appointmentHandler.Get)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.PATCH("/appointments/:id/reschedule", appointmentHandler.Reschedule)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)

			secured.GET("/dashboard/metrics", dashboardHandler.Metrics)

			if d.AuditLogs != nil {
				secured.GET("/audit-logs", handlers.NewAuditLogsHandler(d.AuditLogs).List)
			}
		}
	}
}
