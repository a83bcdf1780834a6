package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/shiftplan-backend/internal/http/handlers"
	httpMW "github.com/yungbote/shiftplan-backend/internal/http/middleware"
	"github.com/yungbote/shiftplan-backend/internal/observability"
	"github.com/yungbote/shiftplan-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	AuthMiddleware *httpMW.AuthMiddleware
	Metrics        *observability.Metrics
	CORSOrigins    []string
	// OtelServiceName enables otelgin spans when set.
	OtelServiceName string

	HealthHandler     *httpH.HealthHandler
	AccountHandler    *httpH.AccountHandler
	OwnerHandler      *httpH.OwnerHandler
	RosterHandler     *httpH.RosterHandler
	SchedulingHandler *httpH.SchedulingHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.OtelServiceName != "" {
		r.Use(otelgin.Middleware(cfg.OtelServiceName))
	}
	r.Use(httpMW.Correlate())
	if cfg.Log != nil {
		r.Use(httpMW.RequestLogger(cfg.Log))
	}
	if cfg.Metrics != nil {
		r.Use(httpMW.Metrics(cfg.Metrics, "/metrics", "/healthcheck"))
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Accounts (public)
		if cfg.AccountHandler != nil {
			api.POST("/accounts", cfg.AccountHandler.Register)
			api.POST("/token", cfg.AccountHandler.Token)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.AccountHandler != nil {
			protected.GET("/me", cfg.AccountHandler.GetMe)
		}
	}

	// Ownership registry
	if cfg.OwnerHandler != nil && cfg.AuthMiddleware != nil {
		admin := protected.Group("/owners", cfg.AuthMiddleware.RequireSuperuser())
		admin.GET("", cfg.OwnerHandler.ListOwners)
		admin.POST("", cfg.OwnerHandler.CreateOwner)
		admin.DELETE("/:id", cfg.OwnerHandler.DeleteOwner)
	}

	if cfg.AuthMiddleware == nil {
		return r
	}
	owned := protected.Group("/", cfg.AuthMiddleware.RequireOwner())
	{
		// Roster
		if cfg.RosterHandler != nil {
			owned.GET("/contracts", cfg.RosterHandler.ListContracts)
			owned.POST("/contracts", cfg.RosterHandler.CreateContract)
			owned.DELETE("/contracts/:id", cfg.RosterHandler.DeleteContract)

			owned.GET("/tasks", cfg.RosterHandler.ListTasks)
			owned.POST("/tasks", cfg.RosterHandler.CreateTask)
			owned.DELETE("/tasks/:id", cfg.RosterHandler.DeleteTask)

			owned.GET("/employees", cfg.RosterHandler.ListEmployees)
			owned.POST("/employees", cfg.RosterHandler.CreateEmployee)
			owned.DELETE("/employees/:id", cfg.RosterHandler.DeleteEmployee)
		}

		// Schedules and shifts
		if cfg.SchedulingHandler != nil {
			owned.GET("/schedules", cfg.SchedulingHandler.ListSchedules)
			owned.POST("/schedules", cfg.SchedulingHandler.CreateSchedule)
			owned.GET("/schedules/:id", cfg.SchedulingHandler.GetSchedule)
			owned.PUT("/schedules/:id", cfg.SchedulingHandler.UpdateSchedule)
			owned.DELETE("/schedules/:id", cfg.SchedulingHandler.DeleteSchedule)

			owned.GET("/schedules/:id/shifts", cfg.SchedulingHandler.ListShifts)
			owned.POST("/schedules/:id/shifts", cfg.SchedulingHandler.CreateShift)
			owned.PUT("/shifts/:id", cfg.SchedulingHandler.UpdateShift)
			owned.DELETE("/shifts/:id", cfg.SchedulingHandler.DeleteShift)

			owned.GET("/employees/:id/shifts", cfg.SchedulingHandler.ListEmployeeDayShifts)
		}
	}

	return r
}
