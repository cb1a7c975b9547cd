package router

import (
	"github.com/ashdowne/daybook/config"
	"github.com/ashdowne/daybook/internal/constants"
	"github.com/ashdowne/daybook/internal/dto"
	"github.com/ashdowne/daybook/internal/handler"
	"github.com/ashdowne/daybook/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	healthHandler *handler.HealthHandler
	authHandler   *handler.AuthHandler
	userHandler   *handler.UserHandler
	threadHandler *handler.ThreadHandler
	entryHandler  *handler.EntryHandler
	metricHandler *handler.MetricHandler

	authMw *middleware.AuthMiddleware
	cfg    *config.Config
}

func NewRouter(
	health *handler.HealthHandler,
	auth *handler.AuthHandler,
	user *handler.UserHandler,
	thread *handler.ThreadHandler,
	entry *handler.EntryHandler,
	metric *handler.MetricHandler,
	authMw *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		healthHandler: health,
		authHandler:   auth,
		userHandler:   user,
		threadHandler: thread,
		entryHandler:  entry,
		metricHandler: metric,
		authMw:        authMw,
		cfg:           cfg,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	if r.cfg.App.Environment == constants.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	dto.RegisterValidations()

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.ContextMiddleware("api", r.cfg.App.Timeout))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.IPFilter(r.cfg.Security))
	router.Use(middleware.CORS(r.cfg.CORS))

	router.GET("/health", r.healthHandler.BasicHealth)

	api := router.Group("/api")
	{
		api.GET("/health", r.healthHandler.HealthCheck)

		v1 := api.Group("/v1")
		{
			r.authRoutes(v1)

			protected := v1.Group("")
			protected.Use(r.authMw.RequireAuth())
			{
				r.userRoutes(protected)
				r.threadRoutes(protected)
				r.entryRoutes(protected)
				r.metricRoutes(protected)
			}
		}
	}

	return router
}

func (r *Router) authRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		// Token endpoints authenticate via their own credentials, not the
		// access cookie.
		auth.POST("/google", r.authHandler.Login)
		auth.POST("/refresh", r.authHandler.Refresh)

		protected := auth.Group("")
		protected.Use(r.authMw.RequireAuth())
		{
			protected.GET("/me", r.authHandler.Me)
			protected.POST("/logout", r.authHandler.Logout)
			protected.POST("/cleanup-tokens", r.authHandler.CleanupTokens)
		}
	}
}

func (r *Router) userRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.GET("", r.userHandler.List)
		users.POST("", r.userHandler.Create)
		users.PATCH("", r.userHandler.Patch)
		users.PUT("", r.userHandler.Upsert)
		users.DELETE("", r.userHandler.Delete)
	}
}

func (r *Router) threadRoutes(rg *gin.RouterGroup) {
	threads := rg.Group("/threads")
	{
		threads.GET("", r.threadHandler.List)
		threads.POST("", r.threadHandler.Create)
		threads.PATCH("", r.threadHandler.Patch)
		threads.PUT("", r.threadHandler.Upsert)
		threads.DELETE("", r.threadHandler.Delete)
	}
}

func (r *Router) entryRoutes(rg *gin.RouterGroup) {
	entries := rg.Group("/entries")
	{
		entries.GET("", r.entryHandler.List)
		entries.GET("/date/:date", r.entryHandler.ByDate)
		entries.GET("/calendar", r.entryHandler.Calendar)
		entries.GET("/by-id/:entry_id", r.entryHandler.GetByID)
		entries.POST("", r.entryHandler.Create)
		entries.POST("/with-thread", r.entryHandler.CreateWithThread)
		entries.PATCH("", r.entryHandler.Patch)
		entries.DELETE("", r.entryHandler.Delete)
		entries.DELETE("/:entry_id", r.entryHandler.DeleteWithThread)
	}
}

func (r *Router) metricRoutes(rg *gin.RouterGroup) {
	metrics := rg.Group("/metrics")
	{
		metrics.GET("", r.metricHandler.List)
		metrics.POST("", r.metricHandler.Create)
		metrics.PATCH("", r.metricHandler.Patch)
		metrics.PUT("", r.metricHandler.Upsert)
		metrics.DELETE("", r.metricHandler.Delete)
	}
}
