package main

import (
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"

	"github.com/sjperalta/billing-api/internal/config"
	"github.com/sjperalta/billing-api/internal/handlers"
	"github.com/sjperalta/billing-api/internal/metrics"
	"github.com/sjperalta/billing-api/internal/middleware"
	"github.com/sjperalta/billing-api/internal/session"
)

func setupRouter(h *handlers.Handlers, cfg *config.Config, sessions *session.Manager, loginLimiter *limiter.Limiter) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// Redirect root to swagger
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	v1 := router.Group("/api/v1")
	{
		// Public
		v1.GET("/health", h.Health.Index)
		v1.GET("/print-settings/rate", h.Rate.TodaysRate)

		auth := v1.Group("/auth")
		{
			throttled := middleware.RateLimit(loginLimiter)
			auth.POST("/login", throttled, h.Auth.Login)
			auth.POST("/signup", throttled, h.Auth.Signup)
			auth.POST("/logout", h.Auth.Logout)
		}

		// Protected routes (requires a session)
		protected := v1.Group("")
		protected.Use(middleware.Auth(sessions))
		{
			protected.GET("/auth/me", h.Auth.Me)

			protected.GET("/clients", h.Client.Index)
			protected.POST("/clients", h.Client.Create)
			protected.GET("/clients/:client_id", h.Client.Show)

			protected.GET("/projects", h.Project.Index)
			protected.POST("/projects", h.Project.Create)
			protected.GET("/projects/:project_id", h.Project.Show)

			protected.GET("/bills", h.Bill.Index)
			protected.POST("/bills", h.Bill.Create)
			protected.GET("/bills/:bill_id", h.Bill.Show)
			protected.GET("/bills/:bill_id/pdf", h.Bill.PDF)

			protected.GET("/payments", h.Payment.Index)
			protected.POST("/payments", h.Payment.Create)

			protected.GET("/rates", h.Rate.Index)
			protected.GET("/print-settings", h.Rate.PrintRates)
			protected.GET("/settings", h.Settings.Show)

			// Admin-only routes
			admin := protected.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.PUT("/bills/:bill_id/status", h.Bill.UpdateStatus)

				admin.POST("/rates", h.Rate.Create)
				admin.PUT("/rates", h.Rate.Update)
				admin.DELETE("/rates", h.Rate.Delete)
				admin.DELETE("/rates/:rate_id", h.Rate.Delete)
				admin.POST("/print-settings", h.Rate.AddPrintRate)
				admin.PUT("/settings", h.Settings.Update)

				admin.GET("/users", h.User.Index)
				admin.POST("/users", h.User.Create)

				admin.GET("/client-overview", h.Overview.Index)
				admin.GET("/client-overview/export", h.Overview.Export)

				admin.GET("/audits", h.Audit.Index)
				admin.GET("/jobs/status", h.Job.Status)
			}
		}
	}

	return router
}
