package main

import (
	"context"
	"fmt"
	"time"

	"foundation-backend/internal/shared/middleware"
	"foundation-backend/pkg/container"

	"github.com/gin-gonic/gin"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares. Session runs last so the resolver sees the request
	// id in logs emitted during resolution.
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.App.CORSOrigin),
		middleware.ClientIP(),
		middleware.Session(c.Resolver, c.Config.Cookies),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))
		v1.GET("/session", c.ConsoleHandler.Session)
		v1.POST("/console", middleware.RequireAuth(), c.ConsoleHandler.Dispatch)

		setupAuthRoutes(v1, c)
		setupStaffRoutes(v1, c)
		setupMemberRoutes(v1, c)
		setupDocumentRoutes(v1, c)
		setupSubmissionRoutes(v1, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(v1 *gin.RouterGroup, c *container.Container) {
	auth := v1.Group("/auth")
	{
		auth.POST("/staff/login", c.EmployeeHandler.Login)
		auth.POST("/staff/logout", c.EmployeeHandler.Logout)
		auth.POST("/members/register", c.MemberHandler.Register)
		auth.POST("/members/login", c.MemberHandler.Login)
		auth.POST("/members/logout", c.MemberHandler.Logout)
	}
}

// ========================================
// STAFF ROUTES
// ========================================
func setupStaffRoutes(v1 *gin.RouterGroup, c *container.Container) {
	staff := v1.Group("/staff")
	staff.Use(middleware.RequireAuth())
	{
		staff.GET("/me", c.EmployeeHandler.Me)
		staff.PUT("/me", c.EmployeeHandler.UpdateMe)
	}

	admin := v1.Group("/staff")
	admin.Use(middleware.RequireAdmin())
	{
		admin.POST("", c.EmployeeHandler.Register)
		admin.GET("", c.EmployeeHandler.List)
		admin.PUT("/:id", c.EmployeeHandler.Update)
		admin.DELETE("/:id", c.EmployeeHandler.Delete)
	}
}

// ========================================
// MEMBER ROUTES
// ========================================
func setupMemberRoutes(v1 *gin.RouterGroup, c *container.Container) {
	members := v1.Group("/members")
	members.Use(middleware.RequireAuth())
	{
		members.GET("/me", c.MemberHandler.Me)
		members.PUT("/me", c.MemberHandler.UpdateMe)
		members.DELETE("/me", c.MemberHandler.DeleteMe)
	}
}

// ========================================
// DOCUMENT ROUTES
// ========================================
func setupDocumentRoutes(v1 *gin.RouterGroup, c *container.Container) {
	documents := v1.Group("/documents")
	{
		// Public reads.
		documents.GET("", c.DocumentHandler.List)
		documents.GET("/:id", c.DocumentHandler.GetByID)
		documents.GET("/slug/:slug", c.DocumentHandler.GetBySlug)

		// Writes; fine-grained policy lives in the service.
		documents.POST("", middleware.RequireAuth(), c.DocumentHandler.Create)
		documents.PUT("/:id", middleware.RequireAuth(), c.DocumentHandler.Update)
		documents.PUT("/:id/author", middleware.RequireAuth(), c.DocumentHandler.ChangeAuthor)
		documents.DELETE("/:id", middleware.RequireAuth(), c.DocumentHandler.Delete)
	}
}

// ========================================
// SUBMISSION ROUTES
// ========================================
func setupSubmissionRoutes(v1 *gin.RouterGroup, c *container.Container) {
	submissions := v1.Group("/submissions")
	submissions.Use(middleware.RequireAuth())
	{
		submissions.POST("", c.SubmissionHandler.Submit)
		submissions.GET("", c.SubmissionHandler.List)
		submissions.GET("/:id", c.SubmissionHandler.GetByID)
		submissions.POST("/:id/review", c.SubmissionHandler.Review)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}
		services := gin.H{}

		dbStatus := "ok"
		if appCtx.DB == nil || appCtx.DB.Pool == nil {
			dbStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}
		services["database"] = dbStatus

		redisStatus := "ok"
		if appCtx.Cache == nil {
			redisStatus = "disconnected"
			health["status"] = "degraded"
		} else {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
				// Redis is non-critical; health stays ok.
			}
		}
		services["redis"] = redisStatus

		health["services"] = services
		c.JSON(200, health)
	}
}
