package routes

import (
	"worklines-api/internal/config"
	"worklines-api/internal/gemini"
	"worklines-api/internal/handlers"
	"worklines-api/internal/middleware"
	"worklines-api/internal/review"

	"github.com/gin-gonic/gin"
)

// SetupRoutes assembles the gin engine: CORS, health check, public login and
// the JWT-protected API surface.
func SetupRoutes(cfg *config.Config) *gin.Engine {
	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	handlers.InitReview(review.NewService(gemini.NewClient(gemini.Config{
		Endpoint:  cfg.Gemini.Endpoint,
		APIKey:    cfg.Gemini.APIKey,
		Model:     cfg.Gemini.Model,
		TimeoutMs: cfg.Gemini.TimeoutMs,
	})))

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Work Lines API is running",
		})
	})

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		api.POST("/login", handlers.Login)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware())
	{
		// Work line endpoints
		protectedRoutes.GET("/lines", handlers.GetLines)

		// Project endpoints
		protectedRoutes.GET("/projects", handlers.GetProjects)
		protectedRoutes.POST("/projects", handlers.CreateProject)
		protectedRoutes.PUT("/projects/:id", handlers.UpdateProject)
		protectedRoutes.DELETE("/projects/:id", handlers.DeleteProject)

		// Task endpoints
		protectedRoutes.GET("/tasks", handlers.GetTasks)
		protectedRoutes.GET("/tasks/:id", handlers.GetTaskByID)
		protectedRoutes.POST("/tasks", handlers.CreateTask)
		protectedRoutes.PUT("/tasks/:id", handlers.UpdateTask)
		protectedRoutes.DELETE("/tasks/:id", handlers.DeleteTask)

		// Risk endpoints
		protectedRoutes.GET("/risks", handlers.GetRisks)
		protectedRoutes.POST("/risks", handlers.CreateRisk)
		protectedRoutes.PUT("/risks/:id", handlers.UpdateRisk)
		protectedRoutes.DELETE("/risks/:id", handlers.DeleteRisk)

		// Dashboard and timeline
		protectedRoutes.GET("/dashboard", handlers.GetDashboard)
		protectedRoutes.GET("/timeline", handlers.GetTimeline)

		// Monthly review endpoints
		protectedRoutes.GET("/reviews/:month", handlers.GetReview)
		protectedRoutes.PUT("/reviews/:month", handlers.SaveReview)
		protectedRoutes.POST("/reviews/:month/generate", handlers.GenerateReview)

		// Realtime task events
		protectedRoutes.GET("/ws", handlers.WebSocketHandler)
	}

	// Admin-only routes
	adminRoutes := api.Group("")
	adminRoutes.Use(middleware.JWTAuthMiddleware(), middleware.RequireAdmin())
	{
		adminRoutes.POST("/lines", handlers.CreateLine)
		adminRoutes.DELETE("/lines/:id", handlers.DeleteLine)

		adminRoutes.GET("/users", handlers.GetAllUsers)
		adminRoutes.POST("/users", handlers.CreateUser)
		adminRoutes.PUT("/users/:id", handlers.UpdateUser)
		adminRoutes.DELETE("/users/:id", handlers.DeleteUser)
	}

	return ginRouter
}
