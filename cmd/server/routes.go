package main

import (
	"github.com/gin-gonic/gin"

	"github.com/notevault/notevault/internal/handlers"
	"github.com/notevault/notevault/internal/middleware"
	"github.com/notevault/notevault/internal/models"
	"github.com/notevault/notevault/internal/services"
	"github.com/notevault/notevault/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	db := models.GetDB()

	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Page gates: setup first, then maintenance. Both skip /api/.
	r.Use(middleware.SetupGate(svc.setupService.IsSetupRequired))
	r.Use(middleware.MaintenanceGate(func() bool {
		settings, err := services.GetSystemSettings(db)
		if err != nil {
			logger.Errorf("maintenance check failed, allowing request: %v", err)
			return false
		}
		return settings.MaintenanceMode
	}))

	// Rate limiters: tight on credential endpoints, looser on chat posts.
	authLimiter := middleware.NewRateLimiter(1, 5)
	chatLimiter := middleware.NewRateLimiter(2, 10)

	// Health check
	healthHandler := handlers.NewHealthHandler(svc.setupService)
	r.GET("/health", healthHandler.CheckHealth)

	// Server-rendered pages, targets of the gate redirects
	pageHandler := handlers.NewPageHandler(db)
	r.GET("/", pageHandler.Home)
	r.GET("/setup", pageHandler.Setup)
	r.GET("/maintenance", pageHandler.Maintenance)

	// API routes
	api := r.Group("/api")
	{
		// First-run setup (public, rate limited)
		setupHandler := handlers.NewSetupHandler(db)
		api.GET("/setup", setupHandler.Status)
		api.POST("/setup", authLimiter.Middleware(), setupHandler.Create)

		// Auth routes (public)
		authHandler := handlers.NewAuthHandler(db)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authLimiter.Middleware(), authHandler.Register)
			auth.POST("/login", authLimiter.Middleware(), authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
		}

		// SSE events (public route with internal token validation)
		eventsHandler := handlers.NewEventsHandler(services.GetEventHub())
		api.GET("/events", eventsHandler.Stream)

		// Announcements are readable by anyone
		announcementHandler := handlers.NewAnnouncementHandler(db)
		api.GET("/announcements", announcementHandler.List)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			// Auth
			protected.GET("/auth/me", authHandler.Me)
			protected.POST("/auth/logout", authHandler.Logout)
			protected.POST("/auth/change-password", authHandler.ChangePassword)

			// Workspaces and membership
			workspaceHandler := handlers.NewWorkspaceHandler(db)
			protected.GET("/workspaces", workspaceHandler.List)
			protected.POST("/workspaces", workspaceHandler.Create)
			protected.GET("/workspaces/:id", workspaceHandler.Get)
			protected.PUT("/workspaces/:id", workspaceHandler.Update)
			protected.DELETE("/workspaces/:id", workspaceHandler.Delete)
			protected.POST("/workspaces/:id/members", workspaceHandler.Invite)
			protected.DELETE("/workspaces/:id/members/:userId", workspaceHandler.RemoveMember)
			protected.POST("/workspaces/:id/leave", workspaceHandler.Leave)

			// Notes and trash
			noteHandler := handlers.NewNoteHandler(db)
			protected.GET("/notes", noteHandler.List)
			protected.POST("/notes", noteHandler.Create)
			protected.GET("/notes/:id", noteHandler.Get)
			protected.PUT("/notes/:id", noteHandler.Update)
			protected.DELETE("/notes/:id", noteHandler.Delete)
			protected.POST("/notes/:id/restore", noteHandler.Restore)

			// Note connections
			connectionHandler := handlers.NewConnectionHandler(db)
			protected.GET("/workspaces/:id/connections", connectionHandler.ListByWorkspace)
			protected.POST("/connections", connectionHandler.Create)
			protected.PUT("/connections/:id", connectionHandler.Update)
			protected.DELETE("/connections/:id", connectionHandler.Delete)

			// Public chat
			chatHandler := handlers.NewChatHandler(db)
			protected.GET("/chat", chatHandler.List)
			protected.POST("/chat", chatLimiter.Middleware(), chatHandler.Post)

			// AI insights
			protected.GET("/insights", svc.insightHandler.List)
			protected.POST("/insights/generate", svc.insightHandler.Generate)
			protected.PUT("/insights/:id/read", svc.insightHandler.MarkRead)
			protected.DELETE("/insights/:id", svc.insightHandler.Delete)

			// Activity feed
			activityHandler := handlers.NewActivityHandler(db)
			protected.GET("/activities", activityHandler.List)

			// Profiles
			profileHandler := handlers.NewProfileHandler(db)
			protected.GET("/profile/:id", profileHandler.Get)
			protected.PUT("/profile", profileHandler.Update)
		}

		adminHandler := handlers.NewAdminHandler(db)

		// Moderator routes: the user directory is readable below admin
		moderator := api.Group("/admin")
		moderator.Use(middleware.AuthRequired(), middleware.ModeratorRequired())
		{
			moderator.GET("/users", adminHandler.ListUsers)
		}

		// Admin only routes
		admin := api.Group("")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired(), middleware.AdminAudit())
		{
			admin.GET("/admin/settings", adminHandler.GetSettings)
			admin.PUT("/admin/settings", adminHandler.UpdateSettings)
			admin.GET("/admin/stats", adminHandler.GetStats)
			admin.PUT("/admin/users/:id", adminHandler.UpdateUser)
			admin.GET("/admin/audit-logs", adminHandler.ListAuditLogs)
			admin.POST("/announcements", announcementHandler.Create)
		}
	}
}
