package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"doctqr-server/internal/config"
	"doctqr-server/internal/handlers"
	"doctqr-server/internal/middleware"
	"doctqr-server/internal/profile"
)

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	resolver := profile.NewResolver(profile.NewGormStore(db), profile.NewGormAccounts(db))
	medicalInfoHandler := handlers.NewMedicalInfoHandler(resolver, cfg)

	// Public routes (no authentication required)
	public := router.Group("/api/v1")
	{
		authRoutes := public.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.GET("/email-exists", authHandler.EmailExists)
		}

		// The QR read path: possession of the public token is the only
		// authorization.
		public.GET("/view/:publicId", medicalInfoHandler.ViewMedicalInfo)
	}

	// Authenticated routes
	private := router.Group("/api/v1")
	private.Use(middleware.AuthMiddleware(cfg)) // Apply JWT authentication middleware
	{
		authRoutesPrivate := private.Group("/auth")
		{
			authRoutesPrivate.POST("/logout", authHandler.Logout)
			authRoutesPrivate.GET("/profile", authHandler.GetProfile)
		}

		// Medical information routes - one document per account
		medicalInfoRoutes := private.Group("/medical-info")
		{
			medicalInfoRoutes.GET("", medicalInfoHandler.GetMedicalInfo)
			medicalInfoRoutes.PUT("", medicalInfoHandler.PublishMedicalInfo)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP"})
	})
}
