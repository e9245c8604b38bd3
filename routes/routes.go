package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/stray-app/api-go/controllers"
	"github.com/stray-app/api-go/middleware"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Initialize controllers
	authController := controllers.NewAuthController(db)
	reportController := controllers.NewReportController(db)
	interactionController := controllers.NewInteractionController(db)
	uploadController := controllers.NewUploadController(db)
	feedController := controllers.NewFeedController(db)

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
		public.POST("/auth/google", authController.GoogleLogin)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/logout", authController.Logout)
		protected.POST("/refresh-token", authController.RefreshToken)
		protected.GET("/profile", authController.GetProfile)

		SetupReportRoutes(protected, reportController)
		SetupInteractionRoutes(protected, interactionController)
		SetupUploadRoutes(protected, uploadController)
		SetupFeedRoutes(protected, feedController)
	}
}
