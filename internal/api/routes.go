package api

import (
	"alcyxob/coachy/internal/domain"
	"alcyxob/coachy/internal/platform/logger"
	"alcyxob/coachy/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Services bundles what the HTTP layer depends on.
type Services struct {
	Auth     service.AuthService
	Exercise service.ExerciseService
	Media    service.MediaService
	Settings service.SettingsService
}

func SetupRoutes(router *gin.Engine, services Services, log *logger.Logger) {
	authHandler := NewAuthHandler(services.Auth, log)
	exerciseHandler := NewExerciseHandler(services.Exercise, services.Media, log)
	settingsHandler := NewSettingsHandler(services.Settings, log)

	authMiddleware := AuthMiddleware(services.Auth)
	membersOnly := RoleMiddleware(domain.RoleMember)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/guest", authHandler.ContinueAsGuest)
			authGroup.POST("/logout", authMiddleware, authHandler.Logout)
		}

		// Pure mapping, no caller needed.
		apiV1.GET("/body-parts", exerciseHandler.DeriveBodyParts)
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)

		// --- Exercise Routes ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
			exerciseGroup.GET("/:id/details", exerciseHandler.GetExerciseDetails)
			exerciseGroup.GET("/:id/media", exerciseHandler.GetMedia)

			exerciseGroup.POST("", membersOnly, exerciseHandler.CreateExercise)
			exerciseGroup.PUT("/:id", membersOnly, exerciseHandler.UpdateExercise)
			exerciseGroup.POST("/:id/media", membersOnly, exerciseHandler.RequestMediaUpload)
			exerciseGroup.POST("/:id/media/confirm", membersOnly, exerciseHandler.ConfirmMediaUpload)
		}

		// --- Settings Routes ---
		settingsGroup := protected.Group("/settings")
		{
			settingsGroup.GET("", settingsHandler.GetSettings)
			settingsGroup.PUT("", settingsHandler.UpdateSettings)
			settingsGroup.POST("/theme/toggle", settingsHandler.ToggleTheme)
			settingsGroup.POST("/measurement/toggle", settingsHandler.ToggleMeasurementSystem)
		}
	}
}
