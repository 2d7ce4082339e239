package routes

import (
	"os"

	"github.com/john-zaremba/my-easy-tracker/config"
	"github.com/john-zaremba/my-easy-tracker/controllers"
	"github.com/john-zaremba/my-easy-tracker/middlewares"
	"github.com/john-zaremba/my-easy-tracker/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	// one LogService instance for the process: it owns the per-log
	// mutation locks
	hub := services.NewRealtimeHub()
	logSvc := services.NewLogService(
		services.NewGormLogStore(config.DB),
		services.NewNutritionixService(),
	)

	logCtrl := controllers.NewLogController(logSvc)
	entryCtrl := controllers.NewLogEntryController(logSvc, hub)
	rtCtrl := controllers.NewRealtimeController(hub)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
	}

	// Protected API
	api := r.Group("/api/v1")
	api.Use(middlewares.AuthMiddleware())
	{
		api.GET("/logs", logCtrl.ListLogs)
		api.POST("/logs", logCtrl.StartLog)
		api.GET("/logs/:id", logCtrl.GetLog)
		api.DELETE("/logs/:id", logCtrl.DeleteLog)
		api.POST("/logs/:id/entries", entryCtrl.AddEntry)
		api.PATCH("/entries/:id", entryCtrl.PatchEntry)
		api.DELETE("/entries/:id", entryCtrl.DeleteEntry)

		api.GET("/progress", logCtrl.GetProgress)

		api.GET("/user/profile", controllers.GetProfile)
		api.PUT("/user/profile", controllers.UpdateProfile)

		api.GET("/ws/logs", rtCtrl.LogUpdatesWS)
	}

	if os.Getenv("ENABLE_DEV_ROUTES") == "true" {
		dev := r.Group("/dev")
		dev.POST("/seed", controllers.SeedDemoUsers)
	}

	return r
}
