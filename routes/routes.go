package routes

import (
	"os"
	"strings"

	"glowloop-backend/config"
	"glowloop-backend/controllers"
	"glowloop-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(config.RequestLogger())

	allowedOrigins := []string{"http://localhost:3000", "http://localhost:5173"}
	if env := os.Getenv("CORS_ALLOWED_ORIGINS"); env != "" {
		allowedOrigins = strings.Split(env, ",")
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = allowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Authorization", "Content-Type"}
	corsConfig.AllowCredentials = true
	r.Use(cors.New(corsConfig))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)

		profile := auth.Group("/profile")
		{
			profile.GET("", controllers.GetProfile)
			profile.PUT("", controllers.UpdateProfile)
		}
	}

	// Public client-facing progress page; any holder of the link can view it
	progress := r.Group("/progress")
	{
		progress.GET("/:clientId", controllers.GetClientProgress)
		progress.POST("/:clientId/rewards/:rewardId/claim", controllers.ClaimReward)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		clients := api.Group("/clients")
		{
			clients.POST("", controllers.CreateClient)
			clients.GET("", controllers.GetClients)
			clients.GET("/:id", controllers.GetClient)
			clients.PUT("/:id", controllers.UpdateClient)
			clients.DELETE("/:id", controllers.DeleteClient)
		}

		visits := api.Group("/visits")
		{
			visits.POST("", controllers.CreateVisit)
			visits.GET("", controllers.GetVisits)
			visits.GET("/:id", controllers.GetVisit)
			visits.PUT("/:id", controllers.UpdateVisit)
			visits.DELETE("/:id", controllers.DeleteVisit)
		}

		services := api.Group("/services")
		{
			services.POST("", controllers.CreateService)
			services.GET("", controllers.GetServices)
			services.GET("/:id", controllers.GetService)
			services.PUT("/:id", controllers.UpdateService)
			services.DELETE("/:id", controllers.DeleteService)
		}

		programs := api.Group("/programs")
		{
			programs.POST("", controllers.CreateProgram)
			programs.GET("", controllers.GetPrograms)
			programs.GET("/:id", controllers.GetProgram)
			programs.PUT("/:id", controllers.UpdateProgram)
			programs.DELETE("/:id", controllers.DeleteProgram)
		}

		rewards := api.Group("/rewards")
		{
			rewards.POST("", controllers.CreateReward)
			rewards.GET("", controllers.GetRewards)
			rewards.GET("/:id", controllers.GetReward)
			rewards.PUT("/:id", controllers.UpdateReward)
			rewards.DELETE("/:id", controllers.DeleteReward)
		}

		api.GET("/overview", controllers.GetOverview)
		api.GET("/reports", controllers.GetReports)
	}

	return r
}
