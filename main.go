package main

import (
	"os"

	"glowloop-backend/config"
	"glowloop-backend/models"
	"glowloop-backend/routes"
	"glowloop-backend/services"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found")
	}

	config.InitLogger()
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Visit{},
		&models.Service{},
		&models.LoyaltyProgram{},
		&models.ClientReward{},
		&models.GreetingLog{},
	)
}

func main() {
	greetings := services.NewGreetingService(config.DB)
	greetings.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := routes.SetupRouter()
	log.Info().Str("port", port).Msg("Server starting")
	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
