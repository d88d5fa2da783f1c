package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"book-catalog/pkg/logger"
)

func main() {
	// .env is for development; production uses system environment variables.
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, using system environment variables")
	}

	env := getEnv("APP_ENV", "development")
	logger.Init(env)

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	Serve()
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
