package env

import (
	"attendly.io/infrastructure/logger"
	"github.com/joho/godotenv"
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		logger.Info("error loading env variables")
	}
}
