package app

import (
	"github.com/openoralcare/oralhealth-backend/internal/logger"
	"github.com/openoralcare/oralhealth-backend/internal/utils"
)

type Config struct {
	Port       string
	MatchLimit int
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8080", log)
	matchLimit := utils.GetEnvAsInt("MATCH_LIMIT", 15, log)
	return Config{
		Port:       port,
		MatchLimit: matchLimit,
	}
}
