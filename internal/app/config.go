package app

import (
	"time"

	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/pkg/logger"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/utils"
)

type Config struct {
	Port          string
	JWTSecretKey  string
	TokenTTL      time.Duration
	BcryptCost    int
	StatsCacheTTL time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "5000", log)
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	tokenTTLSeconds := utils.GetEnvAsInt("TOKEN_TTL", 7*24*3600, log)
	bcryptCost := utils.GetEnvAsInt("BCRYPT_COST", 12, log)
	statsCacheTTLSeconds := utils.GetEnvAsInt("STATS_CACHE_TTL", 60, log)
	return Config{
		Port:          port,
		JWTSecretKey:  jwtSecretKey,
		TokenTTL:      time.Duration(tokenTTLSeconds) * time.Second,
		BcryptCost:    bcryptCost,
		StatsCacheTTL: time.Duration(statsCacheTTLSeconds) * time.Second,
	}
}
