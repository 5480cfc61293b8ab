package app

import (
	"gorm.io/gorm"

	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/clients/redis"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/pkg/logger"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/services"
)

type Services struct {
	Auth     services.AuthService
	Family   services.FamilyService
	Donation services.DonationService
	Donor    services.DonorService
	Need     services.NeedService
	Stats    services.StatsService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, statsCache redis.StatsCache) Services {
	log.Info("Wiring services...")
	return Services{
		Auth: services.NewAuthService(
			db, log,
			reposet.User, reposet.Donor, reposet.Admin, reposet.Family, reposet.SecureFamily,
			cfg.JWTSecretKey, cfg.TokenTTL, cfg.BcryptCost,
		),
		Family:   services.NewFamilyService(db, log, reposet.Family, reposet.SecureFamily),
		Donation: services.NewDonationService(db, log, reposet.Donation, reposet.Family),
		Donor:    services.NewDonorService(db, log, reposet.Donor, reposet.Donation, reposet.Family),
		Need:     services.NewNeedService(db, log, reposet.Need, reposet.Family),
		Stats:    services.NewStatsService(db, log, reposet.Donation, reposet.Family, reposet.Need, statsCache),
	}
}
