package app

import (
	"gorm.io/gorm"

	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/pkg/logger"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/repos"
)

type Repos struct {
	User         repos.UserRepo
	Donor        repos.DonorRepo
	Admin        repos.AdminRepo
	Family       repos.FamilyRepo
	SecureFamily repos.SecureFamilyRepo
	Need         repos.NeedRepo
	Donation     repos.DonationRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:         repos.NewUserRepo(db, log),
		Donor:        repos.NewDonorRepo(db, log),
		Admin:        repos.NewAdminRepo(db, log),
		Family:       repos.NewFamilyRepo(db, log),
		SecureFamily: repos.NewSecureFamilyRepo(db, log),
		Need:         repos.NewNeedRepo(db, log),
		Donation:     repos.NewDonationRepo(db, log),
	}
}
