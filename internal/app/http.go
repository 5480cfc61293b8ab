package app

import (
	"github.com/gin-gonic/gin"

	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/db"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/http"
	httpH "github.com/Ziouche-maroua/Yaqeen-Backend/internal/http/handlers"
	httpMW "github.com/Ziouche-maroua/Yaqeen-Backend/internal/http/middleware"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/pkg/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health   *httpH.HealthHandler
	Auth     *httpH.AuthHandler
	Family   *httpH.FamilyHandler
	Donation *httpH.DonationHandler
	Donor    *httpH.DonorHandler
	Need     *httpH.NeedHandler
	Stats    *httpH.StatsHandler
}

func wireHandlers(log *logger.Logger, serviceset Services, pg *db.PostgresService) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   httpH.NewHealthHandler(pg),
		Auth:     httpH.NewAuthHandler(serviceset.Auth),
		Family:   httpH.NewFamilyHandler(serviceset.Family),
		Donation: httpH.NewDonationHandler(serviceset.Donation),
		Donor:    httpH.NewDonorHandler(serviceset.Donor),
		Need:     httpH.NewNeedHandler(serviceset.Need),
		Stats:    httpH.NewStatsHandler(serviceset.Stats),
	}
}

func wireMiddleware(log *logger.Logger, serviceset Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, serviceset.Auth),
	}
}

func wireRouter(log *logger.Logger, handlerset Handlers, middleware Middleware) *gin.Engine {
	log.Info("Wiring router...")
	return http.NewRouter(http.RouterConfig{
		Log:             log,
		AuthMiddleware:  middleware.Auth,
		AuthHandler:     handlerset.Auth,
		FamilyHandler:   handlerset.Family,
		DonationHandler: handlerset.Donation,
		DonorHandler:    handlerset.Donor,
		NeedHandler:     handlerset.Need,
		StatsHandler:    handlerset.Stats,
		HealthHandler:   handlerset.Health,
	})
}
