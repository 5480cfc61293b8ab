package http

import (
	"github.com/gin-gonic/gin"

	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/domain"
	httpH "github.com/Ziouche-maroua/Yaqeen-Backend/internal/http/handlers"
	httpMW "github.com/Ziouche-maroua/Yaqeen-Backend/internal/http/middleware"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthMiddleware *httpMW.AuthMiddleware

	AuthHandler     *httpH.AuthHandler
	FamilyHandler   *httpH.FamilyHandler
	DonationHandler *httpH.DonationHandler
	DonorHandler    *httpH.DonorHandler
	NeedHandler     *httpH.NeedHandler
	StatsHandler    *httpH.StatsHandler
	HealthHandler   *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(httpMW.CORS())
	if cfg.Log != nil {
		r.Use(httpMW.RequestLogger(cfg.Log))
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/health", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")

	requireAuth := func() gin.HandlerFunc { return cfg.AuthMiddleware.RequireAuth() }
	requireRoles := func(roles ...domain.Role) gin.HandlerFunc {
		return cfg.AuthMiddleware.RequireRoles(roles...)
	}

	// Public stats
	if cfg.StatsHandler != nil {
		api.GET("/stats", cfg.StatsHandler.SiteStats)
	}

	// Auth
	if cfg.AuthHandler != nil {
		auth := api.Group("/auth")
		auth.POST("/register", cfg.AuthHandler.Register)
		auth.POST("/login", cfg.AuthHandler.Login)
		auth.GET("/me", requireAuth(), cfg.AuthHandler.GetMe)
	}

	// Families
	if cfg.FamilyHandler != nil {
		families := api.Group("/families")
		families.GET("", cfg.FamilyHandler.List)
		families.GET("/:familyCode", cfg.FamilyHandler.GetByCode)
		families.POST("", requireAuth(), requireRoles(domain.RoleAdmin, domain.RoleFamily), cfg.FamilyHandler.Create)
		families.PUT("/:familyCode/verify", requireAuth(), requireRoles(domain.RoleAdmin), cfg.FamilyHandler.Verify)
		families.GET("/:familyCode/secure", requireAuth(), requireRoles(domain.RoleAdmin), cfg.FamilyHandler.GetSecureData)
	}

	// Donations
	if cfg.DonationHandler != nil {
		donations := api.Group("/donations")
		donations.POST("", requireAuth(), cfg.DonationHandler.Record)
		donations.GET("/family/:familyCode", cfg.DonationHandler.ListForFamily)
		donations.PUT("/:id/verify", requireAuth(), requireRoles(domain.RoleAdmin), cfg.DonationHandler.Verify)
		if cfg.StatsHandler != nil {
			donations.GET("/stats", cfg.StatsHandler.DonationStats)
		}
	}

	// Donors
	if cfg.DonorHandler != nil {
		donors := api.Group("/donors")
		donors.Use(requireAuth())
		donors.GET("", requireRoles(domain.RoleAdmin), cfg.DonorHandler.List)
		donors.GET("/dashboard/me", requireRoles(domain.RoleDonor), cfg.DonorHandler.Dashboard)
		donors.PUT("/profile", requireRoles(domain.RoleDonor), cfg.DonorHandler.UpdateProfile)
		donors.GET("/favorites", requireRoles(domain.RoleDonor), cfg.DonorHandler.ListFavorites)
		donors.POST("/favorites/:familyCode", requireRoles(domain.RoleDonor), cfg.DonorHandler.AddFavorite)
		donors.DELETE("/favorites/:familyCode", requireRoles(domain.RoleDonor), cfg.DonorHandler.RemoveFavorite)
		donors.GET("/:id", requireRoles(domain.RoleAdmin), cfg.DonorHandler.GetByID)
	}

	// Needs
	if cfg.NeedHandler != nil {
		needs := api.Group("/needs")
		needs.GET("", cfg.NeedHandler.List)
		needs.POST("", requireAuth(), requireRoles(domain.RoleAdmin, domain.RoleFamily), cfg.NeedHandler.Create)
		needs.PUT("/:id/fulfill", requireAuth(), cfg.NeedHandler.Fulfill)
	}

	return r
}
