package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/http/response"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/services"
)

type StatsHandler struct {
	statsService services.StatsService
}

func NewStatsHandler(statsService services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (sh *StatsHandler) SiteStats(c *gin.Context) {
	stats, err := sh.statsService.SiteStats(c.Request.Context())
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, stats)
}

func (sh *StatsHandler) DonationStats(c *gin.Context) {
	timeframe, err := strconv.Atoi(c.DefaultQuery("timeframe", "30"))
	if err != nil {
		timeframe = 30
	}

	stats, err := sh.statsService.PlatformBreakdown(c.Request.Context(), c.Query("region"), timeframe)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, stats)
}
