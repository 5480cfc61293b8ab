package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/db"
)

type HealthHandler struct {
	pg *db.PostgresService
}

func NewHealthHandler(pg *db.PostgresService) *HealthHandler {
	return &HealthHandler{pg: pg}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	if h.pg != nil {
		if err := h.pg.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "degraded",
				"database": "unreachable",
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": "connected",
	})
}
