package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/http/response"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/services"
)

type NeedHandler struct {
	needService services.NeedService
}

func NewNeedHandler(needService services.NeedService) *NeedHandler {
	return &NeedHandler{needService: needService}
}

func (nh *NeedHandler) List(c *gin.Context) {
	needs, err := nh.needService.List(
		c.Request.Context(),
		c.Query("familyCode"),
		c.Query("unfulfilled") == "true",
	)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"needs": needs})
}

func (nh *NeedHandler) Create(c *gin.Context) {
	var req struct {
		FamilyCode    string   `json:"familyCode"`
		Category      string   `json:"category"`
		Title         string   `json:"title"`
		Description   string   `json:"description"`
		EstimatedCost *float64 `json:"estimatedCost"`
		Priority      string   `json:"priority"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	need, err := nh.needService.Create(c.Request.Context(), services.CreateNeedInput{
		FamilyCode:    req.FamilyCode,
		Category:      req.Category,
		Title:         req.Title,
		Description:   req.Description,
		EstimatedCost: req.EstimatedCost,
		Priority:      req.Priority,
	})
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"need": need})
}

func (nh *NeedHandler) Fulfill(c *gin.Context) {
	need, err := nh.needService.Fulfill(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"need": need})
}
