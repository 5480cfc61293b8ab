package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/http/response"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/services"
)

type FamilyHandler struct {
	familyService services.FamilyService
}

func NewFamilyHandler(familyService services.FamilyService) *FamilyHandler {
	return &FamilyHandler{familyService: familyService}
}

func (fh *FamilyHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := fh.familyService.List(c.Request.Context(), services.FamilyListParams{
		Region:   c.Query("region"),
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, result)
}

func (fh *FamilyHandler) GetByCode(c *gin.Context) {
	view, err := fh.familyService.GetByCode(c.Request.Context(), c.Param("familyCode"))
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, view)
}

func (fh *FamilyHandler) Create(c *gin.Context) {
	var req struct {
		FamilyCode    string `json:"familyCode"`
		Region        string `json:"region"`
		Priority      string `json:"priority"`
		RealName      string `json:"realName"`
		ExactLocation string `json:"exactLocation"`
		Story         string `json:"story"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	family, err := fh.familyService.Create(c.Request.Context(), services.CreateFamilyInput{
		FamilyCode:    req.FamilyCode,
		Region:        req.Region,
		Priority:      req.Priority,
		RealName:      req.RealName,
		ExactLocation: req.ExactLocation,
		Story:         req.Story,
	})
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"family": family})
}

func (fh *FamilyHandler) Verify(c *gin.Context) {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	family, err := fh.familyService.VerifyFamily(c.Request.Context(), c.Param("familyCode"), req.Status)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"family": family})
}

func (fh *FamilyHandler) GetSecureData(c *gin.Context) {
	record, err := fh.familyService.GetSecureData(c.Request.Context(), c.Param("familyCode"))
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"secureData": record})
}
