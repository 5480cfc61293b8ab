package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/http/response"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/services"
)

type DonorHandler struct {
	donorService services.DonorService
}

func NewDonorHandler(donorService services.DonorService) *DonorHandler {
	return &DonorHandler{donorService: donorService}
}

func (dh *DonorHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := dh.donorService.List(c.Request.Context(), services.DonorListParams{
		Country: c.Query("country"),
		Region:  c.Query("region"),
		Page:    page,
		Limit:   limit,
	})
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, result)
}

func (dh *DonorHandler) GetByID(c *gin.Context) {
	detail, err := dh.donorService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, detail)
}

func (dh *DonorHandler) Dashboard(c *gin.Context) {
	dashboard, err := dh.donorService.Dashboard(c.Request.Context())
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, dashboard)
}

func (dh *DonorHandler) UpdateProfile(c *gin.Context) {
	var req struct {
		Name             *string   `json:"name"`
		Country          *string   `json:"country"`
		PreferredRegions *[]string `json:"preferredRegions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	donor, err := dh.donorService.UpdateProfile(c.Request.Context(), services.UpdateDonorProfileInput{
		Name:             req.Name,
		Country:          req.Country,
		PreferredRegions: req.PreferredRegions,
	})
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"donor": donor})
}

func (dh *DonorHandler) ListFavorites(c *gin.Context) {
	families, err := dh.donorService.ListFavorites(c.Request.Context())
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"families": families})
}

func (dh *DonorHandler) AddFavorite(c *gin.Context) {
	favorites, err := dh.donorService.AddFavorite(c.Request.Context(), c.Param("familyCode"))
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"favoriteFamilies": favorites})
}

func (dh *DonorHandler) RemoveFavorite(c *gin.Context) {
	favorites, err := dh.donorService.RemoveFavorite(c.Request.Context(), c.Param("familyCode"))
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"favoriteFamilies": favorites})
}
