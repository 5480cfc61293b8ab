package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/http/response"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/services"
)

type DonationHandler struct {
	donationService services.DonationService
}

func NewDonationHandler(donationService services.DonationService) *DonationHandler {
	return &DonationHandler{donationService: donationService}
}

func (dh *DonationHandler) Record(c *gin.Context) {
	var req struct {
		FamilyCode   string      `json:"familyCode"`
		Platform     string      `json:"platform"`
		ExternalLink string      `json:"externalLink"`
		DonorName    string      `json:"donorName"`
		Amount       interface{} `json:"amount"`
		Currency     string      `json:"currency"`
		DonationDate *time.Time  `json:"donationDate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	donation, err := dh.donationService.Record(c.Request.Context(), services.RecordDonationInput{
		FamilyCode:   req.FamilyCode,
		Platform:     req.Platform,
		ExternalLink: req.ExternalLink,
		DonorName:    req.DonorName,
		Amount:       req.Amount,
		Currency:     req.Currency,
		DonationDate: req.DonationDate,
	})
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"donation": donation})
}

func (dh *DonationHandler) ListForFamily(c *gin.Context) {
	includeUnverified := c.Query("verified") == "false"

	result, err := dh.donationService.ListForFamily(c.Request.Context(), c.Param("familyCode"), includeUnverified)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, result)
}

func (dh *DonationHandler) Verify(c *gin.Context) {
	var req struct {
		IsVerified *bool `json:"isVerified"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	isVerified := true
	if req.IsVerified != nil {
		isVerified = *req.IsVerified
	}

	donation, err := dh.donationService.SetVerification(c.Request.Context(), c.Param("id"), isVerified)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"donation": donation})
}
