package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/http/response"
	"github.com/Ziouche-maroua/Yaqeen-Backend/internal/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Email            string   `json:"email"`
		Password         string   `json:"password"`
		Role             string   `json:"role"`
		Name             string   `json:"name"`
		Country          string   `json:"country"`
		PreferredRegions []string `json:"preferredRegions"`
		FamilyCode       string   `json:"familyCode"`
		Region           string   `json:"region"`
		RealName         string   `json:"realName"`
		ExactLocation    string   `json:"exactLocation"`
		Story            string   `json:"story"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	result, err := ah.authService.RegisterUser(c.Request.Context(), services.RegisterInput{
		Email:            req.Email,
		Password:         req.Password,
		Role:             req.Role,
		Name:             req.Name,
		Country:          req.Country,
		PreferredRegions: req.PreferredRegions,
		FamilyCode:       req.FamilyCode,
		Region:           req.Region,
		RealName:         req.RealName,
		ExactLocation:    req.ExactLocation,
		Story:            req.Story,
	})
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{
		"token":      result.Token,
		"user":       result.User,
		"profile":    result.Profile,
		"expires_in": int(ah.authService.GetTokenTTL().Seconds()),
	})
}

func (ah *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	result, err := ah.authService.LoginUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"token":      result.Token,
		"user":       result.User,
		"profile":    result.Profile,
		"expires_in": int(ah.authService.GetTokenTTL().Seconds()),
	})
}

func (ah *AuthHandler) GetMe(c *gin.Context) {
	user, profile, err := ah.authService.GetMe(c.Request.Context())
	if err != nil {
		response.RespondFromError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"user":    user,
		"profile": profile,
	})
}
