package handler

import (
	"net/http"

	"delit-api/internal/apperror"
	"delit-api/internal/middleware"
	"delit-api/internal/service"
	"delit-api/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// LoginRequest accepts form fields (OAuth2 password flow) or a JSON body.
type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `form:"refresh_token" json:"refresh_token"`
}

// Login handles user authentication
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		utils.HandleError(c, utils.BindError(err))
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Refresh generates a new access token from a refresh token
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := refreshTokenFromRequest(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	response, err := h.authService.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Logout revokes the refresh token
func (h *AuthHandler) Logout(c *gin.Context) {
	refreshToken, err := refreshTokenFromRequest(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), refreshToken); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.MessageResponse(c, "Logged out successfully")
}

// refreshTokenFromRequest reads the refresh token from a bearer header or
// from the refresh_token field of the body.
func refreshTokenFromRequest(c *gin.Context) (string, error) {
	if header := c.GetHeader("Authorization"); header != "" {
		raw, ok := middleware.BearerToken(header)
		if !ok {
			return "", apperror.Forbidden("Invalid authorization format. Use: Bearer <token>")
		}
		return raw, nil
	}

	var req RefreshRequest
	_ = c.ShouldBind(&req)
	if req.RefreshToken == "" {
		return "", apperror.Validation("refresh token is required")
	}
	return req.RefreshToken, nil
}
