package handler

import (
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService   service.AuthService
	cookieTTL     int
	secureCookies bool
}

func NewAuthHandler(authService service.AuthService, cookieTTLSeconds int, secureCookies bool) *AuthHandler {
	return &AuthHandler{authService: authService, cookieTTL: cookieTTLSeconds, secureCookies: secureCookies}
}

// RegisterRoutes mounts the auth endpoints on an unauthenticated group.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, gin.H{"id": user.ID, "username": user.Username}))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		// Do not surface which part of the credentials failed.
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "invalid credentials"))
		return
	}

	middleware.SetTokenCookie(c, token.Token, h.cookieTTL, h.secureCookies)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, token))
}

func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearTokenCookie(c, h.secureCookies)
	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "logged out"}))
}
