package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/HireNest/internal/dtos"
	"github.com/justsurfingit/HireNest/internal/services"
	"go.uber.org/zap"
)

type AuthHandler struct {
	AuthService *services.AuthService
	Logger      *zap.Logger
}

func NewAuthHandler(a *services.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{AuthService: a, Logger: logger}
}

// Signup is POST /api/signup. Accepts JSON or a urlencoded form.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dtos.SignupRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if _, err := h.AuthService.Signup(c.Request.Context(), req); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully!!",
		"success": true,
	})
}

// Login is POST /api/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	resp, err := h.AuthService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout is POST /api/logout. Tokens are only verified, not revoked.
func (h *AuthHandler) Logout(c *gin.Context) {
	if _, err := h.AuthService.Logout(c.GetHeader("Authorization")); err != nil {
		respondMessage(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// Protected is GET /api/protected behind VerifyToken; it echoes the claims.
func (h *AuthHandler) Protected(c *gin.Context) {
	claims, _ := ClaimsFrom(c)
	c.JSON(http.StatusOK, gin.H{
		"message": "This is a protected route",
		"user":    claims,
	})
}
